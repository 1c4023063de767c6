package match

import (
	"testing"

	"github.com/cinetcg/cinetcg-go/internal/catalog"
)

// testCatalog builds a small catalog covering every card type, keyword, and
// effect kind used across the engine tests.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	creature := func(id string, cost, attack, health int, kws ...catalog.Keyword) *catalog.CardDefinition {
		return &catalog.CardDefinition{
			ID:            id,
			Name:          id,
			Type:          catalog.CardTypeCreature,
			Rarity:        catalog.RarityCommon,
			Cost:          cost,
			Keywords:      kws,
			CreatureStats: &catalog.CreatureStats{Attack: attack, Health: health},
		}
	}
	spell := func(id string, cost int, effects ...catalog.Effect) *catalog.CardDefinition {
		return &catalog.CardDefinition{
			ID:      id,
			Name:    id,
			Type:    catalog.CardTypeSpell,
			Rarity:  catalog.RarityCommon,
			Cost:    cost,
			Effects: effects,
		}
	}

	cat, err := catalog.New([]*catalog.CardDefinition{
		creature("footman", 1, 1, 2),
		creature("knight", 2, 2, 3),
		creature("guard_wall", 2, 1, 4, catalog.KeywordGuard),
		creature("raider", 2, 2, 1, catalog.KeywordHaste),
		creature("leech", 3, 3, 2, catalog.KeywordLifesteal),
		creature("ogre", 4, 4, 4),
		creature("recruit", 1, 1, 1, catalog.KeywordToken),
		creature("swift_recruit", 1, 1, 1, catalog.KeywordToken, catalog.KeywordHaste),
		spell("firebolt", 1, catalog.DamageEffect{Amount: 3, Target: catalog.DamageAny}),
		spell("smite", 2, catalog.DamageEffect{Amount: 4, Target: catalog.DamageEnemyCreature}),
		spell("zap_face", 1, catalog.DamageEffect{Amount: 2, Target: catalog.DamageEnemyPlayer}),
		spell("mend", 1, catalog.HealEffect{Amount: 3, Target: catalog.HealSelfPlayer}),
		spell("patch", 1, catalog.HealEffect{Amount: 2, Target: catalog.HealSelfCreature}),
		spell("insight", 2, catalog.DrawEffect{Count: 2}),
		spell("war_cry", 2, catalog.BuffEffect{AttackDelta: 2, HealthDelta: 1, Target: catalog.BuffSelfCreature}),
		spell("twist", 2, catalog.BuffEffect{AttackDelta: 1, HealthDelta: 1, Target: catalog.BuffAnyCreature}),
		spell("rally", 3, catalog.SummonEffect{TokenCardID: "recruit", Count: 2}),
		spell("swift_rally", 2, catalog.SummonEffect{TokenCardID: "swift_recruit", Count: 1}),
	})
	if err != nil {
		t.Fatalf("failed to build test catalog: %v", err)
	}
	return cat
}

// deckOf returns n copies of a single card id.
func deckOf(id string, n int) []string {
	deck := make([]string, n)
	for i := range deck {
		deck[i] = id
	}
	return deck
}

// newTestMatch starts a match with both players on 30 copies of the given
// card ids (deck0 and deck1 respectively).
func newTestMatch(t *testing.T, seed int64, deck0ID, deck1ID string) *State {
	t.Helper()
	s, err := NewMatch(testCatalog(t), deckOf(deck0ID, 30), deckOf(deck1ID, 30), seed, DefaultConfig())
	if err != nil {
		t.Fatalf("failed to start match: %v", err)
	}
	return s
}

// place puts a creature built from the catalog definition into a board
// slot, ready to attack unless marked sick.
func place(t *testing.T, s *State, player, slot int, cardID string, sick bool) *CreatureInstance {
	t.Helper()
	card, ok := s.Catalog.Get(cardID)
	if !ok || card.CreatureStats == nil {
		t.Fatalf("no creature %q in test catalog", cardID)
	}
	inst := s.newCreature(card)
	inst.SummoningSick = sick
	s.Players[player].Board[slot] = inst
	return inst
}
