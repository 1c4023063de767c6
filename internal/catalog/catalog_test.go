package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func creature(id string, cost, atk, hp int, kws ...Keyword) *CardDefinition {
	return &CardDefinition{
		ID:            id,
		Name:          id,
		Type:          CardTypeCreature,
		Rarity:        RarityCommon,
		Cost:          cost,
		Keywords:      kws,
		CreatureStats: &CreatureStats{Attack: atk, Health: hp},
	}
}

func spell(id string, cost int, effects ...Effect) *CardDefinition {
	return &CardDefinition{
		ID:      id,
		Name:    id,
		Type:    CardTypeSpell,
		Rarity:  RarityCommon,
		Cost:    cost,
		Effects: effects,
	}
}

func TestNewCatalogAccessors(t *testing.T) {
	cat, err := New([]*CardDefinition{
		creature("b_card", 1, 1, 1),
		creature("a_card", 2, 2, 2),
		spell("c_card", 1, DrawEffect{Count: 1}),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, cat.Len())
	assert.Equal(t, []string{"a_card", "b_card", "c_card"}, cat.IDs())

	card, ok := cat.Get("a_card")
	require.True(t, ok)
	assert.Equal(t, 2, card.Cost)

	_, ok = cat.Get("missing")
	assert.False(t, ok)
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name   string
		cards  []*CardDefinition
		errMsg string
	}{
		{
			"empty id",
			[]*CardDefinition{{Name: "nameless", Type: CardTypeCreature}},
			"empty id",
		},
		{
			"duplicate id",
			[]*CardDefinition{creature("dup", 1, 1, 1), creature("dup", 2, 2, 2)},
			"duplicate card id",
		},
		{
			"creature without stats",
			[]*CardDefinition{{ID: "x", Type: CardTypeCreature}},
			"missing creature stats",
		},
		{
			"unknown type",
			[]*CardDefinition{{ID: "x", Type: "enchantment"}},
			"unknown type",
		},
		{
			"negative cost",
			[]*CardDefinition{spell("x", -1, DrawEffect{Count: 1})},
			"negative cost",
		},
		{
			"unknown keyword",
			[]*CardDefinition{creature("x", 1, 1, 1, Keyword("Flying"))},
			"unknown keyword",
		},
		{
			"summon of unknown card",
			[]*CardDefinition{spell("x", 1, SummonEffect{TokenCardID: "ghost", Count: 1})},
			"summons unknown card",
		},
		{
			"summon of non-creature",
			[]*CardDefinition{
				spell("x", 1, SummonEffect{TokenCardID: "y", Count: 1}),
				spell("y", 0, DrawEffect{Count: 1}),
			},
			"not a creature",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cards)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestNeedsTarget(t *testing.T) {
	assert.False(t, creature("c", 1, 1, 1).NeedsTarget())
	assert.True(t, spell("s", 1, DamageEffect{Amount: 1, Target: DamageAny}).NeedsTarget())
	assert.True(t, spell("s", 1, HealEffect{Amount: 1, Target: HealSelfCreature}).NeedsTarget())
	assert.True(t, spell("s", 1, BuffEffect{AttackDelta: 1, Target: BuffSelfCreature}).NeedsTarget())
	assert.False(t, spell("s", 1, HealEffect{Amount: 1, Target: HealSelfPlayer}).NeedsTarget())
	assert.False(t, spell("s", 1, DrawEffect{Count: 2}).NeedsTarget())
	assert.False(t, spell("s", 1, SummonEffect{TokenCardID: "c", Count: 1}).NeedsTarget())
}

func TestHasKeyword(t *testing.T) {
	c := creature("c", 1, 1, 1, KeywordGuard, KeywordLifesteal)
	assert.True(t, c.HasKeyword(KeywordGuard))
	assert.True(t, c.HasKeyword(KeywordLifesteal))
	assert.False(t, c.HasKeyword(KeywordHaste))
}
