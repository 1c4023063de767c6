package match

import "github.com/cinetcg/cinetcg-go/internal/catalog"

// Pure target queries. Both are safe to call at any time and mutate
// nothing; the dispatcher uses them for validation and clients use them to
// enumerate choices before committing to an action.

// ValidTargetsForPlay returns every structurally legal target for playing
// the given card right now, or an empty set when the card needs no target.
// The set is deliberately broad — every creature on either board plus both
// players — and the effect itself rejects a semantically wrong choice at
// resolution time.
func (s *State) ValidTargetsForPlay(player int, cardID string) []TargetRef {
	card, ok := s.Catalog.Get(cardID)
	if !ok || !card.NeedsTarget() {
		return nil
	}

	enemy := s.Opponent(player)
	var targets []TargetRef
	for i, c := range s.Players[player].Board {
		if c != nil {
			targets = append(targets, CreatureTarget(player, i))
		}
	}
	for i, c := range s.Players[enemy].Board {
		if c != nil {
			targets = append(targets, CreatureTarget(enemy, i))
		}
	}
	targets = append(targets, PlayerTarget(player), PlayerTarget(enemy))
	return targets
}

// ValidAttackTargets returns the legal attack targets for the attacking
// player. If the defender controls any Guard creature, only the Guard
// creatures are attackable; otherwise every defending creature plus the
// defending player.
func (s *State) ValidAttackTargets(attackingPlayer int) []TargetRef {
	defender := s.Opponent(attackingPlayer)
	dps := s.Players[defender]

	guardOnly := false
	for _, c := range dps.Board {
		if c != nil && c.Has(catalog.KeywordGuard) {
			guardOnly = true
			break
		}
	}

	var targets []TargetRef
	for i, c := range dps.Board {
		if c == nil {
			continue
		}
		if guardOnly && !c.Has(catalog.KeywordGuard) {
			continue
		}
		targets = append(targets, CreatureTarget(defender, i))
	}
	if !guardOnly {
		targets = append(targets, PlayerTarget(defender))
	}
	return targets
}
