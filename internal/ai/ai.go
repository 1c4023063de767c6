// Package ai implements the heuristic opponent. It has no privileged
// access to match internals: it enumerates choices through the target
// queries and submits them through Step, exactly as an input layer would.
package ai

import (
	"go.uber.org/zap"

	"github.com/cinetcg/cinetcg-go/internal/catalog"
	"github.com/cinetcg/cinetcg-go/internal/match"
)

// Difficulty tunes how often the agent skips its objectively best option.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

// Mistake probabilities per difficulty. All rolls are drawn from the match
// RNG stream, so an AI-driven match stays fully determined by its seed.
const (
	easySkipPlayChance   = 0.35
	normalSkipPlayChance = 0.10
	easySkipAttackChance = 0.25
)

// Agent chooses and submits actions for one player.
type Agent struct {
	difficulty Difficulty
	logger     *zap.Logger
}

// New builds an agent. A nil logger disables logging.
func New(difficulty Difficulty, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{difficulty: difficulty, logger: logger}
}

// TakeTurn advances the match through the agent's turn: plays while a play
// is chosen, then attacks while an attack is chosen, then ends the turn.
// The loop is bounded by hand and board size — every accepted play or
// attack consumes a resource that does not come back this turn.
func (a *Agent) TakeTurn(s *match.State, player int) {
	for !s.Ended() && s.CurrentPlayer == player {
		if play := a.pickBestPlay(s, player); play != nil {
			if res := s.Step(*play); res.OK {
				continue
			}
			a.logger.Debug("chosen play rejected", zap.Int("player", player))
		}
		if atk := a.pickAttack(s, player); atk != nil {
			if res := s.Step(*atk); res.OK {
				continue
			}
			a.logger.Debug("chosen attack rejected", zap.Int("player", player))
		}
		s.Step(match.EndTurnAction{Player: player})
		return
	}
}

// cardValue is the static valuation used to rank affordable plays.
// Creatures: 2*attack + health plus keyword bonuses. Spells: a rough
// per-effect estimate.
func cardValue(card *catalog.CardDefinition) float64 {
	if card.Type == catalog.CardTypeCreature {
		v := float64(card.CreatureStats.Attack*2 + card.CreatureStats.Health)
		if card.HasKeyword(catalog.KeywordGuard) {
			v += 1.5
		}
		if card.HasKeyword(catalog.KeywordHaste) {
			v += 1.0
		}
		if card.HasKeyword(catalog.KeywordLifesteal) {
			v += 1.0
		}
		return v
	}

	v := 0.0
	for _, eff := range card.Effects {
		switch e := eff.(type) {
		case catalog.DamageEffect:
			weight := 2.0
			if e.Target == catalog.DamageEnemyPlayer {
				weight = 1.2
			}
			v += float64(e.Amount) * weight
		case catalog.HealEffect:
			v += float64(e.Amount) * 0.9
		case catalog.DrawEffect:
			v += float64(e.Count) * 1.4
		case catalog.BuffEffect:
			v += float64(e.AttackDelta)*1.8 + float64(e.HealthDelta)*1.2
		case catalog.SummonEffect:
			v += float64(e.Count) * 2.0
		}
	}
	return v
}

// pickBestPlay returns the highest-valued affordable play, or nil when the
// hand offers nothing playable or the difficulty-gated mistake roll skips
// the turn's best play.
func (a *Agent) pickBestPlay(s *match.State, player int) *match.PlayCardAction {
	ps := s.Players[player]

	var best *match.PlayCardAction
	bestScore := 0.0

	for idx, cardID := range ps.Hand {
		card, ok := s.Catalog.Get(cardID)
		if !ok || card.Cost > ps.Energy {
			continue
		}

		if card.Type == catalog.CardTypeCreature {
			if boardFull(ps.Board) {
				continue
			}
			if score := cardValue(card); best == nil || score > bestScore {
				best = &match.PlayCardAction{Player: player, HandIndex: idx}
				bestScore = score
			}
			continue
		}

		targets := s.ValidTargetsForPlay(player, cardID)
		if len(targets) == 0 {
			if score := cardValue(card); best == nil || score > bestScore {
				best = &match.PlayCardAction{Player: player, HandIndex: idx}
				bestScore = score
			}
			continue
		}

		chosen := chooseSpellTarget(s, player, card, targets)
		if chosen == nil {
			continue
		}
		if score := cardValue(card); best == nil || score > bestScore {
			best = &match.PlayCardAction{Player: player, HandIndex: idx, Target: chosen}
			bestScore = score
		}
	}

	if best == nil {
		return nil
	}

	switch a.difficulty {
	case Easy:
		if s.Chance(easySkipPlayChance) {
			return nil
		}
	case Normal:
		if s.Chance(normalSkipPlayChance) {
			return nil
		}
	}
	return best
}

func boardFull(board []*match.CreatureInstance) bool {
	for _, c := range board {
		if c == nil {
			return false
		}
	}
	return true
}

// chooseSpellTarget picks a semantically sensible target for a targeted
// spell: damage goes to the highest-attack enemy creature, else the enemy
// player; heals go to the lowest-health friendly creature; buffs go to the
// highest-attack eligible creature. Returns nil when no sensible target
// exists, which skips the card entirely.
func chooseSpellTarget(s *match.State, player int, card *catalog.CardDefinition, targets []match.TargetRef) *match.TargetRef {
	enemy := s.Opponent(player)

	for _, eff := range card.Effects {
		switch e := eff.(type) {
		case catalog.DamageEffect:
			if e.Target == catalog.DamageEnemyCreature || e.Target == catalog.DamageAny {
				if t := highestAttackCreature(s, targets, enemy); t != nil {
					return t
				}
			}
			if e.Target == catalog.DamageEnemyPlayer || e.Target == catalog.DamageAny {
				t := match.PlayerTarget(enemy)
				return &t
			}

		case catalog.HealEffect:
			if e.Target == catalog.HealSelfPlayer {
				return nil
			}
			return lowestHealthCreature(s, targets, player)

		case catalog.BuffEffect:
			var best *match.TargetRef
			bestAttack := -1
			for _, t := range targets {
				if t.Kind != match.TargetCreature {
					continue
				}
				if e.Target == catalog.BuffSelfCreature && t.Player != player {
					continue
				}
				c := s.Players[t.Player].Board[t.Slot]
				if c != nil && c.Attack > bestAttack {
					bestAttack = c.Attack
					tt := t
					best = &tt
				}
			}
			return best
		}
	}

	if len(targets) > 0 {
		return &targets[0]
	}
	return nil
}

func highestAttackCreature(s *match.State, targets []match.TargetRef, owner int) *match.TargetRef {
	var best *match.TargetRef
	bestAttack := -1
	for _, t := range targets {
		if t.Kind != match.TargetCreature || t.Player != owner {
			continue
		}
		c := s.Players[owner].Board[t.Slot]
		if c != nil && c.Attack > bestAttack {
			bestAttack = c.Attack
			tt := t
			best = &tt
		}
	}
	return best
}

func lowestHealthCreature(s *match.State, targets []match.TargetRef, owner int) *match.TargetRef {
	var best *match.TargetRef
	bestHealth := int(^uint(0) >> 1)
	for _, t := range targets {
		if t.Kind != match.TargetCreature || t.Player != owner {
			continue
		}
		c := s.Players[owner].Board[t.Slot]
		if c != nil && c.Health < bestHealth {
			bestHealth = c.Health
			tt := t
			best = &tt
		}
	}
	return best
}

// pickAttack returns an attack for the first ready creature, or nil when no
// creature can usefully attack. Preference order: the lowest-health Guard
// when Guards force the targeting, then a trade that kills the defender
// while the attacker survives (taking out the biggest threat first), then
// the enemy player when unobstructed, then any legal creature target. On
// easy difficulty each candidate attack is independently skippable.
func (a *Agent) pickAttack(s *match.State, player int) *match.AttackAction {
	ps := s.Players[player]
	enemy := s.Opponent(player)
	eps := s.Players[enemy]

	for slot, c := range ps.Board {
		if c == nil || c.SummoningSick || c.HasAttacked {
			continue
		}
		valid := s.ValidAttackTargets(player)
		if len(valid) == 0 {
			continue
		}

		faceAllowed := false
		for _, t := range valid {
			if t.Kind == match.TargetPlayer {
				faceAllowed = true
				break
			}
		}

		// Guards force the targeting; break through the weakest one.
		if !faceAllowed {
			if t := lowestHealthCreature(s, valid, enemy); t != nil {
				if a.difficulty == Easy && s.Chance(easySkipAttackChance) {
					return nil
				}
				return &match.AttackAction{Player: player, AttackerSlot: slot, Target: *t}
			}
			continue
		}

		var bestTrade *match.TargetRef
		bestScore := -1
		for _, t := range valid {
			if t.Kind != match.TargetCreature {
				continue
			}
			dc := eps.Board[t.Slot]
			if dc == nil {
				continue
			}
			kills := c.Attack >= dc.Health
			survives := c.Health > dc.Attack
			if kills && survives && dc.Attack > bestScore {
				bestScore = dc.Attack
				tt := t
				bestTrade = &tt
			}
		}
		if bestTrade != nil {
			if a.difficulty == Easy && s.Chance(easySkipAttackChance) {
				return nil
			}
			return &match.AttackAction{Player: player, AttackerSlot: slot, Target: *bestTrade}
		}

		if a.difficulty == Easy && s.Chance(easySkipAttackChance) {
			return nil
		}
		return &match.AttackAction{Player: player, AttackerSlot: slot, Target: match.PlayerTarget(enemy)}
	}
	return nil
}
