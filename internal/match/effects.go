package match

import (
	"errors"
	"fmt"

	"github.com/cinetcg/cinetcg-go/internal/catalog"
)

// resolveSpell applies a spell's effect list in order against one optional
// chosen target, then sweeps dead creatures and re-evaluates the win
// condition once. A target validation failure aborts resolution and is
// propagated to the caller for the play-level rollback; effects that
// already applied are not undone here, so effect lists must be authored
// effect-order-safe.
func (s *State) resolveSpell(player int, card *catalog.CardDefinition, target *TargetRef) error {
	if target != nil {
		if err := s.checkTargetRef(*target); err != nil {
			return err
		}
	}
	enemy := s.Opponent(player)

	for _, eff := range card.Effects {
		switch e := eff.(type) {
		case catalog.DamageEffect:
			if err := s.applyDamage(player, enemy, e, target); err != nil {
				return err
			}

		case catalog.HealEffect:
			switch e.Target {
			case catalog.HealSelfPlayer:
				s.healPlayer(player, e.Amount)
			case catalog.HealSelfCreature:
				if target == nil || target.Kind != TargetCreature || target.Player != player {
					return errors.New("target one of your creatures")
				}
				c := s.Players[player].Board[target.Slot]
				if c != nil && e.Amount > 0 {
					c.Health += e.Amount
					s.emit(Event{Kind: EventHealCreature, Player: player, Slot: target.Slot, Amount: e.Amount})
				}
			}

		case catalog.DrawEffect:
			for i := 0; i < e.Count; i++ {
				s.drawOne(player)
			}

		case catalog.BuffEffect:
			switch e.Target {
			case catalog.BuffSelfCreature:
				if target == nil || target.Kind != TargetCreature || target.Player != player {
					return errors.New("target one of your creatures")
				}
			case catalog.BuffAnyCreature:
				if target == nil || target.Kind != TargetCreature {
					return errors.New("target a creature")
				}
			}
			if c := s.Players[target.Player].Board[target.Slot]; c != nil {
				c.Attack += e.AttackDelta
				c.Health += e.HealthDelta
				s.emit(Event{
					Kind:        EventBuffApplied,
					Player:      target.Player,
					Slot:        target.Slot,
					AttackDelta: e.AttackDelta,
					HealthDelta: e.HealthDelta,
				})
			}

		case catalog.SummonEffect:
			s.applySummon(player, e)

		default:
			return fmt.Errorf("unknown effect %T", eff)
		}
	}

	s.removeDead()
	s.checkWinner()
	return nil
}

// checkTargetRef rejects references that do not address a real player or
// board slot. Target refs arrive from fallible callers, so resolution never
// indexes one before this passes.
func (s *State) checkTargetRef(t TargetRef) error {
	if t.Player < 0 || t.Player >= len(s.Players) {
		return fmt.Errorf("invalid target player %d", t.Player)
	}
	if t.Kind == TargetCreature {
		if t.Slot < 0 || t.Slot >= len(s.Players[t.Player].Board) {
			return fmt.Errorf("invalid target slot %d", t.Slot)
		}
	}
	return nil
}

func (s *State) applyDamage(player, enemy int, e catalog.DamageEffect, target *TargetRef) error {
	switch e.Target {
	case catalog.DamageEnemyPlayer:
		// A target is optional here; when supplied it must be the enemy player.
		if target != nil && (target.Kind != TargetPlayer || target.Player != enemy) {
			return errors.New("target the enemy player")
		}
		s.damagePlayer(enemy, e.Amount)
	case catalog.DamageEnemyCreature:
		if target == nil || target.Kind != TargetCreature || target.Player != enemy {
			return errors.New("target an enemy creature")
		}
		s.damageCreature(enemy, target.Slot, e.Amount)
	case catalog.DamageAny:
		if target == nil {
			return errors.New("select a target")
		}
		if target.Kind == TargetPlayer {
			s.damagePlayer(target.Player, e.Amount)
		} else {
			s.damageCreature(target.Player, target.Slot, e.Amount)
		}
	}
	return nil
}

// applySummon places tokens into the first empty friendly slots, stopping
// silently once the board is full. Haste tokens spawn without sickness.
func (s *State) applySummon(player int, e catalog.SummonEffect) {
	for i := 0; i < e.Count; i++ {
		slot := findEmptySlot(s.Players[player].Board)
		if slot < 0 {
			break
		}
		token, ok := s.Catalog.Get(e.TokenCardID)
		if !ok || token.CreatureStats == nil {
			continue
		}
		inst := s.newCreature(token)
		s.Players[player].Board[slot] = inst
		s.emit(Event{Kind: EventCreatureSummoned, Player: player, Slot: slot, CardID: inst.CardID})
	}
}
