package match

import (
	"errors"

	"go.uber.org/zap"

	"github.com/cinetcg/cinetcg-go/internal/catalog"
)

// ErrMatchEnded is returned for any action submitted after a winner is set.
var ErrMatchEnded = errors.New("match already ended")

// Step applies a single action. Every invocation appends the action to the
// action log before anything else, so the log is a complete record of
// attempts, not just accepted inputs. Rule violations come back as
// StepResult.Err; the only mutation a failed action leaves behind is its
// action-log entry.
func (s *State) Step(action Action) StepResult {
	s.ActionLog = append(s.ActionLog, action)

	if s.Winner != NoWinner {
		return s.fail(action, ErrMatchEnded)
	}

	mark := len(s.EventLog)
	var res StepResult
	switch a := action.(type) {
	case PlayCardAction:
		res = s.playCard(a)
	case AttackAction:
		res = s.attack(a)
	case EndTurnAction:
		res = s.endTurn(a)
	default:
		return s.fail(action, errors.New("unknown action"))
	}
	if !res.OK {
		return s.fail(action, res.Err)
	}
	res.Events = append([]Event(nil), s.EventLog[mark:]...)
	return res
}

func (s *State) fail(action Action, err error) StepResult {
	s.logger.Debug("action rejected",
		zap.String("match_id", s.ID),
		zap.Int("player", action.actor()),
		zap.Error(err),
	)
	return StepResult{OK: false, Err: err}
}

func (s *State) playCard(a PlayCardAction) StepResult {
	if a.Player != s.CurrentPlayer {
		return StepResult{Err: errors.New("not your turn")}
	}
	ps := s.Players[a.Player]
	if a.HandIndex < 0 || a.HandIndex >= len(ps.Hand) {
		return StepResult{Err: errors.New("invalid hand index")}
	}

	cardID := ps.Hand[a.HandIndex]
	card, _ := s.Catalog.Get(cardID)

	if card.Cost > ps.Energy {
		return StepResult{Err: errors.New("not enough energy")}
	}

	if card.Type == catalog.CardTypeCreature {
		slot := findEmptySlot(ps.Board)
		if slot < 0 {
			return StepResult{Err: errors.New("board is full")}
		}
		ps.Energy -= card.Cost
		ps.Hand = append(ps.Hand[:a.HandIndex], ps.Hand[a.HandIndex+1:]...)
		inst := s.newCreature(card)
		ps.Board[slot] = inst
		s.emit(Event{Kind: EventCardPlayed, Player: a.Player, CardID: cardID})
		s.emit(Event{Kind: EventCreatureSummoned, Player: a.Player, Slot: slot, CardID: cardID})
		s.checkWinner()
		return StepResult{OK: true}
	}

	// Spell: pay, move to discard, resolve. A targeting failure inside
	// resolution rolls the whole play back so a bad target selection never
	// costs the card or the energy. Effects applied before the failing one
	// are intentionally left in place.
	ps.Energy -= card.Cost
	ps.Hand = append(ps.Hand[:a.HandIndex], ps.Hand[a.HandIndex+1:]...)
	ps.Discard = append(ps.Discard, cardID)
	s.emit(Event{Kind: EventCardPlayed, Player: a.Player, CardID: cardID})

	if err := s.resolveSpell(a.Player, card, a.Target); err != nil {
		ps.Energy += card.Cost
		ps.Hand = append(ps.Hand[:a.HandIndex], append([]string{cardID}, ps.Hand[a.HandIndex:]...)...)
		ps.Discard = ps.Discard[:len(ps.Discard)-1]
		if n := len(s.EventLog); n > 0 && s.EventLog[n-1].Kind == EventCardPlayed {
			s.EventLog = s.EventLog[:n-1]
		}
		return StepResult{Err: err}
	}
	return StepResult{OK: true}
}

// newCreature instantiates a creature from its definition. Haste creatures
// enter without summoning sickness.
func (s *State) newCreature(card *catalog.CardDefinition) *CreatureInstance {
	inst := &CreatureInstance{
		CardID:        card.ID,
		Attack:        card.CreatureStats.Attack,
		Health:        card.CreatureStats.Health,
		Keywords:      append([]catalog.Keyword(nil), card.Keywords...),
		SummoningSick: true,
	}
	if inst.Has(catalog.KeywordHaste) {
		inst.SummoningSick = false
	}
	return inst
}

func (s *State) attack(a AttackAction) StepResult {
	if a.Player != s.CurrentPlayer {
		return StepResult{Err: errors.New("not your turn")}
	}
	ps := s.Players[a.Player]
	if a.AttackerSlot < 0 || a.AttackerSlot >= len(ps.Board) {
		return StepResult{Err: errors.New("invalid attacker slot")}
	}
	attacker := ps.Board[a.AttackerSlot]
	if attacker == nil {
		return StepResult{Err: errors.New("no creature in that slot")}
	}
	if attacker.SummoningSick {
		return StepResult{Err: errors.New("summoning sickness")}
	}
	if attacker.HasAttacked {
		return StepResult{Err: errors.New("already attacked")}
	}

	legal := false
	for _, t := range s.ValidAttackTargets(a.Player) {
		if t == a.Target {
			legal = true
			break
		}
	}
	if !legal {
		return StepResult{Err: errors.New("invalid target (Guard rule?)")}
	}

	enemy := s.Opponent(a.Player)

	if a.Target.Kind == TargetPlayer {
		dealt := s.damagePlayer(enemy, attacker.Attack)
		if attacker.Has(catalog.KeywordLifesteal) && dealt > 0 {
			s.healPlayer(a.Player, dealt)
		}
		attacker.HasAttacked = true
		s.emit(Event{
			Kind:         EventAttackPlayer,
			Player:       a.Player,
			AttackerSlot: a.AttackerSlot,
			Amount:       attacker.Attack,
			Dealt:        dealt,
		})
		s.checkWinner()
		return StepResult{OK: true}
	}

	defSlot := a.Target.Slot
	defender := s.Players[enemy].Board[defSlot]
	if defender == nil {
		return StepResult{Err: errors.New("target creature missing")}
	}

	// Both attack values are read before either side takes damage, so the
	// exchange is simultaneous: neither creature dodges by dying first.
	toDefender := attacker.Attack
	toAttacker := defender.Attack

	dealt := s.damageCreature(enemy, defSlot, toDefender)
	s.damageCreature(a.Player, a.AttackerSlot, toAttacker)

	if attacker.Has(catalog.KeywordLifesteal) {
		s.healPlayer(a.Player, dealt)
	}

	attacker.HasAttacked = true
	s.emit(Event{
		Kind:         EventAttackCreature,
		Player:       a.Player,
		AttackerSlot: a.AttackerSlot,
		DefenderSlot: defSlot,
	})
	s.removeDead()
	s.checkWinner()
	return StepResult{OK: true}
}

func (s *State) endTurn(a EndTurnAction) StepResult {
	if a.Player != s.CurrentPlayer {
		return StepResult{Err: errors.New("not your turn")}
	}
	s.emit(Event{Kind: EventTurnEnded, Player: a.Player})
	s.CurrentPlayer = s.Opponent(s.CurrentPlayer)
	s.startTurn(s.CurrentPlayer)
	return StepResult{OK: true}
}
