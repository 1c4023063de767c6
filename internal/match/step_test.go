package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepRejectsOutOfTurnAction(t *testing.T) {
	s := newTestMatch(t, 1, "footman", "footman")

	res := s.Step(PlayCardAction{Player: 1, HandIndex: 0})
	assert.False(t, res.OK)
	assert.EqualError(t, res.Err, "not your turn")
	assert.Empty(t, res.Events)

	// Rejected actions still land in the action log.
	assert.Len(t, s.ActionLog, 1)
}

func TestStepRejectsBadHandIndex(t *testing.T) {
	s := newTestMatch(t, 1, "footman", "footman")

	for _, idx := range []int{-1, len(s.Players[0].Hand)} {
		res := s.Step(PlayCardAction{Player: 0, HandIndex: idx})
		assert.False(t, res.OK)
		assert.EqualError(t, res.Err, "invalid hand index")
	}
}

func TestPlayCreature(t *testing.T) {
	s := newTestMatch(t, 1, "footman", "footman")
	p0 := s.Players[0]

	res := s.Step(PlayCardAction{Player: 0, HandIndex: 0})
	require.True(t, res.OK, "err: %v", res.Err)

	assert.Equal(t, 0, p0.Energy)
	assert.Len(t, p0.Hand, 4)

	inst := p0.Board[0]
	require.NotNil(t, inst)
	assert.Equal(t, "footman", inst.CardID)
	assert.Equal(t, 1, inst.Attack)
	assert.Equal(t, 2, inst.Health)
	assert.True(t, inst.SummoningSick)
	assert.False(t, inst.HasAttacked)

	// Events cover exactly this step: the play and the summon.
	require.Len(t, res.Events, 2)
	assert.Equal(t, EventCardPlayed, res.Events[0].Kind)
	assert.Equal(t, EventCreatureSummoned, res.Events[1].Kind)
	assert.Equal(t, 0, res.Events[1].Slot)
}

func TestPlayCreatureRejectedWhenUnaffordable(t *testing.T) {
	s := newTestMatch(t, 1, "ogre", "footman")

	res := s.Step(PlayCardAction{Player: 0, HandIndex: 0})
	assert.False(t, res.OK)
	assert.EqualError(t, res.Err, "not enough energy")
	assert.Equal(t, 1, s.Players[0].Energy)
	assert.Len(t, s.Players[0].Hand, 5)
}

func TestPlayCreatureRejectedWhenBoardFull(t *testing.T) {
	s := newTestMatch(t, 1, "footman", "footman")
	for slot := 0; slot < 5; slot++ {
		place(t, s, 0, slot, "footman", true)
	}

	res := s.Step(PlayCardAction{Player: 0, HandIndex: 0})
	assert.False(t, res.OK)
	assert.EqualError(t, res.Err, "board is full")
	assert.Equal(t, 1, s.Players[0].Energy)
}

func TestHasteCreatureEntersReady(t *testing.T) {
	s := newTestMatch(t, 1, "raider", "footman")

	// raider costs 2; skip a round to ramp up.
	require.True(t, s.Step(EndTurnAction{Player: 0}).OK)
	require.True(t, s.Step(EndTurnAction{Player: 1}).OK)

	res := s.Step(PlayCardAction{Player: 0, HandIndex: 0})
	require.True(t, res.OK, "err: %v", res.Err)

	inst := s.Players[0].Board[0]
	require.NotNil(t, inst)
	assert.False(t, inst.SummoningSick)

	// It can attack the same turn.
	atk := s.Step(AttackAction{Player: 0, AttackerSlot: 0, Target: PlayerTarget(1)})
	require.True(t, atk.OK, "err: %v", atk.Err)
	assert.Equal(t, 18, s.Players[1].Health)
}

func TestSpellRollbackOnBadTarget(t *testing.T) {
	s := newTestMatch(t, 1, "firebolt", "footman")
	p0 := s.Players[0]
	handBefore := append([]string(nil), p0.Hand...)
	eventsBefore := len(s.EventLog)

	// firebolt needs a target; none supplied.
	res := s.Step(PlayCardAction{Player: 0, HandIndex: 2})
	assert.False(t, res.OK)
	assert.EqualError(t, res.Err, "select a target")

	// The play was fully rolled back: energy, hand order, discard, events.
	assert.Equal(t, 1, p0.Energy)
	assert.Equal(t, handBefore, p0.Hand)
	assert.Empty(t, p0.Discard)
	assert.Len(t, s.EventLog, eventsBefore)
}

func TestSpellDamageEnemyFace(t *testing.T) {
	s := newTestMatch(t, 1, "firebolt", "footman")

	target := PlayerTarget(1)
	res := s.Step(PlayCardAction{Player: 0, HandIndex: 0, Target: &target})
	require.True(t, res.OK, "err: %v", res.Err)

	assert.Equal(t, 17, s.Players[1].Health)
	assert.Equal(t, []string{"firebolt"}, s.Players[0].Discard)
	assert.Equal(t, 0, s.Players[0].Energy)

	kinds := eventKinds(res.Events)
	assert.Equal(t, []EventKind{EventCardPlayed, EventDamagePlayer}, kinds)
}

func TestStepAfterMatchEnded(t *testing.T) {
	s := newTestMatch(t, 1, "footman", "footman")
	s.Winner = 0

	res := s.Step(EndTurnAction{Player: 0})
	assert.False(t, res.OK)
	assert.ErrorIs(t, res.Err, ErrMatchEnded)
	assert.Len(t, s.ActionLog, 1)
}

func eventKinds(events []Event) []EventKind {
	kinds := make([]EventKind, len(events))
	for i, ev := range events {
		kinds[i] = ev.Kind
	}
	return kinds
}
