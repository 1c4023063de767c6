package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatchRejectsWrongDeckSize(t *testing.T) {
	cat := testCatalog(t)
	_, err := NewMatch(cat, deckOf("footman", 29), deckOf("footman", 30), 1, DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly 30 cards")

	_, err = NewMatch(cat, deckOf("footman", 30), deckOf("footman", 31), 1, DefaultConfig())
	require.Error(t, err)
}

func TestNewMatchRejectsUnknownCard(t *testing.T) {
	cat := testCatalog(t)
	deck := deckOf("footman", 30)
	deck[7] = "no_such_card"
	_, err := NewMatch(cat, deck, deckOf("footman", 30), 1, DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_card")
}

func TestNewMatchInitialState(t *testing.T) {
	s := newTestMatch(t, 42, "footman", "knight")

	assert.Equal(t, 0, s.CurrentPlayer)
	assert.Equal(t, NoWinner, s.Winner)

	p0, p1 := s.Players[0], s.Players[1]

	// Both starting hands dealt; player 0's first turn grants no extra draw.
	assert.Len(t, p0.Hand, 5)
	assert.Len(t, p0.Deck, 25)
	assert.Len(t, p1.Hand, 5)
	assert.Len(t, p1.Deck, 25)

	// Player 0's turn has started: energy ramped to 1, turn counted.
	assert.Equal(t, 1, p0.EnergyMax)
	assert.Equal(t, 1, p0.Energy)
	assert.Equal(t, 1, p0.TurnsTaken)

	// Player 1 is still waiting.
	assert.Equal(t, 0, p1.EnergyMax)
	assert.Equal(t, 0, p1.TurnsTaken)

	assert.Equal(t, 20, p0.Health)
	assert.Len(t, p0.Board, 5)
	for _, slot := range p0.Board {
		assert.Nil(t, slot)
	}
}

func TestNewMatchShuffleIsSeedDeterministic(t *testing.T) {
	cat := testCatalog(t)
	deck := append(deckOf("footman", 10), append(deckOf("knight", 10), deckOf("ogre", 10)...)...)

	a, err := NewMatch(cat, deck, deck, 7, DefaultConfig())
	require.NoError(t, err)
	b, err := NewMatch(cat, deck, deck, 7, DefaultConfig())
	require.NoError(t, err)
	assert.True(t, TakeSnapshot(a).Equal(TakeSnapshot(b)))

	c, err := NewMatch(cat, deck, deck, 8, DefaultConfig())
	require.NoError(t, err)
	assert.False(t, TakeSnapshot(a).Equal(TakeSnapshot(c)))
}

func TestZeroConfigUsesDefaults(t *testing.T) {
	cat := testCatalog(t)
	s, err := NewMatch(cat, deckOf("footman", 30), deckOf("footman", 30), 1, Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), s.Config)
}

// Every reachable state must conserve cards: deck + hand + discard + board
// never exceeds the 30 cards a player brought.
func TestCardCountInvariant(t *testing.T) {
	s := newTestMatch(t, 3, "footman", "zap_face")

	count := func(player int) int {
		ps := s.Players[player]
		n := len(ps.Deck) + len(ps.Hand) + len(ps.Discard)
		for _, c := range ps.Board {
			if c != nil {
				n++
			}
		}
		return n
	}

	check := func() {
		for p := 0; p < 2; p++ {
			require.LessOrEqual(t, count(p), 30, "player %d card count", p)
		}
	}

	actions := []Action{
		PlayCardAction{Player: 0, HandIndex: 0},
		EndTurnAction{Player: 0},
		PlayCardAction{Player: 1, HandIndex: 0}, // zap_face, untargeted enemy-player damage
		EndTurnAction{Player: 1},
		PlayCardAction{Player: 0, HandIndex: 0},
		AttackAction{Player: 0, AttackerSlot: 0, Target: PlayerTarget(1)},
		EndTurnAction{Player: 0},
		EndTurnAction{Player: 1},
	}
	check()
	for _, a := range actions {
		s.Step(a)
		check()
	}
}
