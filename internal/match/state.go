package match

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cinetcg/cinetcg-go/internal/catalog"
)

// NoWinner is the Winner value of a match still in progress.
const NoWinner = -1

// Config holds the tunable match rules.
type Config struct {
	StartingHealth int
	StartingHand   int
	DeckSize       int
	BoardSlots     int
	MaxEnergy      int
}

// DefaultConfig returns the standard ruleset.
func DefaultConfig() Config {
	return Config{
		StartingHealth: 20,
		StartingHand:   5,
		DeckSize:       30,
		BoardSlots:     5,
		MaxEnergy:      10,
	}
}

// CreatureInstance is a creature on the board. Attack and Health diverge
// from the printed stats through buffs and damage; Health may go
// non-positive until the next dead sweep removes the creature. Keywords are
// snapshotted at creation and never re-read from the catalog.
type CreatureInstance struct {
	CardID        string
	Attack        int
	Health        int
	Keywords      []catalog.Keyword
	SummoningSick bool
	HasAttacked   bool
}

// Has reports whether the creature carries the given keyword.
func (c *CreatureInstance) Has(kw catalog.Keyword) bool {
	for _, k := range c.Keywords {
		if k == kw {
			return true
		}
	}
	return false
}

// PlayerState is one side of the match. Deck draws pop from the end. Board
// is a fixed-size slice indexed by slot; nil means empty.
type PlayerState struct {
	Health     int
	EnergyMax  int
	Energy     int
	Deck       []string
	Hand       []string
	Board      []*CreatureInstance
	Discard    []string
	TurnsTaken int
}

// StepResult reports the outcome of a single dispatched action. Events
// holds exactly the event records appended by this step, in causal order.
type StepResult struct {
	OK     bool
	Events []Event
	Err    error
}

// State is the authoritative state of one match. It has a single logical
// owner; Step is the only mutation entry point and must not be called
// concurrently. The RNG stream seeded at construction is consumed only by
// the initial shuffles and by Chance, so a (seed, action sequence) pair
// fully determines the final state.
type State struct {
	ID            string
	Catalog       *catalog.Catalog
	Config        Config
	Seed          int64
	Players       [2]*PlayerState
	CurrentPlayer int
	Winner        int
	ActionLog     []Action
	EventLog      []Event

	rng    *rand.Rand
	logger *zap.Logger
}

// NewMatch constructs a match: shuffles both decks with the seeded stream
// (deck 0 first), alternates starting-hand draws (player 0, player 1), and
// starts player 0's first turn. The first turn never draws.
func NewMatch(cat *catalog.Catalog, deck0, deck1 []string, seed int64, cfg Config) (*State, error) {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	for i, deck := range [][]string{deck0, deck1} {
		if len(deck) != cfg.DeckSize {
			return nil, fmt.Errorf("deck %d must contain exactly %d cards, got %d", i, cfg.DeckSize, len(deck))
		}
		for _, id := range deck {
			if _, ok := cat.Get(id); !ok {
				return nil, fmt.Errorf("deck %d references unknown card %q", i, id)
			}
		}
	}

	rng := rand.New(rand.NewSource(seed))
	d0 := append([]string(nil), deck0...)
	d1 := append([]string(nil), deck1...)
	rng.Shuffle(len(d0), func(i, j int) { d0[i], d0[j] = d0[j], d0[i] })
	rng.Shuffle(len(d1), func(i, j int) { d1[i], d1[j] = d1[j], d1[i] })

	s := &State{
		ID:      uuid.NewString(),
		Catalog: cat,
		Config:  cfg,
		Seed:    seed,
		Winner:  NoWinner,
		rng:     rng,
		logger:  zap.NewNop(),
	}
	for i, deck := range [][]string{d0, d1} {
		s.Players[i] = &PlayerState{
			Health: cfg.StartingHealth,
			Deck:   deck,
			Board:  make([]*CreatureInstance, cfg.BoardSlots),
		}
	}

	for i := 0; i < cfg.StartingHand; i++ {
		s.drawOne(0)
		s.drawOne(1)
	}

	s.startTurn(0)
	s.CurrentPlayer = 0
	return s, nil
}

// SetLogger attaches a logger for debug output. The engine never logs
// anything a consumer must parse; the event log is the contract.
func (s *State) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Ended reports whether the match has a winner.
func (s *State) Ended() bool {
	return s.Winner != NoWinner
}

// Opponent returns the index of the other player.
func (s *State) Opponent(player int) int {
	return 1 - player
}

// Chance draws one value from the match RNG stream and reports whether it
// fell below p. This is the only randomness surface exposed to clients;
// routing AI rolls through it keeps whole-match replay deterministic.
func (s *State) Chance(p float64) bool {
	return s.rng.Float64() < p
}

func (s *State) drawOne(player int) {
	ps := s.Players[player]
	if len(ps.Deck) == 0 {
		return
	}
	cardID := ps.Deck[len(ps.Deck)-1]
	ps.Deck = ps.Deck[:len(ps.Deck)-1]
	ps.Hand = append(ps.Hand, cardID)
	s.emit(Event{Kind: EventCardDrawn, Player: player, CardID: cardID})
}

// startTurn runs the start-of-turn sequence: energy ramp, creature refresh,
// draw (skipped on a player's very first turn; a silent no-op on an empty
// deck, fatigue is not modeled), then the turn-started event.
func (s *State) startTurn(player int) {
	ps := s.Players[player]

	ps.EnergyMax = min(s.Config.MaxEnergy, ps.EnergyMax+1)
	ps.Energy = ps.EnergyMax

	for _, c := range ps.Board {
		if c == nil {
			continue
		}
		c.HasAttacked = false
		c.SummoningSick = false
	}

	if ps.TurnsTaken > 0 {
		s.drawOne(player)
	}
	ps.TurnsTaken++

	s.emit(Event{Kind: EventTurnStarted, Player: player, Energy: ps.EnergyMax})
}

func findEmptySlot(board []*CreatureInstance) int {
	for i, c := range board {
		if c == nil {
			return i
		}
	}
	return -1
}

// removeDead sweeps every board slot and discards creatures at or below
// zero health.
func (s *State) removeDead() {
	for pi, ps := range s.Players {
		for slot, c := range ps.Board {
			if c == nil || c.Health > 0 {
				continue
			}
			ps.Discard = append(ps.Discard, c.CardID)
			ps.Board[slot] = nil
			s.emit(Event{Kind: EventCreatureDied, Player: pi, Slot: slot, CardID: c.CardID})
		}
	}
}

// healPlayer restores health, capped at the configured starting health.
func (s *State) healPlayer(player, amount int) {
	if amount <= 0 {
		return
	}
	ps := s.Players[player]
	before := ps.Health
	ps.Health = min(s.Config.StartingHealth, ps.Health+amount)
	if healed := ps.Health - before; healed > 0 {
		s.emit(Event{Kind: EventHealPlayer, Player: player, Amount: healed})
	}
}

// damagePlayer applies unclamped damage and returns the damage actually
// dealt, clamped to the health the player had remaining.
func (s *State) damagePlayer(player, amount int) int {
	if amount <= 0 {
		return 0
	}
	ps := s.Players[player]
	dealt := min(ps.Health, amount)
	ps.Health -= amount
	s.emit(Event{Kind: EventDamagePlayer, Player: player, Amount: amount, Dealt: dealt})
	return dealt
}

// damageCreature applies unclamped damage to the creature in the given slot
// and returns the damage dealt, clamped to its remaining health. The
// creature stays on the board until the next dead sweep.
func (s *State) damageCreature(player, slot, amount int) int {
	c := s.Players[player].Board[slot]
	if c == nil {
		return 0
	}
	dealt := min(c.Health, amount)
	c.Health -= amount
	s.emit(Event{Kind: EventDamageCreature, Player: player, Slot: slot, Amount: amount})
	return dealt
}

// checkWinner evaluates the win condition. If both players are at or below
// zero simultaneously, the player who is not currently acting wins the tie.
// A winner, once set, is permanent.
func (s *State) checkWinner() {
	if s.Winner != NoWinner {
		return
	}
	p0 := s.Players[0].Health
	p1 := s.Players[1].Health
	switch {
	case p0 <= 0 && p1 <= 0:
		s.Winner = s.Opponent(s.CurrentPlayer)
		s.emit(Event{Kind: EventGameEnded, Winner: s.Winner, Reason: "double_ko"})
	case p0 <= 0:
		s.Winner = 1
		s.emit(Event{Kind: EventGameEnded, Winner: 1, Reason: "health_0"})
	case p1 <= 0:
		s.Winner = 0
		s.emit(Event{Kind: EventGameEnded, Winner: 0, Reason: "health_0"})
	default:
		return
	}
	s.logger.Debug("match ended",
		zap.String("match_id", s.ID),
		zap.Int("winner", s.Winner),
	)
}
