package match

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Snapshot is a canonical, order-preserving copy of the full match state:
// everything that the determinism contract covers, and nothing that is not
// reproducible from (seed, action sequence). Two independently constructed
// matches that replayed the same actions must produce equal snapshots.
// The match ID is deliberately excluded — it exists for logging and
// archival only.
type Snapshot struct {
	Seed          int64
	CurrentPlayer int
	Winner        int
	Players       [2]PlayerSnapshot
	ActionLog     []ActionRecord
}

// PlayerSnapshot is one player's side of a snapshot. Deck, hand, and board
// preserve order because draw order and slot indexes are part of the
// engine's behavior.
type PlayerSnapshot struct {
	Health     int
	EnergyMax  int
	Energy     int
	Deck       []string
	Hand       []string
	Board      []*CreatureSnapshot
	Discard    []string
	TurnsTaken int
}

// CreatureSnapshot copies one board creature. Keywords are sorted so the
// snapshot is insensitive to keyword declaration order.
type CreatureSnapshot struct {
	CardID        string
	Attack        int
	Health        int
	Keywords      []string
	SummoningSick bool
	HasAttacked   bool
}

// ActionRecord is the flattened form of an Action for snapshots.
type ActionRecord struct {
	Kind         string
	Player       int
	HandIndex    int
	AttackerSlot int
	Target       *TargetRef
}

// TakeSnapshot deep-copies the match state into a Snapshot.
func TakeSnapshot(s *State) Snapshot {
	snap := Snapshot{
		Seed:          s.Seed,
		CurrentPlayer: s.CurrentPlayer,
		Winner:        s.Winner,
	}
	for i, ps := range s.Players {
		snap.Players[i] = snapshotPlayer(ps)
	}
	for _, a := range s.ActionLog {
		snap.ActionLog = append(snap.ActionLog, recordAction(a))
	}
	return snap
}

func snapshotPlayer(ps *PlayerState) PlayerSnapshot {
	out := PlayerSnapshot{
		Health:     ps.Health,
		EnergyMax:  ps.EnergyMax,
		Energy:     ps.Energy,
		Deck:       append([]string(nil), ps.Deck...),
		Hand:       append([]string(nil), ps.Hand...),
		Discard:    append([]string(nil), ps.Discard...),
		TurnsTaken: ps.TurnsTaken,
	}
	out.Board = make([]*CreatureSnapshot, len(ps.Board))
	for i, c := range ps.Board {
		if c == nil {
			continue
		}
		keywords := make([]string, len(c.Keywords))
		for j, kw := range c.Keywords {
			keywords[j] = string(kw)
		}
		sort.Strings(keywords)
		out.Board[i] = &CreatureSnapshot{
			CardID:        c.CardID,
			Attack:        c.Attack,
			Health:        c.Health,
			Keywords:      keywords,
			SummoningSick: c.SummoningSick,
			HasAttacked:   c.HasAttacked,
		}
	}
	return out
}

func recordAction(a Action) ActionRecord {
	switch act := a.(type) {
	case PlayCardAction:
		return ActionRecord{Kind: "play", Player: act.Player, HandIndex: act.HandIndex, Target: act.Target}
	case AttackAction:
		t := act.Target
		return ActionRecord{Kind: "attack", Player: act.Player, AttackerSlot: act.AttackerSlot, Target: &t}
	case EndTurnAction:
		return ActionRecord{Kind: "end_turn", Player: act.Player}
	default:
		return ActionRecord{Kind: "unknown"}
	}
}

// Canonical returns a deterministic string representation of the snapshot.
// Equal snapshots produce identical strings, so the string (and its hash)
// can stand in for deep structural comparison.
func (snap Snapshot) Canonical() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "MATCH:%d|%d|%d\n", snap.Seed, snap.CurrentPlayer, snap.Winner)

	for i, p := range snap.Players {
		fmt.Fprintf(&buf, "PLAYER:%d|%d|%d|%d|%d\n", i, p.Health, p.EnergyMax, p.Energy, p.TurnsTaken)
		fmt.Fprintf(&buf, "  DECK:%s\n", strings.Join(p.Deck, ","))
		fmt.Fprintf(&buf, "  HAND:%s\n", strings.Join(p.Hand, ","))
		fmt.Fprintf(&buf, "  DISCARD:%s\n", strings.Join(p.Discard, ","))
		for slot, c := range p.Board {
			if c == nil {
				fmt.Fprintf(&buf, "  SLOT:%d|-\n", slot)
				continue
			}
			fmt.Fprintf(&buf, "  SLOT:%d|%s|%d|%d|%s|%t|%t\n",
				slot, c.CardID, c.Attack, c.Health,
				strings.Join(c.Keywords, "+"), c.SummoningSick, c.HasAttacked)
		}
	}

	for i, a := range snap.ActionLog {
		fmt.Fprintf(&buf, "ACTION:%d|%s|%d|%d|%d|%s\n",
			i, a.Kind, a.Player, a.HandIndex, a.AttackerSlot, targetKey(a.Target))
	}

	return buf.String()
}

func targetKey(t *TargetRef) string {
	if t == nil {
		return "-"
	}
	if t.Kind == TargetPlayer {
		return fmt.Sprintf("p%d", t.Player)
	}
	return fmt.Sprintf("c%d.%d", t.Player, t.Slot)
}

// Checksum returns the SHA-256 of the canonical representation.
func (snap Snapshot) Checksum() string {
	sum := sha256.Sum256([]byte(snap.Canonical()))
	return hex.EncodeToString(sum[:])
}

// Equal reports whether two snapshots are structurally identical.
func (snap Snapshot) Equal(other Snapshot) bool {
	return snap.Canonical() == other.Canonical()
}
