package match

// TargetKind distinguishes the two things an action can point at.
type TargetKind string

const (
	TargetPlayer   TargetKind = "PLAYER"
	TargetCreature TargetKind = "CREATURE"
)

// TargetRef identifies a player or one of their board slots. It is a
// comparable value so membership in a legal-target set is a plain ==.
type TargetRef struct {
	Kind   TargetKind
	Player int
	Slot   int // meaningful only when Kind is TargetCreature
}

// PlayerTarget builds a reference to a player.
func PlayerTarget(player int) TargetRef {
	return TargetRef{Kind: TargetPlayer, Player: player}
}

// CreatureTarget builds a reference to the creature in a player's board slot.
func CreatureTarget(player, slot int) TargetRef {
	return TargetRef{Kind: TargetCreature, Player: player, Slot: slot}
}

// Action is the closed set of inputs the state machine accepts. Exactly one
// concrete type exists per variant.
type Action interface {
	actor() int
}

// PlayCardAction plays the card at HandIndex. Target is nil when the card
// needs none.
type PlayCardAction struct {
	Player    int
	HandIndex int
	Target    *TargetRef
}

// AttackAction attacks Target with the creature in AttackerSlot.
type AttackAction struct {
	Player       int
	AttackerSlot int
	Target       TargetRef
}

// EndTurnAction passes the turn to the opponent.
type EndTurnAction struct {
	Player int
}

func (a PlayCardAction) actor() int { return a.Player }
func (a AttackAction) actor() int   { return a.Player }
func (a EndTurnAction) actor() int  { return a.Player }
