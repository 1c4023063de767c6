package match

// EventKind indicates the category of a match event.
type EventKind string

const (
	EventTurnStarted      EventKind = "TURN_STARTED"
	EventTurnEnded        EventKind = "TURN_ENDED"
	EventCardDrawn        EventKind = "CARD_DRAWN"
	EventCardPlayed       EventKind = "CARD_PLAYED"
	EventCreatureSummoned EventKind = "CREATURE_SUMMONED"
	EventCreatureDied     EventKind = "CREATURE_DIED"
	EventDamageCreature   EventKind = "DAMAGE_CREATURE"
	EventDamagePlayer     EventKind = "DAMAGE_PLAYER"
	EventHealCreature     EventKind = "HEAL_CREATURE"
	EventHealPlayer       EventKind = "HEAL_PLAYER"
	EventBuffApplied      EventKind = "BUFF_APPLIED"
	EventAttackPlayer     EventKind = "ATTACK_PLAYER"
	EventAttackCreature   EventKind = "ATTACK_CREATURE"
	EventGameEnded        EventKind = "GAME_ENDED"
)

// Event is a structured record of one state change. Consumers key off Kind;
// the remaining fields are populated per kind.
type Event struct {
	Kind   EventKind
	Player int    // player the event concerns
	Slot   int    // board slot, for creature events
	CardID string // card involved, where one is

	// Amount is the nominal value of a damage or heal; Dealt is the value
	// clamped to the target's remaining health, reported for player damage.
	Amount int
	Dealt  int

	AttackDelta int // buff events
	HealthDelta int // buff events

	AttackerSlot int // attack events
	DefenderSlot int // creature-vs-creature attacks

	Energy int    // turn-started: the new energy cap
	Winner int    // game-ended
	Reason string // game-ended: "health_0" or "double_ko"
}

func (s *State) emit(ev Event) {
	s.EventLog = append(s.EventLog, ev)
}
