package catalog

// CardType classifies a card definition.
type CardType string

const (
	CardTypeCreature CardType = "creature"
	CardTypeSpell    CardType = "spell"
)

// Rarity is the collectible rarity tier of a card.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Keyword is a static ability carried by a creature card.
type Keyword string

const (
	// KeywordGuard forces attackers to target this creature before
	// the controlling player or any non-Guard creature.
	KeywordGuard Keyword = "Guard"
	// KeywordHaste lets a creature attack the turn it enters play.
	KeywordHaste Keyword = "Haste"
	// KeywordLifesteal heals the attacker's controller by the damage dealt.
	KeywordLifesteal Keyword = "Lifesteal"
	// KeywordToken marks a non-collectible creature produced only by
	// summon effects.
	KeywordToken Keyword = "Token"
)

// DamageTarget restricts what a damage effect may be pointed at.
type DamageTarget string

const (
	DamageEnemyCreature DamageTarget = "enemy_creature"
	DamageEnemyPlayer   DamageTarget = "enemy_player"
	DamageAny           DamageTarget = "any"
)

// HealTarget restricts what a heal effect may be pointed at.
type HealTarget string

const (
	HealSelfPlayer   HealTarget = "self_player"
	HealSelfCreature HealTarget = "self_creature"
)

// BuffTarget restricts what a buff effect may be pointed at.
type BuffTarget string

const (
	BuffSelfCreature BuffTarget = "self_creature"
	BuffAnyCreature  BuffTarget = "any_creature"
)

// Effect is the closed union of card effects. Exactly one concrete type
// exists per effect kind; resolution switches exhaustively over them, so
// adding a kind is a single-site, compile-checked change.
type Effect interface {
	isEffect()
}

// DamageEffect deals Amount damage to the chosen target.
type DamageEffect struct {
	Amount int
	Target DamageTarget
}

// HealEffect restores Amount health to the chosen target.
type HealEffect struct {
	Amount int
	Target HealTarget
}

// DrawEffect draws Count cards for the casting player.
type DrawEffect struct {
	Count int
}

// BuffEffect adjusts a creature's current attack and health by signed deltas.
type BuffEffect struct {
	AttackDelta int
	HealthDelta int
	Target      BuffTarget
}

// SummonEffect places up to Count copies of a token creature onto the
// casting player's board.
type SummonEffect struct {
	TokenCardID string
	Count       int
}

func (DamageEffect) isEffect() {}
func (HealEffect) isEffect()   {}
func (DrawEffect) isEffect()   {}
func (BuffEffect) isEffect()   {}
func (SummonEffect) isEffect() {}

// CreatureStats holds the printed attack and health of a creature card.
type CreatureStats struct {
	Attack int
	Health int
}

// CardDefinition is an immutable card template. ArtPath and CutsceneID are
// opaque presentation references the engine never interprets.
type CardDefinition struct {
	ID            string
	Name          string
	Type          CardType
	Rarity        Rarity
	Cost          int
	ArtPath       string
	RulesText     string
	CutsceneID    string
	Keywords      []Keyword
	Effects       []Effect
	CreatureStats *CreatureStats
}

// HasKeyword reports whether the card carries the given keyword.
func (c *CardDefinition) HasKeyword(kw Keyword) bool {
	for _, k := range c.Keywords {
		if k == kw {
			return true
		}
	}
	return false
}

// NeedsTarget reports whether playing this card requires the caller to
// choose a target up front. Creatures never need one; spells need one if
// any of their effects is targeted.
func (c *CardDefinition) NeedsTarget() bool {
	if c.Type == CardTypeCreature {
		return false
	}
	for _, eff := range c.Effects {
		switch e := eff.(type) {
		case DamageEffect:
			if e.Target == DamageEnemyCreature || e.Target == DamageEnemyPlayer || e.Target == DamageAny {
				return true
			}
		case HealEffect:
			if e.Target == HealSelfCreature {
				return true
			}
		case BuffEffect:
			return true
		}
	}
	return false
}
