package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// The on-disk card file is a JSON document of the form
// {"cards": [...]}. Effects are tagged objects discriminated by "type".

type rawCardFile struct {
	Cards []rawCard `json:"cards"`
}

type rawCard struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Type          string            `json:"type"`
	Rarity        string            `json:"rarity"`
	Cost          int               `json:"cost"`
	ArtPath       string            `json:"art_path"`
	RulesText     string            `json:"rules_text"`
	CutsceneID    string            `json:"cutscene_id,omitempty"`
	Keywords      []string          `json:"keywords,omitempty"`
	Effects       []json.RawMessage `json:"effects,omitempty"`
	CreatureStats *rawCreatureStats `json:"creature_stats,omitempty"`
}

type rawCreatureStats struct {
	Attack int `json:"attack"`
	Health int `json:"health"`
}

type rawEffect struct {
	Type        string `json:"type"`
	Amount      int    `json:"amount"`
	Count       int    `json:"count"`
	Target      string `json:"target"`
	AttackDelta int    `json:"attack_delta"`
	HealthDelta int    `json:"health_delta"`
	TokenCardID string `json:"token_card_id"`
}

// Load reads and parses a card file from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card file: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cat, nil
}

// Parse builds a validated catalog from raw card file contents.
func Parse(data []byte) (*Catalog, error) {
	var file rawCardFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid card file: %w", err)
	}
	if len(file.Cards) == 0 {
		return nil, fmt.Errorf("card file contains no cards")
	}
	cards := make([]*CardDefinition, 0, len(file.Cards))
	for _, raw := range file.Cards {
		card, err := parseCard(raw)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return New(cards)
}

func parseCard(raw rawCard) (*CardDefinition, error) {
	card := &CardDefinition{
		ID:         raw.ID,
		Name:       raw.Name,
		Type:       CardType(raw.Type),
		Rarity:     Rarity(raw.Rarity),
		Cost:       raw.Cost,
		ArtPath:    raw.ArtPath,
		RulesText:  raw.RulesText,
		CutsceneID: raw.CutsceneID,
	}
	switch card.Rarity {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
	default:
		return nil, fmt.Errorf("card %q has unknown rarity %q", raw.ID, raw.Rarity)
	}
	for _, kw := range raw.Keywords {
		card.Keywords = append(card.Keywords, Keyword(kw))
	}
	for i, rawMsg := range raw.Effects {
		eff, err := parseEffect(rawMsg)
		if err != nil {
			return nil, fmt.Errorf("card %q effect %d: %w", raw.ID, i, err)
		}
		card.Effects = append(card.Effects, eff)
	}
	if raw.CreatureStats != nil {
		card.CreatureStats = &CreatureStats{
			Attack: raw.CreatureStats.Attack,
			Health: raw.CreatureStats.Health,
		}
	}
	return card, nil
}

func parseEffect(data json.RawMessage) (Effect, error) {
	var raw rawEffect
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid effect: %w", err)
	}
	switch raw.Type {
	case "damage":
		if raw.Amount < 0 {
			return nil, fmt.Errorf("damage amount must be non-negative, got %d", raw.Amount)
		}
		switch DamageTarget(raw.Target) {
		case DamageEnemyCreature, DamageEnemyPlayer, DamageAny:
		default:
			return nil, fmt.Errorf("unknown damage target %q", raw.Target)
		}
		return DamageEffect{Amount: raw.Amount, Target: DamageTarget(raw.Target)}, nil
	case "heal":
		if raw.Amount < 0 {
			return nil, fmt.Errorf("heal amount must be non-negative, got %d", raw.Amount)
		}
		switch HealTarget(raw.Target) {
		case HealSelfPlayer, HealSelfCreature:
		default:
			return nil, fmt.Errorf("unknown heal target %q", raw.Target)
		}
		return HealEffect{Amount: raw.Amount, Target: HealTarget(raw.Target)}, nil
	case "draw":
		if raw.Count < 0 {
			return nil, fmt.Errorf("draw count must be non-negative, got %d", raw.Count)
		}
		return DrawEffect{Count: raw.Count}, nil
	case "buff":
		switch BuffTarget(raw.Target) {
		case BuffSelfCreature, BuffAnyCreature:
		default:
			return nil, fmt.Errorf("unknown buff target %q", raw.Target)
		}
		return BuffEffect{
			AttackDelta: raw.AttackDelta,
			HealthDelta: raw.HealthDelta,
			Target:      BuffTarget(raw.Target),
		}, nil
	case "summon":
		if raw.TokenCardID == "" {
			return nil, fmt.Errorf("summon effect is missing token_card_id")
		}
		if raw.Count < 0 {
			return nil, fmt.Errorf("summon count must be non-negative, got %d", raw.Count)
		}
		return SummonEffect{TokenCardID: raw.TokenCardID, Count: raw.Count}, nil
	default:
		return nil, fmt.Errorf("unknown effect type %q", raw.Type)
	}
}
