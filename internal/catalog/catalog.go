package catalog

import (
	"fmt"
	"sort"
)

// Catalog is an immutable id-to-definition mapping. It is built once by the
// content loader and shared by reference; concurrent matches may read it
// safely because nothing mutates it after construction.
type Catalog struct {
	cards map[string]*CardDefinition
}

// New builds a catalog from card definitions and verifies internal
// consistency: unique ids, creature stats present exactly when the card is
// a creature, and summon effects referencing token creatures that exist.
func New(cards []*CardDefinition) (*Catalog, error) {
	byID := make(map[string]*CardDefinition, len(cards))
	for _, card := range cards {
		if card.ID == "" {
			return nil, fmt.Errorf("card %q has an empty id", card.Name)
		}
		if _, dup := byID[card.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", card.ID)
		}
		if err := validateCard(card); err != nil {
			return nil, err
		}
		byID[card.ID] = card
	}
	cat := &Catalog{cards: byID}
	for _, card := range byID {
		for _, eff := range card.Effects {
			summon, ok := eff.(SummonEffect)
			if !ok {
				continue
			}
			token, found := byID[summon.TokenCardID]
			if !found {
				return nil, fmt.Errorf("card %q summons unknown card %q", card.ID, summon.TokenCardID)
			}
			if token.Type != CardTypeCreature || token.CreatureStats == nil {
				return nil, fmt.Errorf("card %q summons %q, which is not a creature", card.ID, summon.TokenCardID)
			}
		}
	}
	return cat, nil
}

func validateCard(card *CardDefinition) error {
	switch card.Type {
	case CardTypeCreature:
		if card.CreatureStats == nil {
			return fmt.Errorf("creature card %q is missing creature stats", card.ID)
		}
	case CardTypeSpell:
	default:
		return fmt.Errorf("card %q has unknown type %q", card.ID, card.Type)
	}
	if card.Cost < 0 {
		return fmt.Errorf("card %q has negative cost %d", card.ID, card.Cost)
	}
	for _, kw := range card.Keywords {
		switch kw {
		case KeywordGuard, KeywordHaste, KeywordLifesteal, KeywordToken:
		default:
			return fmt.Errorf("card %q has unknown keyword %q", card.ID, kw)
		}
	}
	return nil
}

// Get returns the definition for the given card id.
func (c *Catalog) Get(id string) (*CardDefinition, bool) {
	card, ok := c.cards[id]
	return card, ok
}

// IDs returns all card ids in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.cards))
	for id := range c.cards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of cards in the catalog.
func (c *Catalog) Len() int {
	return len(c.cards)
}
