package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeckList is a named multiset of card ids as authored in a deck file:
//
//	name: Starter Aggro
//	cards:
//	  - id: c_footman
//	    count: 3
type DeckList struct {
	Name  string      `yaml:"name"`
	Cards []DeckEntry `yaml:"cards"`
}

// DeckEntry is a single card line in a deck list.
type DeckEntry struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// LoadDeck reads a deck list from a YAML file.
func LoadDeck(path string) (*DeckList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}
	var deck DeckList
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i, entry := range deck.Cards {
		if entry.ID == "" {
			return nil, fmt.Errorf("%s: entry %d has an empty card id", path, i)
		}
		if entry.Count < 1 {
			return nil, fmt.Errorf("%s: entry %q has count %d, want at least 1", path, entry.ID, entry.Count)
		}
	}
	return &deck, nil
}

// CardIDs expands the deck list into a flat card-id multiset, preserving
// authored order.
func (d *DeckList) CardIDs() []string {
	var ids []string
	for _, entry := range d.Cards {
		for i := 0; i < entry.Count; i++ {
			ids = append(ids, entry.ID)
		}
	}
	return ids
}
