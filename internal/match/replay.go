package match

import "github.com/cinetcg/cinetcg-go/internal/catalog"

// Replay reconstructs a match from its inputs: it builds a fresh match with
// the same catalog, decks, seed, and config, then applies the action
// sequence through the normal dispatcher, stopping early once a winner is
// produced. Because the RNG stream is seeded identically and consumed in
// the same places, the result is byte-for-byte snapshot-equal to the match
// the actions were recorded from.
func Replay(cat *catalog.Catalog, deck0, deck1 []string, seed int64, actions []Action, cfg Config) (*State, error) {
	s, err := NewMatch(cat, deck0, deck1, seed, cfg)
	if err != nil {
		return nil, err
	}
	for _, a := range actions {
		s.Step(a)
		if s.Winner != NoWinner {
			break
		}
	}
	return s, nil
}
