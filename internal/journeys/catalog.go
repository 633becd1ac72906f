package journeys

// Journey is a guided learning path with a fixed ordered step list.
type Journey struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	TotalSteps int    `json:"total_steps"`
}

// catalog mirrors the journey definitions shipped with the client.
// Step identifiers are 1..TotalSteps.
var catalog = map[int]Journey{
	1: {
		ID:         1,
		Title:      "Finding Inner Peace (Sakinah)",
		Subtitle:   "Trust in Allah's Plan",
		TotalSteps: 6,
	},
	2: {
		ID:         2,
		Title:      "The Prayer Journey (Salah)",
		Subtitle:   "Mastering the Connection",
		TotalSteps: 5,
	},
	3: {
		ID:         3,
		Title:      "Prophetic Character (Akhlaq)",
		Subtitle:   "Walking in His Footsteps",
		TotalSteps: 4,
	},
}

// Lookup returns the journey definition for an identifier.
func Lookup(id int) (Journey, bool) {
	journey, ok := catalog[id]
	return journey, ok
}

// ValidStep reports whether stepID exists within the journey.
func ValidStep(journeyID, stepID int) bool {
	journey, ok := catalog[journeyID]
	if !ok {
		return false
	}
	return stepID >= 1 && stepID <= journey.TotalSteps
}

// All returns every journey definition.
func All() []Journey {
	out := make([]Journey, 0, len(catalog))
	for _, j := range catalog {
		out = append(out, j)
	}
	return out
}
