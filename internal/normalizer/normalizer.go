package normalizer

import (
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/quraniq/quraniq-api/internal/prompt"
)

// followUpSchema is the versioned contract for the suggestion block the
// generator appends after the sentinel.
const followUpSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://quraniq.app/schemas/follow-ups-v1.json",
  "type": "array",
  "items": {"type": "string", "minLength": 1, "maxLength": 200},
  "minItems": 1,
  "maxItems": 5
}`

var suggestionSchema = jsonschema.MustCompileString("follow-ups-v1.json", followUpSchema)

// Result is the renderable outcome of normalising raw model output.
type Result struct {
	Answer      string   `json:"answer"`
	Suggestions []string `json:"suggestions"`
}

// Normalize splits raw model output on the first follow-up sentinel.
// The portion before the sentinel is always the displayable answer; the
// tail is parsed as a suggestion array only when it looks syntactically
// complete (trailing bracket present) and satisfies the follow-up
// schema. Any parse or validation failure yields empty suggestions and
// never corrupts the answer.
func Normalize(raw string) Result {
	answer := raw
	tail := ""

	if idx := strings.Index(raw, prompt.FollowUpSentinel); idx >= 0 {
		answer = raw[:idx]
		tail = raw[idx+len(prompt.FollowUpSentinel):]
	}

	return Result{
		Answer:      strings.TrimSpace(answer),
		Suggestions: parseSuggestions(tail),
	}
}

func parseSuggestions(tail string) []string {
	tail = strings.TrimSpace(tail)
	if tail == "" || !strings.HasSuffix(tail, "]") {
		// Truncated mid-stream; suggestions are best-effort only.
		return nil
	}

	var decoded interface{}
	if err := json.Unmarshal([]byte(tail), &decoded); err != nil {
		return nil
	}

	if err := suggestionSchema.Validate(decoded); err != nil {
		return nil
	}

	items, ok := decoded.([]interface{})
	if !ok {
		return nil
	}

	suggestions := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			s = strings.TrimSpace(s)
			if s != "" {
				suggestions = append(suggestions, s)
			}
		}
	}
	return suggestions
}
