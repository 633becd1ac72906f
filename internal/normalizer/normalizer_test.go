package normalizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRoundTrip(t *testing.T) {
	raw := "Patience is praised throughout the Quran.  " +
		":::FOLLOW_UPS:::[\"How do I build patience?\", \"What is sabr?\"]"

	result := Normalize(raw)
	require.Equal(t, "Patience is praised throughout the Quran.", result.Answer)
	require.Equal(t, []string{"How do I build patience?", "What is sabr?"}, result.Suggestions)
}

func TestNormalizeTruncatedArray(t *testing.T) {
	raw := "The answer.:::FOLLOW_UPS:::[\"How do I"

	result := Normalize(raw)
	require.Equal(t, "The answer.", result.Answer)
	require.Empty(t, result.Suggestions)
}

func TestNormalizeMalformedJSONKeepsAnswer(t *testing.T) {
	raw := "The answer.:::FOLLOW_UPS:::[not json at all]"

	result := Normalize(raw)
	require.Equal(t, "The answer.", result.Answer)
	require.Empty(t, result.Suggestions)
}

func TestNormalizeNoSentinel(t *testing.T) {
	result := Normalize("  Just an answer with no block.  ")
	require.Equal(t, "Just an answer with no block.", result.Answer)
	require.Empty(t, result.Suggestions)
}

func TestNormalizeSchemaRejectsNonStringItems(t *testing.T) {
	result := Normalize("Answer.:::FOLLOW_UPS:::[1, 2, 3]")
	require.Equal(t, "Answer.", result.Answer)
	require.Empty(t, result.Suggestions)
}

func TestNormalizeSchemaRejectsOversizedArray(t *testing.T) {
	result := Normalize(`Answer.:::FOLLOW_UPS:::["a","b","c","d","e","f"]`)
	require.Equal(t, "Answer.", result.Answer)
	require.Empty(t, result.Suggestions)
}

func TestNormalizeSentinelAtStart(t *testing.T) {
	result := Normalize(`:::FOLLOW_UPS:::["q"]`)
	require.Empty(t, result.Answer)
	require.Equal(t, []string{"q"}, result.Suggestions)
}
