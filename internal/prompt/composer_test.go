package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quraniq/quraniq-api/internal/quran"
)

func fixedNow() time.Time {
	return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func TestComposeEnumeratesVerses(t *testing.T) {
	verses := []quran.Verse{
		{
			SurahName:   "Al-Baqarah",
			SurahNumber: 2,
			AyahNumber:  155,
			Text:        "but give good tidings to the patient",
		},
	}

	p := compose("What does the Quran say about patience?", verses, nil, fixedNow)

	require.Contains(t, p.User, "2:155")
	require.Contains(t, p.User, "Surah Al-Baqarah")
	require.Contains(t, p.User, `"but give good tidings to the patient"`)
	require.Contains(t, p.System, "2025-03-10")
	require.Contains(t, p.System, "NEVER issue fatwas")
	require.Contains(t, p.System, "scholars differ")
	require.Contains(t, p.System, FollowUpSentinel)
}

func TestComposeNoMatchesFraming(t *testing.T) {
	p := compose("What is the meaning of life?", nil, nil, fixedNow)

	require.NotEmpty(t, p.System)
	require.Contains(t, p.User, "No direct keyword matches found")
	require.NotContains(t, p.User, "Conversation Context")
}

func TestComposeClampsHistoryToLastTwoTurns(t *testing.T) {
	history := []Turn{
		{Role: "user", Content: "first topic"},
		{Role: "assistant", Content: "second topic"},
		{Role: "user", Content: "third topic"},
	}

	p := compose("follow up", nil, history, fixedNow)

	require.NotContains(t, p.User, "first topic")
	require.Contains(t, p.User, "second topic -> third topic")
}

func TestComposeStructureSections(t *testing.T) {
	p := compose("question", nil, nil, fixedNow)

	for _, section := range []string{"Direct Answer", "Supporting Verses", "Practical Reflection", "under 400 words"} {
		require.True(t, strings.Contains(p.System, section), "missing section %q", section)
	}
}
