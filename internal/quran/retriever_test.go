package quran

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchFindsTaggedVerse(t *testing.T) {
	retriever := NewRetriever([]Verse{
		{
			SurahName:   "Al-Baqarah",
			SurahNumber: 2,
			AyahNumber:  155,
			Text:        "And We will surely test you with something of fear and hunger, but give good tidings to the patient.",
			Topics:      []string{"patience", "trials"},
		},
		{
			SurahName:   "Al-Hujurat",
			SurahNumber: 49,
			AyahNumber:  13,
			Text:        "Indeed, the most noble of you in the sight of Allah is the most righteous of you.",
			Topics:      []string{"equality"},
		},
	})

	results := retriever.Search("What does the Quran say about patience?")
	require.Len(t, results, 1)
	require.Equal(t, 2, results[0].SurahNumber)
	require.Equal(t, 155, results[0].AyahNumber)
}

func TestSearchOrdersByMatchStrength(t *testing.T) {
	retriever := NewRetriever(nil)

	results := retriever.Search("How do I stay patient during hardship?")
	require.NotEmpty(t, results)
	require.LessOrEqual(t, len(results), 5)

	// 94:6 carries both hardship and ease tags and must be present.
	found := false
	for _, v := range results {
		if v.SurahNumber == 94 && v.AyahNumber == 6 {
			found = true
		}
	}
	require.True(t, found)
}

func TestSearchTiesKeepCorpusOrder(t *testing.T) {
	retriever := NewRetriever([]Verse{
		{SurahName: "Al-Baqarah", SurahNumber: 2, AyahNumber: 45, Text: "seek help", Topics: []string{"patience"}},
		{SurahName: "Hud", SurahNumber: 11, AyahNumber: 115, Text: "be steadfast", Topics: []string{"patience"}},
	})

	results := retriever.Search("patience")
	require.Len(t, results, 2)
	require.Equal(t, 2, results[0].SurahNumber)
	require.Equal(t, 11, results[1].SurahNumber)
}

func TestSearchNoMatchesIsEmptyNotError(t *testing.T) {
	retriever := NewRetriever(nil)
	require.Empty(t, retriever.Search("zzzz qqqq"))
	require.Empty(t, retriever.Search(""))
	require.Empty(t, retriever.Search("the and of"))
}

func TestCorpusOrderedBySurahAndAyah(t *testing.T) {
	verses := Corpus()
	require.NotEmpty(t, verses)

	for i := 1; i < len(verses); i++ {
		prev, cur := verses[i-1], verses[i]
		require.True(t,
			cur.SurahNumber > prev.SurahNumber ||
				(cur.SurahNumber == prev.SurahNumber && cur.AyahNumber > prev.AyahNumber),
			"corpus out of order at index %d", i)
		require.GreaterOrEqual(t, cur.SurahNumber, 1)
		require.LessOrEqual(t, cur.SurahNumber, 114)
		require.GreaterOrEqual(t, cur.AyahNumber, 1)
	}
}
