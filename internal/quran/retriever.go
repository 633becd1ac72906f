package quran

import (
	"sort"
	"strings"
)

const maxResults = 5

// stopwords are question tokens that carry no retrieval signal.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "an": {}, "and": {}, "are": {}, "be": {},
	"can": {}, "do": {}, "does": {}, "for": {}, "how": {}, "i": {},
	"in": {}, "is": {}, "it": {}, "me": {}, "my": {}, "of": {},
	"on": {}, "or": {}, "say": {}, "should": {}, "that": {}, "the": {},
	"to": {}, "quran": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "who": {}, "why": {}, "will": {}, "with": {}, "you": {},
}

// Retriever performs lexical verse lookup over a fixed corpus.
type Retriever struct {
	verses []Verse
}

// NewRetriever builds a retriever over the supplied verses, falling
// back to the built-in corpus when none are given.
func NewRetriever(verses []Verse) *Retriever {
	if len(verses) == 0 {
		verses = Corpus()
	}
	return &Retriever{verses: verses}
}

// Search returns the verses most relevant to a free-text question,
// strongest match first, at most five results. Matching is
// case-insensitive token overlap against topic tags and verse text;
// ties keep corpus order (surah, ayah ascending). An empty result is a
// valid outcome, not an error.
func (r *Retriever) Search(question string) []Verse {
	tokens := tokenize(question)
	if len(tokens) == 0 {
		return nil
	}

	type scored struct {
		verse Verse
		score int
		index int
	}

	var matches []scored
	for i, verse := range r.verses {
		score := scoreVerse(verse, tokens)
		if score > 0 {
			matches = append(matches, scored{verse: verse, score: score, index: i})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].score != matches[b].score {
			return matches[a].score > matches[b].score
		}
		return matches[a].index < matches[b].index
	})

	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}

	results := make([]Verse, 0, len(matches))
	for _, m := range matches {
		results = append(results, m.verse)
	}
	return results
}

func scoreVerse(verse Verse, tokens []string) int {
	text := strings.ToLower(verse.Text)
	score := 0

	for _, token := range tokens {
		for _, topic := range verse.Topics {
			if topic == token {
				// Tag hits outweigh incidental text hits.
				score += 3
				break
			}
		}
		if containsWord(text, token) {
			score++
		}
	}

	return score
}

func tokenize(input string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return ' '
	}, strings.ToLower(input))

	var tokens []string
	for _, field := range strings.Fields(cleaned) {
		if _, skip := stopwords[field]; skip {
			continue
		}
		if len(field) < 3 {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

func containsWord(text, word string) bool {
	idx := 0
	for {
		pos := strings.Index(text[idx:], word)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(word)
		beforeOK := start == 0 || !isLetter(text[start-1])
		afterOK := end == len(text) || !isLetter(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
