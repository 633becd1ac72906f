package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/quraniq/quraniq-api/internal/quran"
)

// FollowUpSentinel separates the displayable answer from the optional
// machine-parseable follow-up block in generated output.
const FollowUpSentinel = ":::FOLLOW_UPS:::"

// historyWindow bounds how many recent turns feed the conversation
// context so prompts do not grow with session length.
const historyWindow = 2

// Turn is a single prior exchange in the conversation.
type Turn struct {
	Role    string `json:"role" validate:"omitempty,oneof=user assistant"`
	Content string `json:"content"`
}

// Prompt is the instruction pair sent to the generator.
type Prompt struct {
	System string
	User   string
}

// Compose builds the system and user instructions for a question, the
// retrieved verses and the recent conversation. It never fails: zero
// verses produce an explicit no-match framing rather than an error.
func Compose(question string, verses []quran.Verse, history []Turn) Prompt {
	return compose(question, verses, history, time.Now)
}

func compose(question string, verses []quran.Verse, history []Turn, now func() time.Time) Prompt {
	var system strings.Builder
	system.WriteString(`You are "QuranIQ", an intelligent Islamic knowledge companion.

Current Date: `)
	system.WriteString(now().UTC().Format("2006-01-02"))
	system.WriteString(`

ROLE: You are a humble student of Islam, NOT a mufti or religious authority.

CORE PRINCIPLES:
1. PRIORITIZE provided Quranic verses - cite them explicitly
2. If verses provided, weave them into coherent, comforting answers
3. If NO verses provided, answer using general Islamic wisdom with humility
4. NEVER issue fatwas or definitive rulings on halal/haram
5. For religious rulings, ALWAYS say "scholars differ" and recommend consulting qualified scholars
6. Remain respectful (adab), measured, and transparent about sources

FORMAT YOUR RESPONSE:
- Direct Answer (2-3 paragraphs)
- Supporting Verses (if available, with citations)
- Practical Reflection (how to apply this wisdom)

TONE: Serene, Intellectual, Concise (under 400 words unless complexity requires more)

FORBIDDEN:
- Issuing fatwas
- Claiming definitive knowledge on disputed matters
- Sectarian bias
- Disrespecting any madhab or scholarly opinion

After your answer, append the marker `)
	system.WriteString(FollowUpSentinel)
	system.WriteString(` followed by a JSON array of 2-3 short follow-up questions the user might ask next.`)

	var user strings.Builder
	fmt.Fprintf(&user, "User Inquiry: %q\n\n", question)
	user.WriteString(sourceContext(verses))

	if summary := historySummary(history); summary != "" {
		user.WriteString("\n\nConversation Context: ")
		user.WriteString(summary)
	}

	user.WriteString("\n\nProvide your response now.")

	return Prompt{System: system.String(), User: user.String()}
}

func sourceContext(verses []quran.Verse) string {
	if len(verses) == 0 {
		return "No direct keyword matches found in the Quran. Rely on general Islamic knowledge and broader themes."
	}

	var b strings.Builder
	b.WriteString("Here are authentic Quran verses found related to the query:")
	for _, v := range verses {
		fmt.Fprintf(&b, "\n- [Surah %s %d:%d]: %q", v.SurahName, v.SurahNumber, v.AyahNumber, v.Text)
	}
	return b.String()
}

func historySummary(history []Turn) string {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	parts := make([]string, 0, len(history))
	for _, turn := range history {
		content := strings.TrimSpace(turn.Content)
		if content != "" {
			parts = append(parts, content)
		}
	}
	return strings.Join(parts, " -> ")
}
