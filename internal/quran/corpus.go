package quran

// Verse is a single ayah from the static corpus. Identity is
// (SurahNumber, AyahNumber).
type Verse struct {
	SurahName   string   `json:"surah_name"`
	SurahNumber int      `json:"surah_number"`
	AyahNumber  int      `json:"ayah_number"`
	Text        string   `json:"text"`
	Topics      []string `json:"-"`
}

// corpus is the built-in verse collection, ordered by (surah, ayah).
// Topics are lowercase keyword tags used by the retriever alongside the
// verse text itself.
var corpus = []Verse{
	{
		SurahName:   "Al-Fatiha",
		SurahNumber: 1,
		AyahNumber:  5,
		Text:        "It is You we worship and You we ask for help.",
		Topics:      []string{"worship", "help", "prayer", "reliance"},
	},
	{
		SurahName:   "Al-Baqarah",
		SurahNumber: 2,
		AyahNumber:  45,
		Text:        "And seek help through patience and prayer, and indeed, it is difficult except for the humbly submissive.",
		Topics:      []string{"patience", "prayer", "humility", "help"},
	},
	{
		SurahName:   "Al-Baqarah",
		SurahNumber: 2,
		AyahNumber:  152,
		Text:        "So remember Me; I will remember you. And be grateful to Me and do not deny Me.",
		Topics:      []string{"remembrance", "gratitude", "dhikr"},
	},
	{
		SurahName:   "Al-Baqarah",
		SurahNumber: 2,
		AyahNumber:  155,
		Text:        "And We will surely test you with something of fear and hunger and a loss of wealth and lives and fruits, but give good tidings to the patient.",
		Topics:      []string{"patience", "trials", "hardship", "test", "fear"},
	},
	{
		SurahName:   "Al-Baqarah",
		SurahNumber: 2,
		AyahNumber:  186,
		Text:        "And when My servants ask you concerning Me, indeed I am near. I respond to the invocation of the supplicant when he calls upon Me.",
		Topics:      []string{"dua", "supplication", "nearness", "prayer"},
	},
	{
		SurahName:   "Al-Baqarah",
		SurahNumber: 2,
		AyahNumber:  255,
		Text:        "Allah - there is no deity except Him, the Ever-Living, the Sustainer of existence. Neither drowsiness overtakes Him nor sleep.",
		Topics:      []string{"tawhid", "protection", "allah", "majesty"},
	},
	{
		SurahName:   "Al-Baqarah",
		SurahNumber: 2,
		AyahNumber:  286,
		Text:        "Allah does not charge a soul except with that within its capacity.",
		Topics:      []string{"burden", "capacity", "mercy", "hardship"},
	},
	{
		SurahName:   "Al-Imran",
		SurahNumber: 3,
		AyahNumber:  139,
		Text:        "So do not weaken and do not grieve, and you will be superior if you are true believers.",
		Topics:      []string{"grief", "strength", "faith", "sadness"},
	},
	{
		SurahName:   "Al-Imran",
		SurahNumber: 3,
		AyahNumber:  159,
		Text:        "And when you have decided, then rely upon Allah. Indeed, Allah loves those who rely upon Him.",
		Topics:      []string{"trust", "tawakkul", "reliance", "decision"},
	},
	{
		SurahName:   "An-Nisa",
		SurahNumber: 4,
		AyahNumber:  36,
		Text:        "Worship Allah and associate nothing with Him, and to parents do good, and to relatives, orphans, the needy, the near neighbor.",
		Topics:      []string{"parents", "kindness", "charity", "neighbors", "family"},
	},
	{
		SurahName:   "Al-Maidah",
		SurahNumber: 5,
		AyahNumber:  8,
		Text:        "Be persistently standing firm for Allah, witnesses in justice, and do not let the hatred of a people prevent you from being just.",
		Topics:      []string{"justice", "fairness", "integrity"},
	},
	{
		SurahName:   "Al-Anam",
		SurahNumber: 6,
		AyahNumber:  162,
		Text:        "Say, indeed, my prayer, my rites of sacrifice, my living and my dying are for Allah, Lord of the worlds.",
		Topics:      []string{"sincerity", "devotion", "purpose", "prayer"},
	},
	{
		SurahName:   "Al-Araf",
		SurahNumber: 7,
		AyahNumber:  199,
		Text:        "Take what is given freely, enjoin what is good, and turn away from the ignorant.",
		Topics:      []string{"forgiveness", "character", "forbearance"},
	},
	{
		SurahName:   "At-Tawbah",
		SurahNumber: 9,
		AyahNumber:  51,
		Text:        "Say, never will we be struck except by what Allah has decreed for us; He is our protector.",
		Topics:      []string{"decree", "qadar", "protection", "trust"},
	},
	{
		SurahName:   "Yunus",
		SurahNumber: 10,
		AyahNumber:  57,
		Text:        "O mankind, there has come to you instruction from your Lord and healing for what is in the breasts and guidance and mercy for the believers.",
		Topics:      []string{"healing", "guidance", "mercy", "quran"},
	},
	{
		SurahName:   "Hud",
		SurahNumber: 11,
		AyahNumber:  115,
		Text:        "And be patient, for indeed, Allah does not allow to be lost the reward of those who do good.",
		Topics:      []string{"patience", "reward", "good deeds"},
	},
	{
		SurahName:   "Yusuf",
		SurahNumber: 12,
		AyahNumber:  87,
		Text:        "And despair not of relief from Allah. Indeed, no one despairs of relief from Allah except the disbelieving people.",
		Topics:      []string{"hope", "despair", "relief", "mercy"},
	},
	{
		SurahName:   "Ar-Rad",
		SurahNumber: 13,
		AyahNumber:  28,
		Text:        "Those who have believed and whose hearts are assured by the remembrance of Allah. Unquestionably, by the remembrance of Allah hearts are assured.",
		Topics:      []string{"remembrance", "peace", "heart", "dhikr", "anxiety"},
	},
	{
		SurahName:   "Ibrahim",
		SurahNumber: 14,
		AyahNumber:  7,
		Text:        "If you are grateful, I will surely increase you in favor; but if you deny, indeed, My punishment is severe.",
		Topics:      []string{"gratitude", "thankfulness", "blessings"},
	},
	{
		SurahName:   "An-Nahl",
		SurahNumber: 16,
		AyahNumber:  90,
		Text:        "Indeed, Allah orders justice and good conduct and giving to relatives and forbids immorality and bad conduct and oppression.",
		Topics:      []string{"justice", "conduct", "charity", "morality"},
	},
	{
		SurahName:   "Al-Isra",
		SurahNumber: 17,
		AyahNumber:  23,
		Text:        "And your Lord has decreed that you not worship except Him, and to parents, good treatment.",
		Topics:      []string{"parents", "respect", "worship", "family"},
	},
	{
		SurahName:   "Ta-Ha",
		SurahNumber: 20,
		AyahNumber:  25,
		Text:        "My Lord, expand for me my breast and ease for me my task.",
		Topics:      []string{"dua", "ease", "anxiety", "confidence"},
	},
	{
		SurahName:   "An-Nur",
		SurahNumber: 24,
		AyahNumber:  35,
		Text:        "Allah is the Light of the heavens and the earth.",
		Topics:      []string{"light", "guidance", "allah"},
	},
	{
		SurahName:   "Al-Ankabut",
		SurahNumber: 29,
		AyahNumber:  69,
		Text:        "And those who strive for Us - We will surely guide them to Our ways. And indeed, Allah is with the doers of good.",
		Topics:      []string{"striving", "guidance", "effort"},
	},
	{
		SurahName:   "Az-Zumar",
		SurahNumber: 39,
		AyahNumber:  53,
		Text:        "Say, O My servants who have transgressed against themselves, do not despair of the mercy of Allah. Indeed, Allah forgives all sins.",
		Topics:      []string{"forgiveness", "mercy", "repentance", "sin", "despair"},
	},
	{
		SurahName:   "Ghafir",
		SurahNumber: 40,
		AyahNumber:  60,
		Text:        "And your Lord says, call upon Me; I will respond to you.",
		Topics:      []string{"dua", "supplication", "response"},
	},
	{
		SurahName:   "Ash-Shura",
		SurahNumber: 42,
		AyahNumber:  43,
		Text:        "And whoever is patient and forgives - indeed, that is of the matters requiring determination.",
		Topics:      []string{"patience", "forgiveness", "determination"},
	},
	{
		SurahName:   "Al-Hujurat",
		SurahNumber: 49,
		AyahNumber:  13,
		Text:        "Indeed, the most noble of you in the sight of Allah is the most righteous of you.",
		Topics:      []string{"equality", "righteousness", "nobility", "taqwa"},
	},
	{
		SurahName:   "Adh-Dhariyat",
		SurahNumber: 51,
		AyahNumber:  56,
		Text:        "And I did not create the jinn and mankind except to worship Me.",
		Topics:      []string{"purpose", "worship", "creation", "meaning"},
	},
	{
		SurahName:   "Al-Hadid",
		SurahNumber: 57,
		AyahNumber:  4,
		Text:        "And He is with you wherever you are. And Allah, of what you do, is Seeing.",
		Topics:      []string{"nearness", "presence", "loneliness", "comfort"},
	},
	{
		SurahName:   "At-Talaq",
		SurahNumber: 65,
		AyahNumber:  3,
		Text:        "And whoever relies upon Allah - then He is sufficient for him. Indeed, Allah will accomplish His purpose.",
		Topics:      []string{"trust", "tawakkul", "provision", "sufficiency"},
	},
	{
		SurahName:   "Ash-Sharh",
		SurahNumber: 94,
		AyahNumber:  6,
		Text:        "Indeed, with hardship will be ease.",
		Topics:      []string{"hardship", "ease", "hope", "difficulty"},
	},
}

// Corpus returns the full verse collection in canonical order.
func Corpus() []Verse {
	out := make([]Verse, len(corpus))
	copy(out, corpus)
	return out
}
