package dto

import (
	"github.com/quraniq/quraniq-api/internal/prompt"
	"github.com/quraniq/quraniq-api/internal/quran"
)

// AskRequest carries a question plus optional recent conversation.
type AskRequest struct {
	Question string        `json:"question" validate:"required,min=3,max=1000"`
	History  []prompt.Turn `json:"history" validate:"omitempty,max=20,dive"`
}

// VerseResponse is a cited verse in an answer payload.
type VerseResponse struct {
	SurahName   string `json:"surah_name"`
	SurahNumber int    `json:"surah_number"`
	AyahNumber  int    `json:"ayah_number"`
	Text        string `json:"text"`
}

// AskResponse is the synthesized answer returned to the client.
type AskResponse struct {
	Answer      string          `json:"answer"`
	Suggestions []string        `json:"suggestions"`
	Verses      []VerseResponse `json:"verses"`
	Disclaimer  string          `json:"disclaimer"`
}

// NewVerseResponseSlice converts corpus verses into DTOs.
func NewVerseResponseSlice(verses []quran.Verse) []VerseResponse {
	out := make([]VerseResponse, 0, len(verses))
	for _, v := range verses {
		out = append(out, VerseResponse{
			SurahName:   v.SurahName,
			SurahNumber: v.SurahNumber,
			AyahNumber:  v.AyahNumber,
			Text:        v.Text,
		})
	}
	return out
}
