package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/quraniq/quraniq-api/internal/dto"
	"github.com/quraniq/quraniq-api/internal/models"
	"github.com/quraniq/quraniq-api/internal/repository"
	"github.com/quraniq/quraniq-api/internal/reveal"
	"github.com/quraniq/quraniq-api/pkg/ai"
)

// fakeRevealConn records frames; ReadMessage blocks for the whole
// session like a quiet websocket client.
type fakeRevealConn struct {
	mu         sync.Mutex
	frames     []RevealMessage
	failAfter  int // fail writes after this many frames; 0 disables
	writeCount int
	closed     chan struct{}
	closeOnce  sync.Once
}

func newFakeRevealConn() *fakeRevealConn {
	return &fakeRevealConn{closed: make(chan struct{})}
}

func (f *fakeRevealConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	msg, ok := v.(RevealMessage)
	if !ok {
		return errors.New("unexpected frame type")
	}

	f.writeCount++
	if f.failAfter > 0 && f.writeCount > f.failAfter {
		return errors.New("connection reset")
	}

	f.frames = append(f.frames, msg)
	return nil
}

func (f *fakeRevealConn) ReadMessage() (int, []byte, error) {
	<-f.closed
	return 0, nil, errors.New("connection closed")
}

func (f *fakeRevealConn) Close() error {
	f.closeOnce.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeRevealConn) recorded() []RevealMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RevealMessage, len(f.frames))
	copy(out, f.frames)
	return out
}

type scriptedAnswerService struct {
	response dto.AskResponse
	err      error
}

func (s *scriptedAnswerService) Resolve(ctx context.Context, req dto.AskRequest) (dto.AskResponse, error) {
	return s.response, s.err
}

func setupRevealService(t *testing.T, answers AnswerService) (RevealService, repository.InquiryRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Inquiry{}))

	repo := repository.NewInquiryRepository(db)
	svc := NewRevealService(answers, repo, nil, nil, zerolog.Nop(), reveal.Options{
		MinDelay: time.Millisecond,
		MaxDelay: 2 * time.Millisecond,
	})
	return svc, repo
}

func TestRevealSessionDeliversAnswerWordByWord(t *testing.T) {
	answer := "Patience is a light for the believer."
	svc, repo := setupRevealService(t, &scriptedAnswerService{response: dto.AskResponse{
		Answer:      answer,
		Suggestions: []string{"What about gratitude?"},
	}})

	conn := newFakeRevealConn()
	defer conn.Close()

	svc.ServeReveal(context.Background(), conn, 1, dto.AskRequest{Question: "How do I build patience?"})

	frames := conn.recorded()
	require.GreaterOrEqual(t, len(frames), 3)
	require.Equal(t, RevealTypeInquiry, frames[0].Type)
	require.NotNil(t, frames[0].Inquiry)
	require.Equal(t, models.InquiryStatusPending, frames[0].Inquiry.Status)

	var rebuilt strings.Builder
	for _, frame := range frames[1 : len(frames)-1] {
		require.Equal(t, RevealTypeDelta, frame.Type)
		rebuilt.WriteString(frame.Delta)
	}
	require.Equal(t, answer, rebuilt.String())

	last := frames[len(frames)-1]
	require.Equal(t, RevealTypeSettled, last.Type)
	require.Equal(t, []string{"What about gratitude?"}, last.Suggestions)
	require.NotNil(t, last.Inquiry)
	require.Equal(t, models.InquiryStatusSettled, last.Inquiry.Status)

	stored, err := repo.GetByID(context.Background(), frames[0].Inquiry.ID, 1)
	require.NoError(t, err)
	require.Equal(t, answer, stored.Content)
	require.Equal(t, models.InquiryStatusSettled, stored.Status)
}

func TestRevealSessionRateLimitedSettlesErrored(t *testing.T) {
	svc, repo := setupRevealService(t, &scriptedAnswerService{err: ai.ErrRateLimited})

	conn := newFakeRevealConn()
	defer conn.Close()

	svc.ServeReveal(context.Background(), conn, 1, dto.AskRequest{Question: "How do I build patience?"})

	frames := conn.recorded()
	require.Len(t, frames, 2)
	require.Equal(t, RevealTypeInquiry, frames[0].Type)
	require.Equal(t, RevealTypeError, frames[1].Type)
	require.Equal(t, RetryLaterMessage, frames[1].Message)

	stored, err := repo.GetByID(context.Background(), frames[0].Inquiry.ID, 1)
	require.NoError(t, err)
	require.Equal(t, models.InquiryStatusErrored, stored.Status)
	require.Equal(t, RetryLaterMessage, stored.Content)
}

func TestRevealSessionInterruptedKeepsFullContent(t *testing.T) {
	answer := "Patience is a light for the believer and a shade on a hot day."
	svc, repo := setupRevealService(t, &scriptedAnswerService{response: dto.AskResponse{Answer: answer}})

	// Allow the inquiry frame plus two deltas, then drop the connection.
	conn := newFakeRevealConn()
	conn.failAfter = 3
	defer conn.Close()

	svc.ServeReveal(context.Background(), conn, 1, dto.AskRequest{Question: "How do I build patience?"})

	frames := conn.recorded()
	require.Equal(t, RevealTypeInquiry, frames[0].Type)
	for _, frame := range frames[1:] {
		require.Equal(t, RevealTypeDelta, frame.Type)
	}

	stored, err := repo.GetByID(context.Background(), frames[0].Inquiry.ID, 1)
	require.NoError(t, err)
	require.Equal(t, answer, stored.Content)
	require.Equal(t, models.InquiryStatusSettled, stored.Status)
}

// brokenContentRepo rejects content writes while letting status-only
// writes through, like a column-level storage failure.
type brokenContentRepo struct {
	repository.InquiryRepository
}

func (r *brokenContentRepo) SettleContent(ctx context.Context, id, content, status string) error {
	return errors.New("disk full")
}

func TestRevealSessionPersistFailureStillSettlesErrored(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Inquiry{}))

	repo := repository.NewInquiryRepository(db)
	svc := NewRevealService(
		&scriptedAnswerService{response: dto.AskResponse{Answer: "an answer"}},
		&brokenContentRepo{InquiryRepository: repo},
		nil, nil, zerolog.Nop(),
		reveal.Options{MinDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond},
	)

	conn := newFakeRevealConn()
	defer conn.Close()

	svc.ServeReveal(context.Background(), conn, 1, dto.AskRequest{Question: "How do I build patience?"})

	frames := conn.recorded()
	require.Equal(t, RevealTypeInquiry, frames[0].Type)
	require.Equal(t, RevealTypeError, frames[len(frames)-1].Type)

	// The row must not be stranded in a non-terminal status.
	stored, err := repo.GetByID(context.Background(), frames[0].Inquiry.ID, 1)
	require.NoError(t, err)
	require.Equal(t, models.InquiryStatusErrored, stored.Status)
}

func TestRevealSessionClientDisconnectStopsReplay(t *testing.T) {
	answer := strings.Repeat("word ", 200) + "end."
	svc, repo := setupRevealService(t, &scriptedAnswerService{response: dto.AskResponse{Answer: answer}})

	conn := newFakeRevealConn()
	go func() {
		time.Sleep(20 * time.Millisecond)
		conn.Close()
	}()

	svc.ServeReveal(context.Background(), conn, 1, dto.AskRequest{Question: "How do I build patience?"})

	frames := conn.recorded()
	require.NotEmpty(t, frames)
	require.Equal(t, RevealTypeInquiry, frames[0].Type)

	stored, err := repo.GetByID(context.Background(), frames[0].Inquiry.ID, 1)
	require.NoError(t, err)
	require.Equal(t, answer, stored.Content)
	require.Equal(t, models.InquiryStatusSettled, stored.Status)
}
