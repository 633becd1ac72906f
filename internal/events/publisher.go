package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Subjects for inquiry lifecycle events.
const (
	SubjectInquirySettled = "quraniq.inquiry.settled"
	SubjectInquiryErrored = "quraniq.inquiry.errored"
)

// InquiryEvent is the payload published when an inquiry reaches a
// terminal state.
type InquiryEvent struct {
	InquiryID string    `json:"inquiry_id"`
	UserID    uint      `json:"user_id"`
	Status    string    `json:"status"`
	Fallback  bool      `json:"fallback,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher fans inquiry lifecycle events out over NATS. A nil
// connection disables publishing entirely.
type Publisher struct {
	nc     *nats.Conn
	logger zerolog.Logger
}

// NewPublisher constructs a publisher. conn may be nil.
func NewPublisher(conn *nats.Conn, logger zerolog.Logger) *Publisher {
	return &Publisher{
		nc:     conn,
		logger: logger.With().Str("component", "event_publisher").Logger(),
	}
}

// InquirySettled publishes a settled event. Failures are logged, never
// propagated: event delivery is best effort.
func (p *Publisher) InquirySettled(event InquiryEvent) {
	p.publish(SubjectInquirySettled, event)
}

// InquiryErrored publishes an errored event.
func (p *Publisher) InquiryErrored(event InquiryEvent) {
	p.publish(SubjectInquiryErrored, event)
}

func (p *Publisher) publish(subject string, event InquiryEvent) {
	if p == nil || p.nc == nil {
		return
	}

	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to encode inquiry event")
		return
	}

	if err := p.nc.Publish(subject, payload); err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish inquiry event")
	}
}
