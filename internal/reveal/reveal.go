// Package reveal replays an already-complete answer as a timed word
// stream. It is purely cosmetic: the authoritative text is known in
// full before the first increment is emitted, so interrupting a stream
// never loses content.
package reveal

import (
	"context"
	"math/rand"
	"time"
)

// Default inter-word delay window.
const (
	DefaultMinDelay = 30 * time.Millisecond
	DefaultMaxDelay = 60 * time.Millisecond
)

// Options tune the pacing of a stream.
type Options struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

func (o Options) normalized() Options {
	if o.MinDelay <= 0 {
		o.MinDelay = DefaultMinDelay
	}
	if o.MaxDelay < o.MinDelay {
		o.MaxDelay = DefaultMaxDelay
	}
	if o.MaxDelay < o.MinDelay {
		o.MaxDelay = o.MinDelay
	}
	return o
}

// Increments splits text into word increments. Each increment carries
// exactly one whitespace-delimited word plus the separator that
// preceded it, so concatenating all increments in order reproduces the
// input byte for byte.
func Increments(text string) []string {
	var increments []string
	start := 0
	inWord := false

	for i := 0; i < len(text); i++ {
		isSpace := text[i] == ' ' || text[i] == '\t' || text[i] == '\n' || text[i] == '\r'
		if inWord && isSpace {
			increments = append(increments, text[start:i])
			start = i
			inWord = false
		} else if !inWord && !isSpace {
			inWord = true
		}
	}

	if start < len(text) {
		rest := text[start:]
		if inWord || len(increments) == 0 {
			// Trailing word, or whitespace-only input.
			if !inWord && len(increments) == 0 {
				return nil
			}
			increments = append(increments, rest)
		} else {
			// Trailing whitespace folds into the last word.
			increments[len(increments)-1] += rest
		}
	}

	return increments
}

// Stream emits the increments of text on the returned channel, pausing
// a uniformly random duration within the configured window before each
// word. The channel closes once the full text has been sent or ctx is
// cancelled; after cancellation no further increments are delivered.
func Stream(ctx context.Context, text string, opts Options) <-chan string {
	opts = opts.normalized()
	out := make(chan string)

	go func() {
		defer close(out)

		spread := int64(opts.MaxDelay - opts.MinDelay)
		timer := time.NewTimer(0)
		defer timer.Stop()
		if !timer.Stop() {
			<-timer.C
		}

		for _, increment := range Increments(text) {
			delay := opts.MinDelay
			if spread > 0 {
				delay += time.Duration(rand.Int63n(spread + 1))
			}
			timer.Reset(delay)

			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			select {
			case <-ctx.Done():
				return
			case out <- increment:
			}
		}
	}()

	return out
}
