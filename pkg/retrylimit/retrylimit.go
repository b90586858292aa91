// Package retrylimit paces calls against the Discord REST API and retries the
// ones that failed for a reason that can go away.
//
//	lim := retrylimit.NewLimiter(5, 1, 20)
//	err := retrylimit.Do(ctx, lim, retrylimit.DefaultPolicy(), func() error {
//	    _, err := s.ApplicationCommandCreate(appID, guildID, cmd)
//	    return err
//	})
package retrylimit

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	throttleFactor = 0.5              // rate multiplier after a throttled call
	recovery       = 10 * time.Second // no growth for this long after a throttle
)

// Limiter is a token bucket whose rate drops when Discord pushes back and
// climbs one request per second per success once things calmed down.
type Limiter struct {
	mu        sync.Mutex
	bucket    *rate.Limiter
	floor     rate.Limit
	ceiling   rate.Limit
	throttled time.Time
}

// NewLimiter starts at start requests per second and stays in [floor, ceiling].
func NewLimiter(start, floor, ceiling rate.Limit) *Limiter {
	floor = max(floor, 1)
	ceiling = max(ceiling, floor)
	start = min(max(start, floor), ceiling)
	return &Limiter{
		bucket:  rate.NewLimiter(start, max(1, int(start))),
		floor:   floor,
		ceiling: ceiling,
	}
}

// Wait blocks until the next call may go out.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.bucket.Wait(ctx)
}

// Rate returns the current requests per second.
func (l *Limiter) Rate() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return float64(l.bucket.Limit())
}

func (l *Limiter) success() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if time.Since(l.throttled) > recovery {
		l.set(l.bucket.Limit() + 1)
	}
}

func (l *Limiter) throttle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.throttled = time.Now()
	l.set(l.bucket.Limit() * throttleFactor)
}

func (l *Limiter) set(r rate.Limit) {
	r = min(max(r, l.floor), l.ceiling)
	if r == l.bucket.Limit() {
		return
	}
	l.bucket.SetLimit(r)
	l.bucket.SetBurst(max(1, int(r)))
}

// Verdict says what to do after a failed call.
type Verdict int

const (
	// Retry after the backoff delay.
	Retry Verdict = iota
	// SlowDown retries too, after lowering the limiter rate.
	SlowDown
	// Stop gives up and returns the error.
	Stop
)

func (v Verdict) String() string {
	switch v {
	case Retry:
		return "retry"
	case SlowDown:
		return "slow down"
	case Stop:
		return "stop"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

// Classifier decides how a failed call is handled.
type Classifier func(err error) Verdict

// FatalError marks an error no retry can fix.
type FatalError struct {
	Err error
}

func (f *FatalError) Error() string { return f.Err.Error() }
func (f *FatalError) Unwrap() error { return f.Err }

// StatusCode returns the HTTP status of a Discord REST failure, or 0 when err
// did not come from a REST response. A rate limit discordgo gave up on
// reports 429.
func StatusCode(err error) int {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Response == nil {
			return 0
		}
		return restErr.Response.StatusCode
	}
	var limited *discordgo.RateLimitError
	if errors.As(err, &limited) {
		return http.StatusTooManyRequests
	}
	return 0
}

// retryAfter is the wait Discord asked for, or 0.
func retryAfter(err error) time.Duration {
	var limited *discordgo.RateLimitError
	if errors.As(err, &limited) && limited.RateLimit != nil && limited.TooManyRequests != nil {
		return limited.RetryAfter
	}
	return 0
}

// DiscordClassifier slows down on 429 and 5xx and stops on any other 4xx:
// a rejected payload or a missing permission does not change between two
// attempts. Errors without a status (network, timeouts) are retried.
func DiscordClassifier(err error) Verdict {
	var fatal *FatalError
	if errors.As(err, &fatal) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Stop
	}
	switch code := StatusCode(err); {
	case code == http.StatusTooManyRequests, code >= 500:
		return SlowDown
	case code >= 400:
		return Stop
	}
	return Retry
}

// Policy configures Do.
type Policy struct {
	MaxAttempts int           // at least one attempt is always made
	BaseDelay   time.Duration // wait after the first failure, doubled after each one
	MaxDelay    time.Duration
	Jitter      bool
	Classify    Classifier // nil means DiscordClassifier
	Logger      *zerolog.Logger
}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 5,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    10 * time.Second,
		Jitter:      true,
		Classify:    DiscordClassifier,
	}
}

func (p Policy) backoff(attempt int, err error) time.Duration {
	if d := retryAfter(err); d > 0 {
		return d
	}
	d := p.MaxDelay
	if shift := attempt - 1; shift < 32 {
		if grown := p.BaseDelay << shift; grown > 0 && grown < d {
			d = grown
		}
	}
	if p.Jitter && d >= 4 {
		d += time.Duration(rand.Int63n(int64(d / 4)))
	}
	return d
}

// Do calls fn until it succeeds, the classifier says Stop, ctx ends or the
// attempts run out. lim may be nil.
func Do(ctx context.Context, lim *Limiter, p Policy, fn func() error) error {
	classify := p.Classify
	if classify == nil {
		classify = DiscordClassifier
	}
	log := zerolog.Nop()
	if p.Logger != nil {
		log = *p.Logger
	}
	attempts := max(p.MaxAttempts, 1)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if lim != nil {
			if werr := lim.Wait(ctx); werr != nil {
				return werr
			}
		} else if cerr := ctx.Err(); cerr != nil {
			return cerr
		}

		if err = fn(); err == nil {
			if lim != nil {
				lim.success()
			}
			if attempt > 1 {
				log.Debug().Int("attempt", attempt).Msg("call succeeded after retry")
			}
			return nil
		}

		verdict := classify(err)
		if verdict == Stop {
			return err
		}
		if verdict == SlowDown && lim != nil {
			lim.throttle()
		}
		if attempt == attempts {
			break
		}

		wait := p.backoff(attempt, err)
		log.Warn().Err(err).
			Int("attempt", attempt).
			Stringer("verdict", verdict).
			Dur("wait", wait).
			Msg("call failed, retrying")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return fmt.Errorf("gave up after %d attempts: %w", attempts, err)
}
