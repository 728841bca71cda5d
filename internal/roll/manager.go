package roll

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/frippertronics/record-roll/internal/discogs"
	"github.com/frippertronics/record-roll/internal/http"
	ioutils "github.com/frippertronics/record-roll/internal/io"
	"github.com/frippertronics/record-roll/internal/model"
	"go.uber.org/zap"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a roll progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

var (
	// ErrGaveUp is returned when too many consecutive picks failed.
	ErrGaveUp = errors.New("no displayable record found")

	// ErrUnauthorized means the API rejected the token. Rolling again
	// cannot help.
	ErrUnauthorized = errors.New("discogs rejected the token")

	errNoRelease = errors.New("record has no release id")
)

// Picker chooses the next record.
type Picker interface {
	Pick() (model.Record, error)
}

// ReleaseFetcher resolves a release id to its primary image URI.
type ReleaseFetcher interface {
	FetchPrimaryImageURI(ctx context.Context, releaseID string) (string, error)
}

// ImageFetcher downloads and decodes an image.
type ImageFetcher interface {
	FetchImage(ctx context.Context, uri string) (*model.Artwork, error)
}

// Result is one successful roll.
type Result struct {
	Record  model.Record
	Artwork *model.Artwork

	// Attempts is how many records were picked to get this result.
	Attempts int
}

// Options tune the Manager's error policy.
type Options struct {
	// MaxRerolls is how many times a Roll may pick again after a failed
	// pick, so a Roll makes at most MaxRerolls+1 picks. Defaults to 10.
	MaxRerolls int

	// RequestAttempts is how often a single request is tried before the
	// pick is abandoned. Defaults to 2 (one retry).
	RequestAttempts int

	// RetryDelay is the pause before the first retry; it grows linearly.
	// Defaults to 400ms.
	RetryDelay time.Duration
}

// Manager runs rolls: pick a record, look up its primary image, download
// and decode it.
type Manager struct {
	picker   Picker
	releases ReleaseFetcher
	images   ImageFetcher
	opts     Options
	log      *zap.Logger

	onProgress func(ProgressEvent)
}

// NewManager creates a new roll Manager.
func NewManager(picker Picker, releases ReleaseFetcher, images ImageFetcher, opts Options, log *zap.Logger, onProgress func(ProgressEvent)) *Manager {
	if opts.MaxRerolls < 1 {
		opts.MaxRerolls = 10
	}
	if opts.RequestAttempts < 1 {
		opts.RequestAttempts = 2
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 400 * time.Millisecond
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		picker:     picker,
		releases:   releases,
		images:     images,
		opts:       opts,
		log:        log,
		onProgress: onProgress,
	}
}

// Roll picks records until one has a displayable primary image.
//
// Records without an image, with a malformed release document, or whose
// requests keep failing are skipped with a notice and a fresh record is
// picked. Each pick is independent; a failed record is never retried as a
// whole. Roll gives up with ErrGaveUp once MaxRerolls re-rolls failed too, and
// stops immediately on a rejected token, an empty catalog, or ctx
// cancellation.
func (m *Manager) Roll(ctx context.Context) (*Result, error) {
	var lastErr error
	picks := m.opts.MaxRerolls + 1
	for attempt := 1; attempt <= picks; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := m.picker.Pick()
		if err != nil {
			return nil, fmt.Errorf("pick record: %w", err)
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Picked %s (release %s)", rec.Caption(), rec.ReleaseID()), Level: LevelVerbose})

		art, err := m.fetch(ctx, rec)
		if err == nil {
			m.log.Info("roll complete",
				zap.String("caption", rec.Caption()),
				zap.String("release", rec.ReleaseID()),
				zap.String("image", art.URI),
				zap.Int("attempts", attempt))
			m.progress(ProgressEvent{Message: rec.Caption(), Level: LevelSuccess})
			return &Result{Record: rec, Artwork: art, Attempts: attempt}, nil
		}

		if !recoverable(ctx, err) {
			return nil, err
		}
		lastErr = err
		m.log.Warn("re-rolling", zap.String("release", rec.ReleaseID()), zap.Error(err))
		m.progress(ProgressEvent{Message: notice(err), Level: LevelWarning})
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrGaveUp, picks, lastErr)
}

func (m *Manager) fetch(ctx context.Context, rec model.Record) (*model.Artwork, error) {
	if rec.ReleaseID() == "" {
		return nil, errNoRelease
	}

	uri, err := withRetryResult(ctx, m, func() (string, error) {
		return m.releases.FetchPrimaryImageURI(ctx, rec.ReleaseID())
	})
	if err != nil {
		return nil, err
	}

	return withRetryResult(ctx, m, func() (*model.Artwork, error) {
		return m.images.FetchImage(ctx, uri)
	})
}

// withRetryResult tries fn up to RequestAttempts times. Only transient
// failures are retried: a missing image or a malformed document will not
// change on a second request.
func withRetryResult[T any](ctx context.Context, m *Manager, fn func() (T, error)) (T, error) {
	var zero T
	var err error
	for i := 1; i <= m.opts.RequestAttempts; i++ {
		value, callErr := fn()
		if callErr == nil {
			return value, nil
		}
		err = callErr
		if i == m.opts.RequestAttempts || !retryable(callErr) {
			break
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Retry %d/%d: %v", i, m.opts.RequestAttempts-1, callErr), Level: LevelVerbose})
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(time.Duration(i) * m.opts.RetryDelay):
		}
	}
	if isUnauthorized(err) {
		return zero, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return zero, err
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, discogs.ErrNoImage),
		errors.Is(err, discogs.ErrMalformedResponse),
		errors.Is(err, context.Canceled),
		isUnauthorized(err):
		return false
	}
	return true
}

func recoverable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, context.Canceled):
		return false
	}
	return true
}

func isUnauthorized(err error) bool {
	var statusErr *http.StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	return statusErr.StatusCode == nethttp.StatusUnauthorized || statusErr.StatusCode == nethttp.StatusForbidden
}

// notice is the short user-facing line for a skipped pick.
func notice(err error) string {
	switch {
	case errors.Is(err, discogs.ErrNoImage):
		return "No image! Re-rolling..."
	case errors.Is(err, errNoRelease):
		return "No release id! Re-rolling..."
	case errors.Is(err, discogs.ErrMalformedResponse):
		return "Bad release data! Re-rolling..."
	case errors.Is(err, ioutils.ErrDecode):
		return "Invalid image data! Re-rolling..."
	default:
		return fmt.Sprintf("Request failed (%v)! Re-rolling...", err)
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
