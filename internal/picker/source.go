package picker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultDebounce is the trailing-edge debounce window for remote queries.
const DefaultDebounce = 260 * time.Millisecond

// HintSelecioneUF is shown when the cidade picker is queried before its
// dependent UF control is set.
const HintSelecioneUF = "Selecione primeiro a UF"

// Fetcher performs the remote search. uf is empty for types without the
// dependency.
type Fetcher interface {
	Search(ctx context.Context, q, uf string) ([]Item, error)
}

// Source debounces queries against a Fetcher. Rapid keystrokes collapse
// into a single trailing request, and a new request cancels the previous
// one so a superseded response is never rendered.
type Source struct {
	fetch    Fetcher
	debounce time.Duration
	logger   *zap.Logger

	// ufProvider reads the dependent UF control; nil means no dependency.
	ufProvider func() string

	onResults func([]Item)
	onHint    func(string)

	mu       sync.Mutex
	pending  string
	timer    *time.Timer
	inflight context.CancelFunc
	gen      uint64
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithDebounce overrides the debounce window.
func WithDebounce(d time.Duration) SourceOption {
	return func(s *Source) { s.debounce = d }
}

// WithUFDependency makes queries depend on a UF read from fn. An unset
// dependency produces a hint instead of a request.
func WithUFDependency(fn func() string) SourceOption {
	return func(s *Source) { s.ufProvider = fn }
}

// WithSourceLogger sets the source's logger.
func WithSourceLogger(logger *zap.Logger) SourceOption {
	return func(s *Source) { s.logger = logger }
}

// NewSource creates a debounced remote source. onResults receives the
// items of the latest non-superseded response; onHint receives dependency
// hints. Either callback may be nil.
func NewSource(fetch Fetcher, onResults func([]Item), onHint func(string), opts ...SourceOption) *Source {
	s := &Source{
		fetch:     fetch,
		debounce:  DefaultDebounce,
		logger:    zap.NewNop(),
		onResults: onResults,
		onHint:    onHint,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Query schedules a search for q on the trailing edge of the debounce
// window. Calls within the window replace the pending query.
func (s *Source) Query(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = q
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.run)
}

// Close stops the pending timer and cancels any in-flight request.
func (s *Source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	if s.inflight != nil {
		s.inflight()
		s.inflight = nil
	}
}

func (s *Source) run() {
	s.mu.Lock()
	q := s.pending

	var uf string
	if s.ufProvider != nil {
		uf = s.ufProvider()
		if uf == "" {
			hint := s.onHint
			s.mu.Unlock()
			if hint != nil {
				hint(HintSelecioneUF)
			}
			return
		}
	}

	if s.inflight != nil {
		s.inflight()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.inflight = cancel
	s.gen++
	launched := s.gen
	s.mu.Unlock()

	go func() {
		items, err := s.fetch.Search(ctx, q, uf)

		s.mu.Lock()
		superseded := launched != s.gen
		if !superseded {
			s.inflight = nil
		}
		s.mu.Unlock()

		if superseded {
			return
		}
		if err != nil {
			s.logger.Error("autocomplete search failed",
				zap.String("q", q),
				zap.Error(err))
			return
		}
		if s.onResults != nil {
			s.onResults(items)
		}
	}()
}
