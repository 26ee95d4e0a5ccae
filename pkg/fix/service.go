package fix

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/codemend/codemend/pkg/infra/engines"
	"github.com/codemend/codemend/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const defaultEngineTimeout = 5 * time.Second

// OutcomeRecorder receives the resolved strategy of every request. Recording
// is fire-and-forget; implementations must not block the fix path.
type OutcomeRecorder interface {
	Record(category Category, strategy Strategy, engine string, success bool)
}

// EngineLocator resolves a provider name to a generative backend client.
type EngineLocator interface {
	Get(provider string) (engines.Client, error)
}

// Config is the explicit configuration surface of the orchestrator. It is
// passed in rather than read from ambient global state.
type Config struct {
	PreferGenerative bool
	DefaultEngine    string
	EngineTimeout    time.Duration
	Engines          map[string]engines.Config
}

// Service reconciles the generative and deterministic rewriters: it tries
// the generative path when enabled, validates the sanitized candidate, and
// transparently falls back to the deterministic rule table on any failure.
type Service struct {
	logger   *logrus.Logger
	cfg      Config
	locator  EngineLocator
	recorder OutcomeRecorder

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

func NewService(
	logger *logrus.Logger,
	cfg Config,
	locator EngineLocator,
	recorder OutcomeRecorder,
) *Service {
	if cfg.EngineTimeout <= 0 {
		cfg.EngineTimeout = defaultEngineTimeout
	}
	return &Service{
		logger:   logger,
		cfg:      cfg,
		locator:  locator,
		recorder: recorder,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

// Fix resolves one request. The only error surfaced to callers is
// ErrNoFixAvailable (or ErrEmptySnippet for invalid input); every recoverable
// failure on the generative path is absorbed as a fallback transition.
func (s *Service) Fix(ctx context.Context, req Request) (*Outcome, error) {
	if strings.TrimSpace(req.Snippet) == "" {
		return nil, ErrEmptySnippet
	}

	if req.Category == "" || !KnownCategory(req.Category) {
		req.Category = Classify(req.Snippet)
	}
	if req.Engine == "" {
		req.Engine = s.cfg.DefaultEngine
	}

	if req.PreferGenerative && s.cfg.PreferGenerative {
		if generated, err := s.tryGenerative(ctx, req); err == nil {
			s.record(req, StrategyGenerative, true)
			return &Outcome{
				Request:         req,
				AppliedStrategy: StrategyGenerative,
				Text:            generated,
			}, nil
		} else {
			s.logger.WithFields(logrus.Fields{
				"category": req.Category,
				"engine":   req.Engine,
				"reason":   err.Error(),
			}).Info("fell back to deterministic fix")
			prometheus.FallbacksTotal.WithLabelValues(string(req.Category), fallbackReason(err)).Inc()
		}
	}

	text, ok := Rewrite(req.Snippet, req.Category)
	if !ok {
		s.record(req, StrategyDeterministic, false)
		return nil, ErrNoFixAvailable
	}

	s.record(req, StrategyDeterministic, true)
	return &Outcome{
		Request:         req,
		AppliedStrategy: StrategyDeterministic,
		Text:            text,
	}, nil
}

// tryGenerative runs the engine call, sanitization and validation. Any error
// return means "fall back"; the caller decides nothing beyond that.
func (s *Service) tryGenerative(ctx context.Context, req Request) (string, error) {
	engineCfg, ok := s.cfg.Engines[req.Engine]
	if !ok || !engineCfg.Available() {
		return "", ErrEngineUnavailable
	}

	client, err := s.locator.Get(engineCfg.Provider)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}

	prompt := BuildPrompt(req.Snippet, req.Category)

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.EngineTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.breakerFor(req.Engine).Execute(func() (interface{}, error) {
		return client.Ask(callCtx, &engineCfg, prompt.System, prompt.User)
	})
	prometheus.EngineLatency.WithLabelValues(req.Engine).
		Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return "", s.classifyEngineError(err)
	}

	resp, ok := result.(*engines.CompletionResponse)
	if !ok || resp == nil {
		return "", fmt.Errorf("%w: empty engine response", ErrTransport)
	}

	candidate := Sanitize(resp.Response, req.Snippet)
	if candidate == "" {
		return "", errors.New("no candidate line in engine reply")
	}

	verdict := Validate(req.Snippet, candidate, req.Category)
	if !verdict.Accepted {
		return "", &ValidationError{Reasons: verdict.Reasons}
	}
	return candidate, nil
}

func (s *Service) classifyEngineError(err error) error {
	switch {
	case errors.Is(err, engines.ErrNoCredentials),
		errors.Is(err, gobreaker.ErrOpenState),
		errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTransport, err)
	default:
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "401") || strings.Contains(msg, "unauthorized") {
			return fmt.Errorf("%w: %v", ErrAuth, err)
		}
		if strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit") {
			return fmt.Errorf("%w: %v", ErrQuota, err)
		}
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
}

func (s *Service) breakerFor(engine string) *gobreaker.CircuitBreaker {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cb, ok := s.breakers[engine]; ok {
		return cb
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    engine,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	s.breakers[engine] = cb
	return cb
}

func (s *Service) record(req Request, strategy Strategy, success bool) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(req.Category, strategy, req.Engine, success)
}

func fallbackReason(err error) string {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		return "validation_rejected"
	case errors.Is(err, ErrEngineUnavailable):
		return "engine_unavailable"
	case errors.Is(err, ErrAuth):
		return "auth_error"
	case errors.Is(err, ErrQuota):
		return "quota_exceeded"
	case errors.Is(err, ErrTransport):
		return "transport_error"
	default:
		return "empty_candidate"
	}
}
