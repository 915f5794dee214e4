package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Result is the outcome of Service.Translate. Text is always usable: it
// is the translation on success and the original text otherwise. Err is
// set to a *Error when the translation fell back.
type Result struct {
	Text       string
	Translated bool
	Err        error
}

// Service guards a Translator with caching, rate limiting and a circuit
// breaker
type Service struct {
	backend Translator
	cache   *TranslationCache
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration

	// backendErr explains a missing backend
	backendErr error
}

// NewService wraps backend. A nil backend makes Translate a pass-through.
func NewService(backend Translator, config *Config) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	defaults := DefaultConfig()

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaults.Timeout
	}
	rpm := config.RequestsPerMinute
	if rpm <= 0 {
		rpm = defaults.RequestsPerMinute
	}
	threshold := config.FailureThreshold
	if threshold == 0 {
		threshold = defaults.FailureThreshold
	}
	cooldown := config.CooldownPeriod
	if cooldown <= 0 {
		cooldown = defaults.CooldownPeriod
	}

	name := "none"
	if backend != nil {
		name = backend.Name()
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "translation-" + name,
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info("translation circuit breaker", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Service{
		backend: backend,
		cache:   NewTranslationCache(),
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
		breaker: breaker,
		timeout: timeout,
	}
}

// Name returns the backend name
func (s *Service) Name() string {
	if s.backend == nil {
		return "none"
	}
	return s.backend.Name()
}

// SetBackendError records why the backend could not be set up. It is
// reported by every translation request while no backend is configured.
func (s *Service) SetBackendError(err error) {
	s.backendErr = err
}

// Translate translates text, never failing hard. When the source and
// destination languages match the text is returned unchanged without a
// remote call. Without a backend the text is returned unchanged together
// with a recoverable *Error.
func (s *Service) Translate(ctx context.Context, text, sourceLang, destLang string) Result {
	if strings.EqualFold(sourceLang, destLang) || strings.TrimSpace(text) == "" {
		return Result{Text: text}
	}

	if s.backend == nil {
		cause := ErrNoBackend
		if s.backendErr != nil {
			cause = fmt.Errorf("%w: %w", ErrNoBackend, s.backendErr)
		}
		return Result{Text: text, Err: &Error{Backend: "none", SourceLang: sourceLang, DestLang: destLang, Err: cause}}
	}

	if cached, ok := s.cache.Get(text, sourceLang, destLang); ok {
		return Result{Text: cached, Translated: true}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.breaker.Execute(func() (interface{}, error) {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		translated, err := s.backend.Translate(ctx, text, sourceLang, destLang)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(translated) == "" {
			return nil, errors.New("empty translation")
		}
		return translated, nil
	})
	if err != nil {
		terr := &Error{Backend: s.backend.Name(), SourceLang: sourceLang, DestLang: destLang, Err: err}
		log.Warn("translation failed, using original text", "err", terr)
		return Result{Text: text, Err: terr}
	}

	translated := strings.TrimSpace(out.(string))
	s.cache.Add(text, sourceLang, destLang, translated)
	return Result{Text: translated, Translated: true}
}
