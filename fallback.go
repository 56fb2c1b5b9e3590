package datefmt

import "sync"

// FallbackResolver resolves fallback locale chains
type FallbackResolver interface {
	Resolve(locale string) []string
}

// StaticFallbackResolver keeps explicit fallback chains per locale.
type StaticFallbackResolver struct {
	mu     sync.RWMutex
	chains map[string][]string
}

var _ FallbackResolver = &StaticFallbackResolver{}

func NewStaticFallbackResolver() *StaticFallbackResolver {
	return &StaticFallbackResolver{chains: make(map[string][]string)}
}

// Set replaces the fallback chain for locale
func (s *StaticFallbackResolver) Set(locale string, fallbacks ...string) {
	if s == nil {
		return
	}
	locale = normalizeLocale(locale)
	if locale == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chains == nil {
		s.chains = make(map[string][]string)
	}

	chain := make([]string, 0, len(fallbacks))
	for _, fallback := range fallbacks {
		normalized := normalizeLocale(fallback)
		if normalized == "" || normalized == locale || containsLocale(chain, normalized) {
			continue
		}
		chain = append(chain, normalized)
	}
	s.chains[locale] = chain
}

func (s *StaticFallbackResolver) Resolve(locale string) []string {
	if s == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	chain, ok := s.chains[normalizeLocale(locale)]
	if !ok || len(chain) == 0 {
		return nil
	}
	return append([]string(nil), chain...)
}
