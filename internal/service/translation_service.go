package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cravelog/internal/locale"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type translateRequest struct {
	Q      string `json:"q"`
	Target string `json:"target"`
	Source string `json:"source"`
	Format string `json:"format"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// TranslationService caches machine translations of fixed UI copy.
// Lookup never blocks: a cache miss answers with the English source and
// kicks off one background request per (language, text) pair; the cache
// is unbounded and lives for the process, which is acceptable because the
// string set is fixed UI copy. One instance is constructed per
// application and shared by reference so tests can reset it.
type TranslationService struct {
	mu       sync.Mutex
	cache    map[string]string
	inflight map[string]chan struct{}

	http    httpDoer
	apiKey  string
	baseURL string
}

// NewTranslationService constructs a TranslationService. An empty apiKey
// disables translation: every lookup returns the source text.
func NewTranslationService(apiKey string) *TranslationService {
	return &TranslationService{
		cache:    make(map[string]string),
		inflight: make(map[string]chan struct{}),
		http:     &http.Client{Timeout: 10 * time.Second},
		apiKey:   strings.TrimSpace(apiKey),
		baseURL:  "https://translation.googleapis.com/language/translate/v2",
	}
}

// SetHTTPClient replaces the HTTP client used for the translation
// endpoint, mainly for tests.
func (s *TranslationService) SetHTTPClient(client httpDoer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if client == nil {
		s.http = &http.Client{Timeout: 10 * time.Second}
		return
	}
	s.http = client
}

// SetBaseURL overrides the translation endpoint, for tests or a proxy.
func (s *TranslationService) SetBaseURL(base string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

// SetAPIKey replaces the service credential, used when an operator
// override from system settings takes precedence over the environment.
func (s *TranslationService) SetAPIKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = strings.TrimSpace(key)
}

func cacheKey(target, text string) string {
	return target + "\x00" + text
}

// Lookup returns a best-effort display string without blocking. The
// default language, an unsupported code, an empty credential or an empty
// text short-circuit to the source with no network call. A resolved pair
// answers from the cache; otherwise the source comes back immediately
// while at most one background request per pair resolves the translation
// for later lookups. A failed request leaves the pair retriable.
func (s *TranslationService) Lookup(lang, text string) string {
	target := locale.Normalize(lang)
	if target == "" || target == locale.DefaultLanguage || text == "" {
		return text
	}

	key := cacheKey(target, text)

	s.mu.Lock()
	if s.apiKey == "" {
		s.mu.Unlock()
		return text
	}
	if translated, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return translated
	}
	if _, pending := s.inflight[key]; !pending {
		done := make(chan struct{})
		s.inflight[key] = done
		go s.resolve(target, text, key, done)
	}
	s.mu.Unlock()

	return text
}

// LookupAll answers a batch of lookups in one pass, keyed by source text.
func (s *TranslationService) LookupAll(lang string, texts []string) map[string]string {
	result := make(map[string]string, len(texts))
	for _, text := range texts {
		result[text] = s.Lookup(lang, text)
	}
	return result
}

// Resolved reports whether a pair already has a cached translation. It is
// the polling re-query for callers that rendered the source fallback and
// want to pick up the upgrade later.
func (s *TranslationService) Resolved(lang, text string) (string, bool) {
	target := locale.Normalize(lang)
	if target == "" || target == locale.DefaultLanguage {
		return text, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.apiKey == "" {
		// Without a credential the source text is final.
		return text, true
	}
	translated, ok := s.cache[cacheKey(target, text)]
	if !ok {
		return text, false
	}
	return translated, true
}

func (s *TranslationService) resolve(target, text, key string, done chan struct{}) {
	defer close(done)

	translated, err := s.translate(context.Background(), target, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, key)
	if err != nil || strings.TrimSpace(translated) == "" {
		// Dropped on purpose: the next lookup with the same pair retries.
		return
	}
	s.cache[key] = translated
}

func (s *TranslationService) translate(ctx context.Context, target, text string) (string, error) {
	s.mu.Lock()
	client := s.http
	apiKey := s.apiKey
	base := s.baseURL
	s.mu.Unlock()

	if client == nil {
		client = http.DefaultClient
	}

	body, err := json.Marshal(translateRequest{
		Q:      text,
		Target: target,
		Source: locale.DefaultLanguage,
		Format: "text",
	})
	if err != nil {
		return "", fmt.Errorf("build translate request: %w", err)
	}

	endpoint := base + "?key=" + url.QueryEscape(apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "cravelog/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request translate endpoint: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read translate response: %w", err)
	}

	var decoded translateResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", fmt.Errorf("parse translate response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		msg := strings.TrimSpace(decoded.Error.Message)
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("translate endpoint error: %s", msg)
	}

	if len(decoded.Data.Translations) == 0 {
		return "", fmt.Errorf("translate endpoint returned no result")
	}

	return decoded.Data.Translations[0].TranslatedText, nil
}
