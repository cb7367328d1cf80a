package service

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
)

type fakeDoer struct {
	mu      sync.Mutex
	calls   int
	lastURL string
	lastReq string

	status  int
	body    string
	err     error
	release chan struct{}
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	f.calls++
	f.lastURL = req.URL.String()
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		f.lastReq = string(raw)
	}
	f.mu.Unlock()

	if f.release != nil {
		<-f.release
	}

	if f.err != nil {
		return nil, f.err
	}

	status := f.status
	if status == 0 {
		status = http.StatusOK
	}

	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(f.body)),
	}, nil
}

func (f *fakeDoer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func pendingChannel(t *testing.T, svc *TranslationService, lang, text string) chan struct{} {
	t.Helper()
	svc.mu.Lock()
	defer svc.mu.Unlock()
	done, ok := svc.inflight[cacheKey(lang, text)]
	if !ok {
		t.Fatal("expected an in-flight entry")
	}
	return done
}

func TestLookupDeduplicatesInFlightRequests(t *testing.T) {
	doer := &fakeDoer{
		body:    `{"data":{"translations":[{"translatedText":"hola"}]}}`,
		release: make(chan struct{}),
	}

	svc := NewTranslationService("test-key")
	svc.SetHTTPClient(doer)

	// Both calls land before the request resolves: source text both times.
	if got := svc.Lookup("es", "Hello"); got != "Hello" {
		t.Fatalf("expected source fallback, got %q", got)
	}
	if got := svc.Lookup("es", "Hello"); got != "Hello" {
		t.Fatalf("expected source fallback, got %q", got)
	}

	done := pendingChannel(t, svc, "es", "Hello")
	close(doer.release)
	<-done

	if doer.callCount() != 1 {
		t.Fatalf("expected exactly one network call, got %d", doer.callCount())
	}

	if got := svc.Lookup("es", "Hello"); got != "hola" {
		t.Fatalf("expected cached translation, got %q", got)
	}
	if doer.callCount() != 1 {
		t.Fatalf("resolved lookup must not issue a new call, got %d", doer.callCount())
	}

	if !strings.Contains(doer.lastURL, "key=test-key") {
		t.Fatalf("expected credential in query, got %s", doer.lastURL)
	}
	if !strings.Contains(doer.lastReq, `"target":"es"`) || !strings.Contains(doer.lastReq, `"source":"en"`) {
		t.Fatalf("unexpected request body: %s", doer.lastReq)
	}
}

func TestLookupSkipsNetworkForDefaultLanguageAndMissingKey(t *testing.T) {
	doer := &fakeDoer{body: `{}`}

	svc := NewTranslationService("test-key")
	svc.SetHTTPClient(doer)

	if got := svc.Lookup("en", "Hello"); got != "Hello" {
		t.Fatalf("expected source for default language, got %q", got)
	}
	if got := svc.Lookup("zh", "Hello"); got != "Hello" {
		t.Fatalf("expected source for unsupported language, got %q", got)
	}

	unkeyed := NewTranslationService("")
	unkeyed.SetHTTPClient(doer)
	if got := unkeyed.Lookup("es", "Hello"); got != "Hello" {
		t.Fatalf("expected source without credential, got %q", got)
	}

	if doer.callCount() != 0 {
		t.Fatalf("expected no network calls, got %d", doer.callCount())
	}

	// Without a credential the source text is final, never pending.
	if _, ok := unkeyed.Resolved("es", "Hello"); !ok {
		t.Fatal("expected Resolved to report final without credential")
	}
}

func TestLookupFailureLeavesPairRetriable(t *testing.T) {
	doer := &fakeDoer{
		status:  http.StatusForbidden,
		body:    `{"error":{"message":"quota"}}`,
		release: make(chan struct{}),
	}

	svc := NewTranslationService("test-key")
	svc.SetHTTPClient(doer)

	if got := svc.Lookup("fr", "Hello"); got != "Hello" {
		t.Fatalf("expected source fallback, got %q", got)
	}
	done := pendingChannel(t, svc, "fr", "Hello")
	close(doer.release)
	<-done

	if _, ok := svc.Resolved("fr", "Hello"); ok {
		t.Fatal("failed request must not populate the cache")
	}

	// The next lookup with the same pair retries.
	doer.status = http.StatusOK
	doer.body = `{"data":{"translations":[{"translatedText":"Bonjour"}]}}`
	doer.release = make(chan struct{})

	if got := svc.Lookup("fr", "Hello"); got != "Hello" {
		t.Fatalf("expected source fallback during retry, got %q", got)
	}
	done = pendingChannel(t, svc, "fr", "Hello")
	close(doer.release)
	<-done

	if doer.callCount() != 2 {
		t.Fatalf("expected retry to issue a second call, got %d", doer.callCount())
	}

	translated, ok := svc.Resolved("fr", "Hello")
	if !ok || translated != "Bonjour" {
		t.Fatalf("expected resolved translation, got %q (%v)", translated, ok)
	}
}

func TestLookupAllKeysBySourceText(t *testing.T) {
	svc := NewTranslationService("")

	texts := []string{"History", "Export"}
	result := svc.LookupAll("es", texts)

	if len(result) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result))
	}
	for _, text := range texts {
		if result[text] != text {
			t.Fatalf("expected identity mapping for %q, got %q", text, result[text])
		}
	}
}
