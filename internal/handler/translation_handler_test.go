package handler

import (
	"net/http"
	"testing"
)

func TestTranslateBatchWithoutCredential(t *testing.T) {
	_, engine, cleanup := setupTestAPI(t)
	defer cleanup()

	cookies := loginAs(t, engine, 1)

	// No translate key configured: source text is final, nothing pends.
	w := doJSON(engine, http.MethodPost, "/api/translations", map[string]any{
		"language": "es",
		"texts":    []string{"History", "Export CSV"},
	}, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeBody(t, w)
	if resp["language"] != "es" {
		t.Fatalf("expected language es, got %v", resp["language"])
	}

	translations, _ := resp["translations"].(map[string]any)
	if translations["History"] != "History" || translations["Export CSV"] != "Export CSV" {
		t.Fatalf("expected identity fallback, got %v", translations)
	}

	pending, _ := resp["pending"].([]any)
	if len(pending) != 0 {
		t.Fatalf("expected nothing pending without credential, got %v", pending)
	}
}

func TestTranslateBatchFallsBackToSessionLanguage(t *testing.T) {
	_, engine, cleanup := setupTestAPI(t)
	defer cleanup()

	cookies := loginAs(t, engine, 1)
	set := doJSON(engine, http.MethodPut, "/api/language", map[string]any{"language": "ta"}, cookies)
	if set.Code != http.StatusOK {
		t.Fatalf("failed to set language: %d", set.Code)
	}

	w := doJSON(engine, http.MethodPost, "/api/translations", map[string]any{
		"texts": []string{"History"},
	}, set.Result().Cookies())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := decodeBody(t, w)["language"]; got != "ta" {
		t.Fatalf("expected session language ta, got %v", got)
	}
}
