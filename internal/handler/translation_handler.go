package handler

import (
	"net/http"

	"github.com/cravelog/internal/locale"
	"github.com/gin-gonic/gin"
)

type translationBatchPayload struct {
	Language string   `json:"language"`
	Texts    []string `json:"texts"`
}

// TranslateBatch answers best-effort translations for a batch of UI
// strings. Unresolved pairs come back as the source text and are listed
// under pending; the client re-polls to pick up upgrades once the
// background requests finish, instead of waiting for an unrelated
// re-render.
func (a *API) TranslateBatch(c *gin.Context) {
	var payload translationBatchPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	lang := locale.Normalize(payload.Language)
	if lang == "" {
		lang = requestLanguage(c)
	}

	translations := a.translations.LookupAll(lang, payload.Texts)

	pending := make([]string, 0)
	for _, text := range payload.Texts {
		if _, ok := a.translations.Resolved(lang, text); !ok {
			pending = append(pending, text)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"language":     lang,
		"translations": translations,
		"pending":      pending,
	})
}
