package handler

import (
	"net/http"

	"github.com/cravelog/internal/locale"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// ListLanguages returns the closed language set for the selector.
func (a *API) ListLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"default":   locale.DefaultLanguage,
		"selected":  requestLanguage(c),
		"languages": locale.Supported,
	})
}

// SetLanguage persists the chosen language in the session.
func (a *API) SetLanguage(c *gin.Context) {
	var payload struct {
		Language string `json:"language"`
	}
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	lang := locale.Normalize(payload.Language)
	if lang == "" {
		respondError(c, http.StatusBadRequest, "unsupported language")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionLanguageKey, lang)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "could not save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"language": lang, "label": locale.LabelFor(lang)})
}

// requestLanguage resolves the display language for a request: an
// explicit lang query parameter wins, then the session choice, then the
// default.
func requestLanguage(c *gin.Context) string {
	if lang := locale.Normalize(c.Query("lang")); lang != "" {
		return lang
	}

	session := sessions.Default(c)
	if stored, ok := session.Get(sessionLanguageKey).(string); ok {
		if lang := locale.Normalize(stored); lang != "" {
			return lang
		}
	}

	return locale.DefaultLanguage
}
