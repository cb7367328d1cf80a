package handler

import (
	"net/http"
	"strings"

	"github.com/cravelog/internal/db"
	"github.com/cravelog/internal/locale"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys. The user id is the Go analog of the SPA's
// sessionStorage eap_user_id; the language mirrors app_language.
const (
	sessionUserIDKey   = "user_id"
	sessionLanguageKey = "app_language"
)

// Bootstrap resolves the session identity for a page load. A returning
// session passes straight through; otherwise a one-time token query
// parameter is exchanged for a user id, the user row is ensured and the
// browser is redirected to the same URL with the token stripped. Any
// exchange failure redirects to the token acquisition page with no retry
// and no partial state.
func (a *API) Bootstrap(c *gin.Context) {
	session := sessions.Default(c)

	if lang := locale.Normalize(c.Query("lang")); lang != "" {
		session.Set(sessionLanguageKey, lang)
	}

	if userID := currentUserID(session); userID != 0 {
		session.Save()
		c.JSON(http.StatusOK, gin.H{
			"user_id":  userID,
			"language": requestLanguage(c),
		})
		return
	}

	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		c.Redirect(http.StatusFound, a.tokenPageURL)
		return
	}

	userID, err := a.auth.ExchangeToken(c.Request.Context(), token)
	if err != nil {
		c.Redirect(http.StatusFound, a.tokenPageURL)
		return
	}

	if err := db.EnsureUser(userID); err != nil {
		c.Redirect(http.StatusFound, a.tokenPageURL)
		return
	}

	session.Set(sessionUserIDKey, userID)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "could not save session")
		return
	}

	c.Redirect(http.StatusFound, strippedTokenURL(c))
}

// Logout clears the session and sends the user back to the token page.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, a.tokenPageURL)
}

// AuthRequired rejects API calls that carry no session identity.
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUserID(sessions.Default(c)) == 0 {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// strippedTokenURL rebuilds the request URL without the consumed token.
func strippedTokenURL(c *gin.Context) string {
	u := *c.Request.URL
	query := u.Query()
	query.Del("token")
	u.RawQuery = query.Encode()
	if u.Path == "" {
		u.Path = "/"
	}
	return u.RequestURI()
}

// currentUserID reads the session identity, tolerating the integer types
// the session codec may hand back.
func currentUserID(session sessions.Session) uint {
	switch v := session.Get(sessionUserIDKey).(type) {
	case uint:
		return v
	case int:
		if v > 0 {
			return uint(v)
		}
	case int64:
		if v > 0 {
			return uint(v)
		}
	case uint64:
		return uint(v)
	case float64:
		if v > 0 {
			return uint(v)
		}
	}
	return 0
}

func requestUserID(c *gin.Context) uint {
	return currentUserID(sessions.Default(c))
}
