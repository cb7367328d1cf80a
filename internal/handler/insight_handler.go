package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetInsights returns cross-tracker observations for the user. Trackers
// without data, or trackers whose probe failed, simply do not appear.
func (a *API) GetInsights(c *gin.Context) {
	lang := requestLanguage(c)
	insights := a.insights.ForUser(requestUserID(c))

	items := make([]gin.H, 0, len(insights))
	for _, insight := range insights {
		items = append(items, gin.H{
			"source": insight.Source,
			"icon":   insight.Icon,
			"text":   a.translations.Lookup(lang, insight.Text),
			"html":   insight.HTML,
		})
	}

	c.JSON(http.StatusOK, gin.H{"insights": items})
}
