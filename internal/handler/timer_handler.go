package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Countdown configuration for the five minute craving timer. The
// countdown itself runs client side; the server owns the copy.
const (
	timerTotalSeconds          = 300
	timerPromptRotationSeconds = 30
)

// timerPrompts rotate beneath the countdown while it runs.
var timerPrompts = []string{
	"Observe the feeling without acting",
	"Breathe: 4 counts in, hold 4, 4 counts out",
	"This will pass",
	"You're doing great",
	"Notice where you feel it in your body",
	"Each second is a victory",
}

// GetTimer returns the countdown configuration with localized copy.
func (a *API) GetTimer(c *gin.Context) {
	lang := requestLanguage(c)

	prompts := make([]string, 0, len(timerPrompts))
	for _, prompt := range timerPrompts {
		prompts = append(prompts, a.translations.Lookup(lang, prompt))
	}

	c.JSON(http.StatusOK, gin.H{
		"total_seconds":           timerTotalSeconds,
		"prompt_rotation_seconds": timerPromptRotationSeconds,
		"prompts":                 prompts,
		"intro":                   a.translations.Lookup(lang, "Cravings typically pass within 3-5 minutes"),
		"complete":                a.translations.Lookup(lang, "The craving has passed. You are stronger than you think."),
	})
}
