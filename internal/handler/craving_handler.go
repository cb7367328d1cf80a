package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/cravelog/internal/db"
	"github.com/cravelog/internal/service"
	"github.com/gin-gonic/gin"
)

type cravingPayload struct {
	ClientRef string `json:"client_ref"`
	Timestamp string `json:"timestamp"` // RFC3339，为空时取当前时间
	Intensity int    `json:"intensity"`
	Outcome   string `json:"outcome"`
	Trigger   string `json:"trigger"`
	Location  string `json:"location"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
}

// ListCravings returns the user's logs ordered oldest first; the client
// reverses for display.
func (a *API) ListCravings(c *gin.Context) {
	logs, err := a.cravings.List(requestUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not load craving logs")
		return
	}

	items := make([]gin.H, 0, len(logs))
	for _, entry := range logs {
		items = append(items, serializeCravingLog(entry))
	}

	c.JSON(http.StatusOK, gin.H{"cravings": items})
}

// CreateCraving validates and stores one craving event, answering with
// the persisted record and a localized encouragement message.
func (a *API) CreateCraving(c *gin.Context) {
	var payload cravingPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	var timestamp time.Time
	if payload.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, payload.Timestamp)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid timestamp")
			return
		}
		timestamp = parsed
	}

	userID := requestUserID(c)
	entry, err := a.cravings.Create(userID, service.CravingLogInput{
		ClientRef: payload.ClientRef,
		Timestamp: timestamp,
		Intensity: payload.Intensity,
		Outcome:   payload.Outcome,
		Trigger:   payload.Trigger,
		Location:  payload.Location,
		Quantity:  payload.Quantity,
		Notes:     payload.Notes,
	})
	if err != nil {
		handleCravingError(c, err)
		return
	}

	lang := requestLanguage(c)
	message := ""
	if logs, listErr := a.cravings.List(userID); listErr == nil {
		summary := service.Resistance(logs)
		message = a.translations.Lookup(lang, service.EncouragementMessage(summary.Resisted, entry.Outcome))
	}

	c.JSON(http.StatusOK, gin.H{
		"craving": serializeCravingLog(*entry),
		"message": message,
	})
}

// DeleteCraving removes a log by its persisted id.
func (a *API) DeleteCraving(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid craving id")
		return
	}

	if err := a.cravings.Delete(requestUserID(c), id); err != nil {
		handleCravingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// DeleteCravingByRef removes a log by the client reference assigned at
// creation.
func (a *API) DeleteCravingByRef(c *gin.Context) {
	ref := c.Param("ref")

	if err := a.cravings.DeleteByClientRef(requestUserID(c), ref); err != nil {
		handleCravingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// GetCravingMetrics returns the score, the seven day trend and the
// expert booking prompt in one payload.
func (a *API) GetCravingMetrics(c *gin.Context) {
	logs, err := a.cravings.List(requestUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not load craving logs")
		return
	}

	summary := service.Resistance(logs)
	trend := service.SevenDayTrend(logs, time.Now())
	promptExpert := service.ShouldPromptExpert(logs)

	lang := requestLanguage(c)
	payload := gin.H{
		"resistance": gin.H{
			"resisted": summary.Resisted,
			"total":    summary.Total,
			"rate":     summary.Rate,
		},
		"trend":         serializeTrend(trend),
		"prompt_expert": promptExpert,
	}

	if promptExpert {
		bookingURL := ""
		if settings, settingsErr := a.settings.GetSettings(); settingsErr == nil {
			bookingURL = settings.BookingURL
		}
		payload["booking_url"] = bookingURL
		payload["booking_message"] = a.translations.Lookup(lang,
			"You've acted on your last 3 cravings. Let's talk about strategies.")
	}

	c.JSON(http.StatusOK, payload)
}

// ExportCravings streams the CSV history download.
func (a *API) ExportCravings(c *gin.Context) {
	logs, err := a.cravings.List(requestUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not load craving logs")
		return
	}

	body := service.ExportCSV(logs)
	c.Header("Content-Disposition", `attachment; filename="`+service.ExportFileName+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}

func serializeCravingLog(entry db.CravingLog) gin.H {
	item := gin.H{
		"id":              entry.ID,
		"client_ref":      entry.ClientRef,
		"timestamp":       entry.Timestamp.UTC().Format(time.RFC3339),
		"intensity":       entry.Intensity,
		"intensity_label": entry.IntensityLabel,
		"outcome":         entry.Outcome,
	}

	if entry.Trigger != "" {
		item["trigger"] = entry.Trigger
	}
	if entry.Location != "" {
		item["location"] = entry.Location
	}
	if entry.Quantity > 0 {
		item["quantity"] = entry.Quantity
	}
	if entry.Notes != "" {
		item["notes"] = entry.Notes
	}

	return item
}

func serializeTrend(trend []service.TrendDay) []gin.H {
	items := make([]gin.H, 0, len(trend))
	for _, day := range trend {
		items = append(items, gin.H{
			"date":    day.Date,
			"weekday": day.Weekday,
			"avg":     day.Avg,
		})
	}
	return items
}

func handleCravingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCravingNotFound):
		respondError(c, http.StatusNotFound, "craving log not found")
	case errors.Is(err, service.ErrInvalidIntensity):
		respondError(c, http.StatusBadRequest, "intensity must be between 1 and 10")
	case errors.Is(err, service.ErrInvalidOutcome):
		respondError(c, http.StatusBadRequest, "outcome must be resisted or smoked")
	case errors.Is(err, service.ErrUserRequired):
		respondError(c, http.StatusUnauthorized, "authentication required")
	default:
		respondError(c, http.StatusInternalServerError, "Could not save. Please try again.")
	}
}
