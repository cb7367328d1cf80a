package service

import (
	"fmt"
	"math"
	"time"

	"github.com/cravelog/internal/db"
)

const dateFormat = "2006-01-02"

// ResistanceSummary aggregates outcome counts for the score display.
type ResistanceSummary struct {
	Resisted int
	Total    int
	Rate     int
}

// Resistance computes the resisted count and restraint rate over a log
// sequence. Rate is a rounded percentage, 0 when there are no logs.
func Resistance(logs []db.CravingLog) ResistanceSummary {
	total := len(logs)
	resisted := 0
	for _, entry := range logs {
		if entry.Outcome == db.OutcomeResisted {
			resisted++
		}
	}

	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(resisted) / float64(total) * 100))
	}

	return ResistanceSummary{Resisted: resisted, Total: total, Rate: rate}
}

// TrendDay is one calendar day in the seven day intensity trend.
type TrendDay struct {
	Date    string
	Weekday string
	Avg     int
}

// SevenDayTrend buckets logs by calendar date for the seven days ending
// at now, oldest first. Matching is by local date truncation, not a
// rolling 24 hour window; a day without logs averages 0.
func SevenDayTrend(logs []db.CravingLog, now time.Time) []TrendDay {
	days := make([]TrendDay, 0, 7)

	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := day.Format(dateFormat)

		sum, count := 0, 0
		for _, entry := range logs {
			if entry.Timestamp.In(now.Location()).Format(dateFormat) == key {
				sum += entry.Intensity
				count++
			}
		}

		avg := 0
		if count > 0 {
			avg = int(math.Round(float64(sum) / float64(count)))
		}

		days = append(days, TrendDay{Date: key, Weekday: day.Format("Mon"), Avg: avg})
	}

	return days
}

// ShouldPromptExpert reports whether the user acted on their last three
// cravings. Any resisted outcome among them suppresses the booking
// prompt; fewer than three logs never prompt.
func ShouldPromptExpert(logs []db.CravingLog) bool {
	if len(logs) < 3 {
		return false
	}

	for _, entry := range logs[len(logs)-3:] {
		if entry.Outcome != db.OutcomeSmoked {
			return false
		}
	}

	return true
}

// EncouragementMessage picks the feedback line shown after a log is
// saved. resistedCount already includes the log just written.
func EncouragementMessage(resistedCount int, outcome string) string {
	if outcome == db.OutcomeResisted {
		if resistedCount == 1 {
			return "First craving resisted! 🎉"
		}
		return fmt.Sprintf("That's %d cravings resisted! 💪", resistedCount)
	}
	return "Logged. Cravings pass within 3-5 minutes — the timer can help next time 🕐"
}
