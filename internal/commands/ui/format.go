package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/austiecodes/promptrec/internal/types"
)

// Level buckets a normalized score for highlighting.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// HighlightLevel returns high for scores >= 0.75, medium for >= 0.5,
// otherwise low.
func HighlightLevel(score float64) Level {
	switch {
	case score >= 0.75:
		return LevelHigh
	case score >= 0.5:
		return LevelMedium
	}
	return LevelLow
}

// Style returns the foreground style for l.
func (l Level) Style() lipgloss.Style {
	switch l {
	case LevelHigh:
		return HighStyle
	case LevelMedium:
		return MediumStyle
	}
	return LowStyle
}

// FormatNumber renders f with three decimals.
func FormatNumber(f float64) string {
	return fmt.Sprintf("%.3f", f)
}

// FeatureLabel turns a known feature name into a title-cased label,
// e.g. "time_elapsed_since_added" becomes "Time Elapsed Since Added".
// Unknown features are returned as is.
func FeatureLabel(f types.Feature) string {
	if !f.IsKnown() {
		return string(f)
	}
	words := strings.Split(string(f), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// FormatElapsed renders a duration in seconds as "D day HH:MM:SS".
func FormatElapsed(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int64(seconds)
	days := total / 86400
	rem := total % 86400
	return fmt.Sprintf("%d day %02d:%02d:%02d", days, rem/3600, (rem%3600)/60, rem%60)
}

// FormatDate renders epoch seconds as "Jan-02-2006" in local time.
func FormatDate(epoch float64) string {
	sec, frac := math.Modf(epoch)
	return time.Unix(int64(sec), int64(frac*1e9)).Format("Jan-02-2006")
}

// FeatureValue renders the value column for one contribution. The time
// feature shows the elapsed time the recommender reported, or the age
// computed from the creation timestamp.
func FeatureValue(s types.WeightedSuggestion, ct types.Contribution) string {
	if ct.Feature == types.FeatureTimeElapsed {
		if s.TimeElapsed != "" {
			return s.TimeElapsed
		}
		if s.Timestamp > 0 {
			return FormatElapsed(float64(time.Now().Unix()) - s.Timestamp)
		}
	}
	return FormatNumber(ct.Value)
}

// ContributionTable renders the per-feature breakdown of s with a final
// score row. Rows are colored by their score level.
func ContributionTable(s types.WeightedSuggestion) string {
	rows := make([][]string, 0, len(s.Contributions)+1)
	levels := make([]Level, 0, len(s.Contributions))
	for _, ct := range s.Contributions {
		rows = append(rows, []string{
			FeatureLabel(ct.Feature),
			FeatureValue(s, ct),
			FormatNumber(ct.Score),
			FormatNumber(ct.Weight),
			FormatNumber(ct.Contribution),
		})
		levels = append(levels, HighlightLevel(ct.Score))
	}
	rows = append(rows, []string{"Final Score", "", "", "", FormatNumber(s.WeightedScore)})

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(HelpStyle).
		Headers("Feature", "Value", "Score", "Weight", "Contribution").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return base.Inherit(InputLabelStyle)
			case row < len(levels):
				return base.Inherit(levels[row].Style())
			}
			return base.Bold(true)
		})
	return t.String()
}

// RenderMessage styles fenced ``` code segments in text with CodeStyle.
// The rest of the text, including any markup, is left verbatim.
func RenderMessage(text string) string {
	parts := strings.Split(text, "```")
	if len(parts) < 3 {
		return text
	}
	var sb strings.Builder
	for i, part := range parts {
		if i%2 == 1 && i < len(parts)-1 {
			sb.WriteString(CodeStyle.Render(strings.Trim(part, "\n")))
			continue
		}
		if i%2 == 1 {
			// unterminated fence
			sb.WriteString("```")
		}
		sb.WriteString(part)
	}
	return sb.String()
}
