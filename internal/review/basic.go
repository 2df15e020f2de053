package review

import (
	"fmt"
	"strings"

	"github.com/sadopc/reflex/internal/summary"
)

const (
	basicTitle   = "📊 Daily Review"
	genericTitle = "📊 Basic Daily Review"
)

const genericTips = `📊 Unable to generate detailed review due to data issues.

💡 General suggestions:
- Set clear daily goals
- Use focus sessions for deep work
- Log your progress regularly
- Review and adjust your approach`

// BasicReview derives a rule-based review from s. It returns the panel title
// and body; an invalid summary yields the generic tips.
func BasicReview(s *summary.Summary) (title, body string) {
	if summary.Validate(s) != nil {
		return genericTitle, genericTips
	}
	st := s.Stats
	var b strings.Builder

	b.WriteString("📊 Basic Daily Review:\n\n")

	if st.CompletedTasks > 0 {
		fmt.Fprintf(&b, "✅ Great job completing %d task(s)!\n", st.CompletedTasks)
	} else {
		b.WriteString("⚠️ No tasks completed today. Consider breaking down large tasks into smaller ones.\n")
	}

	if st.FocusSessions > 0 {
		avg := float64(st.TotalFocusTime) / float64(st.FocusSessions)
		fmt.Fprintf(&b, "🎯 You had %d focus session(s) averaging %.1f minutes.\n", st.FocusSessions, avg)
		switch {
		case avg < 15:
			b.WriteString("💡 Try longer focus sessions (25+ minutes) for deeper work.\n")
		case avg > 45:
			b.WriteString("💡 Consider shorter sessions with breaks to maintain focus.\n")
		}
	} else {
		b.WriteString("⏰ No focus sessions logged. Try starting with 25-minute focused work blocks.\n")
	}

	if st.LogEntries > 0 {
		fmt.Fprintf(&b, "📝 You made %d log entries - great for reflection!\n", st.LogEntries)
	}

	b.WriteString("\n🔮 Tomorrow's focus:\n")
	if st.PendingTasks > 0 {
		fmt.Fprintf(&b, "- Complete %d pending task(s)\n", st.PendingTasks)
	}
	b.WriteString("- Start with a focus session\n- Log your progress regularly")

	return basicTitle, b.String()
}
