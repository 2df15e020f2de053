package review

import (
	"fmt"
	"strings"

	"github.com/sadopc/reflex/internal/summary"
)

// SystemPrompt is the coaching instruction sent with every review.
const SystemPrompt = "You are a productivity coach. Provide concise, actionable advice based on the user's daily work summary. Be encouraging but honest."

const closingInstruction = `

Analyze this day. Provide:
1. What went well
2. Areas for improvement
3. Specific suggestions for tomorrow
Keep it concise and actionable.`

// BuildPrompt renders a validated summary as the review prompt.
func BuildPrompt(s *summary.Summary) string {
	st := s.Stats
	var b strings.Builder

	b.WriteString("Today's work summary:\n")
	fmt.Fprintf(&b, "- Tasks completed: %d\n", st.CompletedTasks)
	fmt.Fprintf(&b, "- Tasks pending: %d\n", st.PendingTasks)
	fmt.Fprintf(&b, "- Focus sessions: %d (%d minutes total)\n", st.FocusSessions, st.TotalFocusTime)
	fmt.Fprintf(&b, "- Log entries: %d\n", st.LogEntries)
	b.WriteString("\nTasks:\n")

	if len(s.Tasks) == 0 {
		b.WriteString("- No tasks recorded today\n")
	}
	for _, t := range s.Tasks {
		glyph := "⏳"
		if t.Completed {
			glyph = "✅"
		}
		fmt.Fprintf(&b, "- %s %s\n", glyph, t.Text)
	}

	if len(s.Logs) > 0 {
		b.WriteString("\nWork log entries:\n")
		for _, l := range s.Logs {
			fmt.Fprintf(&b, "- %s\n", l.Entry)
		}
	}

	b.WriteString(closingInstruction)
	return b.String()
}
