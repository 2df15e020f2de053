package review

import (
	"fmt"
	"io"

	"github.com/sadopc/reflex/internal/ai"
	"github.com/sadopc/reflex/internal/tui"
)

// ListProviders writes the provider report: what is available, the status of
// every supported backend, how to configure them and the current default.
func ListProviders(w io.Writer, m *ai.Manager) {
	available := m.Available()

	fmt.Fprintln(w, tui.Title("Available AI Providers:"))
	if len(available) == 0 {
		fmt.Fprintln(w, tui.Error("No providers configured"))
	}
	for _, name := range available {
		fmt.Fprintf(w, "✅ %s\n", name)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, tui.Title("Supported Providers:"))
	for _, name := range ai.KnownProviders {
		fmt.Fprintf(w, "%s %s\n", statusGlyph(m.IsAvailable(name)), name)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, tui.Title("Configuration:"))
	fmt.Fprintln(w, "• OpenAI: Set OPENAI_API_KEY")
	fmt.Fprintln(w, "• Anthropic: Set ANTHROPIC_API_KEY")
	fmt.Fprintln(w, "• Gemini: Set GEMINI_API_KEY")
	fmt.Fprintln(w, "• Ollama: Install Ollama locally (OLLAMA_SERVER_URL to override the address)")

	fmt.Fprintln(w)
	switch d := m.DefaultName(); {
	case d == "":
		fmt.Fprintln(w, tui.Muted("No default provider set in .env file"))
	case !ai.Known(d):
		fmt.Fprintln(w, tui.Error("Invalid Default Provider: "+d))
	case m.IsAvailable(d):
		fmt.Fprintf(w, "%s %s ✅\n", tui.Title("Default Provider:"), d)
	default:
		fmt.Fprintf(w, "%s %s ❌ (not available)\n", tui.Title("Default Provider:"), d)
	}
}

func statusGlyph(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}
