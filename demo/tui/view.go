package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("📰 alfredhub Feed Viewer"))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("❌ %v", m.Err)))
		b.WriteString("\n\n")
	}

	// Genre ranking
	if len(m.Genres) > 0 {
		var parts []string
		for _, g := range m.Genres {
			parts = append(parts, fmt.Sprintf("%d. %s", g.Rank, g.Name))
		}
		b.WriteString(InfoStyle.Render("Genres: " + strings.Join(parts, "  ")))
		b.WriteString("\n\n")
	}

	// View header
	if m.ShowRecent {
		b.WriteString(HighlightStyle.Render("Recent (by fetch time)"))
	} else {
		b.WriteString(HighlightStyle.Render("Today (ranked)"))
	}
	b.WriteString("\n\n")

	switch {
	case m.Refreshing:
		b.WriteString(StatusStyle.Render("📤 Requesting refresh..."))
		b.WriteString("\n\n")
	case m.Loading:
		b.WriteString(StatusStyle.Render("⏳ Loading..."))
		b.WriteString("\n\n")
	}

	if !m.Loading {
		b.WriteString(m.renderArticles())
	}

	b.WriteString(InfoStyle.Render("'t' toggle view | 'r' refresh | 'f' reload | 'q' quit"))
	return b.String()
}

func (m Model) renderArticles() string {
	if len(m.Articles) == 0 {
		return InfoStyle.Render("No articles yet. Press 'r' to request a refresh.") + "\n\n"
	}

	var b strings.Builder
	for i, a := range m.Articles {
		line := fmt.Sprintf("%2d. [%s] %s", i+1, a.Genre, a.Title)
		if a.Score != nil {
			line += fmt.Sprintf(" (%.1f)", *a.Score)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if a.Source != "" {
			b.WriteString(InfoStyle.Render("      " + a.Source))
			b.WriteString("\n")
		}
	}
	return BoxStyle.Render(b.String()) + "\n\n"
}
