// Package render produces the assistant-visible text for a finished run.
// The orchestrator returns structured values; callers persist and display a
// rendered form, which is what this package provides.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"stratagem/internal/schema"
)

// StrategyMarkdown renders a MarketingStrategy as a Markdown document.
func StrategyMarkdown(s *schema.MarketingStrategy) string {
	var sb strings.Builder

	sb.WriteString("# 90-Day Marketing Strategy\n\n")

	section(&sb, "Product Overview", s.ProductOverview)
	section(&sb, "Target Audience", s.TargetAudience)
	section(&sb, "Value Proposition", s.ValueProposition)
	list(&sb, "Channels", s.Channels)

	month(&sb, "Month 1", s.Month1)
	month(&sb, "Month 2", s.Month2)
	month(&sb, "Month 3", s.Month3)

	list(&sb, "Risks & Mitigation", s.RisksAndMitigation)
	list(&sb, "Expected Outcomes", s.ExpectedOutcomes)
	links(&sb, "References & Further Reading", s.References)

	return sb.String()
}

// AnalysisMarkdown renders a ProductAnalysis as a Markdown document.
func AnalysisMarkdown(a *schema.ProductAnalysis) string {
	var sb strings.Builder

	sb.WriteString("# Product Analysis\n\n")

	section(&sb, "Summary", a.ProductSummary)
	section(&sb, "Target Users", a.TargetUsers)
	section(&sb, "Problem", a.ProblemStatement)

	if len(a.Competitors) > 0 {
		sb.WriteString("## Competitors\n\n")
		for _, c := range a.Competitors {
			sb.WriteString("- **")
			sb.WriteString(c.Name)
			sb.WriteString("** - ")
			sb.WriteString(c.Description)
			if c.Positioning != "" {
				sb.WriteString(" (")
				sb.WriteString(c.Positioning)
				sb.WriteString(")")
			}
			if c.Reference != "" {
				sb.WriteString(" [link](")
				sb.WriteString(c.Reference)
				sb.WriteString(")")
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	list(&sb, "Pros", a.Pros)
	list(&sb, "Cons", a.Cons)
	list(&sb, "Market Insights", a.MarketInsights)
	links(&sb, "References", a.References)

	return sb.String()
}

func section(sb *strings.Builder, title, body string) {
	if body == "" {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n%s\n\n", title, body)
}

func list(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
	sb.WriteString("\n")
}

func links(sb *strings.Builder, title string, urls []string) {
	if len(urls) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n", title)
	for _, u := range urls {
		fmt.Fprintf(sb, "- <%s>\n", u)
	}
	sb.WriteString("\n")
}

func month(sb *strings.Builder, title string, m schema.MonthlyPlan) {
	fmt.Fprintf(sb, "## %s: %s\n\n", title, m.Focus)
	if len(m.KeyActivities) > 0 {
		sb.WriteString("**Key activities**\n\n")
		for _, a := range m.KeyActivities {
			fmt.Fprintf(sb, "- %s\n", a)
		}
		sb.WriteString("\n")
	}
	if len(m.KPIs) > 0 {
		sb.WriteString("**KPIs**\n\n")
		for _, k := range m.KPIs {
			fmt.Fprintf(sb, "- %s\n", k)
		}
		sb.WriteString("\n")
	}
	if len(m.References) > 0 {
		sb.WriteString("**References**\n\n")
		for _, r := range m.References {
			fmt.Fprintf(sb, "- <%s>\n", r)
		}
		sb.WriteString("\n")
	}
}

// Terminal renders Markdown for terminal display with auto-detected styling.
func Terminal(markdown string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
