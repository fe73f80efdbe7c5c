// Package research turns search results into bounded prompt context.
// Rendering is intentionally dumb: no re-ranking, no deduplication, no
// filtering. Results are assumed relevance-ranked by the provider and the
// only normalization applied is content truncation, which bounds prompt
// token cost rather than improving correctness.
package research

import (
	"strings"
	"unicode/utf8"

	"stratagem/internal/search"
)

// maxContentChars bounds how much of each result's content reaches the
// prompt.
const maxContentChars = 300

// Result caps per phase query. The competitor search casts the widest net;
// the trend and case-study searches stay smaller to leave prompt room for
// the rendered analysis.
const (
	CompetitorResultCap = 10
	TrendResultCap      = 6
	CaseStudyResultCap  = 8
)

// Evidence block headings. Kept stable so the model always sees which
// categories of evidence were attempted, even when a search came back empty.
const (
	CompetitorHeading = "Web search results - Competitors & Alternatives:"
	TrendHeading      = "Web search results - Market Trends & Insights:"
	CaseStudyHeading  = "Web search results - Relevant Marketing Case Studies & Examples:"
)

// CompetitorQuery builds the competitor-discovery search query.
func CompetitorQuery(request string) string {
	return "top competitors OR similar products OR alternatives to: " + request
}

// TrendQuery builds the market-trend search query.
func TrendQuery(request string) string {
	return "market trends OR industry analysis OR demand signals for: " + request
}

// CaseStudyQuery builds the case-study search query for the strategy phase.
func CaseStudyQuery(productSummary string) string {
	return "successful marketing strategy OR growth case study OR 90-day launch plan for " + productSummary
}

// FormatBlock renders one headed evidence block. Zero results still render
// the heading so the model knows the category was searched and came back
// empty.
func FormatBlock(heading string, results []search.Result) string {
	var sb strings.Builder
	sb.WriteString(heading)
	sb.WriteString("\n\n")
	for _, r := range results {
		sb.WriteString("- ")
		sb.WriteString(r.Title)
		sb.WriteString("\n  ")
		sb.WriteString(Truncate(r.Content))
		sb.WriteString("\n  URL: ")
		sb.WriteString(r.URL)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// Truncate bounds content to maxContentChars characters and marks it with a
// literal ellipsis. Idempotent: truncating already-truncated content
// returns it unchanged.
func Truncate(content string) string {
	if strings.HasSuffix(content, "...") && utf8.RuneCountInString(content) <= maxContentChars+3 {
		return content
	}
	if utf8.RuneCountInString(content) > maxContentChars {
		content = string([]rune(content)[:maxContentChars])
	}
	return content + "..."
}
