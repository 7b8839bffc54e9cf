package provider

import (
	"fmt"
	"strings"

	"go.trai.ch/pagefresh/internal/core/domain"
)

const responseInstructions = `Respond with a single JSON object and nothing else. Use these fields:
  "title": page title, at most 60 characters
  "metaDescription": meta description, at most 155 characters
  "headline": main heading
  "intro": one introductory paragraph
  "sections": array of {"heading", "body"}, three to five entries
  "faq": array of {"question", "answer"}, four to six entries
  "callToAction": one sentence inviting the reader to get in touch
`

// BuildPrompt renders the request text for task. The additional context block
// is omitted when supplementary is blank.
func BuildPrompt(task domain.Task, supplementary string) string {
	var b strings.Builder

	b.WriteString("You are writing a landing page for a directory of local service businesses.\n\n")
	fmt.Fprintf(&b, "Page type: %s\n", task.Kind)
	fmt.Fprintf(&b, "Subject: %s\n", task)

	switch task.Kind {
	case domain.KindIndustry:
		writeIndustry(&b, task.Industry)
	case domain.KindLocation:
		writeLocation(&b, task.Location)
	case domain.KindCombo:
		writeIndustry(&b, task.Industry)
		writeLocation(&b, task.Location)
	}

	b.WriteString("\n")
	b.WriteString(responseInstructions)

	if s := strings.TrimSpace(supplementary); s != "" {
		b.WriteString("\nAdditional context:\n")
		b.WriteString(s)
		b.WriteString("\n")
	}

	return b.String()
}

func writeIndustry(b *strings.Builder, ind domain.Industry) {
	name := ind.Name
	if name == "" {
		name = ind.Slug
	}
	fmt.Fprintf(b, "Industry: %s (%s)\n", name, ind.Slug)
}

func writeLocation(b *strings.Builder, loc domain.Location) {
	fmt.Fprintf(b, "City: %s\n", loc.City)
	fmt.Fprintf(b, "Country: %s\n", loc.Country)
}
