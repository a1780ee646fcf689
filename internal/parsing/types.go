package parsing

import (
	"fmt"
	"strings"
)

// Document is one paper record extracted from the arXiv Atom feed. Optional
// fields are pointers so the JSON response carries explicit nulls the way the
// client app expects.
type Document struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Authors   []string `json:"authors"`
	Published string   `json:"published"`
	Updated   *string  `json:"updated"`
	PDFLink   *string  `json:"pdfLink"`
	Comment   *string  `json:"comment"`
	DOI       *string  `json:"doi"`
	Category  *string  `json:"category"`
}

// EmbeddingText synthesizes the descriptive text a document is embedded
// under. The exact layout matters: stored documents keep this text for
// traceability, so changing it would strand everything already embedded.
func (d *Document) EmbeddingText() string {
	category := "N/A"
	if d.Category != nil {
		category = *d.Category
	}

	return fmt.Sprintf("Title: %s\nAuthors: %s\nSummary: %s\nCategory: %s\nPublished: %s",
		d.Title, strings.Join(d.Authors, ", "), d.Summary, category, d.Published)
}
