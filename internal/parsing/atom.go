package parsing

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// MalformedEntryError is returned when a feed entry is missing one of the
// text nodes every arXiv entry is supposed to carry.
type MalformedEntryError struct {
	Field string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("malformed feed entry: missing %s", e.Field)
}

// crudeAtomFeed mirrors the arXiv Atom response. Entries keep the feed's
// document order. Required text nodes are pointers so an absent element can
// be told apart from an empty one.
type crudeAtomFeed struct {
	XMLName xml.Name         `xml:"feed"`
	Entries []crudeAtomEntry `xml:"entry"`
}

type crudeAtomEntry struct {
	ID              *string          `xml:"id"`
	Title           *string          `xml:"title"`
	Summary         *string          `xml:"summary"`
	Published       *string          `xml:"published"`
	Updated         *string          `xml:"updated"`
	DOI             *string          `xml:"http://arxiv.org/schemas/atom doi"`
	Comment         *string          `xml:"http://arxiv.org/schemas/atom comment"`
	PrimaryCategory *primaryCategory `xml:"http://arxiv.org/schemas/atom primary_category"`
	Authors         []atomAuthor     `xml:"author"`
	Links           []atomLink       `xml:"link"`
}

type primaryCategory struct {
	Term string `xml:"term,attr"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Type string `xml:"type,attr"`
}

// ParseFeed extracts every entry of an arXiv Atom feed, in feed order. A feed
// with no entries parses to an empty slice, not an error; the caller decides
// what "no results" means. A single malformed entry fails the whole parse.
func ParseFeed(xmlData string) ([]Document, error) {
	var feed crudeAtomFeed
	err := xml.Unmarshal([]byte(xmlData), &feed)
	if err != nil {
		return nil, err
	}

	documents := make([]Document, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		document, err := tidyEntry(entry)
		if err != nil {
			return nil, err
		}
		documents = append(documents, document)
	}

	return documents, nil
}

func tidyEntry(entry crudeAtomEntry) (Document, error) {
	id, err := requiredText(entry.ID, "id")
	if err != nil {
		return Document{}, err
	}
	title, err := requiredText(entry.Title, "title")
	if err != nil {
		return Document{}, err
	}
	summary, err := requiredText(entry.Summary, "summary")
	if err != nil {
		return Document{}, err
	}
	published, err := requiredText(entry.Published, "published")
	if err != nil {
		return Document{}, err
	}

	authors := make([]string, 0, len(entry.Authors))
	for _, author := range entry.Authors {
		authors = append(authors, strings.TrimSpace(author.Name))
	}

	// First application/pdf link wins, in entry document order.
	var pdfLink *string
	for _, link := range entry.Links {
		if link.Type == "application/pdf" {
			href := link.Href
			pdfLink = &href
			break
		}
	}

	var category *string
	if entry.PrimaryCategory != nil {
		term := entry.PrimaryCategory.Term
		category = &term
	}

	return Document{
		ID:        id,
		Title:     title,
		Summary:   summary,
		Authors:   authors,
		Published: published,
		Updated:   optionalText(entry.Updated),
		PDFLink:   pdfLink,
		Comment:   optionalText(entry.Comment),
		DOI:       optionalText(entry.DOI),
		Category:  category,
	}, nil
}

func requiredText(value *string, field string) (string, error) {
	if value == nil {
		return "", &MalformedEntryError{Field: field}
	}
	return strings.TrimSpace(*value), nil
}

func optionalText(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
