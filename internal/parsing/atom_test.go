package parsing

import (
	"errors"
	"testing"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:arxiv="http://arxiv.org/schemas/atom">
  <title type="html">ArXiv Query: search_query=all:dark matter</title>
  <entry>
    <id>http://arxiv.org/abs/2301.00001v1</id>
    <updated>2023-01-02T00:00:00Z</updated>
    <published>2023-01-01T00:00:00Z</published>
    <title> Dark Matter Halos </title>
    <summary>  A study of dark matter halos.  </summary>
    <author><name>Alice Smith</name></author>
    <author><name>Bob Jones</name></author>
    <arxiv:comment>10 pages, 3 figures</arxiv:comment>
    <arxiv:doi>10.1000/example.001</arxiv:doi>
    <link href="http://arxiv.org/abs/2301.00001v1" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/2301.00001v1" rel="related" type="application/pdf"/>
    <link title="mirror" href="http://example.org/mirror.pdf" rel="related" type="application/pdf"/>
    <arxiv:primary_category term="astro-ph.GA" scheme="http://arxiv.org/schemas/atom"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2301.00002v1</id>
    <published>2023-01-03T00:00:00Z</published>
    <title>Second Paper</title>
    <summary>Another study.</summary>
    <link href="http://arxiv.org/abs/2301.00002v1" rel="alternate" type="text/html"/>
  </entry>
</feed>`

const emptyFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title type="html">ArXiv Query: search_query=all:nothing</title>
</feed>`

const missingSummaryFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.00003v1</id>
    <published>2023-01-04T00:00:00Z</published>
    <title>No Summary</title>
  </entry>
</feed>`

func checkField(t *testing.T, fieldName string, expected string, actual string) {
	if expected != actual {
		t.Errorf("%s is incorrect: expected %q, got %q", fieldName, expected, actual)
	}
}

func TestParseFeedExtractsEntriesInOrder(t *testing.T) {
	documents, err := ParseFeed(sampleFeed)
	if err != nil {
		t.Fatal(err)
	}
	if len(documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(documents))
	}

	first := documents[0]
	checkField(t, "ID", "http://arxiv.org/abs/2301.00001v1", first.ID)
	checkField(t, "Title", "Dark Matter Halos", first.Title)
	checkField(t, "Summary", "A study of dark matter halos.", first.Summary)
	checkField(t, "Published", "2023-01-01T00:00:00Z", first.Published)

	if len(first.Authors) != 2 || first.Authors[0] != "Alice Smith" || first.Authors[1] != "Bob Jones" {
		t.Errorf("Authors are incorrect: %v", first.Authors)
	}
	if first.Updated == nil || *first.Updated != "2023-01-02T00:00:00Z" {
		t.Errorf("Updated is incorrect: %v", first.Updated)
	}
	if first.Comment == nil || *first.Comment != "10 pages, 3 figures" {
		t.Errorf("Comment is incorrect: %v", first.Comment)
	}
	if first.DOI == nil || *first.DOI != "10.1000/example.001" {
		t.Errorf("DOI is incorrect: %v", first.DOI)
	}
	if first.Category == nil || *first.Category != "astro-ph.GA" {
		t.Errorf("Category is incorrect: %v", first.Category)
	}

	second := documents[1]
	checkField(t, "ID", "http://arxiv.org/abs/2301.00002v1", second.ID)
	if second.Updated != nil {
		t.Errorf("Updated should be nil, got %q", *second.Updated)
	}
	if second.Comment != nil || second.DOI != nil || second.Category != nil {
		t.Error("optional fields should be nil when absent")
	}
	if len(second.Authors) != 0 {
		t.Errorf("Authors should be empty, got %v", second.Authors)
	}
}

func TestParseFeedFirstPDFLinkWins(t *testing.T) {
	documents, err := ParseFeed(sampleFeed)
	if err != nil {
		t.Fatal(err)
	}
	first := documents[0]
	if first.PDFLink == nil || *first.PDFLink != "http://arxiv.org/pdf/2301.00001v1" {
		t.Errorf("PDFLink is incorrect: %v", first.PDFLink)
	}
}

func TestParseFeedNoPDFLink(t *testing.T) {
	documents, err := ParseFeed(sampleFeed)
	if err != nil {
		t.Fatal(err)
	}
	if documents[1].PDFLink != nil {
		t.Errorf("PDFLink should be nil, got %q", *documents[1].PDFLink)
	}
}

func TestParseFeedMissingRequiredField(t *testing.T) {
	_, err := ParseFeed(missingSummaryFeed)
	if err == nil {
		t.Fatal("expected an error for an entry with no summary")
	}
	var malformed *MalformedEntryError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedEntryError, got %T", err)
	}
	if malformed.Field != "summary" {
		t.Errorf("expected missing field summary, got %q", malformed.Field)
	}
}

func TestParseFeedEmpty(t *testing.T) {
	documents, err := ParseFeed(emptyFeed)
	if err != nil {
		t.Fatal(err)
	}
	if len(documents) != 0 {
		t.Errorf("expected no documents, got %d", len(documents))
	}
}

func TestEmbeddingText(t *testing.T) {
	documents, err := ParseFeed(sampleFeed)
	if err != nil {
		t.Fatal(err)
	}

	expected := "Title: Dark Matter Halos\n" +
		"Authors: Alice Smith, Bob Jones\n" +
		"Summary: A study of dark matter halos.\n" +
		"Category: astro-ph.GA\n" +
		"Published: 2023-01-01T00:00:00Z"
	checkField(t, "EmbeddingText", expected, documents[0].EmbeddingText())

	// Entries with no primary category embed under "N/A"
	expectedSecond := "Title: Second Paper\n" +
		"Authors: \n" +
		"Summary: Another study.\n" +
		"Category: N/A\n" +
		"Published: 2023-01-03T00:00:00Z"
	checkField(t, "EmbeddingText", expectedSecond, documents[1].EmbeddingText())
}
