package store

// StoredDocument is the shape of a paper record in the documents collection:
// the parsed metadata plus the text that was embedded and its vector.
type StoredDocument struct {
	ID        string    `bson:"id" json:"id"`
	PDFLink   *string   `bson:"pdfLink" json:"pdfLink"`
	Text      string    `bson:"text" json:"text"`
	Embedding []float32 `bson:"embedding" json:"-"`
	Category  *string   `bson:"category" json:"category"`
	DOI       *string   `bson:"doi" json:"doi"`
	Published string    `bson:"published" json:"published"`
	Updated   *string   `bson:"updated" json:"updated"`
	Authors   []string  `bson:"authors" json:"authors"`
	Summary   string    `bson:"summary" json:"summary"`
	Title     string    `bson:"title" json:"title"`
	CreatedAt string    `bson:"created_at" json:"created_at"`
}

// ScoredDocument is the projection a vector search returns, ranked by the
// index's similarity score.
type ScoredDocument struct {
	ID        string   `bson:"id" json:"id"`
	PDFLink   *string  `bson:"pdfLink" json:"pdfLink"`
	Title     string   `bson:"title" json:"title"`
	Summary   string   `bson:"summary" json:"summary"`
	Authors   []string `bson:"authors" json:"authors"`
	Published string   `bson:"published" json:"published"`
	Score     float64  `bson:"score" json:"score"`
}
