package store

import (
	"context"
	"errors"

	"github.com/uniplaces/carbon"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store is the MongoDB-backed document store for paper records and their
// embedding vectors.
type Store struct {
	collection *mongo.Collection
	indexName  string
}

// New creates a new Store instance over the given collection. indexName is
// the Atlas vector index defined on the embedding field.
func New(db *mongo.Database, collectionName string, indexName string) *Store {
	return &Store{
		collection: db.Collection(collectionName),
		indexName:  indexName,
	}
}

// PaperExists reports whether a record with the given arXiv id has already
// been stored. This is only a before-insert guard: there is no uniqueness
// constraint on the collection, so two concurrent ingestions of the same id
// can still both insert it.
func (s *Store) PaperExists(ctx context.Context, id string) (bool, error) {
	err := s.collection.FindOne(ctx, bson.M{"id": id}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// InsertPapers persists a batch of records, stamping each with a created_at
// timestamp. No transactionality: a partial batch failure leaves whatever
// made it in.
func (s *Store) InsertPapers(ctx context.Context, documents []StoredDocument) error {
	if len(documents) == 0 {
		return nil
	}

	now := carbon.Now().DateTimeString()
	toInsert := make([]interface{}, len(documents))
	for i := range documents {
		documents[i].CreatedAt = now
		toInsert[i] = documents[i]
	}

	_, err := s.collection.InsertMany(ctx, toInsert)
	return err
}

// VectorSearch runs an approximate nearest-neighbor search over the stored
// embeddings and returns at most limit records, best match first. Ranking and
// tie-breaks belong to the index; this only sets the candidate pool, the
// limit and the projection.
func (s *Store) VectorSearch(ctx context.Context, vector []float32, numCandidates int, limit int) ([]ScoredDocument, error) {
	cursor, err := s.collection.Aggregate(ctx, vectorSearchPipeline(s.indexName, vector, numCandidates, limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := make([]ScoredDocument, 0, limit)
	err = cursor.All(ctx, &results)
	if err != nil {
		return nil, err
	}

	return results, nil
}

func vectorSearchPipeline(indexName string, vector []float32, numCandidates int, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: indexName},
			{Key: "path", Value: "embedding"},
			{Key: "queryVector", Value: vector},
			{Key: "numCandidates", Value: numCandidates},
			{Key: "limit", Value: limit},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "id", Value: 1},
			{Key: "pdfLink", Value: 1},
			{Key: "title", Value: 1},
			{Key: "summary", Value: 1},
			{Key: "authors", Value: 1},
			{Key: "published", Value: 1},
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
	}
}
