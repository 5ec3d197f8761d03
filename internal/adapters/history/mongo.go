// Package history stores optimization records in MongoDB.
package history

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"listingpilot/internal/domain"
	"listingpilot/internal/observability"
)

const collectionName = "optimizations"

var mongoConnect = mongo.Connect

// MongoStore persists one document per optimization.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// recordDocument is the stored shape of domain.OptimizationRecord.
type recordDocument struct {
	ID            string                  `bson:"_id"`
	UserID        string                  `bson:"userId"`
	Platform      string                  `bson:"platform"`
	Mode          string                  `bson:"mode"`
	Input         domain.ProductInfo      `bson:"input"`
	Listing       domain.FormattedListing `bson:"listing"`
	QualityScore  int                     `bson:"qualityScore"`
	BaselineScore int                     `bson:"baselineScore"`
	SEOScore      domain.SEOScore         `bson:"seoScore"`
	Warnings      []string                `bson:"warnings"`
	Model         string                  `bson:"model"`
	CreatedAt     time.Time               `bson:"createdAt"`
}

// Connect dials uri, verifies the connection and ensures the per-user index.
func Connect(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongoConnect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	s := &MongoStore{client: client, coll: client.Database(database).Collection(collectionName)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create history index: %w", err)
	}
	return nil
}

func (s *MongoStore) Save(ctx context.Context, rec domain.OptimizationRecord) error {
	ctx, span := observability.Tracer().Start(ctx, "history.mongodb.save")
	defer span.End()
	span.SetAttributes(attribute.String("db.system", "mongodb"), attribute.String("record.id", rec.ID))

	if _, err := s.coll.InsertOne(ctx, toDocument(rec)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert_failed")
		return fmt.Errorf("insert optimization record: %w", err)
	}
	return nil
}

// ListByUser returns at most limit records for userID, newest first.
func (s *MongoStore) ListByUser(ctx context.Context, userID string, limit int) ([]domain.OptimizationRecord, error) {
	ctx, span := observability.Tracer().Start(ctx, "history.mongodb.list_by_user")
	defer span.End()
	span.SetAttributes(attribute.String("db.system", "mongodb"), attribute.Int("db.query.limit", limit))

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := s.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "find_failed")
		return nil, fmt.Errorf("find optimization records: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []recordDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode optimization records: %w", err)
	}
	records := make([]domain.OptimizationRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, fromDocument(d))
	}
	span.SetAttributes(attribute.Int("db.documents.count", len(records)))
	return records, nil
}

// Ping is used by the health endpoint.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func toDocument(r domain.OptimizationRecord) recordDocument {
	return recordDocument{
		ID:            r.ID,
		UserID:        r.UserID,
		Platform:      string(r.Platform),
		Mode:          string(r.Mode),
		Input:         r.Input,
		Listing:       r.Listing,
		QualityScore:  r.QualityScore,
		BaselineScore: r.BaselineScore,
		SEOScore:      r.SEOScore,
		Warnings:      r.Warnings,
		Model:         r.Model,
		CreatedAt:     r.CreatedAt.UTC(),
	}
}

func fromDocument(d recordDocument) domain.OptimizationRecord {
	warnings := d.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return domain.OptimizationRecord{
		ID:            d.ID,
		UserID:        d.UserID,
		Platform:      domain.Platform(d.Platform),
		Mode:          domain.Mode(d.Mode),
		Input:         d.Input,
		Listing:       d.Listing,
		QualityScore:  d.QualityScore,
		BaselineScore: d.BaselineScore,
		SEOScore:      d.SEOScore,
		Warnings:      warnings,
		Model:         d.Model,
		CreatedAt:     d.CreatedAt.UTC(),
	}
}
