package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"listingpilot/internal/domain"
)

func sampleRecord() domain.OptimizationRecord {
	price := 39.5
	return domain.OptimizationRecord{
		ID:       "0b7c3c58-6a8e-4f7e-9d42-1f1d3c0a9b11",
		UserID:   "u1",
		Platform: domain.Etsy,
		Mode:     domain.ModeCreate,
		Input:    domain.ProductInfo{Title: "Ceramic Mug", Price: &price},
		Listing: domain.FormattedListing{
			Title:   "Handmade Ceramic Mug",
			Bullets: []string{"Holds 12 oz"},
		},
		QualityScore: 72,
		SEOScore:     domain.SEOScore{Overall: 72},
		Model:        "gpt-4o-mini",
		CreatedAt:    time.Date(2026, time.October, 15, 9, 30, 0, 0, time.FixedZone("CEST", 2*3600)),
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	// Arrange
	rec := sampleRecord()

	// Act
	raw, err := bson.Marshal(toDocument(rec))
	if err != nil {
		t.Fatal(err)
	}
	var doc recordDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	got := fromDocument(doc)

	// Assert
	if got.ID != rec.ID || got.UserID != "u1" || got.Platform != domain.Etsy || got.Mode != domain.ModeCreate {
		t.Errorf("identity fields: got %+v", got)
	}
	if got.Listing.Title != "Handmade Ceramic Mug" || got.QualityScore != 72 {
		t.Errorf("content fields: got %+v", got)
	}
	if got.Input.Price == nil || *got.Input.Price != 39.5 {
		t.Errorf("price: got %v", got.Input.Price)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) || got.CreatedAt.Location() != time.UTC {
		t.Errorf("createdAt: got %v, want %v in UTC", got.CreatedAt, rec.CreatedAt)
	}
	if got.Warnings == nil {
		t.Error("warnings must decode to an empty slice")
	}
}

func TestDocumentUsesIDAsPrimaryKey(t *testing.T) {
	raw, err := bson.Marshal(toDocument(sampleRecord()))
	if err != nil {
		t.Fatal(err)
	}

	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}

	if m["_id"] != "0b7c3c58-6a8e-4f7e-9d42-1f1d3c0a9b11" {
		t.Errorf("_id = %v", m["_id"])
	}
	if _, ok := m["userId"]; !ok {
		t.Error("expected userId field")
	}
}

func TestConnect_ConnectFailure(t *testing.T) {
	original := mongoConnect
	defer func() { mongoConnect = original }()
	mongoConnect = func(opts ...*options.ClientOptions) (*mongo.Client, error) {
		return nil, errors.New("mongo connect failed")
	}

	_, err := Connect(context.Background(), "mongodb://localhost:27017", "listingpilot")

	if err == nil {
		t.Fatal("expected error")
	}
}

func TestMockStore_Defaults(t *testing.T) {
	m := &MockStore{}

	if err := m.Save(context.Background(), sampleRecord()); err != nil {
		t.Errorf("Save: %v", err)
	}
	if recs, err := m.ListByUser(context.Background(), "u1", 5); err != nil || recs != nil {
		t.Errorf("ListByUser = %v, %v", recs, err)
	}
}
