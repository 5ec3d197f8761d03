package usecases_test

import (
	"errors"
	"testing"

	"listingpilot/internal/domain"
	"listingpilot/internal/rules"
	"listingpilot/internal/usecases"
)

func TestScoreListing_ScoresExistingCopy(t *testing.T) {
	// Arrange
	uc := usecases.NewScoreListingUseCase(rules.Default())
	req := usecases.ScoreRequest{
		Platform:    "etsy",
		Title:       "Handmade Ceramic Mug, Speckled Stoneware Coffee Cup",
		Description: "A speckled stoneware mug thrown by hand.\n\nHolds 12 oz and is dishwasher safe.",
		Tags:        []string{"ceramic mug", "stoneware", "coffee cup"},
	}

	// Act
	res, err := uc.Execute(req)

	// Assert
	if err != nil {
		t.Fatal(err)
	}
	if res.Platform != domain.Etsy {
		t.Errorf("platform = %v", res.Platform)
	}
	if res.Score.Overall < 0 || res.Score.Overall > 100 {
		t.Errorf("overall out of range: %d", res.Score.Overall)
	}
	if res.Improvements == nil {
		t.Error("improvements must not be nil")
	}
}

func TestScoreListing_ReportsProhibitedWords(t *testing.T) {
	uc := usecases.NewScoreListingUseCase(rules.Default())

	res, err := uc.Execute(usecases.ScoreRequest{Platform: "amazon", Title: "Guaranteed Best Seller Kettle"})

	if err != nil {
		t.Fatal(err)
	}
	if res.Compliance.Passed {
		t.Error("expected compliance to fail on prohibited words")
	}
}

func TestScoreListing_Validation(t *testing.T) {
	uc := usecases.NewScoreListingUseCase(rules.Default())

	if _, err := uc.Execute(usecases.ScoreRequest{Platform: "myspace", Title: "x"}); !errors.Is(err, domain.ErrUnsupportedPlatform) {
		t.Errorf("expected ErrUnsupportedPlatform, got %v", err)
	}
	if _, err := uc.Execute(usecases.ScoreRequest{Platform: "ebay"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
