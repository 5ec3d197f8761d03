package domain_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"listingpilot/internal/domain"
)

func TestParsePlatform_KnownValue_Normalizes(t *testing.T) {
	// Arrange
	input := "  Amazon "

	// Act
	p, err := domain.ParsePlatform(input)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != domain.Amazon {
		t.Errorf("platform: got %v, want %v", p, domain.Amazon)
	}
}

func TestParsePlatform_UnknownValue_ReturnsUnsupportedPlatformError(t *testing.T) {
	// Act
	_, err := domain.ParsePlatform("aliexpress")

	// Assert
	if !errors.Is(err, domain.ErrUnsupportedPlatform) {
		t.Fatalf("expected ErrUnsupportedPlatform, got %v", err)
	}
	var upe *domain.UnsupportedPlatformError
	if !errors.As(err, &upe) || upe.Platform != "aliexpress" {
		t.Errorf("expected UnsupportedPlatformError naming aliexpress, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	testCases := []struct {
		in   string
		want domain.Mode
		ok   bool
	}{
		{"optimize", domain.ModeOptimize, true},
		{"CREATE", domain.ModeCreate, true},
		{"analyze", domain.ModeAnalyze, true},
		{"rewrite", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := domain.ParseMode(tc.in)
			if got != tc.want || ok != tc.ok {
				t.Errorf("ParseMode(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestUpstreamError_MatchesKindAndCause(t *testing.T) {
	// Arrange
	err := &domain.UpstreamError{Kind: domain.ErrUpstreamTimeout, Attempts: 3, Err: context.DeadlineExceeded}

	// Assert
	if !errors.Is(err, domain.ErrUpstreamTimeout) {
		t.Error("expected error to match ErrUpstreamTimeout")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected error to match the cause")
	}
	if !strings.Contains(err.Error(), "3 attempt(s)") {
		t.Errorf("message should mention attempts, got %q", err.Error())
	}
}

func TestValidationError_ListsFields(t *testing.T) {
	err := &domain.ValidationError{Fields: []string{"title", "bullets"}}

	if !errors.Is(err, domain.ErrValidationFailed) {
		t.Error("expected error to match ErrValidationFailed")
	}
	if !strings.Contains(err.Error(), "title, bullets") {
		t.Errorf("message should list fields, got %q", err.Error())
	}
}

func TestInputError_MatchesInvalidInput(t *testing.T) {
	err := &domain.InputError{Field: "mode", Reason: "must be one of optimize, create, analyze"}

	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Error("expected error to match ErrInvalidInput")
	}
	if !strings.Contains(err.Error(), "mode") {
		t.Errorf("message should name the field, got %q", err.Error())
	}
}

func TestKeywordSet_All_DedupesInOrder(t *testing.T) {
	set := domain.KeywordSet{
		Primary:   []string{"wireless", "headphones"},
		Secondary: []string{"headphones", "battery"},
		LongTail:  []string{"wireless noise cancelling"},
	}

	got := set.All()

	want := []string{"wireless", "headphones", "battery", "wireless noise cancelling"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("All() = %v, want %v", got, want)
	}
}
