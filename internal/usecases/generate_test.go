package usecases_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listingpilot/internal/domain"
	"listingpilot/internal/rules"
	"listingpilot/internal/usecases"
)

func fastOptions() usecases.GenerateOptions {
	return usecases.GenerateOptions{
		MaxRetries:       usecases.DefaultMaxRetries,
		BaseDelay:        time.Millisecond,
		MaxDelay:         2 * time.Millisecond,
		AttemptTimeout:   time.Second,
		ValidateResponse: true,
	}
}

func kettleRequest() usecases.GenerateRequest {
	return usecases.GenerateRequest{
		Platform: "shopify",
		Mode:     "create",
		ProductData: &domain.ProductInfo{
			Title:       "Gooseneck Pour Over Kettle",
			Description: "Stainless kettle with a precise spout for pour over coffee.",
			Category:    "Kettles",
		},
	}
}

func newGenerate(gen usecases.ContentGenerator, opts usecases.GenerateOptions) *usecases.GenerateListingUseCase {
	return usecases.NewGenerateListingUseCase(gen, rules.Default(), opts)
}

func TestGenerate_Success(t *testing.T) {
	// Arrange
	gen := &fakeGenerator{replies: []reply{{raw: validResponse}}}
	uc := newGenerate(gen, fastOptions())

	// Act
	res, err := uc.Execute(context.Background(), kettleRequest())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, gen.Calls())
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, domain.Shopify, res.Platform)
	assert.Equal(t, domain.ModeCreate, res.Mode)
	assert.Equal(t, res.Content.SEOScore.Overall, res.QualityScore)
	assert.Equal(t, res.Listing.Title, res.Content.OptimizedTitle)
	assert.Equal(t, "Add a lifestyle photo.", res.PlatformNotes)
	assert.Equal(t, "fake-model", res.Model)
	assert.NotNil(t, res.Warnings)
	assert.Contains(t, gen.last.SystemPrompt, "Shopify")
	assert.Contains(t, gen.last.UserPrompt, "Gooseneck Pour Over Kettle")
	assert.Equal(t, domain.Shopify, gen.last.Platform)
}

func TestGenerate_InvalidInputNeverCallsGenerator(t *testing.T) {
	long := kettleRequest()
	long.ProductData = &domain.ProductInfo{Title: "Kettle", Description: strings.Repeat("x", 200)}

	testCases := []struct {
		name   string
		mutate func(*usecases.GenerateRequest)
		want   error
	}{
		{"missing platform", func(r *usecases.GenerateRequest) { r.Platform = "" }, domain.ErrInvalidInput},
		{"unknown platform", func(r *usecases.GenerateRequest) { r.Platform = "aliexpress" }, domain.ErrUnsupportedPlatform},
		{"bad mode", func(r *usecases.GenerateRequest) { r.Mode = "rewrite" }, domain.ErrInvalidInput},
		{"no product", func(r *usecases.GenerateRequest) { r.ProductData = nil }, domain.ErrInvalidInput},
		{"empty product", func(r *usecases.GenerateRequest) { r.ProductData = &domain.ProductInfo{Category: "Kettles"} }, domain.ErrInvalidInput},
		{"oversized payload", func(r *usecases.GenerateRequest) { *r = long }, domain.ErrInvalidInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			gen := &fakeGenerator{replies: []reply{{raw: validResponse}}}
			opts := fastOptions()
			opts.MaxPayloadBytes = 200
			uc := newGenerate(gen, opts)
			req := kettleRequest()
			tc.mutate(&req)

			// Act
			_, err := uc.Execute(context.Background(), req)

			// Assert
			assert.ErrorIs(t, err, tc.want)
			assert.Zero(t, gen.Calls(), "generator must not be called for invalid input")
		})
	}
}

func TestGenerate_TimeoutUsesExactlyMaxRetriesPlusOneAttempts(t *testing.T) {
	for _, maxRetries := range []int{0, 2, 4} {
		t.Run(fmt.Sprintf("maxRetries=%d", maxRetries), func(t *testing.T) {
			// Arrange
			gen := &fakeGenerator{block: true}
			opts := fastOptions()
			opts.MaxRetries = maxRetries
			opts.AttemptTimeout = 10 * time.Millisecond
			uc := newGenerate(gen, opts)

			// Act
			_, err := uc.Execute(context.Background(), kettleRequest())

			// Assert
			require.ErrorIs(t, err, domain.ErrUpstreamTimeout)
			assert.Equal(t, maxRetries+1, gen.Calls())
			var ue *domain.UpstreamError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, maxRetries+1, ue.Attempts)
		})
	}
}

func TestGenerate_RecoversFromTransientFailures(t *testing.T) {
	gen := &fakeGenerator{replies: []reply{
		{err: fmt.Errorf("openai: %w", domain.ErrUpstreamRateLimit)},
		{raw: "Sorry, I cannot help with that."},
		{raw: validResponse},
	}}
	uc := newGenerate(gen, fastOptions())

	res, err := uc.Execute(context.Background(), kettleRequest())

	require.NoError(t, err)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, 3, gen.Calls())
}

func TestGenerate_ErrorKindsAfterRetries(t *testing.T) {
	testCases := []struct {
		name      string
		reply     reply
		wantKind  error
		wantCalls int
	}{
		{"auth is permanent", reply{err: fmt.Errorf("openai: %w", domain.ErrUpstreamAuth)}, domain.ErrUpstreamAuth, 1},
		{"rate limit", reply{err: fmt.Errorf("openai: %w", domain.ErrUpstreamRateLimit)}, domain.ErrUpstreamRateLimit, 3},
		{"server error", reply{err: errBoom}, domain.ErrUpstreamUnavailable, 3},
		{"never JSON", reply{raw: "no json here"}, domain.ErrValidationFailed, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeGenerator{replies: []reply{tc.reply}}
			uc := newGenerate(gen, fastOptions())

			_, err := uc.Execute(context.Background(), kettleRequest())

			assert.ErrorIs(t, err, tc.wantKind)
			assert.Equal(t, tc.wantCalls, gen.Calls())
		})
	}
}

func TestGenerate_MissingFieldsFailWithoutRetry(t *testing.T) {
	// Arrange
	gen := &fakeGenerator{replies: []reply{{raw: `{"title": "Kettle", "description": "Boils water.", "keywords": []}`}}}
	uc := newGenerate(gen, fastOptions())

	// Act
	_, err := uc.Execute(context.Background(), kettleRequest())

	// Assert
	require.ErrorIs(t, err, domain.ErrValidationFailed)
	assert.Equal(t, 1, gen.Calls())
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"bullets", "platform_notes"}, ve.Fields)
}

func TestGenerate_LenientModeDefaultsMissingFields(t *testing.T) {
	gen := &fakeGenerator{replies: []reply{{raw: `{"title": "Kettle 1L", "description": "Boils water fast."}`}}}
	opts := fastOptions()
	opts.ValidateResponse = false
	uc := newGenerate(gen, opts)

	res, err := uc.Execute(context.Background(), kettleRequest())

	require.NoError(t, err)
	joined := strings.Join(res.Warnings, "\n")
	assert.Contains(t, joined, `"bullets"`)
	assert.Contains(t, joined, `"platform_notes"`)
}

func TestGenerate_Warnings(t *testing.T) {
	// Arrange
	gen := &fakeGenerator{replies: []reply{{raw: strings.Replace(validResponse,
		`"title": "Gooseneck Pour Over Kettle 1L Stainless Steel"`, `"title": "  "`, 1)}}}
	uc := newGenerate(gen, fastOptions())
	req := kettleRequest()
	req.ProductData.Category = ""
	req.ImageAnalysis = &domain.ImageAnalysis{Features: []string{"product"}, Fallback: true}

	// Act
	res, err := uc.Execute(context.Background(), req)

	// Assert
	require.NoError(t, err)
	joined := strings.Join(res.Warnings, "\n")
	assert.Contains(t, joined, "No category provided")
	assert.Contains(t, joined, "Image analysis returned generic values")
	assert.Contains(t, joined, "Generated title was empty")
	assert.True(t, strings.HasPrefix(res.Listing.Title, "Gooseneck Pour Over Kettle"))
	assert.NotContains(t, gen.last.UserPrompt, "Image analysis")
}

func TestGenerate_ComplianceViolationsBecomeWarnings(t *testing.T) {
	gen := &fakeGenerator{replies: []reply{{raw: `{"title": "Best Seller Kettle With Guaranteed Quality For Every Kitchen Counter At Home",
		"bullets": ["Fast"], "description": "Short.", "keywords": ["kettle"], "platform_notes": ""}`}}}
	uc := newGenerate(gen, fastOptions())
	req := kettleRequest()
	req.Platform = "amazon"

	res, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, res.Compliance.Passed)
	for _, v := range res.Compliance.Violations {
		assert.Contains(t, res.Warnings, v.Message)
	}
}
