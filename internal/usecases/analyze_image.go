package usecases

import (
	"context"
	"net/url"
	"strings"

	"listingpilot/internal/domain"
	"listingpilot/pkg/log"
)

// AnalyzeImageUseCase wraps the image analyzer. Analyzer failures degrade to
// a fallback result rather than an error.
type AnalyzeImageUseCase struct {
	analyzer ImageAnalyzer
}

func NewAnalyzeImageUseCase(analyzer ImageAnalyzer) *AnalyzeImageUseCase {
	return &AnalyzeImageUseCase{analyzer: analyzer}
}

func (uc *AnalyzeImageUseCase) Execute(ctx context.Context, imageURL string) (domain.ImageAnalysis, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return domain.ImageAnalysis{}, &domain.InputError{Field: "imageUrl", Reason: "is required"}
	}
	u, err := url.Parse(imageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "data") {
		return domain.ImageAnalysis{}, &domain.InputError{Field: "imageUrl", Reason: "must be an http(s) or data URL"}
	}

	a, err := uc.analyzer.Analyze(ctx, imageURL)
	if err != nil {
		log.GlobalWarnCtx(ctx, "image analysis failed, using fallback", "error", err)
		return domain.ImageAnalysis{
			Features:   []string{"product"},
			Colors:     []string{},
			Style:      "standard",
			Confidence: 0,
			Fallback:   true,
		}, nil
	}
	return a, nil
}
