package usecases

import (
	"listingpilot/internal/compliance"
	"listingpilot/internal/domain"
	"listingpilot/internal/keywords"
	"listingpilot/internal/rules"
	"listingpilot/internal/seo"
)

// ScoreRequest is listing copy to evaluate without generating anything.
type ScoreRequest struct {
	Platform    string   `json:"platform"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Keywords    []string `json:"keywords"`
}

type ScoreResult struct {
	Platform     domain.Platform         `json:"platform"`
	Score        domain.SEOScore         `json:"score"`
	Quick        seo.QuickScore          `json:"quickScore"`
	Compliance   domain.ComplianceResult `json:"compliance"`
	Improvements []string                `json:"improvements"`
}

// ScoreListingUseCase runs compliance and both scorers over existing copy.
type ScoreListingUseCase struct {
	rules *rules.Table
}

func NewScoreListingUseCase(table *rules.Table) *ScoreListingUseCase {
	return &ScoreListingUseCase{rules: table}
}

// Execute falls back to keywords researched from the title when none are given.
func (uc *ScoreListingUseCase) Execute(req ScoreRequest) (*ScoreResult, error) {
	platform, err := domain.ParsePlatform(req.Platform)
	if err != nil {
		return nil, err
	}
	if req.Title == "" && req.Description == "" {
		return nil, &domain.InputError{Field: "title", Reason: "title or description is required"}
	}
	r, err := uc.rules.Get(platform)
	if err != nil {
		return nil, err
	}

	kws := req.Keywords
	if len(kws) == 0 {
		kws = keywords.Research(domain.ProductInfo{Title: req.Title, Description: req.Description}, platform).Primary
	}
	in := seo.Input{Title: req.Title, Description: req.Description, Keywords: kws, Tags: req.Tags}

	score := seo.Calculate(in, r)
	comp := compliance.Validate(compliance.Content{Title: req.Title, Description: req.Description, Tags: req.Tags}, r)
	return &ScoreResult{
		Platform:     platform,
		Score:        score,
		Quick:        seo.Quick(in, r),
		Compliance:   comp,
		Improvements: seo.Improvements(score, r, comp),
	}, nil
}
