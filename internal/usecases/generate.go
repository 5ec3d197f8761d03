package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"listingpilot/internal/domain"
	"listingpilot/internal/observability"
	"listingpilot/internal/optimizer"
	"listingpilot/internal/rules"
	"listingpilot/internal/seo"
	"listingpilot/pkg/log"
)

const (
	DefaultMaxRetries      = 2
	DefaultMaxPayloadBytes = 100 * 1024
)

// GenerateOptions tunes the retry contract and input limits.
type GenerateOptions struct {
	MaxRetries       int
	BaseDelay        time.Duration
	MaxDelay         time.Duration
	AttemptTimeout   time.Duration
	ValidateResponse bool
	MaxPayloadBytes  int
}

// GenerateRequest is the unvalidated optimization request.
type GenerateRequest struct {
	Platform      string                `json:"platform"`
	Mode          string                `json:"mode"`
	ProductData   *domain.ProductInfo   `json:"productData"`
	ImageAnalysis *domain.ImageAnalysis `json:"imageAnalysis,omitempty"`
	Images        []string              `json:"images,omitempty"`
	DeepAnalysis  bool                  `json:"deepAnalysis,omitempty"`
}

// GenerateResult is a generated listing after platform optimization.
type GenerateResult struct {
	Platform      domain.Platform
	Mode          domain.Mode
	Product       domain.ProductInfo
	Listing       domain.FormattedListing
	Content       domain.OptimizedContent
	Enriched      domain.PlatformOptimizedContent
	Compliance    domain.ComplianceResult
	Keywords      domain.KeywordSet
	QualityScore  int
	BaselineScore int
	PlatformNotes string
	Warnings      []string
	Attempts      int
	Model         string
}

// GenerateListingUseCase turns a request into a platform-optimized listing
// using the content generator.
type GenerateListingUseCase struct {
	generator ContentGenerator
	rules     *rules.Table
	opts      GenerateOptions
}

// NewGenerateListingUseCase fills zero options with defaults.
func NewGenerateListingUseCase(generator ContentGenerator, table *rules.Table, opts GenerateOptions) *GenerateListingUseCase {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = time.Second
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 10 * opts.BaseDelay
	}
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = 30 * time.Second
	}
	if opts.MaxPayloadBytes <= 0 {
		opts.MaxPayloadBytes = DefaultMaxPayloadBytes
	}
	return &GenerateListingUseCase{generator: generator, rules: table, opts: opts}
}

// Validate checks a request without calling the generator.
func (uc *GenerateListingUseCase) Validate(req GenerateRequest) (domain.Platform, domain.Mode, error) {
	if strings.TrimSpace(req.Platform) == "" {
		return "", "", &domain.InputError{Field: "platform", Reason: "is required"}
	}
	platform, err := domain.ParsePlatform(req.Platform)
	if err != nil {
		return "", "", err
	}
	mode, ok := domain.ParseMode(req.Mode)
	if !ok {
		return "", "", &domain.InputError{Field: "mode", Reason: "must be one of optimize, create, analyze"}
	}
	if req.ProductData == nil {
		return "", "", &domain.InputError{Field: "productData", Reason: "is required"}
	}
	if strings.TrimSpace(req.ProductData.Title) == "" && strings.TrimSpace(req.ProductData.Description) == "" {
		return "", "", &domain.InputError{Field: "productData", Reason: "needs a title or a description"}
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return "", "", &domain.InputError{Field: "payload", Reason: err.Error()}
	}
	if len(payload) > uc.opts.MaxPayloadBytes {
		return "", "", &domain.InputError{
			Field:  "payload",
			Reason: fmt.Sprintf("is %d bytes, limit is %d", len(payload), uc.opts.MaxPayloadBytes),
		}
	}
	return platform, mode, nil
}

// Execute validates req, calls the generator with retries and optimizes the
// result for the requested platform.
func (uc *GenerateListingUseCase) Execute(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	platform, mode, err := uc.Validate(req)
	if err != nil {
		return nil, err
	}
	engine, err := optimizer.ForPlatform(platform, uc.rules)
	if err != nil {
		return nil, err
	}
	r := engine.Rules()
	product := *req.ProductData

	ctx, span := observability.Tracer().Start(ctx, "GenerateListing")
	defer span.End()
	span.SetAttributes(attribute.String("platform", string(platform)), attribute.String("mode", string(mode)))
	ctx = log.WithFields(ctx, "platform", platform, "mode", mode)

	var warnings []string
	if strings.TrimSpace(product.Category) == "" {
		warnings = append(warnings, "No category provided; generated with a generic product context")
	}
	if req.ImageAnalysis != nil && req.ImageAnalysis.Fallback {
		warnings = append(warnings, "Image analysis returned generic values and was not used")
	}

	baseline := seo.Quick(seo.Input{
		Title:       product.Title,
		Description: product.Description,
		Keywords:    product.Keywords,
	}, r)

	genReq := GenerationRequest{
		SystemPrompt: buildSystemPrompt(r),
		UserPrompt:   buildUserPrompt(mode, product, req.ImageAnalysis, req.Images, req.DeepAnalysis),
		Platform:     platform,
		Mode:         mode,
	}

	started := time.Now()
	listing, parseWarnings, attempts, err := uc.generate(ctx, genReq)
	observability.GenerationDuration.WithLabelValues(uc.generator.Model()).Observe(time.Since(started).Seconds())
	observability.GenerationAttempts.Observe(float64(attempts))
	if err != nil {
		observability.OptimizationsTotal.WithLabelValues(string(platform), string(mode), "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		log.GlobalErrorCtx(ctx, "generation failed", "attempts", attempts, "error", err)
		return nil, err
	}
	warnings = append(warnings, parseWarnings...)

	if listing.Title == "" {
		listing.Title = product.Title
		warnings = append(warnings, "Generated title was empty; the original product title was used")
	}

	res := optimizer.Optimize(engine, product, listing)
	warnings = append(warnings, res.Notes...)
	for _, v := range res.Compliance.Violations {
		warnings = append(warnings, v.Message)
	}

	score := res.Content.SEOScore.Overall
	observability.OptimizationsTotal.WithLabelValues(string(platform), string(mode), "success").Inc()
	observability.QualityScore.WithLabelValues(string(platform)).Observe(float64(score))
	span.SetAttributes(attribute.Int("quality_score", score), attribute.Int("attempts", attempts))
	log.GlobalInfoCtx(ctx, "listing generated",
		"attempts", attempts, "quality_score", score, "baseline_score", baseline.Total, "warnings", len(warnings))

	if warnings == nil {
		warnings = []string{}
	}
	return &GenerateResult{
		Platform:      platform,
		Mode:          mode,
		Product:       product,
		Listing:       res.Listing,
		Content:       res.Content,
		Enriched:      res.Platform,
		Compliance:    res.Compliance,
		Keywords:      res.Keywords,
		QualityScore:  score,
		BaselineScore: baseline.Total,
		PlatformNotes: listing.PlatformNotes,
		Warnings:      warnings,
		Attempts:      attempts,
		Model:         uc.generator.Model(),
	}, nil
}

// generate makes at most MaxRetries+1 attempts. Authentication failures and
// responses with missing fields stop immediately; everything else is retried
// with exponential backoff.
func (uc *GenerateListingUseCase) generate(ctx context.Context, req GenerationRequest) (domain.GeneratedListing, []string, int, error) {
	var (
		attempts int
		lastErr  error
		listing  domain.GeneratedListing
		warnings []string
	)

	op := func() error {
		attempts++
		attemptCtx, cancel := context.WithTimeout(ctx, uc.opts.AttemptTimeout)
		defer cancel()

		raw, err := uc.generator.Generate(attemptCtx, req)
		if err != nil {
			lastErr = err
			kind := errorKind(err)
			observability.GenerationErrors.WithLabelValues(kindLabel(kind)).Inc()
			log.GlobalWarnCtx(ctx, "generation attempt failed", "attempt", attempts, "kind", kindLabel(kind), "error", err)
			if kind == domain.ErrUpstreamAuth {
				return backoff.Permanent(err)
			}
			return err
		}

		parsed, parseWarnings, err := parseListing(raw, uc.opts.ValidateResponse)
		if err != nil {
			lastErr = err
			observability.GenerationErrors.WithLabelValues(kindLabel(domain.ErrValidationFailed)).Inc()
			var ve *domain.ValidationError
			if errors.As(err, &ve) && len(ve.Fields) > 0 {
				return backoff.Permanent(err)
			}
			log.GlobalWarnCtx(ctx, "unparseable generator output", "attempt", attempts, "error", err)
			return err
		}

		listing = sanitizeListing(parsed)
		warnings = parseWarnings
		return nil
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = uc.opts.BaseDelay
	eb.MaxInterval = uc.opts.MaxDelay
	eb.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(uc.opts.MaxRetries)), ctx)

	if err := backoff.Retry(op, policy); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return domain.GeneratedListing{}, nil, attempts, &domain.UpstreamError{
			Kind:     errorKind(lastErr),
			Attempts: attempts,
			Err:      lastErr,
		}
	}
	return listing, warnings, attempts, nil
}

// errorKind maps a generator or parse failure to its domain kind.
func errorKind(err error) error {
	for _, kind := range []error{
		domain.ErrUpstreamAuth,
		domain.ErrUpstreamRateLimit,
		domain.ErrUpstreamTimeout,
		domain.ErrValidationFailed,
		domain.ErrUpstreamUnavailable,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrUpstreamTimeout
	}
	return domain.ErrUpstreamUnavailable
}

func kindLabel(kind error) string {
	switch kind {
	case domain.ErrUpstreamAuth:
		return "auth"
	case domain.ErrUpstreamRateLimit:
		return "rate_limit"
	case domain.ErrUpstreamTimeout:
		return "timeout"
	case domain.ErrValidationFailed:
		return "validation"
	default:
		return "unavailable"
	}
}
