package web

import (
	"context"
	"errors"
	"time"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"listingpilot/internal/domain"
	"listingpilot/internal/rules"
	"listingpilot/internal/seo"
	"listingpilot/internal/usecases"
	"listingpilot/pkg/log"
)

// HealthCheck reports whether one backing service is reachable.
type HealthCheck func(ctx context.Context) error

// Dependencies are the use cases served over HTTP. History is nil when no
// history store is configured.
type Dependencies struct {
	Optimize     *usecases.OptimizeListingUseCase
	Scrape       *usecases.ScrapeListingUseCase
	AnalyzeImage *usecases.AnalyzeImageUseCase
	Score        *usecases.ScoreListingUseCase
	History      *usecases.ListHistoryUseCase
	Quota        *usecases.QuotaUseCase
	Rules        *rules.Table

	RequestTimeout time.Duration
	ScrapeTimeout  time.Duration
	HealthChecks   map[string]HealthCheck
}

// Handlers contains the HTTP handlers for the web application.
type Handlers struct {
	deps Dependencies
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps Dependencies) *Handlers {
	if deps.RequestTimeout <= 0 {
		deps.RequestTimeout = 90 * time.Second
	}
	if deps.ScrapeTimeout <= 0 {
		deps.ScrapeTimeout = 30 * time.Second
	}
	return &Handlers{deps: deps}
}

// render is a helper to render templ components.
func render(c *fiber.Ctx, component templ.Component) error {
	c.Set("Content-Type", "text/html")
	return adaptor.HTTPHandler(templ.Handler(component))(c)
}

type successResponse struct {
	Success  bool     `json:"success"`
	Data     any      `json:"data"`
	Warnings []string `json:"warnings,omitempty"`
}

func ok(c *fiber.Ctx, data any, warnings ...string) error {
	return c.JSON(successResponse{Success: true, Data: data, Warnings: warnings})
}

// parseBody decodes a JSON body into v.
func parseBody(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return &domain.InputError{Field: "body", Reason: "is required"}
	}
	if err := c.BodyParser(v); err != nil {
		return &domain.InputError{Field: "body", Reason: "must be valid JSON"}
	}
	return nil
}

// Home renders the landing page with the optimize form.
func (h *Handlers) Home(c *fiber.Ctx) error {
	return render(c, homePage(h.deps.Rules.Platforms()))
}

// PlatformsPage renders the rule table as HTML.
func (h *Handlers) PlatformsPage(c *fiber.Ctx) error {
	rows, err := h.platformRows()
	if err != nil {
		return err
	}
	return render(c, platformsPage(rows))
}

// Platforms returns the rule table as JSON.
func (h *Handlers) Platforms(c *fiber.Ctx) error {
	rows, err := h.platformRows()
	if err != nil {
		return err
	}
	return ok(c, rows)
}

func (h *Handlers) platformRows() ([]platformView, error) {
	platforms := h.deps.Rules.Platforms()
	rows := make([]platformView, 0, len(platforms))
	for _, p := range platforms {
		r, err := h.deps.Rules.Get(p)
		if err != nil {
			return nil, err
		}
		rows = append(rows, platformView{PlatformRules: r, AlgorithmFactors: h.deps.Rules.AlgorithmFactors(p)})
	}
	return rows, nil
}

// optimizeData flattens the optimized content next to the request outcome.
type optimizeData struct {
	domain.OptimizedContent
	Platform      domain.Platform                 `json:"platform"`
	Mode          domain.Mode                     `json:"mode"`
	Listing       domain.FormattedListing         `json:"listing"`
	Enriched      domain.PlatformOptimizedContent `json:"platformContent"`
	Compliance    domain.ComplianceResult         `json:"compliance"`
	Keywords      domain.KeywordSet               `json:"keywords"`
	QualityScore  int                             `json:"qualityScore"`
	BaselineScore int                             `json:"baselineScore"`
	PlatformNotes string                          `json:"platformNotes"`
	Attempts      int                             `json:"attempts"`
	Model         string                          `json:"model"`
	RecordID      string                          `json:"recordId,omitempty"`
	Usage         domain.Usage                    `json:"usage"`
}

// Optimize runs the full optimization flow for the calling principal.
func (h *Handlers) Optimize(c *fiber.Ctx) error {
	var req usecases.GenerateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.deps.RequestTimeout)
	defer cancel()

	res, err := h.deps.Optimize.Execute(ctx, PrincipalFrom(c), req)
	if err != nil {
		log.GlobalWarnCtx(ctx, "optimize failed", "platform", req.Platform, "mode", req.Mode, "error", err)
		return err
	}

	return ok(c, optimizeData{
		OptimizedContent: res.Content,
		Platform:         res.Platform,
		Mode:             res.Mode,
		Listing:          res.Listing,
		Enriched:         res.Enriched,
		Compliance:       res.Compliance,
		Keywords:         res.Keywords,
		QualityScore:     res.QualityScore,
		BaselineScore:    res.BaselineScore,
		PlatformNotes:    res.PlatformNotes,
		Attempts:         res.Attempts,
		Model:            res.Model,
		RecordID:         res.RecordID,
		Usage:            res.Usage,
	}, res.Warnings...)
}

type scrapeRequest struct {
	URL      string `json:"url"`
	Platform string `json:"platform"`
}

type scrapeData struct {
	Listing    *domain.ScrapedListing `json:"listing"`
	Platform   domain.Platform        `json:"platform,omitempty"`
	QuickScore *seo.QuickScore        `json:"quickScore,omitempty"`
}

// Scrape reads an existing marketplace listing. An explicit platform in
// the body overrides the one detected from the host.
func (h *Handlers) Scrape(c *fiber.Ctx) error {
	var req scrapeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	pageURL, platform, err := ParseListingURL(req.URL)
	if err != nil {
		return err
	}
	if req.Platform != "" {
		if platform, err = domain.ParsePlatform(req.Platform); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.deps.ScrapeTimeout)
	defer cancel()

	res, err := h.deps.Scrape.Execute(ctx, pageURL, platform)
	if err != nil {
		log.GlobalWarnCtx(ctx, "scrape failed", "url", pageURL, "error", err)
		return err
	}

	var warnings []string
	if res.Listing.Description == usecases.NoDescription {
		warnings = append(warnings, "No description was found on the page")
	}
	if platform == "" {
		warnings = append(warnings, "The marketplace could not be detected; no score was computed")
	}
	return ok(c, scrapeData{Listing: res.Listing, Platform: platform, QuickScore: res.Score}, warnings...)
}

type analyzeImageRequest struct {
	ImageURL string `json:"imageUrl"`
}

// AnalyzeImage returns the heuristic analysis of an image reference.
func (h *Handlers) AnalyzeImage(c *fiber.Ctx) error {
	var req analyzeImageRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	a, err := h.deps.AnalyzeImage.Execute(c.UserContext(), req.ImageURL)
	if err != nil {
		return err
	}
	if a.Fallback {
		return ok(c, a, "Image analysis returned generic values")
	}
	return ok(c, a)
}

// Score evaluates existing copy without generating anything.
func (h *Handlers) Score(c *fiber.Ctx) error {
	var req usecases.ScoreRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.deps.Score.Execute(req)
	if err != nil {
		return err
	}
	return ok(c, res)
}

// History lists the caller's saved optimizations, newest first.
func (h *Handlers) History(c *fiber.Ctx) error {
	if h.deps.History == nil {
		return fiber.NewError(fiber.StatusNotFound, "Optimization history is not enabled.")
	}
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return &domain.InputError{Field: "limit", Reason: "must not be negative"}
	}
	records, err := h.deps.History.Execute(c.UserContext(), PrincipalFrom(c), limit)
	if err != nil {
		return err
	}
	return ok(c, records)
}

// Usage reports the caller's quota for the current month.
func (h *Handlers) Usage(c *fiber.Ctx) error {
	p := PrincipalFrom(c)
	u, err := h.deps.Quota.Usage(c.UserContext(), p)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"tier": p.Tier, "guest": p.Guest, "usage": u})
}

// Health runs every configured check with a short deadline.
func (h *Handlers) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	checks := make(fiber.Map, len(h.deps.HealthChecks))
	var failed error
	for name, check := range h.deps.HealthChecks {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			failed = errors.Join(failed, err)
			continue
		}
		checks[name] = "ok"
	}
	if failed != nil {
		log.GlobalWarnCtx(ctx, "health check failed", "error", failed)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "checks": checks})
	}
	return c.JSON(fiber.Map{"status": "ok", "checks": checks})
}
