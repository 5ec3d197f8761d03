package web

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"listingpilot/internal/domain"
	"listingpilot/pkg/log"
)

// errorResponse is the body of every failed API call.
type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// ErrorHandler is the fiber error handler. Domain error kinds map to a
// status and a neutral message; *fiber.Error keeps its own code.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(errorResponse{Error: fe.Message})
	}

	status, msg := classify(err)
	if status >= fiber.StatusInternalServerError {
		log.GlobalErrorCtx(c.UserContext(), "request failed", "path", c.Path(), "status", status, "error", err)
	}
	if status == fiber.StatusTooManyRequests {
		c.Set(fiber.HeaderRetryAfter, "60")
	}
	return c.Status(status).JSON(errorResponse{Error: msg, Details: details(err)})
}

// classify picks the status and message for err. Scrape failures are
// checked before context errors because they wrap the fetch cause.
func classify(err error) (int, string) {
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		return upstreamStatus(ue.Kind)
	}

	switch {
	case errors.Is(err, domain.ErrUnsupportedPlatform):
		return fiber.StatusBadRequest, "That marketplace isn't supported."
	case errors.Is(err, domain.ErrInvalidURL):
		return fiber.StatusBadRequest, "That doesn't look like a product page URL. Paste an http(s) link to a marketplace listing."
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "Some fields in the request are missing or invalid."
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized, "Sign in to use this feature."
	case errors.Is(err, domain.ErrQuotaExceeded):
		return fiber.StatusTooManyRequests, "You've used all optimizations for this month."
	case errors.Is(err, domain.ErrRateLimited):
		return fiber.StatusTooManyRequests, "Too many requests. Please wait a moment and try again."
	case errors.Is(err, domain.ErrScrapingFailed):
		return fiber.StatusUnprocessableEntity, "We couldn't read that listing page. It might be private or unavailable."
	case errors.Is(err, domain.ErrValidationFailed),
		errors.Is(err, domain.ErrUpstreamAuth),
		errors.Is(err, domain.ErrUpstreamRateLimit),
		errors.Is(err, domain.ErrUpstreamTimeout),
		errors.Is(err, domain.ErrUpstreamUnavailable):
		return upstreamStatus(upstreamKind(err))
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, "The request took too long. Please try again."
	case errors.Is(err, context.Canceled):
		return fiber.StatusServiceUnavailable, "The request was cancelled. Please try again."
	default:
		return fiber.StatusInternalServerError, "Something went wrong. Please try again in a moment."
	}
}

func upstreamKind(err error) error {
	for _, kind := range []error{
		domain.ErrValidationFailed,
		domain.ErrUpstreamAuth,
		domain.ErrUpstreamRateLimit,
		domain.ErrUpstreamTimeout,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return domain.ErrUpstreamUnavailable
}

func upstreamStatus(kind error) (int, string) {
	switch kind {
	case domain.ErrValidationFailed:
		return fiber.StatusUnprocessableEntity, "Generation produced malformed content. Please retry."
	case domain.ErrUpstreamRateLimit:
		return fiber.StatusTooManyRequests, "The writing service is busy. Please try again shortly."
	case domain.ErrUpstreamTimeout:
		return fiber.StatusGatewayTimeout, "The writing service took too long to answer. Please try again."
	default:
		// Credential failures surface as an outage.
		return fiber.StatusServiceUnavailable, "The writing service is unavailable right now. Please try again later."
	}
}

// details exposes the structured part of typed errors.
func details(err error) any {
	var (
		ie  *domain.InputError
		upe *domain.UnsupportedPlatformError
		ve  *domain.ValidationError
		ue  *domain.UpstreamError
	)
	switch {
	case errors.As(err, &upe):
		return fiber.Map{"platform": upe.Platform, "supported": domain.Platforms()}
	case errors.As(err, &ie):
		return fiber.Map{"field": ie.Field, "reason": ie.Reason}
	case errors.As(err, &ve):
		d := fiber.Map{"fields": ve.Fields}
		if errors.As(err, &ue) {
			d["attempts"] = ue.Attempts
		}
		return d
	case errors.As(err, &ue):
		return fiber.Map{"attempts": ue.Attempts}
	default:
		return nil
	}
}
