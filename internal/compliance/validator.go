// Package compliance checks listing content against platform rules.
// Every check returns data; nothing here fails on malformed input.
package compliance

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"listingpilot/internal/domain"
)

// Content is the text a platform will display.
type Content struct {
	Title       string
	Description string
	Tags        []string
}

// ValidateTitleLength reports an error when title is longer than maxLength characters.
func ValidateTitleLength(title string, maxLength int) []domain.ComplianceViolation {
	n := utf8.RuneCountInString(title)
	if n <= maxLength {
		return nil
	}
	return []domain.ComplianceViolation{{
		Type:       domain.ViolationFormatting,
		Severity:   domain.SeverityError,
		Message:    fmt.Sprintf("Title exceeds maximum length of %d characters (%d)", maxLength, n),
		Location:   "title",
		Suggestion: fmt.Sprintf("Shorten the title to %d characters or fewer", maxLength),
	}}
}

// ValidateDescriptionLength warns when description is shorter than minLength characters.
func ValidateDescriptionLength(description string, minLength int) []domain.ComplianceViolation {
	n := utf8.RuneCountInString(strings.TrimSpace(description))
	if n >= minLength {
		return nil
	}
	return []domain.ComplianceViolation{{
		Type:       domain.ViolationStructure,
		Severity:   domain.SeverityWarning,
		Message:    fmt.Sprintf("Description is shorter than the recommended %d characters (%d)", minLength, n),
		Location:   "description",
		Suggestion: fmt.Sprintf("Expand the description to at least %d characters with features and use cases", minLength),
	}}
}

// ValidateTagCount reports an error when there are more tags than maxTags.
func ValidateTagCount(tags []string, maxTags int) []domain.ComplianceViolation {
	if len(tags) <= maxTags {
		return nil
	}
	return []domain.ComplianceViolation{{
		Type:       domain.ViolationStructure,
		Severity:   domain.SeverityError,
		Message:    fmt.Sprintf("Tag count %d exceeds the maximum of %d", len(tags), maxTags),
		Location:   "tags",
		Suggestion: fmt.Sprintf("Keep the %d most relevant tags", maxTags),
	}}
}

// CheckProhibitedWords reports one error per prohibited word found in text.
// Matching is a case-insensitive substring search.
func CheckProhibitedWords(text string, prohibitedWords []string) []domain.ComplianceViolation {
	return checkProhibitedWordsAt(text, prohibitedWords, "content")
}

func checkProhibitedWordsAt(text string, prohibitedWords []string, location string) []domain.ComplianceViolation {
	lower := strings.ToLower(text)
	var violations []domain.ComplianceViolation
	for _, word := range prohibitedWords {
		w := strings.ToLower(strings.TrimSpace(word))
		if w == "" || !strings.Contains(lower, w) {
			continue
		}
		violations = append(violations, domain.ComplianceViolation{
			Type:       domain.ViolationProhibitedWord,
			Severity:   domain.SeverityError,
			Message:    fmt.Sprintf("Prohibited term %q found", word),
			Location:   location,
			Suggestion: fmt.Sprintf("Remove or rephrase %q", word),
		})
	}
	return violations
}

// GenerateRecommendations maps each violation to a prioritized recommendation.
func GenerateRecommendations(violations []domain.ComplianceViolation) []domain.ComplianceRecommendation {
	recs := make([]domain.ComplianceRecommendation, 0, len(violations))
	for _, v := range violations {
		action := v.Suggestion
		if action == "" {
			action = "Review the " + v.Location
		}
		recs = append(recs, domain.ComplianceRecommendation{
			Type:     v.Type,
			Priority: priorityFor(v.Severity),
			Message:  v.Message,
			Action:   action,
		})
	}
	return recs
}

func priorityFor(s domain.Severity) domain.Priority {
	switch s {
	case domain.SeverityError:
		return domain.PriorityHigh
	case domain.SeverityWarning:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// Validate runs every check for the given platform rules.
func Validate(c Content, r domain.PlatformRules) domain.ComplianceResult {
	var violations []domain.ComplianceViolation
	violations = append(violations, ValidateTitleLength(c.Title, r.TitleRange.Max)...)
	violations = append(violations, ValidateDescriptionLength(c.Description, r.MinDescription)...)
	violations = append(violations, ValidateTagCount(c.Tags, r.MaxTags)...)
	violations = append(violations, checkProhibitedWordsAt(c.Title, r.ProhibitedWords, "title")...)
	violations = append(violations, checkProhibitedWordsAt(c.Description, r.ProhibitedWords, "description")...)

	return Result(violations)
}

// Result assembles a ComplianceResult from violations.
func Result(violations []domain.ComplianceViolation) domain.ComplianceResult {
	passed := true
	for _, v := range violations {
		if v.Severity == domain.SeverityError {
			passed = false
			break
		}
	}
	if violations == nil {
		violations = []domain.ComplianceViolation{}
	}
	return domain.ComplianceResult{
		Violations:      violations,
		Recommendations: GenerateRecommendations(violations),
		Passed:          passed,
	}
}
