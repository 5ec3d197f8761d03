package usecases

import "time"

// SetClock pins the quota period for tests.
func (uc *QuotaUseCase) SetClock(now func() time.Time) { uc.now = now }

var (
	ExtractJSON     = extractJSON
	ParseListing    = parseListing
	SanitizeListing = sanitizeListing
)
