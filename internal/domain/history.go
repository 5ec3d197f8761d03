package domain

import "time"

// OptimizationRecord is one saved optimization in a user's history.
type OptimizationRecord struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	Platform      Platform         `json:"platform"`
	Mode          Mode             `json:"mode"`
	Input         ProductInfo      `json:"input"`
	Listing       FormattedListing `json:"listing"`
	QualityScore  int              `json:"qualityScore"`
	BaselineScore int              `json:"baselineScore"`
	SEOScore      SEOScore         `json:"seoScore"`
	Warnings      []string         `json:"warnings"`
	Model         string           `json:"model"`
	CreatedAt     time.Time        `json:"createdAt"`
}
