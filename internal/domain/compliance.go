package domain

// ViolationType classifies a compliance violation.
type ViolationType string

const (
	ViolationFormatting     ViolationType = "formatting"
	ViolationProhibitedWord ViolationType = "prohibited_word"
	ViolationStructure      ViolationType = "structure"
)

// Severity of a compliance violation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Priority of a compliance recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ComplianceViolation is a detected deviation from a platform rule.
type ComplianceViolation struct {
	Type       ViolationType `json:"type"`
	Severity   Severity      `json:"severity"`
	Message    string        `json:"message"`
	Location   string        `json:"location"`
	Suggestion string        `json:"suggestion"`
}

// ComplianceRecommendation is the action derived from a violation.
type ComplianceRecommendation struct {
	Type     ViolationType `json:"type"`
	Priority Priority      `json:"priority"`
	Message  string        `json:"message"`
	Action   string        `json:"action"`
}

// ComplianceResult is the outcome of validating content against platform rules.
type ComplianceResult struct {
	Violations      []ComplianceViolation      `json:"violations"`
	Recommendations []ComplianceRecommendation `json:"recommendations"`
	Passed          bool                       `json:"passed"`
}
