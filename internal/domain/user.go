package domain

// Tier is a subscription tier with its own monthly quota.
type Tier string

const (
	TierFree     Tier = "free"
	TierPro      Tier = "pro"
	TierBusiness Tier = "business"
)

// Principal is the caller supplied by the identity gateway. Guests have no
// gateway identity and are metered by client address instead.
type Principal struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Tier   Tier   `json:"tier"`
	Guest  bool   `json:"guest,omitempty"`
}

// Anonymous reports whether no gateway identity was supplied.
func (p Principal) Anonymous() bool {
	return p.Guest || p.UserID == ""
}

// Usage is the caller's quota state for the current period.
type Usage struct {
	Period    string `json:"period"`
	Used      int64  `json:"used"`
	Limit     int64  `json:"limit"`
	Remaining int64  `json:"remaining"`
	Unlimited bool   `json:"unlimited"`
}
