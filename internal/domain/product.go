package domain

// Specification is a single named product attribute.
type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// ProductInfo is the normalized product data consumed by the pipeline.
type ProductInfo struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Category       string          `json:"category,omitempty"`
	Brand          string          `json:"brand,omitempty"`
	Price          *float64        `json:"price,omitempty"`
	Keywords       []string        `json:"keywords,omitempty"`
	Features       []string        `json:"features,omitempty"`
	TargetAudience string          `json:"targetAudience,omitempty"`
	Specifications []Specification `json:"specifications,omitempty"`
}

// ImageAnalysis is a low-confidence guess about a product image.
type ImageAnalysis struct {
	Features   []string `json:"features"`
	Colors     []string `json:"colors"`
	Style      string   `json:"style"`
	Confidence float64  `json:"confidence"`
	// Fallback is set when nothing could be derived and generic values were returned.
	Fallback bool `json:"fallback"`
}

// ScrapedListing is the best-effort result of reading a marketplace product page.
type ScrapedListing struct {
	URL         string   `json:"url"`
	Platform    Platform `json:"platform,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       string   `json:"price,omitempty"`
	PriceValue  *float64 `json:"priceValue,omitempty"`
	Images      []string `json:"images"`
}

// ProductInfo converts the scraped page into pipeline input.
func (s ScrapedListing) ProductInfo() ProductInfo {
	return ProductInfo{
		Title:       s.Title,
		Description: s.Description,
		Price:       s.PriceValue,
	}
}
