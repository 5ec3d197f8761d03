package rules

import "listingpilot/internal/domain"

func defaultRules() map[domain.Platform]domain.PlatformRules {
	return map[domain.Platform]domain.PlatformRules{
		domain.Amazon: {
			Platform:       domain.Amazon,
			Name:           "Amazon",
			TitleRange:     domain.Range{Min: 50, Max: 200},
			OptimalTitle:   domain.Range{Min: 80, Max: 200},
			MinDescription: 1000,
			MaxTags:        7,
			TagFormat:      "space separated backend search terms, 249 bytes total",
			Guidelines: []string{
				"Lead the title with brand and product type",
				"Capitalize the first letter of each word in the title",
				"Write five benefit-focused bullet points",
				"Keep pricing, promotions and seller details out of the listing",
				"Avoid subjective claims such as best or top rated",
			},
			ProhibitedWords: []string{"best seller", "free shipping", "guaranteed", "100% satisfaction", "limited time", "on sale", "cheapest", "#1"},
		},
		domain.Shopify: {
			Platform:       domain.Shopify,
			Name:           "Shopify",
			TitleRange:     domain.Range{Min: 20, Max: 70},
			OptimalTitle:   domain.Range{Min: 40, Max: 70},
			MinDescription: 300,
			MaxTags:        25,
			TagFormat:      "comma separated tags",
			Guidelines: []string{
				"Keep the title within 70 characters so it fits the meta title",
				"Write a meta description under 160 characters",
				"Use scannable paragraphs and short feature lists",
				"Speak in the brand voice of the store",
			},
			ProhibitedWords: []string{"click here", "buy now!!!", "guaranteed results"},
		},
		domain.Etsy: {
			Platform:       domain.Etsy,
			Name:           "Etsy",
			TitleRange:     domain.Range{Min: 30, Max: 140},
			OptimalTitle:   domain.Range{Min: 60, Max: 140},
			MinDescription: 500,
			MaxTags:        13,
			TagFormat:      "up to 13 tags, 20 characters each",
			Guidelines: []string{
				"Put the most descriptive words at the start of the title",
				"Use all 13 tags with multi-word phrases",
				"Describe materials, process and who made the item",
				"Tell the story behind the product",
			},
			ProhibitedWords: []string{"replica", "knockoff", "counterfeit", "authentic designer"},
		},
		domain.Ebay: {
			Platform:       domain.Ebay,
			Name:           "eBay",
			TitleRange:     domain.Range{Min: 20, Max: 80},
			OptimalTitle:   domain.Range{Min: 60, Max: 80},
			MinDescription: 500,
			MaxTags:        20,
			TagFormat:      "item specifics as name/value pairs",
			Guidelines: []string{
				"Use all 80 title characters with searchable terms",
				"State condition, brand, model and size in the title",
				"Fill in item specifics for every known attribute",
				"Avoid punctuation and filler words in the title",
			},
			ProhibitedWords: []string{"l@@k", "wow!", "best price", "free gift", "contact me outside ebay"},
		},
		domain.Walmart: {
			Platform:       domain.Walmart,
			Name:           "Walmart",
			TitleRange:     domain.Range{Min: 25, Max: 75},
			OptimalTitle:   domain.Range{Min: 50, Max: 75},
			MinDescription: 600,
			MaxTags:        10,
			TagFormat:      "key features list, 3 to 10 entries",
			Guidelines: []string{
				"Follow brand, product, key attribute, size order in the title",
				"Provide 3 to 10 key feature bullets",
				"Write a shelf description of at least 150 words",
				"Do not mention other retailers",
			},
			ProhibitedWords: []string{"free shipping", "best price", "amazon", "ebay", "limited time offer"},
		},
		domain.WooCommerce: {
			Platform:       domain.WooCommerce,
			Name:           "WooCommerce",
			TitleRange:     domain.Range{Min: 20, Max: 70},
			OptimalTitle:   domain.Range{Min: 40, Max: 70},
			MinDescription: 300,
			MaxTags:        15,
			TagFormat:      "comma separated product tags",
			Guidelines: []string{
				"Write a short description of two or three sentences",
				"Keep the title within 70 characters for search snippets",
				"Use headings and lists in the long description",
			},
			ProhibitedWords: []string{"click here", "guaranteed results"},
		},
	}
}

func defaultFactors() map[domain.Platform][]domain.AlgorithmFactor {
	return map[domain.Platform][]domain.AlgorithmFactor{
		domain.Amazon: {
			{Name: "relevance", Weight: 0.35},
			{Name: "sales_velocity", Weight: 0.25},
			{Name: "conversion_rate", Weight: 0.20},
			{Name: "reviews", Weight: 0.10},
			{Name: "price_competitiveness", Weight: 0.10},
		},
		domain.Shopify: {
			{Name: "on_page_seo", Weight: 0.35},
			{Name: "content_depth", Weight: 0.20},
			{Name: "page_speed", Weight: 0.20},
			{Name: "structured_data", Weight: 0.15},
			{Name: "backlinks", Weight: 0.10},
		},
		domain.Etsy: {
			{Name: "query_matching", Weight: 0.30},
			{Name: "listing_quality", Weight: 0.25},
			{Name: "customer_experience", Weight: 0.20},
			{Name: "recency", Weight: 0.15},
			{Name: "shipping_price", Weight: 0.10},
		},
		domain.Ebay: {
			{Name: "best_match_relevance", Weight: 0.30},
			{Name: "seller_performance", Weight: 0.25},
			{Name: "item_specifics", Weight: 0.20},
			{Name: "price", Weight: 0.15},
			{Name: "shipping", Weight: 0.10},
		},
		domain.Walmart: {
			{Name: "content_quality", Weight: 0.30},
			{Name: "price", Weight: 0.25},
			{Name: "availability", Weight: 0.20},
			{Name: "reviews", Weight: 0.15},
			{Name: "fulfillment", Weight: 0.10},
		},
		domain.WooCommerce: {
			{Name: "on_page_seo", Weight: 0.35},
			{Name: "content_depth", Weight: 0.25},
			{Name: "structured_data", Weight: 0.15},
			{Name: "page_speed", Weight: 0.15},
			{Name: "backlinks", Weight: 0.10},
		},
	}
}
