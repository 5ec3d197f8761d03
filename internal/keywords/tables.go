package keywords

import "listingpilot/internal/domain"

var stopWords = map[string]struct{}{
	"about": {}, "above": {}, "after": {}, "again": {}, "also": {}, "been": {}, "before": {},
	"being": {}, "below": {}, "between": {}, "both": {}, "could": {}, "does": {}, "doing": {},
	"down": {}, "during": {}, "each": {}, "even": {}, "every": {}, "from": {}, "further": {},
	"have": {}, "having": {}, "here": {}, "into": {}, "just": {}, "like": {}, "made": {},
	"make": {}, "many": {}, "more": {}, "most": {}, "much": {}, "must": {}, "only": {},
	"other": {}, "over": {}, "same": {}, "should": {}, "some": {}, "such": {}, "than": {},
	"that": {}, "their": {}, "them": {}, "then": {}, "there": {}, "these": {}, "they": {},
	"this": {}, "those": {}, "through": {}, "under": {}, "until": {}, "upon": {}, "very": {},
	"were": {}, "what": {}, "when": {}, "where": {}, "which": {}, "while": {}, "will": {},
	"with": {}, "within": {}, "without": {}, "would": {}, "your": {}, "yours": {},
}

type synonymEntry struct {
	noun     string
	synonyms []string
}

// synonymTable is ordered so research output is deterministic.
var synonymTable = []synonymEntry{
	{"bottle", []string{"flask", "water bottle", "tumbler", "canteen"}},
	{"case", []string{"cover", "protector", "sleeve", "shell"}},
	{"bag", []string{"tote", "pouch", "satchel", "backpack"}},
	{"mug", []string{"cup", "coffee cup", "tumbler"}},
	{"wallet", []string{"billfold", "card holder", "purse"}},
	{"phone", []string{"smartphone", "mobile", "cell phone"}},
	{"laptop", []string{"notebook", "computer", "ultrabook"}},
	{"watch", []string{"timepiece", "wristwatch", "smartwatch"}},
	{"headphone", []string{"earphones", "headset", "earbuds"}},
	{"charger", []string{"charging cable", "power adapter", "charging station"}},
}

var platformBoilerplate = map[domain.Platform][]string{
	domain.Amazon:      {"prime eligible", "gift idea", "everyday use"},
	domain.Etsy:        {"handmade", "unique gift", "personalized"},
	domain.Ebay:        {"brand new", "fast dispatch"},
	domain.Shopify:     {"shop online", "free returns"},
	domain.Walmart:     {"great value", "everyday essentials"},
	domain.WooCommerce: {"buy online", "secure checkout"},
}
