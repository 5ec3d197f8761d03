package scraper

import (
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"listingpilot/internal/domain"
)

const maxImages = 10

var (
	breakRe       = regexp.MustCompile(`(?i)<br\s*/?\s*>|</p>|</li>|</div>|</h[1-6]>`)
	tagRe         = regexp.MustCompile(`<[^>]*>`)
	spacesRe      = regexp.MustCompile(`\s+`)
	hSpacesRe     = regexp.MustCompile(`[^\S\n]+`)
	blankLinesRe  = regexp.MustCompile(`\n{3,}`)
	priceNumberRe = regexp.MustCompile(`[0-9][0-9.,]*`)
)

// extract applies the rule chain to page. pageURL resolves relative image
// references.
func extract(page, pageURL string, rules FieldRules) *domain.ScrapedListing {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return &domain.ScrapedListing{Images: []string{}}
	}

	listing := &domain.ScrapedListing{
		Title:       cleanText(firstValue(doc, page, rules.Title, false)),
		Description: cleanTextPreserveNewlines(firstValue(doc, page, rules.Description, true)),
		Price:       cleanText(firstValue(doc, page, rules.Price, false)),
		Images:      extractImages(doc, page, pageURL, rules.Images),
	}
	listing.PriceValue = parsePrice(listing.Price)
	return listing
}

// firstValue returns the first non-blank value in the chain. With joinAll a
// selector rule joins the text of every matched element line by line.
func firstValue(doc *goquery.Document, page string, rules []Rule, joinAll bool) string {
	for _, r := range rules {
		var v string
		if r.re != nil {
			v = matchPattern(page, r.re)
		} else {
			v = selectValue(doc.Find(r.Selector), r.Attr, joinAll)
		}
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func selectValue(sel *goquery.Selection, attr string, joinAll bool) string {
	if sel.Length() == 0 {
		return ""
	}
	if attr != "" {
		v, _ := sel.First().Attr(attr)
		return v
	}
	if !joinAll {
		return textWithBreaks(sel.First())
	}
	parts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(textWithBreaks(s)); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, "\n")
}

// textWithBreaks turns block boundaries and <br> into newlines before
// dropping markup.
func textWithBreaks(s *goquery.Selection) string {
	inner, err := s.Html()
	if err != nil {
		return s.Text()
	}
	inner = breakRe.ReplaceAllString(inner, "\n")
	return html.UnescapeString(tagRe.ReplaceAllString(inner, ""))
}

func matchPattern(page string, re *regexp.Regexp) string {
	m := re.FindStringSubmatch(page)
	switch {
	case m == nil:
		return ""
	case len(m) > 1:
		return html.UnescapeString(m[1])
	default:
		return html.UnescapeString(m[0])
	}
}

// extractImages returns the absolute http(s) URLs found by the first rule
// that matches anything.
func extractImages(doc *goquery.Document, page, pageURL string, rules []Rule) []string {
	base, _ := url.Parse(pageURL)
	for _, r := range rules {
		var refs []string
		if r.re != nil {
			for _, m := range r.re.FindAllStringSubmatch(page, maxImages) {
				refs = append(refs, m[len(m)-1])
			}
		} else {
			attr := r.Attr
			if attr == "" {
				attr = "src"
			}
			doc.Find(r.Selector).Each(func(_ int, s *goquery.Selection) {
				if v, ok := s.Attr(attr); ok {
					refs = append(refs, v)
				}
			})
		}

		images := make([]string, 0, len(refs))
		seen := make(map[string]bool)
		for _, ref := range refs {
			abs := resolve(base, html.UnescapeString(strings.TrimSpace(ref)))
			if abs == "" || seen[abs] {
				continue
			}
			seen[abs] = true
			images = append(images, abs)
			if len(images) == maxImages {
				break
			}
		}
		if len(images) > 0 {
			return images
		}
	}
	return []string{}
}

func resolve(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

// parsePrice reads the first number in s. A separator followed by exactly
// two trailing digits is the decimal mark, so both "1,299.00" and
// "1.299,00" parse as 1299.
func parsePrice(s string) *float64 {
	m := strings.TrimRight(priceNumberRe.FindString(s), ".,")
	if m == "" {
		return nil
	}
	lastDot := strings.LastIndex(m, ".")
	lastComma := strings.LastIndex(m, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			m = strings.ReplaceAll(m, ".", "")
			m = strings.Replace(m, ",", ".", 1)
		} else {
			m = strings.ReplaceAll(m, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(m, ",") == 1 && len(m)-lastComma-1 == 2 {
			m = strings.Replace(m, ",", ".", 1)
		} else {
			m = strings.ReplaceAll(m, ",", "")
		}
	case strings.Count(m, ".") > 1:
		m = strings.ReplaceAll(m, ".", "")
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &v
}

// cleanText collapses all whitespace.
func cleanText(text string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(text, " "))
}

// cleanTextPreserveNewlines normalizes horizontal whitespace and keeps at
// most one blank line between paragraphs.
func cleanTextPreserveNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = hSpacesRe.ReplaceAllString(text, " ")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	return strings.TrimSpace(blankLinesRe.ReplaceAllString(text, "\n\n"))
}
