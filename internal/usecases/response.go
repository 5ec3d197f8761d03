package usecases

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xeipuuv/gojsonschema"

	"listingpilot/internal/domain"
)

var requiredFields = []string{"title", "bullets", "description", "keywords", "platform_notes"}

const listingSchema = `{
  "type": "object",
  "required": ["title", "bullets", "description", "keywords", "platform_notes"],
  "properties": {
    "title":          {"type": "string"},
    "bullets":        {"type": "array", "items": {"type": "string"}},
    "description":    {"type": "string"},
    "keywords":       {"type": "array", "items": {"type": "string"}},
    "platform_notes": {"type": "string"}
  }
}`

var (
	compiledSchema = mustSchema(listingSchema)

	codeFenceRe  = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("listing schema: %v", err))
	}
	return schema
}

// extractJSON pulls the JSON object out of model output that may be wrapped
// in a code fence or surrounded by prose.
func extractJSON(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if m := codeFenceRe.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// parseListing decodes raw generator output. A ValidationError without
// Fields means the text was not usable JSON; with Fields it names what was
// missing or mistyped. When strict is false, missing fields are defaulted
// and reported as warnings instead.
func parseListing(raw string, strict bool) (domain.GeneratedListing, []string, error) {
	doc, ok := extractJSON(raw)
	if !ok {
		return domain.GeneratedListing{}, nil, &domain.ValidationError{Reason: "response is not JSON"}
	}

	if strict {
		res, err := compiledSchema.Validate(gojsonschema.NewStringLoader(doc))
		if err != nil {
			return domain.GeneratedListing{}, nil, &domain.ValidationError{Reason: "response is not JSON"}
		}
		if !res.Valid() {
			return domain.GeneratedListing{}, nil, &domain.ValidationError{Fields: invalidFields(res.Errors())}
		}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(doc), &fields); err != nil {
		return domain.GeneratedListing{}, nil, &domain.ValidationError{Reason: "response is not JSON"}
	}
	var listing domain.GeneratedListing
	if err := json.Unmarshal([]byte(doc), &listing); err != nil {
		return domain.GeneratedListing{}, nil, &domain.ValidationError{Reason: fmt.Sprintf("unexpected field types: %v", err)}
	}

	var warnings []string
	for _, f := range requiredFields {
		if _, present := fields[f]; !present {
			warnings = append(warnings, fmt.Sprintf("Generated content was missing %q; a default was used", f))
		}
	}
	return listing, warnings, nil
}

// invalidFields names the top-level fields behind schema errors, in the
// order the schema lists them.
func invalidFields(errs []gojsonschema.ResultError) []string {
	var bad []string
	for _, e := range errs {
		field := e.Field()
		if e.Type() == "required" {
			if p, ok := e.Details()["property"].(string); ok {
				field = p
			}
		}
		field, _, _ = strings.Cut(field, ".")
		if field != "" && field != "(root)" && !slices.Contains(bad, field) {
			bad = append(bad, field)
		}
	}
	slices.SortStableFunc(bad, func(a, b string) int {
		return fieldRank(a) - fieldRank(b)
	})
	return bad
}

func fieldRank(f string) int {
	if i := slices.Index(requiredFields, f); i >= 0 {
		return i
	}
	return len(requiredFields)
}

// sanitizeListing strips markup and normalizes whitespace in generated copy.
func sanitizeListing(l domain.GeneratedListing) domain.GeneratedListing {
	out := domain.GeneratedListing{
		Title:         strings.Join(strings.Fields(stripHTML(l.Title)), " "),
		Description:   cleanParagraphs(stripHTML(l.Description)),
		PlatformNotes: strings.TrimSpace(stripHTML(l.PlatformNotes)),
		Bullets:       []string{},
		Keywords:      []string{},
	}
	for _, b := range l.Bullets {
		b = strings.Join(strings.Fields(stripHTML(b)), " ")
		b = strings.TrimLeft(b, "•-* ")
		if b != "" {
			out.Bullets = append(out.Bullets, b)
		}
	}
	seen := map[string]bool{}
	for _, k := range l.Keywords {
		k = strings.Join(strings.Fields(stripHTML(k)), " ")
		key := strings.ToLower(k)
		if k == "" || seen[key] {
			continue
		}
		seen[key] = true
		out.Keywords = append(out.Keywords, k)
	}
	return out
}

// stripHTML returns the text content of s, decoding entities. Plain text is
// returned unchanged.
func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

func cleanParagraphs(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(blankLinesRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}
