package optimizer

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"listingpilot/internal/domain"
)

func TestOptimizeTitleForMobile(t *testing.T) {
	testCases := []struct {
		name      string
		title     string
		frontLoad int
		want      string
	}{
		{"fits unchanged", "Ceramic Coffee Mug", 60, "Ceramic Coffee Mug"},
		{"whole words only", "Wireless Bluetooth Headphones With Noise Cancelling Technology", 20, "Wireless Bluetooth"},
		{"first word too long", "Supercalifragilistic Bottle", 10, "Supercali…"},
		{"zero budget", "Mug", 0, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := OptimizeTitleForMobile(tc.title, tc.frontLoad)
			if got != tc.want {
				t.Errorf("OptimizeTitleForMobile(%q, %d) = %q, want %q", tc.title, tc.frontLoad, got, tc.want)
			}
			if tc.frontLoad > 0 && utf8.RuneCountInString(got) > tc.frontLoad {
				t.Errorf("result %q exceeds %d characters", got, tc.frontLoad)
			}
		})
	}
}

func TestFormatDescriptionForMobile_SplitsLongParagraphs(t *testing.T) {
	// Arrange
	sentence := "This bottle keeps water cold for a full day on long hikes and summer rides"
	long := strings.Join([]string{sentence, sentence, sentence, sentence}, ". ") + "."
	input := "Short intro.\n\n" + long

	// Act
	got := FormatDescriptionForMobile(input)

	// Assert
	paragraphs := strings.Split(got, "\n\n")
	if paragraphs[0] != "Short intro." {
		t.Errorf("first paragraph = %q, want it untouched", paragraphs[0])
	}
	if len(paragraphs) < 3 {
		t.Fatalf("expected the long paragraph to be split, got %d paragraphs", len(paragraphs))
	}
	for _, p := range paragraphs {
		if n := utf8.RuneCountInString(p); n > mobileParagraphMax {
			t.Errorf("paragraph has %d characters: %q", n, p)
		}
	}
	if strings.Count(got, "summer rides") != 4 {
		t.Errorf("sentences were lost: %q", got)
	}
}

func TestFormatDescriptionForMobile_NormalizesBlankLines(t *testing.T) {
	got := FormatDescriptionForMobile("  One.\n \n\nTwo.  ")

	if got != "One.\n\nTwo." {
		t.Errorf("got %q", got)
	}
}

func TestExtractKeySpecifications(t *testing.T) {
	specs := []domain.Specification{
		{Name: "Battery Life", Value: "30", Unit: "hours"},
		{Name: "ScreenSize", Value: "6.1", Unit: "in"},
		{Name: "Color", Value: "Black"},
		{Name: "  ", Value: "ignored"},
	}

	got := ExtractKeySpecifications(specs)

	want := map[string]string{
		"battery_life": "30 hours",
		"screen_size":  "6.1 in",
		"color":        "Black",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractKeySpecifications() = %v, want %v", got, want)
	}
}

func TestSlugify(t *testing.T) {
	if got := slugify("  Gooseneck Kettle, 1L! "); got != "gooseneck-kettle-1l" {
		t.Errorf("slugify() = %q", got)
	}
}

func TestTitleCase_KeepsMinorWordsAndCapitals(t *testing.T) {
	if got := titleCase("stainless steel bottle with LID for iPhone"); got != "Stainless Steel Bottle with LID for IPhone" {
		t.Errorf("titleCase() = %q", got)
	}
}
