package usecases_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listingpilot/internal/domain"
	"listingpilot/internal/usecases"
)

func TestExtractJSON(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare", `{"a":1}`, `{"a":1}`, true},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"prose around", `Here you go: {"a":{"b":2}} hope it helps`, `{"a":{"b":2}}`, true},
		{"no object", "I cannot do that", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := usecases.ExtractJSON(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseListing_StrictReportsFieldsInOrder(t *testing.T) {
	_, _, err := usecases.ParseListing(`{"title": "x", "description": 5, "keywords": []}`, true)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"bullets", "description", "platform_notes"}, ve.Fields)
}

func TestParseListing_NotJSONHasNoFields(t *testing.T) {
	_, _, err := usecases.ParseListing("plain text", true)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Empty(t, ve.Fields)
}

func TestSanitizeListing(t *testing.T) {
	in := domain.GeneratedListing{
		Title:       "  <b>Pour   Over</b> Kettle ",
		Bullets:     []string{"• Precise spout", "  ", "- Steel &amp; wood"},
		Description: "First  line\r\n\n\n\nSecond <i>para</i>",
		Keywords:    []string{"Kettle", "kettle", " pour over "},
	}

	got := usecases.SanitizeListing(in)

	assert.Equal(t, "Pour Over Kettle", got.Title)
	assert.Equal(t, []string{"Precise spout", "Steel & wood"}, got.Bullets)
	assert.Equal(t, "First line\n\nSecond para", got.Description)
	assert.Equal(t, []string{"Kettle", "pour over"}, got.Keywords)
}
