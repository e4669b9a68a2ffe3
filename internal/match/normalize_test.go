package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVenueName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "leading article stripped",
			input: "The Showbox",
			want:  "showbox",
		},
		{
			name:  "trailing suffix stripped",
			input: "Showbox Theater",
			want:  "showbox",
		},
		{
			name:  "article and suffix converge",
			input: "The Paramount Theatre",
			want:  "paramount",
		},
		{
			name:  "stacked suffixes all stripped",
			input: "Moore Theatre Hall",
			want:  "moore",
		},
		{
			name:  "punctuation becomes spaces",
			input: "Neumo's!",
			want:  "neumo s",
		},
		{
			name:  "last word never stripped",
			input: "The Arena",
			want:  "arena",
		},
		{
			name:  "bare suffix word survives",
			input: "Theater",
			want:  "theater",
		},
		{
			name:  "multi-word name untouched",
			input: "Madison Square Garden",
			want:  "madison square garden",
		},
		{
			name:  "whitespace collapsed",
			input: "  Crocodile   Cafe  ",
			want:  "crocodile cafe",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeVenueName(tt.input)
			assert.Equal(t, tt.want, got)

			// Normalization must be a fixed point.
			assert.Equal(t, got, NormalizeVenueName(got))
		})
	}
}

func TestNormalizeVenueNameConvergence(t *testing.T) {
	// Two providers naming the same room must land on one normalized form.
	assert.Equal(t,
		NormalizeVenueName("The Showbox"),
		NormalizeVenueName("Showbox Theater"))
}

func TestNormalizeEventTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "leading article stripped",
			input: "The Black Tones",
			want:  "black tones",
		},
		{
			name:  "venue suffixes kept in titles",
			input: "Live at the Crystal Ballroom",
			want:  "live at the crystal ballroom",
		},
		{
			name:  "punctuation and case",
			input: "Jazz Night: Vol. 3",
			want:  "jazz night vol 3",
		},
		{
			name:  "single article survives",
			input: "The",
			want:  "the",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeEventTitle(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeEventTitle(got))
		})
	}
}
