package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		want          float64
		wantDefaulted bool
	}{
		{
			name: "polish thousands with decimal comma and currency",
			raw:  "1 234,56 PLN",
			want: 1234.56,
		},
		{
			name: "non-breaking space thousands separator",
			raw:  "1 234,56 zł",
			want: 1234.56,
		},
		{
			name: "parenthesized amount is negative",
			raw:  "(200.00)",
			want: -200.00,
		},
		{
			name: "figure dash is negative",
			raw:  "−123,45",
			want: -123.45,
		},
		{
			name: "leading minus",
			raw:  "-99.95",
			want: -99.95,
		},
		{
			name: "comma and dot means dot decimal",
			raw:  "1,234.56",
			want: 1234.56,
		},
		{
			name: "comma only means decimal comma",
			raw:  "234,56",
			want: 234.56,
		},
		{
			name: "plain integer",
			raw:  "500",
			want: 500,
		},
		{
			name: "genuine zero is not defaulted",
			raw:  "0",
			want: 0,
		},
		{
			name: "currency token stripped mid-string",
			raw:  "EUR 45.10",
			want: 45.10,
		},
		{
			name:          "empty string defaults to zero",
			raw:           "",
			want:          0,
			wantDefaulted: true,
		},
		{
			name:          "garbage defaults to zero",
			raw:           "abc",
			want:          0,
			wantDefaulted: true,
		},
		{
			name:          "whitespace only defaults to zero",
			raw:           "   ",
			want:          0,
			wantDefaulted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Amount(tt.raw)
			assert.InDelta(t, tt.want, got.Value, 0.001)
			assert.Equal(t, tt.wantDefaulted, got.WasDefaulted)
		})
	}
}

func TestAmountNeverNaN(t *testing.T) {
	// Inputs crafted to stress the junk-stripping path.
	for _, raw := range []string{"--", "...", "-.", "1.2.3", "()", "(abc)", "NaN", "Inf"} {
		got := Amount(raw)
		assert.False(t, got.Value != got.Value, "NaN for %q", raw)
	}
}
