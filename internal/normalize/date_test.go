package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDate(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		want          string
		wantDefaulted bool
	}{
		{
			name: "iso passthrough",
			raw:  "2025-10-19",
			want: "2025-10-19",
		},
		{
			name: "iso with trailing time",
			raw:  "2025-10-19 12:00",
			want: "2025-10-19",
		},
		{
			name: "dotted day first",
			raw:  "19.10.2025",
			want: "2025-10-19",
		},
		{
			name: "slashed day first",
			raw:  "19/10/2025",
			want: "2025-10-19",
		},
		{
			name: "dashed day first",
			raw:  "19-10-2025",
			want: "2025-10-19",
		},
		{
			name: "two digit year assumed 2000s",
			raw:  "5.3.25",
			want: "2025-03-05",
		},
		{
			name: "polish month name",
			raw:  "19 października 2025",
			want: "2025-10-19",
		},
		{
			name: "russian month name",
			raw:  "19 октября 2025",
			want: "2025-10-19",
		},
		{
			name: "english month name via fallback layout",
			raw:  "19 Oct 2025",
			want: "2025-10-19",
		},
		{
			name:          "not a date",
			raw:           "not a date",
			want:          "",
			wantDefaulted: true,
		},
		{
			name:          "empty",
			raw:           "",
			want:          "",
			wantDefaulted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Date(tt.raw)
			assert.Equal(t, tt.want, got.ISO)
			assert.Equal(t, tt.wantDefaulted, got.WasDefaulted)
		})
	}
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 7, DaysBetween("2025-10-12", "2025-10-19"))
	assert.Equal(t, -1, DaysBetween("2025-10-19", "2025-10-18"))
	assert.Equal(t, 0, DaysBetween("junk", "2025-10-18"))
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, "2025-11-01", AddDays("2025-10-25", 7))
	assert.Equal(t, "junk", AddDays("junk", 7))
}
