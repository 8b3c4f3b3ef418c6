package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDelimited(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantRows int
		check    func(t *testing.T, rows []Row)
	}{
		{
			name:     "comma separated",
			text:     "date,amount,desc\n2025-10-19,100,coffee\n2025-10-20,-50,paper",
			wantRows: 2,
			check: func(t *testing.T, rows []Row) {
				assert.Equal(t, "100", rows[0]["amount"])
				assert.Equal(t, "paper", rows[1]["desc"])
			},
		},
		{
			name:     "semicolon detected from header",
			text:     "Data księgowania;Kwota;Opis\n2025-10-19;1 200,00;Czynsz",
			wantRows: 1,
			check: func(t *testing.T, rows []Row) {
				assert.Equal(t, "1 200,00", rows[0]["Kwota"])
			},
		},
		{
			name:     "quoted field containing separator",
			text:     "date,desc,amount\n2025-10-19,\"ACME, sp. z o.o.\",-100",
			wantRows: 1,
			check: func(t *testing.T, rows []Row) {
				assert.Equal(t, "ACME, sp. z o.o.", rows[0]["desc"])
			},
		},
		{
			name:     "BOM and CR stripped, empty lines skipped",
			text:     "\uFEFFdate,amount\r\n\r\n2025-10-19,5\r\n",
			wantRows: 1,
			check: func(t *testing.T, rows []Row) {
				assert.Equal(t, "5", rows[0]["amount"])
			},
		},
		{
			name:     "short row still has all header keys",
			text:     "a,b,c\n1,2",
			wantRows: 1,
			check: func(t *testing.T, rows []Row) {
				v, ok := rows[0]["c"]
				assert.True(t, ok)
				assert.Equal(t, "", v)
			},
		},
		{
			name:     "empty input",
			text:     "",
			wantRows: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := ParseDelimited(tt.text)
			require.Len(t, rows, tt.wantRows)
			if tt.check != nil {
				tt.check(t, rows)
			}
		})
	}
}

func TestParseDelimitedRoundTrip(t *testing.T) {
	// N data rows in, N row objects out, every header key present.
	text := "date;Kwota;Kontrahent\n2025-10-01;1,00;A\n2025-10-02;2,00;B\n2025-10-03;3,00;C"
	rows := ParseDelimited(text)
	require.Len(t, rows, 3)
	for _, row := range rows {
		for _, key := range []string{"date", "Kwota", "Kontrahent"} {
			_, ok := row[key]
			assert.True(t, ok, "missing key %s", key)
		}
	}
}
