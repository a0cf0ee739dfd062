package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passmint/passmint-go/internal/model"
)

func sampleEntries() []model.GeneratedPassword {
	criteria := model.Criteria{
		Length:       12,
		UseUppercase: true,
		UseLowercase: true,
		UseNumbers:   true,
		UseSpecial:   true,
		Count:        2,
	}
	return []model.GeneratedPassword{
		{
			Password:  "Xk9#mQ2$vL5t",
			CreatedAt: time.Date(2026, 8, 30, 10, 15, 0, 0, time.UTC),
			Criteria:  criteria,
		},
		{
			Password:  `w"ith,comma`,
			CreatedAt: time.Date(2026, 8, 30, 10, 15, 1, 500000000, time.UTC),
			Criteria:  criteria,
		},
	}
}

func assertEntriesEqual(t *testing.T, want, got []model.GeneratedPassword) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Password, got[i].Password)
		assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt),
			"timestamp %v != %v", want[i].CreatedAt, got[i].CreatedAt)
		assert.Equal(t, want[i].Criteria, got[i].Criteria)
	}
}

func TestRoundTripJSON(t *testing.T) {
	entries := sampleEntries()

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, entries, FormatJSON))

	got, err := Import(&buf, FormatJSON)
	require.NoError(t, err)
	assertEntriesEqual(t, entries, got)
}

func TestRoundTripCSV(t *testing.T) {
	entries := sampleEntries()

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, entries, FormatCSV))

	got, err := Import(&buf, FormatCSV)
	require.NoError(t, err)
	assertEntriesEqual(t, entries, got)
}

func TestExportJSONSchema(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleEntries(), FormatJSON))

	out := buf.String()
	for _, key := range []string{
		`"password"`, `"timestamp"`, `"criteria"`,
		`"length"`, `"use_uppercase"`, `"use_lowercase"`,
		`"use_numbers"`, `"use_special"`, `"count"`,
	} {
		assert.Contains(t, out, key)
	}
}

func TestExportCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleEntries(), FormatCSV))

	first, _, _ := strings.Cut(buf.String(), "\n")
	assert.Equal(t, "password,timestamp,criteria", first)
}

func TestExportEmptyCollectionJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, nil, FormatJSON))

	got, err := Import(&buf, FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExportUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, sampleEntries(), Format("xml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestImportJSONMalformed(t *testing.T) {
	_, err := Import(strings.NewReader(`[{"password": "x", `), FormatJSON)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, FormatJSON, parseErr.Format)
	assert.Greater(t, parseErr.Offset, int64(0))
}

func TestImportJSONWrongTopLevelType(t *testing.T) {
	_, err := Import(strings.NewReader(`{"password": "x"}`), FormatJSON)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestImportCSVMalformedRowReportsRowIndex(t *testing.T) {
	input := strings.Join([]string{
		"password,timestamp,criteria",
		`ok-entry,2026-08-30T10:15:00Z,"{""length"":12}"`,
		`bad-entry,not-a-timestamp,"{""length"":12}"`,
	}, "\n")

	_, err := Import(strings.NewReader(input), FormatCSV)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, FormatCSV, parseErr.Format)
	assert.Equal(t, 2, parseErr.Row)
	assert.Contains(t, parseErr.Error(), "row 2")
}

func TestImportCSVBadCriteriaCell(t *testing.T) {
	input := strings.Join([]string{
		"password,timestamp,criteria",
		`entry,2026-08-30T10:15:00Z,not-json`,
	}, "\n")

	_, err := Import(strings.NewReader(input), FormatCSV)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, parseErr.Row)
}

func TestImportCSVMissingHeader(t *testing.T) {
	_, err := Import(strings.NewReader(""), FormatCSV)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestImportCSVWrongHeader(t *testing.T) {
	_, err := Import(strings.NewReader("user,when,options\n"), FormatCSV)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "header")
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"passwords.json", FormatJSON, false},
		{"passwords.CSV", FormatCSV, false},
		{"/tmp/out.Json", FormatJSON, false},
		{"passwords.xml", "", true},
		{"passwords", "", true},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnsupportedFormat, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}
