// Package export serializes generated-password collections to JSON or CSV and
// parses them back. Both formats round-trip: exporting a collection and
// importing the result yields an equal collection.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/passmint/passmint-go/internal/model"
)

// Format identifies a supported collection encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var ErrUnsupportedFormat = errors.New("unsupported format: must be json or csv")

// csvHeader is the fixed header row of the CSV encoding. The criteria column
// holds the JSON encoding of the criteria object as a quoted string.
var csvHeader = []string{"password", "timestamp", "criteria"}

// ParseError describes malformed import data with enough location context to
// report to the user: the 1-based data row for CSV, the byte offset for JSON.
type ParseError struct {
	Format Format
	Row    int
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Format == FormatCSV:
		return fmt.Sprintf("csv import: row %d: %v", e.Row, e.Err)
	case e.Offset > 0:
		return fmt.Sprintf("json import: offset %d: %v", e.Offset, e.Err)
	default:
		return fmt.Sprintf("json import: %v", e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Export writes the collection to w in the given format.
func Export(w io.Writer, entries []model.GeneratedPassword, format Format) error {
	switch format {
	case FormatJSON:
		return exportJSON(w, entries)
	case FormatCSV:
		return exportCSV(w, entries)
	default:
		return ErrUnsupportedFormat
	}
}

// Import parses a collection from r in the given format. Malformed input
// fails with a *ParseError.
func Import(r io.Reader, format Format) ([]model.GeneratedPassword, error) {
	switch format {
	case FormatJSON:
		return importJSON(r)
	case FormatCSV:
		return importCSV(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func exportJSON(w io.Writer, entries []model.GeneratedPassword) error {
	if entries == nil {
		entries = []model.GeneratedPassword{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func importJSON(r io.Reader) ([]model.GeneratedPassword, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var entries []model.GeneratedPassword
	if err := json.Unmarshal(data, &entries); err != nil {
		perr := &ParseError{Format: FormatJSON, Err: err}
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) {
			perr.Offset = syntaxErr.Offset
		} else if errors.As(err, &typeErr) {
			perr.Offset = typeErr.Offset
		}
		return nil, perr
	}

	return entries, nil
}

func exportCSV(w io.Writer, entries []model.GeneratedPassword) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, entry := range entries {
		criteria, err := json.Marshal(entry.Criteria)
		if err != nil {
			return err
		}
		record := []string{
			entry.Password,
			entry.CreatedAt.Format(time.RFC3339Nano),
			string(criteria),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func importCSV(r io.Reader) ([]model.GeneratedPassword, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ParseError{Format: FormatCSV, Err: errors.New("missing header row")}
	}
	if err != nil {
		return nil, &ParseError{Format: FormatCSV, Err: err}
	}
	for i, want := range csvHeader {
		if header[i] != want {
			return nil, &ParseError{Format: FormatCSV, Err: fmt.Errorf("unexpected header %q, want %q", header[i], want)}
		}
	}

	var entries []model.GeneratedPassword
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Format: FormatCSV, Row: row, Err: err}
		}

		createdAt, err := time.Parse(time.RFC3339Nano, record[1])
		if err != nil {
			return nil, &ParseError{Format: FormatCSV, Row: row, Err: fmt.Errorf("invalid timestamp: %w", err)}
		}

		var criteria model.Criteria
		if record[2] != "" {
			if err := json.Unmarshal([]byte(record[2]), &criteria); err != nil {
				return nil, &ParseError{Format: FormatCSV, Row: row, Err: fmt.Errorf("invalid criteria: %w", err)}
			}
		}

		entries = append(entries, model.GeneratedPassword{
			Password:  record[0],
			CreatedAt: createdAt,
			Criteria:  criteria,
		})
	}

	return entries, nil
}
