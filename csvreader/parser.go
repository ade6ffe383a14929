// Package csvreader turns uploaded CSV text into header lists and header-keyed records.
package csvreader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pivolan/torque_analyzer/domain/models"
)

const SEPARATOR = ','

var ErrEmptyFile = errors.New("csv file is empty")

// ParseError reports a structurally malformed CSV, e.g. unbalanced quoting.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func newReader(text []byte) *csv.Reader {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(text, utf8BOM)))
	r.Comma = SEPARATOR
	// rows may be shorter or longer than the header row
	r.FieldsPerRecord = -1
	return r
}

// readRow returns the next row that has at least one non-blank field.
func readRow(r *csv.Reader) ([]string, error) {
	for {
		row, err := r.Read()
		if err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &ParseError{Line: pe.Line, Err: pe.Err}
			}
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if !isBlank(row) {
			return row, nil
		}
	}
}

func isBlank(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// ReadHeaders returns the first non-empty row of text as column headers.
// Duplicate names are made unique with a numeric suffix.
func ReadHeaders(text []byte) ([]string, error) {
	row, err := readRow(newReader(text))
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, err
	}
	return ValidateHeaders(row), nil
}

// RecordReader yields one RawRecord per data row, keyed by the header row.
type RecordReader struct {
	r       *csv.Reader
	headers []string
}

// NewRecordReader consumes the header row of text and prepares lazy record reading.
func NewRecordReader(text []byte) (*RecordReader, error) {
	r := newReader(text)
	row, err := readRow(r)
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, err
	}
	return &RecordReader{r: r, headers: ValidateHeaders(row)}, nil
}

func (rr *RecordReader) Headers() []string {
	return rr.headers
}

// Next returns the next record, or io.EOF when the input is exhausted.
func (rr *RecordReader) Next() (models.RawRecord, error) {
	row, err := readRow(rr.r)
	if err != nil {
		return nil, err
	}
	n := len(row)
	if n > len(rr.headers) {
		n = len(rr.headers)
	}
	record := make(models.RawRecord, n)
	for i := 0; i < n; i++ {
		record[rr.headers[i]] = row[i]
	}
	return record, nil
}
