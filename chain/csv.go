package chain

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// CSVOptions holds options for trace loading.
type CSVOptions struct {
	Delimiter rune     // Field delimiter (default: ',')
	SkipRows  int      // Number of rows to skip before the header
	Columns   []string // Columns to keep (default: all non-index columns)
	Index     []string // Bookkeeping columns to ignore (default: iteration, draw, chain)
}

// DefaultCSVOptions returns default options for trace loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		Delimiter: ',',
		Index:     []string{"iteration", "draw", "chain", ""},
	}
}

// Trace holds the samples of one sampler run, column by column.
// It implements Source.
type Trace struct {
	Name    string
	columns []string
	data    map[string][]float64
}

// Variables returns the column names in file order.
func (t *Trace) Variables() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Samples returns the samples recorded for column name.
func (t *Trace) Samples(name string) ([]float64, error) {
	values, ok := t.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in trace %q", ErrUnknownVariable, name, t.Name)
	}
	return values, nil
}

// Len returns the number of iterations in the trace.
func (t *Trace) Len() int {
	if len(t.columns) == 0 {
		return 0
	}
	return len(t.data[t.columns[0]])
}

// LoadCSV loads a trace from a CSV file. The trace is named after the file.
func LoadCSV(filename string, opts *CSVOptions) (*Trace, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	trace, err := LoadCSVFromReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	trace.Name = filename
	return trace, nil
}

// LoadCSVFromReader loads a trace from an io.Reader. The first non-comment
// row is the header; lines starting with '#' are ignored.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Trace, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := newCSVReader(r, opts.Delimiter)

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	skip := make(map[string]bool, len(opts.Index))
	for _, name := range opts.Index {
		skip[name] = true
	}
	keep := make(map[string]bool, len(opts.Columns))
	for _, name := range opts.Columns {
		keep[name] = true
	}

	trace := &Trace{data: make(map[string][]float64)}
	indices := make([]int, 0, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.Trim(h, "\""))
		if skip[h] || (len(keep) > 0 && !keep[h]) {
			continue
		}
		if _, dup := trace.data[h]; dup {
			return nil, fmt.Errorf("duplicate column %q", h)
		}
		trace.columns = append(trace.columns, h)
		trace.data[h] = nil
		indices = append(indices, i)
	}
	for name := range keep {
		if _, ok := trace.data[name]; !ok {
			return nil, fmt.Errorf("%w: column %q", ErrUnknownVariable, name)
		}
	}
	if len(trace.columns) == 0 {
		return nil, errors.New("no sample columns found in CSV")
	}

	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row++

		for k, idx := range indices {
			name := trace.columns[k]
			if idx >= len(record) {
				return nil, fmt.Errorf("row %d: missing column %q", row, name)
			}
			val, err := parseSample(record[idx])
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", row, name, err)
			}
			trace.data[name] = append(trace.data[name], val)
		}
	}

	if row == 0 {
		return nil, ErrEmptyChain
	}

	return trace, nil
}

// LoadMatrixCSV loads a headerless numeric matrix, one row per line.
// Rows may differ in width; callers check the shape they need.
func LoadMatrixCSV(filename string) ([][]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadMatrixFromReader(file)
}

// LoadMatrixFromReader loads a headerless numeric matrix from an io.Reader.
func LoadMatrixFromReader(r io.Reader) ([][]float64, error) {
	reader := newCSVReader(r, ',')

	var rows [][]float64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make([]float64, 0, len(record))
		for j, field := range record {
			val, err := parseSample(field)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", len(rows)+1, j+1, err)
			}
			row = append(row, val)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, errors.New("no rows found in CSV")
	}
	return rows, nil
}

func newCSVReader(r io.Reader, delimiter rune) *csv.Reader {
	reader := csv.NewReader(r)
	if delimiter != 0 {
		reader.Comma = delimiter
	}
	reader.Comment = '#'
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	return reader
}

// parseSample parses one numeric field. Missing markers are rejected since
// chains carry no missing values.
func parseSample(field string) (float64, error) {
	s := strings.TrimSpace(strings.Trim(field, "\""))
	switch s {
	case "", "NA", "NaN", "nan", "null":
		return 0, fmt.Errorf("%w: %q", ErrNonFinite, s)
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, fmt.Errorf("%w: %q", ErrNonFinite, s)
	}
	return val, nil
}
