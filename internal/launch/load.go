package launch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultPath is the launch file read when no other path is configured.
const DefaultPath = "spacex_launch_dash.csv"

const utf8BOM = "\ufeff"

// Load reads the launch file at path into a Dataset.
//
// Returns *LoadError if the file is missing, unreadable, lacks a required
// column, or has no data rows. Returns *ParseError if any cell cannot be
// coerced. No partial dataset is ever returned.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		code := ErrCodeUnreadable
		msg := "cannot open launch file"
		if errors.Is(err, fs.ErrNotExist) {
			code = ErrCodeFileNotFound
			msg = "launch file not found"
		}
		return nil, &LoadError{Code: code, Path: path, Message: msg, Err: err}
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse reads CSV launch data from r. source labels the data in errors
// and is recorded as the dataset's source.
func Parse(r io.Reader, source string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &LoadError{Code: ErrCodeNoRecords, Path: source, Message: "launch file is empty"}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeUnreadable, Path: source, Message: "reading header", Err: err}
	}

	cols, err := indexColumns(header)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = source
		}
		return nil, err
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Code: ErrCodeUnreadable, Path: source, Message: "reading row", Err: err}
		}
		line, _ := reader.FieldPos(0)

		rec, err := cols.parseRow(row)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Path = source
				pe.Line = line
			}
			return nil, err
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, &LoadError{Code: ErrCodeNoRecords, Path: source, Message: "launch file has no data rows"}
	}

	return NewDataset(source, records), nil
}

// columnIndex maps known column names to their position in a row.
// Optional columns are -1 when absent.
type columnIndex struct {
	flightNumber   int
	launchSite     int
	class          int
	payload        int
	boosterVersion int
	category       int
}

func indexColumns(header []string) (*columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := pos[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &LoadError{
			Code:    ErrCodeMissingColumn,
			Message: fmt.Sprintf("missing required column(s): %s", strings.Join(missing, ", ")),
		}
	}

	lookup := func(name string) int {
		if i, ok := pos[name]; ok {
			return i
		}
		return -1
	}

	return &columnIndex{
		flightNumber:   lookup(ColFlightNumber),
		launchSite:     pos[ColLaunchSite],
		class:          pos[ColClass],
		payload:        pos[ColPayloadMass],
		boosterVersion: lookup(ColBoosterVersion),
		category:       pos[ColBoosterVersionCategory],
	}, nil
}

func (c *columnIndex) parseRow(row []string) (Record, error) {
	var rec Record
	var err error

	if rec.LaunchSite, err = requiredString(row, c.launchSite, ColLaunchSite); err != nil {
		return Record{}, err
	}
	if rec.Class, err = parseClass(cell(row, c.class)); err != nil {
		return Record{}, err
	}
	if rec.PayloadMassKg, err = parsePayload(cell(row, c.payload)); err != nil {
		return Record{}, err
	}
	if rec.BoosterVersionCategory, err = requiredString(row, c.category, ColBoosterVersionCategory); err != nil {
		return Record{}, err
	}

	if c.flightNumber >= 0 {
		if v := cell(row, c.flightNumber); v != "" {
			n, convErr := strconv.Atoi(v)
			if convErr != nil {
				return Record{}, &ParseError{Column: ColFlightNumber, Value: v, Message: "not an integer", Err: convErr}
			}
			rec.FlightNumber = n
		}
	}
	if c.boosterVersion >= 0 {
		rec.BoosterVersion = normalize(cell(row, c.boosterVersion))
	}

	return rec, nil
}

// cell returns the trimmed value at i, or "" if the row is short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// normalize applies NFC so visually identical labels compare equal.
func normalize(s string) string {
	return norm.NFC.String(s)
}

func requiredString(row []string, i int, column string) (string, error) {
	v := normalize(cell(row, i))
	if v == "" {
		return "", &ParseError{Column: column, Value: v, Message: "value is required"}
	}
	return v, nil
}

func parseClass(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ParseError{Column: ColClass, Value: v, Message: "not an integer", Err: err}
	}
	if n != ClassFailure && n != ClassSuccess {
		return 0, &ParseError{Column: ColClass, Value: v, Message: "must be 0 or 1"}
	}
	return n, nil
}

func parsePayload(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &ParseError{Column: ColPayloadMass, Value: v, Message: "not a number", Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ParseError{Column: ColPayloadMass, Value: v, Message: "must be finite"}
	}
	if f < 0 {
		return 0, &ParseError{Column: ColPayloadMass, Value: v, Message: "must be non-negative"}
	}
	return f, nil
}

// FromRecords builds a dataset from in-memory records, applying the same
// normalization and cell checks as Parse. Line in a returned *ParseError is
// the 1-based record index.
func FromRecords(source string, records []Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, &LoadError{Code: ErrCodeNoRecords, Path: source, Message: "no launch records"}
	}

	out := make([]Record, len(records))
	for i, r := range records {
		r.LaunchSite = normalize(strings.TrimSpace(r.LaunchSite))
		r.BoosterVersion = normalize(strings.TrimSpace(r.BoosterVersion))
		r.BoosterVersionCategory = normalize(strings.TrimSpace(r.BoosterVersionCategory))

		if err := r.check(); err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Path = source
				pe.Line = i + 1
			}
			return nil, err
		}
		out[i] = r
	}
	return NewDataset(source, out), nil
}

// check validates the fields Parse guarantees for every record.
func (r Record) check() error {
	switch {
	case r.LaunchSite == "":
		return &ParseError{Column: ColLaunchSite, Message: "value is required"}
	case r.Class != ClassFailure && r.Class != ClassSuccess:
		return &ParseError{Column: ColClass, Value: strconv.Itoa(r.Class), Message: "must be 0 or 1"}
	case math.IsNaN(r.PayloadMassKg) || math.IsInf(r.PayloadMassKg, 0):
		return &ParseError{Column: ColPayloadMass, Value: strconv.FormatFloat(r.PayloadMassKg, 'g', -1, 64), Message: "must be finite"}
	case r.PayloadMassKg < 0:
		return &ParseError{Column: ColPayloadMass, Value: strconv.FormatFloat(r.PayloadMassKg, 'g', -1, 64), Message: "must be non-negative"}
	case r.BoosterVersionCategory == "":
		return &ParseError{Column: ColBoosterVersionCategory, Message: "value is required"}
	}
	return nil
}
