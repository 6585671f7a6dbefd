package decode

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	errs "github.com/ArthurRichard/energytrace/internal/errors"
)

// TimeScale converts CSV milliseconds to the binary format's microsecond ticks.
const TimeScale = 1000

type csvColumn struct {
	prefix string
	scale  float64
	index  int
	header string
}

// ParseCSV parses one CSV shard with a header row.
//
// The time, current and energy columns are found by case-insensitive name
// prefix ("Time(ms)", "Current(nA)", "Energy(uJ)"); other columns are
// ignored. Time is multiplied by TimeScale. Cells are decimal numbers rounded
// to the nearest integer and must fit in a uint32.
func ParseCSV(r io.Reader) (Samples, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Samples{}, errs.Formatf("missing header row")
	}
	if err != nil {
		return Samples{}, csvError(err)
	}

	cols, err := locateColumns(header)
	if err != nil {
		return Samples{}, err
	}

	var s Samples
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Samples{}, csvError(err)
		}

		for ci, col := range cols {
			line, _ := cr.FieldPos(col.index)
			v, err := parseCell(record[col.index], col.scale)
			if err != nil {
				return Samples{}, errs.Formatf("line %d: column %q: %v", line, col.header, err)
			}
			switch ci {
			case 0:
				s.Timestamp = append(s.Timestamp, v)
			case 1:
				s.Current = append(s.Current, v)
			case 2:
				s.Energy = append(s.Energy, v)
			}
		}
	}

	return s, nil
}

func locateColumns(header []string) ([]csvColumn, error) {
	cols := []csvColumn{
		{prefix: "time", scale: TimeScale, index: -1},
		{prefix: "current", scale: 1, index: -1},
		{prefix: "energy", scale: 1, index: -1},
	}

	for i, name := range header {
		norm := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		for c := range cols {
			if !strings.HasPrefix(norm, cols[c].prefix) {
				continue
			}
			if cols[c].index >= 0 {
				return nil, errs.Formatf("duplicate %s column %q", cols[c].prefix, name)
			}
			cols[c].index = i
			cols[c].header = strings.TrimSpace(name)
		}
	}

	for _, c := range cols {
		if c.index < 0 {
			return nil, errs.Formatf("missing %s column in header %q", c.prefix, strings.Join(header, ","))
		}
	}

	return cols, nil
}

func parseCell(cell string, scale float64) (uint32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, errors.New("not a number: " + strconv.Quote(cell))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("not a finite number: " + strconv.Quote(cell))
	}

	v := math.Round(f * scale)
	if v < 0 || v > math.MaxUint32 {
		return 0, errors.New("out of uint32 range: " + strconv.Quote(cell))
	}

	return uint32(v), nil
}

// csvError maps encoding/csv parse failures, including ragged rows, to
// ErrFormat and read failures to ErrIO.
func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return errs.Formatf("line %d: %v", pe.Line, pe.Err)
	}

	return fmt.Errorf("%w: %w", errs.ErrIO, err)
}
