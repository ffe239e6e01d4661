package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/AngelCh415/digmar-dash/internal/models"
)

const bom = "\ufeff"

var errNotFinite = errors.New("not a finite number")

// Table is a validated input table. Columns keeps the header as read,
// extras included.
type Table struct {
	Columns []string
	Records []models.InputRecord
}

// ReadCSV decodes a campaign CSV. The header is validated before any data row
// is read; a missing column or an unparsable cell fails the whole load.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	copy(cols, header)
	if len(cols) > 0 {
		cols[0] = strings.TrimPrefix(cols[0], bom)
	}
	if err := Validate(cols); err != nil {
		return nil, err
	}

	// first occurrence wins on duplicated names
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, ok := idx[c]; !ok {
			idx[c] = i
		}
	}

	t := &Table{Columns: cols}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		row, err := decodeRecord(cr, rec, idx)
		if err != nil {
			return nil, err
		}
		t.Records = append(t.Records, row)
	}
	return t, nil
}

func decodeRecord(cr *csv.Reader, rec []string, idx map[string]int) (models.InputRecord, error) {
	var perr error
	cell := func(col string) (string, int) {
		i := idx[col]
		return rec[i], i
	}
	integer := func(col string) int64 {
		if perr != nil {
			return 0
		}
		s, i := cell(col)
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			line, _ := cr.FieldPos(i)
			perr = &ParseError{Line: line, Column: col, Value: s, Err: err}
		}
		return v
	}
	float := func(col string) float64 {
		if perr != nil {
			return 0
		}
		s, i := cell(col)
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
			err = errNotFinite
		}
		if err != nil {
			line, _ := cr.FieldPos(i)
			perr = &ParseError{Line: line, Column: col, Value: s, Err: err}
		}
		return v
	}

	date, _ := cell("date")
	name, _ := cell("campaign_name")
	out := models.InputRecord{
		Date:         date,
		CampaignName: name,
		Impressions:  integer("impressions"),
		Clicks:       integer("clicks"),
		Cost:         float("cost"),
		Conversions:  integer("conversions"),
		Revenue:      float("revenue"),
	}
	return out, perr
}
