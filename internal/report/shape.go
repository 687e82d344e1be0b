package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/reportpilot/internal/models"
	"github.com/reportpilot/internal/query"
)

var (
	// ErrEmptyResult is returned when the repository query produced
	// zero rows; a zero-row document is never rendered.
	ErrEmptyResult = errors.New("query returned no rows")
	// ErrNoVisibleFields is returned when no configured visible field
	// exists in the result.
	ErrNoVisibleFields = errors.New("no visible field exists in the result")
)

// Row is one labeled output row. Fields listed in total_fields hold
// float64 or nil after coercion; everything else keeps the driver
// value.
type Row map[string]interface{}

// Group is one partition of the result. Subtotals treat missing or
// non-numeric values as zero.
type Group struct {
	Key       string
	Rows      []Row
	Subtotals map[string]float64
}

// ReportData is the shaped input handed to the output templates.
// Exactly one of DataRows and Groups is populated. Group order is the
// first-seen order of the group key, which is deterministic for a
// fixed input.
type ReportData struct {
	Title        string
	Columns      []string
	DataRows     []Row
	Groups       []Group
	GroupByField string
	TotalFields  []string
	GrandTotals  map[string]float64
	GeneratedAt  time.Time

	// ChartX and ChartY are the labeled chart axes, set only when both
	// resolve to present output columns.
	ChartX string
	ChartY string
}

// AllRows returns every output row regardless of grouping.
func (d *ReportData) AllRows() []Row {
	if d.Groups == nil {
		return d.DataRows
	}
	var rows []Row
	for _, g := range d.Groups {
		rows = append(rows, g.Rows...)
	}
	return rows
}

// shape applies the design config to a raw result: numeric coercion of
// total fields, the visibility/order/label pass, grouping with
// subtotals and the grand totals.
func shape(title string, cfg models.DesignConfig, res *query.Result) (*ReportData, error) {
	if len(res.Rows) == 0 {
		return nil, ErrEmptyResult
	}

	present := make(map[string]int, len(res.Columns))
	for i, c := range res.Columns {
		present[c] = i
	}

	totals := make(map[string]bool, len(cfg.TotalFields))
	for _, f := range cfg.TotalFields {
		totals[f] = true
	}

	// Visible fields, reduced to those present, in declared order.
	// Labels only rename; they never filter or reorder.
	labels := make(map[string]string, len(cfg.Fields))
	var selected []models.FieldConfig
	for _, f := range cfg.Fields {
		label := f.Label
		if label == "" {
			label = f.Name
		}
		labels[f.Name] = label
		if !f.Visible {
			continue
		}
		if _, ok := present[f.Name]; !ok {
			continue
		}
		selected = append(selected, f)
	}
	if len(selected) == 0 {
		return nil, ErrNoVisibleFields
	}

	columns := make([]string, len(selected))
	for i, f := range selected {
		columns[i] = labels[f.Name]
	}

	rows := make([]Row, 0, len(res.Rows))
	for _, raw := range res.Rows {
		row := make(Row, len(selected))
		for _, f := range selected {
			v := raw[present[f.Name]]
			if totals[f.Name] {
				// Unparsable values become "no value" here; they
				// only count as zero at summation time.
				if n, ok := toFloat(v); ok {
					row[labels[f.Name]] = n
				} else {
					row[labels[f.Name]] = nil
				}
			} else {
				row[labels[f.Name]] = v
			}
		}
		rows = append(rows, row)
	}

	labeledTotals := make([]string, 0, len(cfg.TotalFields))
	columnSet := make(map[string]bool, len(columns))
	for _, c := range columns {
		columnSet[c] = true
	}
	for _, f := range cfg.TotalFields {
		label, ok := labels[f]
		if !ok {
			label = f
		}
		if columnSet[label] {
			labeledTotals = append(labeledTotals, label)
		}
	}

	data := &ReportData{
		Title:       title,
		Columns:     columns,
		TotalFields: labeledTotals,
		GeneratedAt: time.Now(),
	}

	if len(labeledTotals) > 0 {
		data.GrandTotals = sumFields(rows, labeledTotals)
	}

	if cfg.Chart != nil && cfg.Chart.Type != "" {
		lx, ok := labels[cfg.Chart.XAxis]
		if !ok {
			lx = cfg.Chart.XAxis
		}
		ly, ok := labels[cfg.Chart.YAxis]
		if !ok {
			ly = cfg.Chart.YAxis
		}
		if columnSet[lx] && columnSet[ly] {
			data.ChartX = lx
			data.ChartY = ly
		}
	}

	groupBy := ""
	if cfg.GroupBy != "" {
		label, ok := labels[cfg.GroupBy]
		if !ok {
			label = cfg.GroupBy
		}
		if columnSet[label] {
			groupBy = label
		}
	}

	if groupBy == "" {
		data.DataRows = rows
		return data, nil
	}

	data.GroupByField = groupBy
	index := make(map[string]int)
	for _, row := range rows {
		key := cellString(row[groupBy])
		i, ok := index[key]
		if !ok {
			i = len(data.Groups)
			index[key] = i
			data.Groups = append(data.Groups, Group{Key: key})
		}
		data.Groups[i].Rows = append(data.Groups[i].Rows, row)
	}
	if len(labeledTotals) > 0 {
		for i := range data.Groups {
			data.Groups[i].Subtotals = sumFields(data.Groups[i].Rows, labeledTotals)
		}
	}
	return data, nil
}

func sumFields(rows []Row, fields []string) map[string]float64 {
	sums := make(map[string]float64, len(fields))
	for _, f := range fields {
		sums[f] = 0
	}
	for _, row := range rows {
		for _, f := range fields {
			if n, ok := toFloat(row[f]); ok {
				sums[f] += n
			}
		}
	}
	return sums
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case []byte:
		return parseFloat(string(n))
	case string:
		return parseFloat(n)
	default:
		return 0, false
	}
}

func parseFloat(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func cellString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case []byte:
		return string(c)
	case time.Time:
		return c.Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(c, 10)
	default:
		return fmt.Sprint(c)
	}
}
