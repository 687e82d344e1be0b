package summary

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ResultSets is the cursor the reader walks. *sql.Rows satisfies it.
type ResultSets interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...interface{}) error
	NextResultSet() bool
	Err() error
}

// RowSet is one tabular result set with its column order preserved.
type RowSet struct {
	Columns []string
	Rows    []map[string]interface{}
}

// Data holds the twelve result sets of the daily summary query, in
// the order the query must produce them.
type Data struct {
	CompanyName      string
	DocumentSummary  RowSet
	NetSales         float64
	NetDeliveryNotes float64
	NetIGTF          float64
	NetDiscounts     float64
	ReceivablesToday float64
	PaymentBreakdown RowSet
	TopByQuantity    RowSet
	TopByAmount      RowSet
	Daily30          RowSet
	Monthly12        RowSet
}

// The positional contract: the stored SQL must yield these twelve
// result sets in exactly this order. Any failure is tagged with the
// step that could not be read, so schema drift breaks loudly at the
// step that drifted.
var steps = []string{
	"1. NombreEmpresa",
	"2. ResumenDocumentos",
	"3. VentasNetas",
	"4. NotasEntregaNetas",
	"5. IGTF_Neto",
	"6. DescuentosNetos",
	"7. CxcHoy",
	"8. DesglosePagos",
	"9. TopCantidad",
	"10. TopMonto",
	"11. Hist30Dias",
	"12. Hist12Meses",
}

// Read walks the cursor through the twelve result sets in lock-step.
func Read(rs ResultSets) (*Data, error) {
	data := &Data{}

	readers := []func() error{
		func() error { data.CompanyName = readCompanyName(rs); return rs.Err() },
		func() error { return readRows(rs, &data.DocumentSummary) },
		func() error { return readScalar(rs, &data.NetSales) },
		func() error { return readScalar(rs, &data.NetDeliveryNotes) },
		func() error { return readScalar(rs, &data.NetIGTF) },
		func() error { return readScalar(rs, &data.NetDiscounts) },
		func() error { return readScalar(rs, &data.ReceivablesToday) },
		func() error { return readRows(rs, &data.PaymentBreakdown) },
		func() error { return readRows(rs, &data.TopByQuantity) },
		func() error { return readRows(rs, &data.TopByAmount) },
		func() error { return readRows(rs, &data.Daily30) },
		func() error { return readRows(rs, &data.Monthly12) },
	}

	for i, read := range readers {
		if err := read(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", steps[i], err)
		}
		if i < len(readers)-1 {
			if !rs.NextResultSet() {
				if err := rs.Err(); err != nil {
					return nil, fmt.Errorf("advancing past %s: %w", steps[i], err)
				}
				return nil, fmt.Errorf("missing result set after %s", steps[i])
			}
		}
	}
	return data, nil
}

func readCompanyName(rs ResultSets) string {
	name := "Empresa Desconocida"
	if rs.Next() {
		var v interface{}
		if err := rs.Scan(&v); err == nil {
			if s := strings.TrimSpace(valueString(v)); s != "" {
				name = s
			}
		}
	}
	for rs.Next() {
	}
	return name
}

// readScalar reads a single numeric cell; NULL or an unparsable value
// yields zero, never an error.
func readScalar(rs ResultSets, out *float64) error {
	*out = 0
	if rs.Next() {
		var v interface{}
		if err := rs.Scan(&v); err != nil {
			return err
		}
		if n, ok := toFloat(v); ok {
			*out = n
		}
	}
	for rs.Next() {
	}
	return rs.Err()
}

func readRows(rs ResultSets, out *RowSet) error {
	columns, err := rs.Columns()
	if err != nil {
		return err
	}
	out.Columns = columns
	for rs.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rs.Scan(ptrs...); err != nil {
			return err
		}
		row := make(map[string]interface{}, len(columns))
		for i, c := range columns {
			if b, ok := values[i].([]byte); ok {
				values[i] = string(b)
			}
			row[c] = values[i]
		}
		out.Rows = append(out.Rows, row)
	}
	return rs.Err()
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
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

func valueString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case []byte:
		return string(c)
	case time.Time:
		return c.Format("2006-01-02")
	default:
		return fmt.Sprint(c)
	}
}
