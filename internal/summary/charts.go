package summary

import (
	"fmt"
	"time"

	"github.com/reportpilot/internal/report"
)

// CIDs under which the trend charts are embedded in the summary email.
const (
	CIDChart30Days   = "chart_30_days_id"
	CIDChart12Months = "chart_12_months_id"
)

// Chart30Days renders the 30-day net sales and delivery-note trend.
func Chart30Days(daily RowSet) ([]byte, error) {
	if len(daily.Rows) == 0 {
		return nil, fmt.Errorf("no 30-day history rows")
	}
	labels := make([]string, len(daily.Rows))
	sales := make([]float64, len(daily.Rows))
	notes := make([]float64, len(daily.Rows))
	for i, row := range daily.Rows {
		labels[i] = dayLabel(row["Dia"])
		if n, ok := toFloat(row["VentaNetaDiaria"]); ok {
			sales[i] = n
		}
		if n, ok := toFloat(row["NotaNetaDiaria"]); ok {
			notes[i] = n
		}
	}
	return report.RenderLineChart("Tendencia Neta - Ultimos 30 Dias", labels, []report.Series{
		{Name: "Ventas Netas", Values: sales},
		{Name: "Notas Entrega Netas", Values: notes},
	})
}

// Chart12Months renders the 12-month net sales trend.
func Chart12Months(monthly RowSet) ([]byte, error) {
	if len(monthly.Rows) == 0 {
		return nil, fmt.Errorf("no 12-month history rows")
	}
	labels := make([]string, len(monthly.Rows))
	sales := make([]float64, len(monthly.Rows))
	for i, row := range monthly.Rows {
		labels[i] = valueString(row["MesAno"])
		if n, ok := toFloat(row["VentaNetaMensual"]); ok {
			sales[i] = n
		}
	}
	return report.RenderLineChart("Ventas Netas - Ultimos 12 Meses", labels, []report.Series{
		{Name: "Ventas Netas Mensuales", Values: sales},
	})
}

func dayLabel(v interface{}) string {
	if t, ok := v.(time.Time); ok {
		return t.Format("02-01")
	}
	s := valueString(v)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format("02-01")
	}
	return s
}
