package jobs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reportpilot/internal/logger"
	"github.com/reportpilot/internal/summary"
)

func TestSummaryTemplateRenders(t *testing.T) {
	r, err := NewRunner(nil, nil, nil, nil, "../../templates", logger.Nop())
	require.NoError(t, err)

	data := &summary.Data{
		CompanyName:      "ACME C.A.",
		NetSales:         1500.75,
		NetDeliveryNotes: 200,
		NetIGTF:          45.5,
		NetDiscounts:     30,
		ReceivablesToday: 980.25,
		DocumentSummary: summary.RowSet{
			Columns: []string{"TipoDoc", "Cantidad"},
			Rows:    []map[string]interface{}{{"TipoDoc": "Factura", "Cantidad": int64(12)}},
		},
		PaymentBreakdown: summary.RowSet{
			Columns: []string{"FormaPago", "Monto"},
			Rows:    []map[string]interface{}{{"FormaPago": "Efectivo", "Monto": 500.0}},
		},
	}

	var buf bytes.Buffer
	err = r.summaryTmpl.Execute(&buf, map[string]interface{}{
		"Data":       data,
		"TodayDate":  "31/08/2026",
		"CIDChart30": summary.CIDChart30Days,
		"CIDChart12": summary.CIDChart12Months,
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "ACME C.A.")
	assert.Contains(t, html, "31/08/2026")
	assert.Contains(t, html, "1500.75")
	assert.Contains(t, html, "Factura")
	assert.Contains(t, html, "Efectivo")
	// Empty sections degrade to a placeholder instead of failing.
	assert.Contains(t, html, "Sin datos")
	assert.Contains(t, html, "cid:"+summary.CIDChart30Days)
	assert.Contains(t, html, "cid:"+summary.CIDChart12Months)
}
