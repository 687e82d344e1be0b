package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reportpilot/internal/logger"
	"github.com/reportpilot/internal/models"
)

type stubPDF struct{}

func (stubPDF) Convert(html string) ([]byte, error) { return []byte(html), nil }

func loadTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := NewPipeline(nil, nil, stubPDF{}, "../../templates", logger.Nop())
	require.NoError(t, err)
	return p
}

func renderTemplate(t *testing.T, p *Pipeline, name string, data templateData) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, p.templates[name].ExecuteTemplate(&buf, name, data))
	return buf.String()
}

func sampleData() templateData {
	return templateData{
		ReportData: &ReportData{
			Title:       "Ventas por Región",
			Columns:     []string{"Región", "Monto"},
			GeneratedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
			Groups: []Group{
				{
					Key: "Norte",
					Rows: []Row{
						{"Región": "Norte", "Monto": 10.0},
						{"Región": "Norte", "Monto": nil},
					},
					Subtotals: map[string]float64{"Monto": 10},
				},
			},
			GroupByField: "Región",
			TotalFields:  []string{"Monto"},
			GrandTotals:  map[string]float64{"Monto": 10},
		},
		Branding: models.BrandingConfig{HeaderText: "ACME C.A."},
	}
}

func TestReportTemplatesRender(t *testing.T) {
	p := loadTestPipeline(t)

	for _, name := range []string{"report_template.html", "email_template.html"} {
		html := renderTemplate(t, p, name, sampleData())
		assert.Contains(t, html, "Ventas por Región", name)
		assert.Contains(t, html, "ACME C.A.", name)
		assert.Contains(t, html, "Norte", name)
		assert.Contains(t, html, "10.00", name)
	}
}

func TestReportTemplatesRenderFlat(t *testing.T) {
	p := loadTestPipeline(t)
	data := sampleData()
	data.Groups = nil
	data.GroupByField = ""
	data.DataRows = []Row{{"Región": "Sur", "Monto": 4.5}}

	html := renderTemplate(t, p, "report_template.html", data)
	assert.Contains(t, html, "Sur")
	assert.Contains(t, html, "4.5")
}
