package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reportpilot/internal/models"
	"github.com/reportpilot/internal/query"
)

func salesConfig() models.DesignConfig {
	return models.DesignConfig{
		Fields: []models.FieldConfig{
			{Name: "region", Label: "Región", Visible: true},
			{Name: "product", Label: "Producto", Visible: true},
			{Name: "amount", Label: "Monto", Visible: true},
			{Name: "internal_code", Visible: false},
		},
		GroupBy:     "region",
		TotalFields: []string{"amount"},
	}
}

func salesResult() *query.Result {
	return &query.Result{
		Columns: []string{"region", "product", "amount", "internal_code"},
		Rows: [][]interface{}{
			{"Norte", "A", 10.0, "x1"},
			{"Sur", "B", 5.5, "x2"},
			{"Norte", "C", "7.5", "x3"},
			{"Sur", "D", "n/a", "x4"},
		},
	}
}

func TestShapeGrouping(t *testing.T) {
	data, err := shape("Ventas", salesConfig(), salesResult())
	require.NoError(t, err)

	assert.Equal(t, []string{"Región", "Producto", "Monto"}, data.Columns)
	assert.Equal(t, "Región", data.GroupByField)
	assert.Empty(t, data.DataRows)

	require.Len(t, data.Groups, 2)
	// Group order follows first appearance in the result.
	assert.Equal(t, "Norte", data.Groups[0].Key)
	assert.Equal(t, "Sur", data.Groups[1].Key)

	// Every row lands in exactly one group.
	total := 0
	for _, g := range data.Groups {
		total += len(g.Rows)
	}
	assert.Equal(t, 4, total)

	assert.Equal(t, 17.5, data.Groups[0].Subtotals["Monto"])
	// The unparsable "n/a" counts as zero in the sum.
	assert.Equal(t, 5.5, data.Groups[1].Subtotals["Monto"])
	assert.Equal(t, 23.0, data.GrandTotals["Monto"])
}

func TestShapeCoercionKeepsNilForUnparsable(t *testing.T) {
	data, err := shape("Ventas", salesConfig(), salesResult())
	require.NoError(t, err)

	var surRows []Row
	for _, g := range data.Groups {
		if g.Key == "Sur" {
			surRows = g.Rows
		}
	}
	require.Len(t, surRows, 2)
	assert.Equal(t, 5.5, surRows[0]["Monto"])
	assert.Nil(t, surRows[1]["Monto"])
}

func TestShapeFlatWhenNoGroupBy(t *testing.T) {
	cfg := salesConfig()
	cfg.GroupBy = ""
	data, err := shape("Ventas", cfg, salesResult())
	require.NoError(t, err)

	assert.Nil(t, data.Groups)
	assert.Len(t, data.DataRows, 4)
	assert.Equal(t, 23.0, data.GrandTotals["Monto"])
}

func TestShapeHiddenAndMissingFieldsDropped(t *testing.T) {
	cfg := salesConfig()
	cfg.Fields = append(cfg.Fields, models.FieldConfig{Name: "phantom", Visible: true})
	data, err := shape("Ventas", cfg, salesResult())
	require.NoError(t, err)

	// The hidden column and the column absent from the result are both
	// gone; declared order of the survivors is kept.
	assert.Equal(t, []string{"Región", "Producto", "Monto"}, data.Columns)
	for _, row := range data.AllRows() {
		assert.NotContains(t, row, "internal_code")
		assert.NotContains(t, row, "phantom")
	}
}

func TestShapeLabelFallsBackToName(t *testing.T) {
	cfg := models.DesignConfig{
		Fields: []models.FieldConfig{{Name: "region", Visible: true}},
	}
	data, err := shape("Ventas", cfg, salesResult())
	require.NoError(t, err)
	assert.Equal(t, []string{"region"}, data.Columns)
}

func TestShapeEmptyResult(t *testing.T) {
	res := &query.Result{Columns: []string{"region"}}
	_, err := shape("Ventas", salesConfig(), res)
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestShapeNoVisibleFields(t *testing.T) {
	cfg := models.DesignConfig{
		Fields: []models.FieldConfig{
			{Name: "region", Visible: false},
			{Name: "phantom", Visible: true},
		},
	}
	_, err := shape("Ventas", cfg, salesResult())
	assert.ErrorIs(t, err, ErrNoVisibleFields)
}

func TestShapeChartAxesResolveLabels(t *testing.T) {
	cfg := salesConfig()
	cfg.Chart = &models.ChartConfig{Type: "bar", XAxis: "region", YAxis: "amount"}
	data, err := shape("Ventas", cfg, salesResult())
	require.NoError(t, err)
	assert.Equal(t, "Región", data.ChartX)
	assert.Equal(t, "Monto", data.ChartY)
}

func TestShapeChartAxisMissingDisablesChart(t *testing.T) {
	cfg := salesConfig()
	cfg.Chart = &models.ChartConfig{Type: "bar", XAxis: "phantom", YAxis: "amount"}
	data, err := shape("Ventas", cfg, salesResult())
	require.NoError(t, err)
	assert.Empty(t, data.ChartX)
	assert.Empty(t, data.ChartY)
}

func TestFilename(t *testing.T) {
	name, err := Filename("Ventas Q1/2024 (final)!", models.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "Ventas_Q12024_final.pdf", name)

	name, err = Filename("resumen", models.FormatHTMLEmail)
	require.NoError(t, err)
	assert.Equal(t, "resumen.html", name)

	_, err = Filename("x", models.OutputFormat("docx"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestToFloat(t *testing.T) {
	cases := []struct {
		in interface{}
		n  float64
		ok bool
	}{
		{nil, 0, false},
		{12.5, 12.5, true},
		{int64(3), 3, true},
		{" 7.25 ", 7.25, true},
		{[]byte("8"), 8, true},
		{"hola", 0, false},
		{true, 0, false},
	}
	for _, c := range cases {
		n, ok := toFloat(c.in)
		assert.Equal(t, c.ok, ok, "input %v", c.in)
		if ok {
			assert.Equal(t, c.n, n, "input %v", c.in)
		}
	}
}
