package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateChartSumsByFirstSeen(t *testing.T) {
	rows := []Row{
		{"city": "Norte", "amount": 10.0},
		{"city": "Sur", "amount": 4.0},
		{"city": "Norte", "amount": 2.5},
	}
	labels, values := aggregateChart(rows, "city", "amount")
	assert.Equal(t, []string{"Norte", "Sur"}, labels)
	assert.Equal(t, []float64{12.5, 4.0}, values)
}

func TestAggregateChartTopTenAboveCardinalityLimit(t *testing.T) {
	var rows []Row
	for i := 0; i < 20; i++ {
		rows = append(rows, Row{
			"city":   fmt.Sprintf("c%02d", i),
			"amount": float64(i),
		})
	}
	labels, values := aggregateChart(rows, "city", "amount")
	require.Len(t, labels, 10)
	require.Len(t, values, 10)
	// Largest sums survive, descending.
	assert.Equal(t, "c19", labels[0])
	assert.Equal(t, 19.0, values[0])
	assert.Equal(t, "c10", labels[9])
	assert.Equal(t, 10.0, values[9])
}

func TestAggregateChartTiesKeepFirstSeenOrder(t *testing.T) {
	var rows []Row
	for i := 0; i < 16; i++ {
		rows = append(rows, Row{
			"city":   fmt.Sprintf("c%02d", i),
			"amount": 1.0,
		})
	}
	labels, _ := aggregateChart(rows, "city", "amount")
	require.Len(t, labels, 10)
	for i := 0; i < 10; i++ {
		assert.Equal(t, fmt.Sprintf("c%02d", i), labels[i])
	}
}

func TestAggregateChartUnparsableYCountsAsZero(t *testing.T) {
	rows := []Row{
		{"city": "Norte", "amount": "n/a"},
		{"city": "Norte", "amount": 5.0},
	}
	labels, values := aggregateChart(rows, "city", "amount")
	assert.Equal(t, []string{"Norte"}, labels)
	assert.Equal(t, []float64{5.0}, values)
}

func TestRenderChartTypes(t *testing.T) {
	labels := []string{"a", "b", "c"}
	values := []float64{1, 2, 3}

	for _, typ := range []string{"bar", "pie", "line"} {
		png, err := RenderChart(typ, "t", labels, values)
		require.NoError(t, err, typ)
		assert.NotEmpty(t, png, typ)
	}

	_, err := RenderChart("scatter", "t", labels, values)
	assert.Error(t, err)
}

func TestRenderChartNoData(t *testing.T) {
	_, err := RenderChart("bar", "t", nil, nil)
	assert.Error(t, err)
}

func TestRenderLineChartMultiSeries(t *testing.T) {
	labels := []string{"01-01", "02-01", "03-01"}
	png, err := RenderLineChart("ventas", labels, []Series{
		{Name: "facturas", Values: []float64{1, 2, 3}},
		{Name: "notas", Values: []float64{3, 2, 1}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
