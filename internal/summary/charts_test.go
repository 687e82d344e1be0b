package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChart30Days(t *testing.T) {
	daily := RowSet{
		Columns: []string{"Dia", "VentaNetaDiaria", "NotaNetaDiaria"},
		Rows: []map[string]interface{}{
			{"Dia": "2026-08-29", "VentaNetaDiaria": 100.0, "NotaNetaDiaria": 10.0},
			{"Dia": "2026-08-30", "VentaNetaDiaria": 150.0, "NotaNetaDiaria": "n/a"},
		},
	}
	png, err := Chart30Days(daily)
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	_, err = Chart30Days(RowSet{})
	assert.Error(t, err)
}

func TestChart12Months(t *testing.T) {
	monthly := RowSet{
		Columns: []string{"MesAno", "VentaNetaMensual"},
		Rows: []map[string]interface{}{
			{"MesAno": "2026-07", "VentaNetaMensual": 3000.0},
			{"MesAno": "2026-08", "VentaNetaMensual": 2800.0},
		},
	}
	png, err := Chart12Months(monthly)
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	_, err = Chart12Months(RowSet{})
	assert.Error(t, err)
}

func TestDayLabel(t *testing.T) {
	assert.Equal(t, "30-08", dayLabel("2026-08-30"))
	assert.Equal(t, "30-08", dayLabel(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "ayer", dayLabel("ayer"))
}
