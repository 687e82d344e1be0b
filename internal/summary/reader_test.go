package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResultSets replays a fixed sequence of result sets the way
// sql.Rows does: Next within a set, NextResultSet to advance.
type fakeResultSets struct {
	sets    []fakeSet
	set     int
	row     int
	started bool
}

type fakeSet struct {
	columns []string
	rows    [][]interface{}
}

func (f *fakeResultSets) Columns() ([]string, error) {
	return f.sets[f.set].columns, nil
}

func (f *fakeResultSets) Next() bool {
	if f.set >= len(f.sets) {
		return false
	}
	if !f.started {
		f.started = true
		f.row = 0
	} else {
		f.row++
	}
	return f.row < len(f.sets[f.set].rows)
}

func (f *fakeResultSets) Scan(dest ...interface{}) error {
	row := f.sets[f.set].rows[f.row]
	for i := range dest {
		*(dest[i].(*interface{})) = row[i]
	}
	return nil
}

func (f *fakeResultSets) NextResultSet() bool {
	f.set++
	f.started = false
	return f.set < len(f.sets)
}

func (f *fakeResultSets) Err() error { return nil }

func scalarSet(v interface{}) fakeSet {
	return fakeSet{columns: []string{"valor"}, rows: [][]interface{}{{v}}}
}

func fullSets() []fakeSet {
	return []fakeSet{
		scalarSet("ACME C.A."),
		{columns: []string{"TipoDoc", "Cantidad"}, rows: [][]interface{}{
			{"Factura", int64(12)},
			{"Nota de Credito", int64(2)},
		}},
		scalarSet(1500.75),
		scalarSet(200.0),
		scalarSet(45.5),
		scalarSet(30.0),
		scalarSet(980.25),
		{columns: []string{"FormaPago", "Monto"}, rows: [][]interface{}{{"Efectivo", 500.0}}},
		{columns: []string{"Producto", "Cantidad"}, rows: [][]interface{}{{"Harina", int64(40)}}},
		{columns: []string{"Producto", "Monto"}, rows: [][]interface{}{{"Harina", 820.0}}},
		{columns: []string{"Dia", "VentaNetaDiaria", "NotaNetaDiaria"}, rows: [][]interface{}{
			{"2026-08-30", 100.0, 10.0},
		}},
		{columns: []string{"MesAno", "VentaNetaMensual"}, rows: [][]interface{}{
			{"2026-08", 3000.0},
		}},
	}
}

func TestReadFullDigest(t *testing.T) {
	data, err := Read(&fakeResultSets{sets: fullSets()})
	require.NoError(t, err)

	assert.Equal(t, "ACME C.A.", data.CompanyName)
	assert.Equal(t, 1500.75, data.NetSales)
	assert.Equal(t, 200.0, data.NetDeliveryNotes)
	assert.Equal(t, 45.5, data.NetIGTF)
	assert.Equal(t, 30.0, data.NetDiscounts)
	assert.Equal(t, 980.25, data.ReceivablesToday)

	require.Len(t, data.DocumentSummary.Rows, 2)
	assert.Equal(t, []string{"TipoDoc", "Cantidad"}, data.DocumentSummary.Columns)
	assert.Equal(t, "Factura", data.DocumentSummary.Rows[0]["TipoDoc"])

	require.Len(t, data.Daily30.Rows, 1)
	require.Len(t, data.Monthly12.Rows, 1)
}

func TestReadMissingResultSetNamesStep(t *testing.T) {
	sets := fullSets()[:5]
	_, err := Read(&fakeResultSets{sets: sets})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5. IGTF_Neto")
}

func TestReadEmptyCompanyNameDefaults(t *testing.T) {
	sets := fullSets()
	sets[0] = fakeSet{columns: []string{"valor"}, rows: [][]interface{}{{"   "}}}
	data, err := Read(&fakeResultSets{sets: sets})
	require.NoError(t, err)
	assert.Equal(t, "Empresa Desconocida", data.CompanyName)

	sets[0] = fakeSet{columns: []string{"valor"}}
	data, err = Read(&fakeResultSets{sets: sets})
	require.NoError(t, err)
	assert.Equal(t, "Empresa Desconocida", data.CompanyName)
}

func TestReadScalarNullAndUnparsable(t *testing.T) {
	sets := fullSets()
	sets[2] = scalarSet(nil)
	sets[3] = scalarSet("no numerico")
	sets[4] = scalarSet([]byte("12.5"))
	data, err := Read(&fakeResultSets{sets: sets})
	require.NoError(t, err)
	assert.Equal(t, 0.0, data.NetSales)
	assert.Equal(t, 0.0, data.NetDeliveryNotes)
	assert.Equal(t, 12.5, data.NetIGTF)
}

func TestReadConvertsBytesToString(t *testing.T) {
	sets := fullSets()
	sets[7] = fakeSet{columns: []string{"FormaPago", "Monto"}, rows: [][]interface{}{
		{[]byte("Tarjeta"), 75.0},
	}}
	data, err := Read(&fakeResultSets{sets: sets})
	require.NoError(t, err)
	assert.Equal(t, "Tarjeta", data.PaymentBreakdown.Rows[0]["FormaPago"])
}
