package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reportpilot/internal/models"
)

func testConn() *models.Connection {
	return &models.Connection{
		Name:     "prod",
		Server:   "db.example.com:1433",
		Database: "ventas",
		Username: "reporter",
		Password: "secret",
		Driver:   models.DriverSQLServer,
	}
}

func TestTruncateAtWhere(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"simple",
			"SELECT a, b FROM t WHERE a = ?",
			"SELECT a, b FROM t ",
		},
		{
			"no where",
			"SELECT a FROM t",
			"SELECT a FROM t",
		},
		{
			"case insensitive",
			"select a from t where a = 1",
			"select a from t ",
		},
		{
			"where inside subquery kept",
			"SELECT a FROM (SELECT a FROM t WHERE a > 0) s",
			"SELECT a FROM (SELECT a FROM t WHERE a > 0) s",
		},
		{
			"subquery where kept, outer where cut",
			"SELECT a FROM (SELECT a FROM t WHERE a > 0) s WHERE a < 10",
			"SELECT a FROM (SELECT a FROM t WHERE a > 0) s ",
		},
		{
			"where inside string literal kept",
			"SELECT a FROM t WHERE b = 'where'",
			"SELECT a FROM t ",
		},
		{
			"where as identifier prefix kept",
			"SELECT whereabouts FROM t",
			"SELECT whereabouts FROM t",
		},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, TruncateAtWhere(c.in), c.name)
	}
}

func TestDSN(t *testing.T) {
	conn := testConn()

	driver, _, err := dsn(conn)
	assert.NoError(t, err)
	assert.Equal(t, "sqlserver", driver)

	conn.Driver = "mysql"
	driver, source, err := dsn(conn)
	assert.NoError(t, err)
	assert.Equal(t, "mysql", driver)
	assert.Contains(t, source, "tcp(")

	conn.Driver = "postgres"
	driver, source, err = dsn(conn)
	assert.NoError(t, err)
	assert.Equal(t, "postgres", driver)
	assert.Contains(t, source, "host=")

	conn.Driver = "oracle"
	_, _, err = dsn(conn)
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	err := classify(errors.New("Incorrect syntax near 'FORM'"))
	assert.ErrorIs(t, err, ErrQuerySyntax)

	err = classify(errors.New("connection refused"))
	assert.ErrorIs(t, err, ErrDataSource)
}
