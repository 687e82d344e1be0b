package query

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb"

	"github.com/reportpilot/internal/logger"
	"github.com/reportpilot/internal/models"
	"github.com/reportpilot/internal/store"
)

var (
	// ErrDataSource marks connection-level failures against the
	// external database.
	ErrDataSource = errors.New("data source error")
	// ErrQuerySyntax marks queries the external database rejected.
	ErrQuerySyntax = errors.New("query syntax error")
	// ErrColumnsUnavailable is returned when the metadata probe
	// yields zero columns.
	ErrColumnsUnavailable = errors.New("query produces no columns")
)

// Result is the tabular output of one repository query.
type Result struct {
	Columns []string
	Rows    [][]interface{}
}

// Executor runs repository queries against their configured external
// connections. Every call opens its own connection and closes it on
// all paths; nothing is pooled across calls.
type Executor struct {
	store   *store.Store
	log     *logger.Logger
	timeout time.Duration
}

func NewExecutor(st *store.Store, log *logger.Logger) *Executor {
	return &Executor{store: st, log: log, timeout: 30 * time.Second}
}

// Execute runs the repository query with positional params and returns
// the full result table.
func (e *Executor) Execute(ctx context.Context, repositoryID uint, params []interface{}) (*Result, error) {
	repo, err := e.store.GetRepository(repositoryID)
	if err != nil {
		return nil, fmt.Errorf("repository %d: %w", repositoryID, err)
	}

	db, err := e.open(ctx, &repo.Connection)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	rows, err := db.QueryContext(ctx, repo.SQLQuery, params...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	return collect(rows)
}

// OpenConnection hands out a raw handle for callers that walk result
// sets themselves (the daily summary). The returned cleanup must be
// called on every path.
func (e *Executor) OpenConnection(ctx context.Context, connectionID uint) (*sql.DB, func(), error) {
	conn, err := e.store.GetConnection(connectionID)
	if err != nil {
		return nil, nil, fmt.Errorf("connection %d: %w", connectionID, err)
	}
	db, err := e.open(ctx, conn)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { db.Close() }, nil
}

// TestConnection dials a connection and reports reachability.
func (e *Executor) TestConnection(ctx context.Context, conn *models.Connection) error {
	db, err := e.open(ctx, conn)
	if err != nil {
		return err
	}
	db.Close()
	return nil
}

func (e *Executor) open(ctx context.Context, conn *models.Connection) (*sql.DB, error) {
	driverName, dataSource, err := dsn(conn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, dataSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
	}
	return db, nil
}

func dsn(conn *models.Connection) (string, string, error) {
	switch conn.Driver {
	case models.DriverMySQL:
		return "mysql", fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true",
			conn.Username, conn.Password, conn.Server, conn.Database), nil
	case models.DriverPostgres:
		return "postgres", fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			conn.Server, conn.Username, conn.Password, conn.Database), nil
	case models.DriverSQLServer, "":
		u := url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(conn.Username, conn.Password),
			Host:     conn.Server,
			RawQuery: url.Values{"database": {conn.Database}}.Encode(),
		}
		return "sqlserver", u.String(), nil
	default:
		return "", "", fmt.Errorf("%w: unsupported driver %q", ErrDataSource, conn.Driver)
	}
}

func collect(rows *sql.Rows) (*Result, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, classify(err)
	}

	result := &Result{Columns: columns}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, classify(err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return result, nil
}

func classify(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "syntax") {
		return fmt.Errorf("%w: %v", ErrQuerySyntax, err)
	}
	return fmt.Errorf("%w: %v", ErrDataSource, err)
}
