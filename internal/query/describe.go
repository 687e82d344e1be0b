package query

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reportpilot/internal/models"
)

// DescribeColumns probes the column names a repository query would
// produce without fetching rows. The query is truncated at its first
// top-level WHERE so that positional placeholders never reach the
// driver.
func (e *Executor) DescribeColumns(ctx context.Context, repositoryID uint) ([]string, error) {
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

	probe := TruncateAtWhere(repo.SQLQuery)

	var columns []string
	switch repo.Connection.Driver {
	case models.DriverSQLServer, "":
		columns, err = e.describeSQLServer(ctx, db, probe)
	default:
		columns, err = e.describeGeneric(ctx, db, probe)
	}
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, ErrColumnsUnavailable
	}
	return columns, nil
}

func (e *Executor) describeSQLServer(ctx context.Context, db *sql.DB, probe string) ([]string, error) {
	rows, err := db.QueryContext(ctx, "EXEC sp_describe_first_result_set @tsql = @p1", probe)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	result, err := collect(rows)
	if err != nil {
		return nil, err
	}
	nameIdx := -1
	for i, c := range result.Columns {
		if c == "name" {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return nil, nil
	}
	var columns []string
	for _, row := range result.Rows {
		if name, ok := row[nameIdx].(string); ok && name != "" {
			columns = append(columns, name)
		}
	}
	return columns, nil
}

// describeGeneric runs the probe with LIMIT 0 appended and reads the
// result-shape metadata only.
func (e *Executor) describeGeneric(ctx context.Context, db *sql.DB, probe string) ([]string, error) {
	rows, err := db.QueryContext(ctx, probe+" LIMIT 0")
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, classify(err)
	}
	return columns, nil
}

// TruncateAtWhere cuts the query at its first top-level WHERE keyword.
// WHERE inside parentheses, quotes or comments does not count.
func TruncateAtWhere(query string) string {
	depth := 0
	lower := []rune(query)
	n := len(lower)
	for i := 0; i < n; i++ {
		switch lower[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case '\'', '"':
			quote := lower[i]
			for i++; i < n && lower[i] != quote; i++ {
			}
		case '-':
			if i+1 < n && lower[i+1] == '-' {
				for i++; i < n && lower[i] != '\n'; i++ {
				}
			}
		case 'w', 'W':
			if depth == 0 && matchKeyword(lower, i, "where") {
				return string(lower[:i])
			}
		}
	}
	return query
}

func matchKeyword(s []rune, i int, word string) bool {
	if i > 0 && isWordRune(s[i-1]) {
		return false
	}
	for j, w := range word {
		if i+j >= len(s) {
			return false
		}
		c := s[i+j]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != w {
			return false
		}
	}
	end := i + len(word)
	return end >= len(s) || !isWordRune(s[end])
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
