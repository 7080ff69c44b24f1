package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	_ "github.com/duckdb/duckdb-go/v2"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/hugr-lab/filterql"
	"github.com/hugr-lab/filterql/filter"
)

var errMissingTable = errors.New("--table is required")

func newQueryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   commandQuery + " [filter|-]",
		Short: "Select the rows of a DuckDB table that match a filter.",
		Long: `Query renders the filter as a SQL WHERE clause, runs
SELECT * FROM <table> WHERE ... on a DuckDB database and prints each row as a
JSON object on its own line. Without a filter every row is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runQuery,
	}

	cmd.Flags().String("db", "", "DuckDB database file (empty for an in-memory database)")
	cmd.Flags().String("table", "", "Table to select from, optionally schema-qualified")

	_ = a.v.BindPFlag("db", cmd.Flags().Lookup("db"))
	_ = a.v.BindPFlag("table", cmd.Flags().Lookup("table"))

	return cmd
}

func (a *app) runQuery(cmd *cobra.Command, args []string) error {
	table := a.v.GetString("table")
	if table == "" {
		return errMissingTable
	}
	opts, err := a.options()
	if err != nil {
		return err
	}

	data, err := readFilter(cmd.InOrStdin(), args, false)
	if err != nil {
		return err
	}
	spec, err := filterql.BuildJSON(data, opts)
	if err != nil {
		return err
	}
	query, err := selectStatement(spec, table)
	if err != nil {
		return err
	}

	db, err := sql.Open("duckdb", a.v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	a.logger.Debug("Running query", "db", a.v.GetString("db"), "sql", query)
	n, err := writeRows(cmd.Context(), db, query, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	a.logger.Debug("Query complete", "rows", n)
	return nil
}

// selectStatement builds the SELECT for table, filtered when spec has a filter.
func selectStatement(spec *filterql.FilterSpec, table string) (string, error) {
	query := "SELECT * FROM " + filter.QuoteName(table)
	if !spec.HasFilter() {
		return query, nil
	}
	where, err := spec.SQL()
	if err != nil {
		return "", err
	}
	return query + " " + where, nil
}

// writeRows runs query and writes every row to w as one JSON object per line.
func writeRows(ctx context.Context, db *sql.DB, query string, w io.Writer) (int, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return 0, err
	}

	enc := json.NewEncoder(w)
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	n := 0
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return n, fmt.Errorf("scan row %d: %w", n, err)
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		if err := enc.Encode(row); err != nil {
			return n, err
		}
		n++
	}
	return n, rows.Err()
}
