// Command filterql renders filter documents and runs them against DuckDB.
//
//	filterql render --format sql '{"age": {"gte": 25}}'
//	echo '{"name": {"starts": "A"}}' | filterql render --format search -
//	filterql query --db people.duckdb --table people '{"age": {"lt": 18}}'
//
// Every flag may also be set through the environment (FILTERQL_FORMAT,
// FILTERQL_LOG_LEVEL, ...) or a config file given with --config.
package main

import (
	"os"
)

func main() {
	if err := execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
