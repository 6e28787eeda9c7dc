// Package migrations registers the catalog schema with goose. Import it for
// its side effects before running a goose provider.
package migrations

import "github.com/pressly/goose/v3"

var dialect = goose.DialectSQLite3

// SetDialect selects the DDL flavour used by the migrations in this package.
func SetDialect(d goose.Dialect) {
	dialect = d
}
