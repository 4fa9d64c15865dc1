package testsupport

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens a shared-cache in-memory SQLite database. Distinct
// names give distinct databases within one process.
func NewSQLiteMemoryDB(name string) (*sql.DB, error) {
	if name == "" {
		name = "notegen"
	}
	return sql.Open("sqlite3", "file:"+name+"?mode=memory&cache=shared&_fk=1")
}
