package testsupport

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// SQLiteMemoryDSN names a shared in-memory database so every connection in
// one test sees the same tables.
func SQLiteMemoryDSN(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "coopsite"
	}
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name)
}

func NewSQLiteMemoryDB(name string) (*sql.DB, error) {
	return sql.Open("sqlite3", SQLiteMemoryDSN(name))
}

// NewBunDB opens a bun handle over a named in-memory sqlite database and
// closes it when the test finishes.
func NewBunDB(tb testing.TB, name string) *bun.DB {
	tb.Helper()
	sqlDB, err := NewSQLiteMemoryDB(name)
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	tb.Cleanup(func() {
		_ = db.Close()
	})
	return db
}
