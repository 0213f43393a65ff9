// Package dao implements the persistence port over sqlx. The same SQL runs
// against MySQL and SQLite; both drivers use '?' placeholders.
package dao

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/wso2/idea-management-api/internal/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// mysqlErrDupEntry is ER_DUP_ENTRY
const mysqlErrDupEntry = 1062

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx
type queryer interface {
	sqlx.ExtContext
}

// notFound maps sql.ErrNoRows to store.ErrNotFound and wraps other errors
func notFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), store.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", fmt.Sprintf(format, args...), err)
}

// createFailed wraps an insert error, marking primary or unique key
// violations with store.ErrDuplicate
func createFailed(err error, what string) error {
	if isDuplicateKey(err) {
		return fmt.Errorf("failed to create %s: %w: %w", what, store.ErrDuplicate, err)
	}
	return fmt.Errorf("failed to create %s: %w", what, err)
}

func isDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlErrDupEntry
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
