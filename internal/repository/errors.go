package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrUserHasPosts   = errors.New("user still owns posts")
	ErrPostNotFound   = errors.New("post not found")
	ErrDuplicateTitle = errors.New("title already exists")
)

// MySQL server error numbers.
const (
	mysqlDuplicateEntry    = 1062 // ER_DUP_ENTRY
	mysqlRowIsReferenced   = 1451 // ER_ROW_IS_REFERENCED_2
	mysqlNoReferencedRow   = 1452 // ER_NO_REFERENCED_ROW_2
	mysqlRowIsReferencedV1 = 1217 // ER_ROW_IS_REFERENCED
	mysqlNoReferencedRowV1 = 1216 // ER_NO_REFERENCED_ROW
)

// isDuplicateEntryError reports whether err is a unique constraint violation.
func isDuplicateEntryError(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// isForeignKeyError reports whether err is a foreign key violation, either a
// missing parent row on insert or a referenced row on delete.
func isForeignKeyError(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlNoReferencedRow, mysqlNoReferencedRowV1, mysqlRowIsReferenced, mysqlRowIsReferencedV1:
			return true
		}
		return false
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
