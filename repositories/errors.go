package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("record_not_found")
	ErrDuplicate  = errors.New("duplicate_entry")
	ErrForeignKey = errors.New("foreign_key_violation")
)

// MySQL server error numbers we react to.
const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

// translateError turns gorm / driver errors into the package sentinels so
// callers never have to look at *mysql.MySQLError themselves.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		switch merr.Number {
		case mysqlDuplicateEntry:
			return errors.Join(ErrDuplicate, err)
		case mysqlRowIsReferenced, mysqlNoReferencedRow:
			return errors.Join(ErrForeignKey, err)
		}
	}
	return err
}
