package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// classify turns constraint failures from any supported engine into ErrIntegrity.
func classify(err error) error {
	if err == nil || errors.Is(err, ErrIntegrity) || errors.Is(err, ErrNotFound) {
		return err
	}
	if isIntegrityViolation(err) {
		return fmt.Errorf("%w: %v", ErrIntegrity, err)
	}
	return err
}

func isIntegrityViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	// SQLSTATE class 23 is integrity_constraint_violation
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "23"
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1048, // column cannot be null
			1062, // duplicate entry
			1364, // field has no default
			1451, // row is referenced
			1452: // foreign key fails
			return true
		}
	}
	return false
}
