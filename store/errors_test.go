package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		integrity bool
	}{
		{"gorm duplicated key", gorm.ErrDuplicatedKey, true},
		{"gorm foreign key", fmt.Errorf("insert: %w", gorm.ErrForeignKeyViolated), true},
		{"pgx unique", &pgconn.PgError{Code: "23505"}, true},
		{"pgx not null", &pgconn.PgError{Code: "23502"}, true},
		{"pgx undefined table", &pgconn.PgError{Code: "42P01"}, false},
		{"lib/pq foreign key", &pq.Error{Code: "23503"}, true},
		{"lib/pq syntax", &pq.Error{Code: "42601"}, false},
		{"sqlite constraint", sqlite3.Error{Code: sqlite3.ErrConstraint}, true},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, false},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062}, true},
		{"mysql lock wait", &mysql.MySQLError{Number: 1205}, false},
		{"plain", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			assert.Equal(t, tt.integrity, errors.Is(got, ErrIntegrity))
		})
	}

	assert.NoError(t, classify(nil))
	assert.Equal(t, ErrNotFound, classify(ErrNotFound))
}
