package config

import (
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/snap-point/activity-api/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresDSN returns the configured DSN or builds one from the discrete fields.
func (d DatabaseConfig) PostgresDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// SQLiteDSN turns on foreign key enforcement, which sqlite leaves off by default.
func (d DatabaseConfig) SQLiteDSN() string {
	dsn := d.DSN
	if dsn == "" {
		dsn = "activities.db"
	}
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

func (d DatabaseConfig) dialector() (gorm.Dialector, error) {
	switch d.Driver {
	case "postgres":
		return postgres.New(postgres.Config{
			DSN:        d.PostgresDSN(),
			DriverName: d.DriverName,
		}), nil
	case "sqlite":
		return sqlite.Open(d.SQLiteDSN()), nil
	case "mysql":
		if d.DSN == "" {
			return nil, fmt.Errorf("database.dsn is required for mysql")
		}
		return mysql.Open(d.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", d.Driver)
	}
}

// ConnectDatabase opens the configured engine. Driver errors are translated into
// gorm's sentinels (gorm.ErrDuplicatedKey, gorm.ErrForeignKeyViolated).
func ConnectDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpen > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	}
	if cfg.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	}
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return db, nil
}

// InitDB connects and, when enabled, migrates the schema.
func InitDB(cfg DatabaseConfig) (*gorm.DB, error) {
	db, err := ConnectDatabase(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Migrate creates or updates the parents and children tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Parent{}, &models.Child{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
