package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "pgx", cfg.Database.DriverName)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "uploads", cfg.Storage.UploadFolder)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	assert.False(t, cfg.Auth.Enabled())
	assert.Equal(t, DefaultResources(), cfg.Resources)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", "test.db")
	t.Setenv("STORAGE_BACKEND", "r2")
	t.Setenv("CLOUDFLARE_BUCKET_NAME", "media")
	t.Setenv("JWT_SECRET", "shh")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "test.db", cfg.Database.DSN)
	assert.Equal(t, "r2", cfg.Storage.Backend)
	assert.Equal(t, "media", cfg.Storage.R2.BucketName)
	assert.True(t, cfg.Auth.Enabled())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database:  DatabaseConfig{Driver: "sqlite"},
			Storage:   StorageConfig{Backend: "local", UploadFolder: "uploads"},
			Resources: DefaultResources(),
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, "unsupported database driver"},
		{"local without folder", func(c *Config) { c.Storage.UploadFolder = "" }, "upload_folder"},
		{"r2 without bucket", func(c *Config) { c.Storage.Backend = "r2" }, "bucket_name"},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "ftp" }, "unsupported storage backend"},
		{"resource without kind", func(c *Config) { c.Resources = []ResourceConfig{{Name: "things"}} }, "name and a kind"},
		{"duplicate resource", func(c *Config) {
			c.Resources = append(c.Resources, ResourceConfig{Name: "users", Kind: "person"})
		}, "declared twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	assert.Equal(t, "activities.db?_foreign_keys=on", DatabaseConfig{}.SQLiteDSN())
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", DatabaseConfig{DSN: "file:x?mode=memory"}.SQLiteDSN())
	assert.Equal(t, "a.db?_fk=1", DatabaseConfig{DSN: "a.db?_fk=1"}.SQLiteDSN())

	pg := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable", pg.PostgresDSN())
	pg.DSN = "postgres://elsewhere"
	assert.Equal(t, "postgres://elsewhere", pg.PostgresDSN())
}

func TestR2EndpointURL(t *testing.T) {
	assert.Equal(t, "https://acct.r2.cloudflarestorage.com", R2Config{AccountID: "acct"}.EndpointURL())
	assert.Equal(t, "http://localhost:9000", R2Config{AccountID: "acct", Endpoint: "http://localhost:9000"}.EndpointURL())
}

func TestConnectDatabase_SQLite(t *testing.T) {
	db, err := InitDB(DatabaseConfig{Driver: "sqlite", DSN: "file:config_test?mode=memory&cache=shared", AutoMigrate: true, MaxOpen: 1})
	require.NoError(t, err)
	defer func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	}()

	assert.True(t, db.Migrator().HasTable("parents"))
	assert.True(t, db.Migrator().HasTable("children"))

	_, err = ConnectDatabase(DatabaseConfig{Driver: "mysql"})
	assert.Error(t, err)
}
