package bootstrap

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/samber/do"
	"github.com/snap-point/activity-api/attachments"
	"github.com/snap-point/activity-api/config"
	"github.com/snap-point/activity-api/logger"
	"github.com/snap-point/activity-api/middleware"
	"github.com/snap-point/activity-api/routes"
	"github.com/snap-point/activity-api/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildContainer wires config → logger → db → store → attachments → router.
// Services are built lazily on first invoke.
func BuildContainer(cfg *config.Config) *do.Injector {
	inj := do.New()

	do.ProvideValue(inj, cfg)

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return config.InitDB(cfg.Database)
	})

	do.Provide(inj, func(i *do.Injector) (store.Store, error) {
		return store.NewGormStore(do.MustInvoke[*gorm.DB](i)), nil
	})

	// attachment storage: local upload folder or an R2/S3 bucket
	do.Provide(inj, func(i *do.Injector) (attachments.Storage, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.Storage.Backend == "r2" {
			return attachments.NewR2Storage(cfg.Storage.R2), nil
		}
		return attachments.NewLocalStorage(cfg.Storage.UploadFolder)
	})

	// router
	do.Provide(inj, func(i *do.Injector) (*gin.Engine, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)

		if cfg.Server.Mode != "" {
			gin.SetMode(cfg.Server.Mode)
		}
		r := gin.New()
		r.Use(gin.Recovery(), middleware.RequestLogger(log))

		routes.SetupRoutes(r, cfg,
			do.MustInvoke[store.Store](i),
			do.MustInvoke[attachments.Storage](i),
			log)
		return r, nil
	})

	do.Provide(inj, func(i *do.Injector) (http.Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		c := cors.New(cors.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		})
		return c.Handler(do.MustInvoke[*gin.Engine](i)), nil
	})

	return inj
}

// CloseDB releases the database connection pool.
func CloseDB(inj *do.Injector) error {
	db, err := do.Invoke[*gorm.DB](inj)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
