package cmd

import (
	"github.com/samber/do"
	"github.com/snap-point/activity-api/bootstrap"
	"github.com/snap-point/activity-api/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the parents and children tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		inj := bootstrap.BuildContainer(cfg)
		log := do.MustInvoke[*zap.Logger](inj)
		defer log.Sync()

		db, err := do.Invoke[*gorm.DB](inj)
		if err != nil {
			return err
		}
		defer bootstrap.CloseDB(inj)

		if err := config.Migrate(db); err != nil {
			return err
		}
		log.Info("Migration complete", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}
