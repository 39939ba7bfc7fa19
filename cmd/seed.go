package cmd

import (
	"github.com/samber/do"
	"github.com/snap-point/activity-api/bootstrap"
	"github.com/snap-point/activity-api/config"
	"github.com/snap-point/activity-api/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample activities and users, each with one to three posts",
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

		seeder := &store.Seeder{
			Store: do.MustInvoke[store.Store](inj),
			Log:   log,
		}
		created, err := seeder.Run(cmd.Context(), cfg.Resources)
		if err != nil {
			return err
		}
		log.Info("Seeding complete", zap.Int("created", created))
		return nil
	},
}
