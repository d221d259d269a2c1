package main

import (
	"context"
	"fmt"

	"maidlink/internal/crypto"
	"maidlink/internal/db"
	"maidlink/internal/seed"
	"maidlink/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with demo data",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		encryptionKey, err := loadEncryptionKey(cfg)
		if err != nil {
			return err
		}

		codec, err := crypto.NewCodec(encryptionKey)
		if err != nil {
			return fmt.Errorf("failed to initialize field codec: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		agencyRepo := store.NewAgencyRepository(pool)
		maidRepo := store.NewMaidRepository(pool)
		employerRepo := store.NewEmployerRepository(pool)
		adRepo := store.NewAdvertisementRepository(pool)

		logrus.Info("Seeding demo agency...")
		if err := seed.Agencies(ctx, agencyRepo, adRepo); err != nil {
			return fmt.Errorf("failed to seed agency: %w", err)
		}

		logrus.Info("Seeding demo profiles...")
		if err := seed.Profiles(ctx, codec, maidRepo, employerRepo); err != nil {
			return fmt.Errorf("failed to seed profiles: %w", err)
		}

		logrus.Info("Seed complete")

		return nil
	},
}
