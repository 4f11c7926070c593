package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/shopkartlabs/shopkart-backend/pkg/config"
	"github.com/shopkartlabs/shopkart-backend/pkg/db"
	"github.com/shopkartlabs/shopkart-backend/pkg/logger"
	"github.com/shopkartlabs/shopkart-backend/pkg/migrate"
)

func main() {
	cmd := flag.String("cmd", "up", "one of: up, down, status, to, create, verify")
	dir := flag.String("dir", migrate.DefaultDir, "migrations directory")
	name := flag.String("name", "", "new migration name (create)")
	version := flag.String("version", "", "target schema version (to)")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "migrate"})
	if err := run(context.Background(), logg, *cmd, *dir, *name, *version); err != nil {
		logg.Error(context.Background(), "migrate failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logg *logger.Logger, cmd, dir, name, version string) error {
	// create and verify work on files alone, no database needed
	switch cmd {
	case "create":
		if name == "" {
			return fmt.Errorf("create needs -name")
		}
		path, err := migrate.Create(dir, name)
		if err != nil {
			return err
		}
		logg.Info(logg.WithFields(ctx, map[string]any{"path": path}), "migration created")
		return nil

	case "verify":
		if err := migrate.Verify(dir); err != nil {
			return err
		}
		logg.Info(ctx, "migrations verified")
		return nil
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(ctx, map[string]any{
		"env": cfg.App.Env,
		"cmd": cmd,
		"dir": dir,
	})

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer client.Close()

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("unwrap sql.DB: %w", err)
	}

	switch cmd {
	case "up", "down", "status":
		return migrate.Run(ctx, sqlDB, dir, cmd)

	case "to":
		if version == "" {
			return fmt.Errorf("to needs -version (YYYYMMDDHHMMSS)")
		}
		return migrate.To(ctx, sqlDB, dir, version)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
