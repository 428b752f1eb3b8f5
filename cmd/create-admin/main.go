// Command create-admin adds an administrator so a fresh install can log in.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"cz4r/config"
	"cz4r/internal/repository"
	"cz4r/internal/service"
	"cz4r/pkg/database"
	applogger "cz4r/pkg/logger"
)

func main() {
	name := flag.String("name", "", "administrator login name")
	password := flag.String("password", "", "administrator password (at least 8 characters)")
	configPath := flag.String("config", "", "config file path")
	flag.Parse()

	if *name == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	workers := service.NewWorkerService(repository.NewRepository(db), logger)
	id, err := workers.CreateAdmin(ctx, *name, *password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("created administrator %q with id %d\n", *name, id)
}
