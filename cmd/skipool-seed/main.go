// Command skipool-seed loads the ski resort catalogue into the store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/skipool/skipool/internal/config"
	dbRedis "github.com/skipool/skipool/internal/db/redis"
	domresort "github.com/skipool/skipool/internal/domain/resort"
	logpkg "github.com/skipool/skipool/internal/logger"
	resortrepo "github.com/skipool/skipool/internal/repository/resort"
	riderepo "github.com/skipool/skipool/internal/repository/ride"
	"github.com/skipool/skipool/internal/seed"
	resortuc "github.com/skipool/skipool/internal/usecase/resort"
)

func main() {
	clearFirst := flag.Bool("clear", false, "delete every stored resort and ride before importing")
	file := flag.String("file", "", "YAML catalogue to import instead of the embedded one")
	flag.Parse()

	if err := run(*clearFirst, *file); err != nil {
		fmt.Fprintln(os.Stderr, "skipool-seed:", err)
		os.Exit(1)
	}
}

func run(clearFirst bool, file string) error {
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	lock := flock.New(cfg.Seed.LockFile)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", cfg.Seed.LockFile, err)
	}
	if !locked {
		return fmt.Errorf("another seed run holds %s", cfg.Seed.LockFile)
	}
	defer func() { _ = lock.Unlock() }()

	var resorts []domresort.Resort
	if file != "" {
		resorts, err = seed.LoadFile(file)
	} else {
		resorts, err = seed.Default()
	}
	if err != nil {
		return err
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer store.Close()

	ctx := logpkg.ContextWithLogger(context.Background(), logger)
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return err
	}

	if clearFirst {
		logger.Info("clearing existing resorts and rides")
	}
	svc := resortuc.New(resortrepo.New(store)).WithRidePurger(riderepo.New(store))
	stats, err := svc.Import(ctx, resorts, clearFirst)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	logger.Info("seed complete",
		zap.Int("created", stats.Created),
		zap.Int("updated", stats.Updated),
		zap.Int("deleted", stats.Deleted),
		zap.Int("rides_deleted", stats.RidesDeleted),
		zap.Int("total", stats.Total),
	)
	fmt.Printf("created %d, updated %d, deleted %d (%d rides); %d resorts in store\n",
		stats.Created, stats.Updated, stats.Deleted, stats.RidesDeleted, stats.Total)
	return nil
}
