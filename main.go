package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/catchzone151-stack/IslamQuest-sub001/internal/config"
	"github.com/catchzone151-stack/IslamQuest-sub001/internal/contentbank"
	"github.com/catchzone151-stack/IslamQuest-sub001/internal/database"
	"github.com/catchzone151-stack/IslamQuest-sub001/internal/events"
	"github.com/catchzone151-stack/IslamQuest-sub001/internal/progress"
	"github.com/catchzone151-stack/IslamQuest-sub001/internal/remote"
	"github.com/catchzone151-stack/IslamQuest-sub001/internal/revision"
	"github.com/catchzone151-stack/IslamQuest-sub001/internal/scheduler"
	"github.com/catchzone151-stack/IslamQuest-sub001/internal/syncer"
	"go.uber.org/zap"
)

func main() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if cfg.UserID == "" {
		logger.Fatal("USER_ID environment variable is not set")
	}

	localDB, err := database.Connect(cfg.LocalDBPath)
	if err != nil {
		logger.Fatal("failed to open local database", zap.Error(err))
	}
	defer localDB.Close()

	snapshots := database.NewSnapshotRepository(localDB)
	snap, err := snapshots.Load(cfg.UserID)
	if err != nil {
		logger.Fatal("failed to load progress snapshot", zap.Error(err))
	}
	store := progress.NewStore(cfg.UserID, snap, snapshots, logger)

	remoteStore, err := remote.Connect(cfg.RemoteDSN)
	if err != nil {
		logger.Fatal("failed to connect to remote store", zap.Error(err))
	}
	defer remoteStore.Close()

	bank, importResult, err := contentbank.Load(contentbank.DefaultImportConfig(cfg.QuestionBankPath))
	if err != nil {
		logger.Fatal("failed to load question bank", zap.Error(err))
	}
	logger.Info("question bank loaded",
		zap.Int("questions", importResult.Imported),
		zap.Int("skipped", importResult.Skipped))

	app := NewApp(
		store,
		revision.NewManager(store, bank, revision.Config{
			RemoveAfterCorrectReviews: cfg.MasteryRemovalThreshold,
		}),
		events.NewEngine(store, remoteStore, cfg.EventEntryFee, logger),
		syncer.New(store, remoteStore, cfg.PushRetryDelay, logger),
	)
	app.Run(ctx, syncer.TriggerOpen)

	sched := scheduler.New(app, cfg.SyncInterval)
	sched.Start(ctx)

	logger.Info("progress engine started", zap.String("user", cfg.UserID))

	sig := <-sigChan
	logger.Info("shutting down", zap.String("signal", sig.String()))
	cancel()
	sched.Stop()
}
