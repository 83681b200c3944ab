package syncer

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/catchzone151-stack/IslamQuest-sub001/internal/progress"
	"github.com/catchzone151-stack/IslamQuest-sub001/pkg/models"
	"go.uber.org/zap"
)

// Trigger names the application moment that started a sync cycle
type Trigger string

const (
	TriggerOpen       Trigger = "open"
	TriggerForeground Trigger = "foreground"
	TriggerInterval   Trigger = "interval"
)

// RemoteClient is the slice of the remote store the orchestrator needs
type RemoteClient interface {
	ReadRevisionItems(ctx context.Context, userID string) ([]models.WeakQuestionItem, error)
	UpsertRevisionItems(ctx context.Context, userID string, items []models.WeakQuestionItem) error
	ReadProfile(ctx context.Context, userID string) (*models.ProfileAggregate, error)
	UpsertProfile(ctx context.Context, userID string, p models.ProfileAggregate) error
}

// Orchestrator drives pull→merge→push cycles per data domain. Domains are
// isolated: a remote failure in one never blocks the other, and every
// failure degrades to "local state unchanged". Sync is best-effort and is
// never surfaced to the user.
type Orchestrator struct {
	store      *progress.Store
	remote     RemoteClient
	log        *zap.Logger
	retryDelay time.Duration

	// Per-domain in-flight guards: an overlapping trigger (timer tick just
	// after a foreground event) skips the domain instead of racing it.
	revisionBusy atomic.Bool
	profileBusy  atomic.Bool
}

// New creates a sync orchestrator for one user's store
func New(store *progress.Store, remote RemoteClient, retryDelay time.Duration, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		store:      store,
		remote:     remote,
		log:        log,
		retryDelay: retryDelay,
	}
}

// Run executes one full sync cycle across all domains
func (o *Orchestrator) Run(ctx context.Context, trigger Trigger) {
	o.log.Debug("sync cycle starting", zap.String("trigger", string(trigger)))
	o.syncRevisionItems(ctx)
	o.syncProfile(ctx)
}

// syncRevisionItems pulls the remote pool, merges it with the local pool on
// per-item review recency, writes the winner back locally and pushes the
// full merged set as a row-level upsert.
func (o *Orchestrator) syncRevisionItems(ctx context.Context) {
	if !o.revisionBusy.CompareAndSwap(false, true) {
		o.log.Debug("revision sync already in flight, skipping")
		return
	}
	defer o.revisionBusy.Store(false)

	userID := o.store.UserID()
	remoteItems, err := o.remote.ReadRevisionItems(ctx, userID)
	if err != nil {
		o.log.Warn("revision pull failed, keeping local state", zap.Error(err))
		return
	}

	merged := MergeRevisionItems(o.store.Pool(), remoteItems)
	o.store.ReplacePool(merged)

	if err := o.pushWithRetry(ctx, func() error {
		return o.remote.UpsertRevisionItems(ctx, userID, merged)
	}); err != nil {
		o.log.Warn("revision push failed", zap.Error(err))
	}
}

// syncProfile pulls the remote aggregate, merges the two timestamped field
// groups independently and pushes the merged aggregate unconditionally.
func (o *Orchestrator) syncProfile(ctx context.Context) {
	if !o.profileBusy.CompareAndSwap(false, true) {
		o.log.Debug("profile sync already in flight, skipping")
		return
	}
	defer o.profileBusy.Store(false)

	userID := o.store.UserID()
	remoteProfile, err := o.remote.ReadProfile(ctx, userID)
	if err != nil {
		o.log.Warn("profile pull failed, keeping local state", zap.Error(err))
		return
	}

	merged := MergeProfile(o.store.Profile(), remoteProfile)
	o.store.SetProfile(merged)

	if err := o.pushWithRetry(ctx, func() error {
		return o.remote.UpsertProfile(ctx, userID, merged)
	}); err != nil {
		o.log.Warn("profile push failed", zap.Error(err))
	}
}

// pushWithRetry runs a push with exactly one blind retry. There is no
// durable retry queue; a failed push waits for the next trigger.
func (o *Orchestrator) pushWithRetry(ctx context.Context, push func() error) error {
	err := push()
	if err == nil {
		return nil
	}
	select {
	case <-time.After(o.retryDelay):
	case <-ctx.Done():
		return err
	}
	return push()
}
