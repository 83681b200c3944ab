package main

import (
	"context"

	"github.com/catchzone151-stack/IslamQuest-sub001/internal/events"
	"github.com/catchzone151-stack/IslamQuest-sub001/internal/progress"
	"github.com/catchzone151-stack/IslamQuest-sub001/internal/revision"
	"github.com/catchzone151-stack/IslamQuest-sub001/internal/syncer"
	"github.com/catchzone151-stack/IslamQuest-sub001/pkg/models"
)

// App is the surface handed to presentation and gameplay collaborators:
// pool curation, review sessions, event entry/claiming and sync triggers.
// Everything else stays internal.
type App struct {
	store  *progress.Store
	pool   *revision.Manager
	events *events.Engine
	sync   *syncer.Orchestrator
}

// NewApp bundles the engine components behind one facade
func NewApp(store *progress.Store, pool *revision.Manager, engine *events.Engine, sync *syncer.Orchestrator) *App {
	return &App{store: store, pool: pool, events: engine, sync: sync}
}

// RecordMiss registers an incorrectly answered question
func (a *App) RecordMiss(q models.Question, pathID, lessonID string) {
	a.pool.RecordMiss(q, pathID, lessonID)
}

// BuildMistakesSession builds a review session from the weak-question pool
func (a *App) BuildMistakesSession(maxCount int) []models.WeakQuestionItem {
	return a.pool.BuildMistakesSession(maxCount)
}

// BuildSmartSession builds a review session from the weakest path's bank
func (a *App) BuildSmartSession(maxCount int) []models.Question {
	return a.pool.BuildSmartSession(maxCount)
}

// MarkReviewed records a review outcome for a pool item
func (a *App) MarkReviewed(itemID string, correct bool) {
	a.pool.MarkReviewed(itemID, correct)
}

// SubmitEntry enters the current week's event, returning the provisional rank
func (a *App) SubmitEntry(ctx context.Context, eventID string, score int, answers []int64, completionTime *float64) (int, error) {
	return a.events.SubmitEntry(ctx, eventID, score, answers, completionTime)
}

// ClaimRewards settles the closed week's entry and credits the payout
func (a *App) ClaimRewards(ctx context.Context, eventID string) (int, models.Rewards, error) {
	return a.events.ClaimRewards(ctx, eventID)
}

// Leaderboard returns the current week's standings
func (a *App) Leaderboard(ctx context.Context, eventID string, limit int) ([]models.EventEntry, error) {
	return a.events.Leaderboard(ctx, eventID, limit)
}

// Run fires one sync cycle; it also satisfies the scheduler's Syncer
func (a *App) Run(ctx context.Context, trigger syncer.Trigger) {
	a.sync.Run(ctx, trigger)
}
