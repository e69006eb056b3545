package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/terraincognita07/nutrisnap/internal/models"
)

var ErrNoActiveFast = errors.New("no active fast")

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type FastingSessionStore interface {
	FindActive(userID uint) (models.FastingSession, bool, error)
	StartSession(session *models.FastingSession, cancelledAt time.Time) error
	Update(sessionID uint, updates map[string]any) error
	CancelActive(userID uint, endedAt time.Time) error
	History(userID uint, limit int) ([]models.FastingSession, error)
	Stats(userID uint) (models.FastingStats, error)
}

type FastingService struct {
	sessions FastingSessionStore
}

func NewFastingService(sessions FastingSessionStore) *FastingService {
	return &FastingService{sessions: sessions}
}

// Start opens a new active session at now. Any session still active for the
// user is cancelled first, in the same transaction as the insert; callers
// surface that as a confirmation prompt, the service itself never refuses.
func (service *FastingService) Start(userID uint, targetHours float64, protocol string, now time.Time) (models.FastingSession, error) {
	if targetHours <= 0 {
		targetHours = models.DefaultFastingTargetHours
	}
	protocol = strings.TrimSpace(protocol)
	if protocol == "" {
		protocol = models.DefaultFastingProtocol
	}

	session := models.FastingSession{
		UserID:      userID,
		StartedAt:   now.UTC(),
		TargetHours: targetHours,
		Protocol:    protocol,
		Status:      models.FastingStatusActive,
	}
	if err := service.sessions.StartSession(&session, now.UTC()); err != nil {
		return models.FastingSession{}, err
	}
	return session, nil
}

// End completes the active session and returns the elapsed hours, rounded to
// two decimals. Without an active session it fails with ErrNoActiveFast.
func (service *FastingService) End(userID uint, feeling string, note string, now time.Time) (float64, error) {
	session, found, err := service.sessions.FindActive(userID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, ErrNoActiveFast
	}

	actualHours := ElapsedHours(session, now)
	updates := map[string]any{
		"status":       models.FastingStatusCompleted,
		"ended_at":     now.UTC(),
		"actual_hours": actualHours,
	}
	// Omitted feeling/note stay NULL rather than becoming empty strings.
	if feeling = strings.TrimSpace(feeling); feeling != "" {
		updates["feeling"] = feeling
	}
	if note = strings.TrimSpace(note); note != "" {
		updates["note"] = note
	}
	if err := service.sessions.Update(session.ID, updates); err != nil {
		return 0, err
	}
	return actualHours, nil
}

// Cancel is idempotent: with nothing active it is a silent no-op success.
func (service *FastingService) Cancel(userID uint, now time.Time) error {
	return service.sessions.CancelActive(userID, now.UTC())
}

func (service *FastingService) Current(userID uint) (models.FastingSession, bool, error) {
	return service.sessions.FindActive(userID)
}

// History returns finished sessions, most recent first, with the aggregate
// stats over completed ones. The limit is clamped to [1, 100]; values below
// one fall back to the default of 20.
func (service *FastingService) History(userID uint, limit int) ([]models.FastingSession, models.FastingStats, error) {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	sessions, err := service.sessions.History(userID, limit)
	if err != nil {
		return nil, models.FastingStats{}, err
	}
	stats, err := service.sessions.Stats(userID)
	if err != nil {
		return nil, models.FastingStats{}, err
	}
	return sessions, stats, nil
}

// ElapsedHours is derived from the wall clock on every call and deliberately
// never cached: a stored value would freeze the timer the UI renders.
func ElapsedHours(session models.FastingSession, now time.Time) float64 {
	elapsed := now.UTC().Sub(session.StartedAt.UTC()).Hours()
	return math.Round(elapsed*100) / 100
}

// GoalReached reports whether the session has run for its target duration.
// It is computed on read; nothing is persisted until End is called. The
// comparison uses the unrounded duration so display rounding cannot flip
// the flag a few seconds early.
func GoalReached(session models.FastingSession, now time.Time) bool {
	return now.UTC().Sub(session.StartedAt.UTC()).Hours() >= session.TargetHours
}
