// Package outbox keeps signed events whose publish failed everywhere so they
// can be retried later.
package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"olas-server/internal/relay"
	"olas-server/internal/types"
)

// Publisher sends an event to relays
type Publisher interface {
	Publish(ctx context.Context, relays []string, evt *types.Event) ([]relay.PublishResult, error)
}

// Entry is an unpublished event as handed back to callers
type Entry struct {
	Event     types.Event
	Relays    []string
	LastError string
	Attempts  int
}

type Store struct {
	db *gorm.DB
}

// Open opens (or creates) a sqlite database at dsn. ":memory:" works for tests.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open outbox: %w", err)
	}
	// sqlite allows one writer; a single connection also keeps ":memory:" shared
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open outbox: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return New(db)
}

// New wraps an existing connection and migrates the schema
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&UnpublishedEvent{}); err != nil {
		return nil, fmt.Errorf("migrate outbox: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Add records evt as unpublished for owner. Adding the same event again
// refreshes its relays and error.
func (s *Store) Add(ctx context.Context, owner string, evt *types.Event, relays []string, reason string) error {
	raw, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	row := &UnpublishedEvent{
		EventID:   evt.ID,
		Owner:     owner,
		Kind:      evt.Kind,
		Raw:       string(raw),
		Relays:    strings.Join(relays, "\n"),
		LastError: reason,
		Attempts:  1,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"relays", "last_error", "updated_at"}),
	}).Create(row).Error
}

func (s *Store) Count(ctx context.Context, owner string) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&UnpublishedEvent{}).Where("owner = ?", owner).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

// List returns owner's unpublished events, oldest first
func (s *Store) List(ctx context.Context, owner string) ([]Entry, error) {
	var rows []UnpublishedEvent
	if err := s.db.WithContext(ctx).Where("owner = ?", owner).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.entry()
		if err != nil {
			slog.Warn("skipping corrupt outbox row", "event_id", row.EventID, "error", err)
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

// Remove drops one of owner's events; removing a missing event is not an error
func (s *Store) Remove(ctx context.Context, owner, eventID string) error {
	return s.db.WithContext(ctx).Where("owner = ? AND event_id = ?", owner, eventID).Delete(&UnpublishedEvent{}).Error
}

// Retry publishes every pending event of owner again. Events that reach at
// least one relay are removed; the rest keep their new error. Returns how
// many were published.
func (s *Store) Retry(ctx context.Context, owner string, pub Publisher, fallbackRelays []string) (int, error) {
	entries, err := s.List(ctx, owner)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return published, err
		}
		relays := entry.Relays
		if len(relays) == 0 {
			relays = fallbackRelays
		}
		evt := entry.Event
		if _, err := pub.Publish(ctx, relays, &evt); err != nil {
			slog.Info("outbox retry failed", "event_id", evt.ID, "error", err)
			if uerr := s.db.WithContext(ctx).Model(&UnpublishedEvent{}).
				Where("event_id = ?", evt.ID).
				Updates(map[string]interface{}{
					"last_error": err.Error(),
					"attempts":   gorm.Expr("attempts + 1"),
				}).Error; uerr != nil {
				return published, uerr
			}
			continue
		}
		if err := s.Remove(ctx, owner, evt.ID); err != nil {
			return published, err
		}
		published++
	}
	return published, nil
}

func (row UnpublishedEvent) entry() (Entry, error) {
	var evt types.Event
	if err := json.Unmarshal([]byte(row.Raw), &evt); err != nil {
		return Entry{}, err
	}
	if evt.ID != row.EventID {
		return Entry{}, errors.New("event id mismatch")
	}
	var relays []string
	if row.Relays != "" {
		relays = strings.Split(row.Relays, "\n")
	}
	return Entry{Event: evt, Relays: relays, LastError: row.LastError, Attempts: row.Attempts}, nil
}
