package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/limaJavier/unit-timetabling/internal/config"
	"github.com/limaJavier/unit-timetabling/pkg/model"
)

// Store persists the entity snapshot, the generated time slots and the timetable
type Store interface {
	Load(ctx context.Context) (model.ModelInput, error)

	// ReplaceTimeSlots clears the timetable and every time slot, then persists slots and returns them with their stored ids
	ReplaceTimeSlots(ctx context.Context, slots []model.TimeSlot) ([]model.TimeSlot, error)

	// ReplaceTimetable clears the prior entries and inserts the given batch
	ReplaceTimetable(ctx context.Context, entries []model.TimetableEntry) error

	Timetable(ctx context.Context) ([]model.TimetableEntry, error)

	Close()
}

func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case config.FileDriver:
		return NewFileStore(cfg.File, logger), nil
	case config.PostgresDriver:
		return NewPostgresStore(ctx, cfg.DSN, logger)
	default:
		return nil, fmt.Errorf("unknown store driver: %v", cfg.Driver)
	}
}
