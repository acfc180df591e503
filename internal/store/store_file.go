package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/limaJavier/unit-timetabling/pkg/model"
)

// document is the on-disk layout of the file store: the snapshot collections plus the timetable
type document struct {
	model.ModelInput
	Timetable []model.TimetableEntry `json:"timetable"`
}

type fileStore struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

// NewFileStore keeps everything in a single JSON document. A missing file reads as an empty snapshot
func NewFileStore(path string, logger *zap.Logger) Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &fileStore{path: path, logger: logger.With(zap.String("store", "file"), zap.String("path", path))}
}

func (store *fileStore) Load(ctx context.Context) (model.ModelInput, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	doc, err := store.read()
	if err != nil {
		return model.ModelInput{}, err
	}
	return doc.ModelInput, nil
}

func (store *fileStore) ReplaceTimeSlots(ctx context.Context, slots []model.TimeSlot) ([]model.TimeSlot, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	doc, err := store.read()
	if err != nil {
		return nil, err
	}

	persisted := make([]model.TimeSlot, len(slots))
	for i, slot := range slots {
		slot.Id = uint64(i + 1)
		persisted[i] = slot
	}
	doc.TimeSlots = persisted
	doc.Timetable = []model.TimetableEntry{}

	if err := store.write(doc); err != nil {
		return nil, err
	}
	store.logger.Info("time slots replaced", zap.Int("slots", len(persisted)))
	return persisted, nil
}

func (store *fileStore) ReplaceTimetable(ctx context.Context, entries []model.TimetableEntry) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	doc, err := store.read()
	if err != nil {
		return err
	}
	doc.Timetable = append([]model.TimetableEntry{}, entries...)

	if err := store.write(doc); err != nil {
		return err
	}
	store.logger.Info("timetable replaced", zap.Int("entries", len(entries)))
	return nil
}

func (store *fileStore) Timetable(ctx context.Context) ([]model.TimetableEntry, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	doc, err := store.read()
	if err != nil {
		return nil, err
	}
	return doc.Timetable, nil
}

func (store *fileStore) Close() {}

func (store *fileStore) read() (document, error) {
	bytes, err := os.ReadFile(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return document{Timetable: []model.TimetableEntry{}}, nil
	} else if err != nil {
		return document{}, fmt.Errorf("cannot read store file: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return document{}, fmt.Errorf("cannot parse store file: %w", err)
	}

	input, err := model.DecodeInput(raw)
	if err != nil {
		return document{}, err
	}
	entries, err := model.DecodeEntries(raw["timetable"])
	if err != nil {
		return document{}, err
	}
	return document{ModelInput: input, Timetable: entries}, nil
}

// write replaces the document atomically through a temporary file in the same directory
func (store *fileStore) write(doc document) error {
	bytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode store file: %w", err)
	}

	temp, err := os.CreateTemp(filepath.Dir(store.path), ".timetable-*.json")
	if err != nil {
		return fmt.Errorf("cannot write store file: %w", err)
	}
	defer os.Remove(temp.Name())

	if _, err := temp.Write(bytes); err != nil {
		temp.Close()
		return fmt.Errorf("cannot write store file: %w", err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("cannot write store file: %w", err)
	}
	if err := os.Rename(temp.Name(), store.path); err != nil {
		return fmt.Errorf("cannot write store file: %w", err)
	}
	return nil
}
