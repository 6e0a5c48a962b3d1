package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	apperrors "github.com/julianstephens/streakly/internal/errors"
	"github.com/julianstephens/streakly/internal/models"
)

const jsonStoreVersion = 1

// Document is the on-disk layout of the JSON store and of export files.
type Document struct {
	Version int                        `json:"version"`
	Profile *models.Profile            `json:"profile,omitempty"`
	Logs    map[string]models.DailyLog `json:"logs"`
}

// JSONStore keeps everything in a single file rewritten on every mutation.
type JSONStore struct {
	path string

	mu  sync.Mutex
	doc *Document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &Document{Version: jsonStoreVersion, Logs: map[string]models.DailyLog{}}
	return s.save()
}

func (s *JSONStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc != nil {
		return nil
	}
	doc, err := ReadDocument(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.ErrNotInitialized
		}
		return err
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error { return nil }

func (s *JSONStore) GetConfigPath() string { return s.path }

// ReadDocument parses a JSON store or export file. Missing fields decode as zero values.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Logs == nil {
		doc.Logs = map[string]models.DailyLog{}
	}
	return doc, nil
}

// WriteDocument serializes doc to path with owner-only permissions.
func WriteDocument(path string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) save() error {
	return WriteDocument(s.path, s.doc)
}

func (s *JSONStore) loaded() error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetDailyLog(ctx context.Context, date string) (models.DailyLog, error) {
	if err := models.ValidateDate(date); err != nil {
		return models.DailyLog{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.DailyLog{}, err
	}
	return s.entry(date), nil
}

func (s *JSONStore) entry(date string) models.DailyLog {
	entry, ok := s.doc.Logs[date]
	if !ok {
		return models.EmptyDailyLog(date)
	}
	entry.Date = date
	return entry.Normalize()
}

func (s *JSONStore) GetDailyLogs(ctx context.Context, startDate, endDate string) ([]models.DailyLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}

	var dates []string
	for d := range s.doc.Logs {
		if d >= startDate && d <= endDate {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)

	logs := make([]models.DailyLog, 0, len(dates))
	for _, d := range dates {
		logs = append(logs, s.entry(d))
	}
	return logs, nil
}

func (s *JSONStore) AdjustCounters(ctx context.Context, date string, waterDelta, stepsDelta int) (models.DailyLog, error) {
	if err := models.ValidateDate(date); err != nil {
		return models.DailyLog{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.DailyLog{}, err
	}

	entry := s.entry(date).ApplyDeltas(waterDelta, stepsDelta)
	entry.UpdatedAt = time.Now().UTC()
	s.doc.Logs[date] = entry
	if err := s.save(); err != nil {
		return models.DailyLog{}, err
	}
	return s.entry(date), nil
}

func (s *JSONStore) AppendMeal(ctx context.Context, date string, meal models.Meal) (models.DailyLog, error) {
	if err := models.ValidateDate(date); err != nil {
		return models.DailyLog{}, err
	}
	if err := meal.Validate(); err != nil {
		return models.DailyLog{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.DailyLog{}, err
	}

	entry := s.entry(date)
	entry.Meals = append(entry.Meals, meal)
	entry.UpdatedAt = time.Now().UTC()
	s.doc.Logs[date] = entry
	if err := s.save(); err != nil {
		return models.DailyLog{}, err
	}
	return s.entry(date), nil
}

func (s *JSONStore) PutDailyLog(ctx context.Context, entry models.DailyLog) error {
	if err := models.ValidateDate(entry.Date); err != nil {
		return err
	}
	for _, m := range entry.Meals {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("day %s: %w", entry.Date, err)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}

	s.doc.Logs[entry.Date] = entry.Normalize()
	return s.save()
}

func (s *JSONStore) GetProfile(ctx context.Context) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.Profile{}, err
	}
	if s.doc.Profile == nil {
		return models.DefaultProfile(), nil
	}
	return *s.doc.Profile, nil
}

func (s *JSONStore) SaveProfile(ctx context.Context, profile models.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Profile = &profile
	return s.save()
}

func (s *JSONStore) EraseAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Profile = nil
	s.doc.Logs = map[string]models.DailyLog{}
	return s.save()
}
