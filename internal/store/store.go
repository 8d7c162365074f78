// Package store persists the complete application state as a single JSON
// document in SQLite, keyed by a fixed namespace. Reads are served from an
// in-memory copy; writes replace one section at a time and merge shallowly
// with the rest of the stored document.
package store

import (
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"projectdollar/internal/models"
)

// Namespace is the primary key of the single state record.
const Namespace = "ProjectDollar:state"

// Record is the database row holding the serialized state document.
type Record struct {
	Namespace string `gorm:"primaryKey"`
	Document  string
}

// TableName overrides the default table name.
func (Record) TableName() string {
	return "state_records"
}

// Store owns the in-memory state and its SQLite mirror. Persistence is
// best-effort: a failed write is logged and the in-memory state stays
// authoritative for the rest of the process lifetime.
type Store struct {
	db  *gorm.DB
	log *zap.SugaredLogger

	mu    sync.RWMutex
	state models.State
}

// New migrates the state table and loads the stored document. A missing or
// unreadable record yields an empty state rather than an error.
func New(db *gorm.DB, log *zap.SugaredLogger) (*Store, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}

	s := &Store{db: db, log: log}
	s.state = s.load()
	return s, nil
}

func (s *Store) load() models.State {
	var rec Record
	err := s.db.First(&rec, "namespace = ?", Namespace).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.State{}
	}
	if err != nil {
		s.log.Errorw("Failed to read state record", "error", err)
		return models.State{}
	}

	var state models.State
	if err := json.Unmarshal([]byte(rec.Document), &state); err != nil {
		s.log.Errorw("Failed to decode state record", "error", err)
		return models.State{}
	}
	return state
}

// persist writes the current state document. Callers must hold s.mu.
func (s *Store) persist() {
	doc, err := json.Marshal(s.state)
	if err != nil {
		s.log.Errorw("Failed to encode state record", "error", err)
		return
	}

	rec := Record{Namespace: Namespace, Document: string(doc)}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}},
		DoUpdates: clause.AssignmentColumns([]string{"document"}),
	}).Create(&rec).Error
	if err != nil {
		s.log.Errorw("Failed to persist state record", "error", err)
	}
}

// Assets returns a copy of the stored holdings.
func (s *Store) Assets() []models.Holding {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Holding, len(s.state.Assets))
	copy(out, s.state.Assets)
	return out
}

// SaveAssets replaces the holdings section and persists.
func (s *Store) SaveAssets(assets []models.Holding) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Assets = make([]models.Holding, len(assets))
	copy(s.state.Assets, assets)
	s.persist()
}

// Balances returns the stored balances, zero-valued when none were saved.
func (s *Store) Balances() models.Balances {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.Balances == nil {
		return models.Balances{}
	}
	return *s.state.Balances
}

// SaveBalances replaces the balances section and persists.
func (s *Store) SaveBalances(b models.Balances) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Balances = &b
	s.persist()
}

// Deposits returns a copy of the deposit history, newest first.
func (s *Store) Deposits() []models.Deposit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Deposit, len(s.state.Deposits))
	copy(out, s.state.Deposits)
	return out
}

// SaveDeposits replaces the deposit history and persists.
func (s *Store) SaveDeposits(deposits []models.Deposit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Deposits = make([]models.Deposit, len(deposits))
	copy(s.state.Deposits, deposits)
	s.persist()
}

// Preferences returns the stored preferences or sensible defaults.
func (s *Store) Preferences() models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.Preferences == nil {
		return models.Preferences{DateFormat: "DD-MM-YYYY", PrimaryColor: "blue"}
	}
	return *s.state.Preferences
}

// SavePreferences replaces the preferences section and persists.
func (s *Store) SavePreferences(p models.Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Preferences = &p
	s.persist()
}
