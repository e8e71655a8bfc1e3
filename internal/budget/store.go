// Package budget owns the budget aggregate and the commands that change it.
//
// Every command replaces the aggregate with a new value and writes the whole
// document to persistence. Commands never fail the caller: a failed write is
// logged and the in-memory state is kept.
package budget

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/theirongolddev/bplan/internal/alert"
	"github.com/theirongolddev/bplan/internal/analytics"
	"github.com/theirongolddev/bplan/internal/export"
	"github.com/theirongolddev/bplan/internal/model"
	"github.com/theirongolddev/bplan/internal/store"
)

// StorageKey is the slot holding the serialized aggregate.
const StorageKey = "budget"

// BackupKey receives the previous contents of StorageKey before the first
// write that follows a failed load.
const BackupKey = "budget.backup"

// ErrNoDownloader is returned by ExportBudgetData when no download target is
// configured.
var ErrNoDownloader = errors.New("no export target configured")

// Persistence reads and writes named snapshots.
type Persistence interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// Config wires a Store to its collaborators. Only Persistence is required.
type Config struct {
	Persistence Persistence
	Notifier    alert.Notifier
	Downloader  export.Downloader
	Logger      zerolog.Logger
	Now         func() time.Time
	NewID       func() string
}

// Store holds the canonical budget.
type Store struct {
	cfg Config

	mu     sync.Mutex
	budget model.Budget
	// guarded is set when the saved slot could not be read. Writes are held
	// back until a command changes the budget and the slot is backed up.
	guarded bool
}

// New loads the persisted budget, or seeds a fresh one when nothing usable
// is stored.
func New(cfg Config) *Store {
	if cfg.Persistence == nil {
		cfg.Persistence = &store.Memory{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}

	s := &Store{cfg: cfg}
	s.budget = s.load()
	return s
}

func (s *Store) load() model.Budget {
	data, err := s.cfg.Persistence.Get(StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return Seed(s.cfg.Now())
	}
	if err != nil {
		s.cfg.Logger.Warn().Err(err).Msg("reading saved budget; using defaults until the next change")
		s.guarded = true
		return Seed(s.cfg.Now())
	}

	b, dropped, err := Decode(data)
	if err != nil {
		s.cfg.Logger.Warn().Err(err).Msg("saved budget unreadable; using defaults until the next change")
		s.guarded = true
		return Seed(s.cfg.Now())
	}
	if len(dropped) > 0 {
		s.cfg.Logger.Warn().Strs("fields", dropped).Msg("saved budget had malformed fields; dropped them")
	}
	return b
}

// Budget returns a copy of the current aggregate.
func (s *Store) Budget() model.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budget.Clone()
}

// Analytics computes analytics for the current aggregate.
func (s *Store) Analytics() model.BudgetAnalytics {
	b := s.Budget()
	return analytics.Compute(b, s.cfg.Now())
}

// commit adopts next and writes it through. Callers hold s.mu.
func (s *Store) commit(next model.Budget) {
	if s.guarded {
		unchanged := reflect.DeepEqual(next, s.budget)
		s.budget = next
		if unchanged || !s.backupSlot() {
			return
		}
		s.guarded = false
	}
	s.budget = next

	data, err := json.Marshal(next)
	if err == nil {
		err = s.cfg.Persistence.Put(StorageKey, data)
	}
	if err != nil {
		s.cfg.Logger.Warn().Err(err).Msg("saving budget")
	}
}

// backupSlot copies the saved slot to BackupKey. It reports whether the slot
// is safe to overwrite.
func (s *Store) backupSlot() bool {
	data, err := s.cfg.Persistence.Get(StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return true
	}
	if err == nil {
		err = s.cfg.Persistence.Put(BackupKey, data)
	}
	if err != nil {
		s.cfg.Logger.Warn().Err(err).Msg("backing up saved budget; not saving")
		return false
	}
	s.cfg.Logger.Info().Str("key", BackupKey).Msg("saved budget backed up")
	return true
}

// freshID draws ids until one is not already taken.
func (s *Store) freshID(taken func(string) bool) string {
	for {
		id := s.cfg.NewID()
		if !taken(id) {
			return id
		}
	}
}

// AddExpense appends e with a new id, then checks alerts against the updated
// budget and notifies for each one that fires. It returns the stored expense.
func (s *Store) AddExpense(e model.Expense) model.Expense {
	s.mu.Lock()
	next := s.budget.Clone()
	e.ID = s.freshID(func(id string) bool {
		for _, x := range next.Expenses {
			if x.ID == id {
				return true
			}
		}
		return false
	})
	e = normalizeExpense(e.Clone())
	next.Expenses = append(next.Expenses, e)
	s.commit(next)

	fired := alert.Evaluate(next, analytics.Compute(next, s.cfg.Now()), e)
	s.mu.Unlock()

	alert.Deliver(s.cfg.Notifier, fired, s.cfg.Logger)
	return e.Clone()
}

// DeleteExpense removes the expense with id. It reports whether one existed.
func (s *Store) DeleteExpense(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.budget.Clone()
	found := false
	kept := next.Expenses[:0]
	for _, e := range next.Expenses {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	next.Expenses = kept
	s.commit(next)
	return found
}

// ExpensePatch lists the expense fields to change. Nil fields are left alone.
type ExpensePatch struct {
	Amount            *float64
	CategoryID        *string
	Description       *string
	Date              *string
	IsRecurring       *bool
	RecurringInterval *model.RecurringInterval
	Tags              *[]string
	Notes             *string
}

func (p ExpensePatch) apply(e model.Expense) model.Expense {
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.CategoryID != nil {
		e.CategoryID = *p.CategoryID
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.IsRecurring != nil {
		e.IsRecurring = *p.IsRecurring
	}
	if p.RecurringInterval != nil {
		e.RecurringInterval = *p.RecurringInterval
	}
	if p.Tags != nil {
		e.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	return normalizeExpense(e)
}

// UpdateExpense merges p into the expense with id. The id never changes.
func (s *Store) UpdateExpense(id string, p ExpensePatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.budget.Clone()
	found := false
	for i, e := range next.Expenses {
		if e.ID == id {
			next.Expenses[i] = p.apply(e)
			found = true
			break
		}
	}
	s.commit(next)
	return found
}

// CategoryPatch lists the category fields to change.
type CategoryPatch struct {
	Name   *string
	Amount *float64
	Color  *string
	Icon   *string
}

func (p CategoryPatch) apply(c model.Category) model.Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Amount != nil {
		c.Amount = *p.Amount
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	return c
}

// UpdateCategory merges p into the category with id, default or custom.
func (s *Store) UpdateCategory(id string, p CategoryPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.budget.Clone()
	found := false
	for _, list := range [][]model.Category{next.Categories, next.CustomCategories} {
		for i, c := range list {
			if c.ID == id {
				list[i] = p.apply(c)
				found = true
				break
			}
		}
		if found {
			break
		}
	}
	s.commit(next)
	return found
}

// AddCustomCategory appends c as a custom category with a new id.
func (s *Store) AddCustomCategory(c model.Category) model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.budget.Clone()
	c.ID = s.freshID(func(id string) bool {
		_, ok := next.FindCategory(id)
		return ok
	})
	c.IsCustom = true
	next.CustomCategories = append(next.CustomCategories, c)
	s.commit(next)
	return c
}

// AddBudgetAlert appends a with a new id, active.
func (s *Store) AddBudgetAlert(a model.BudgetAlert) model.BudgetAlert {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.budget.Clone()
	a.ID = s.freshID(func(id string) bool {
		for _, x := range next.Alerts {
			if x.ID == id {
				return true
			}
		}
		return false
	})
	a.IsActive = true
	next.Alerts = append(next.Alerts, a)
	s.commit(next)
	return a
}

// ToggleAlert flips the alert with id on or off.
func (s *Store) ToggleAlert(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.budget.Clone()
	found := false
	for i := range next.Alerts {
		if next.Alerts[i].ID == id {
			next.Alerts[i].IsActive = !next.Alerts[i].IsActive
			found = true
			break
		}
	}
	s.commit(next)
	return found
}

// SettingsPatch lists the budget-level fields to change.
type SettingsPatch struct {
	TotalBudget   *float64
	SavingsGoal   *float64
	MonthlyIncome *float64
	StartDate     *string
	CycleType     *model.CycleType
	CycleDuration *int
}

// UpdateSettings merges p into the budget-level settings.
func (s *Store) UpdateSettings(p SettingsPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.budget.Clone()
	if p.TotalBudget != nil {
		next.TotalBudget = *p.TotalBudget
	}
	if p.SavingsGoal != nil {
		next.SavingsGoal = *p.SavingsGoal
	}
	if p.MonthlyIncome != nil {
		v := *p.MonthlyIncome
		next.MonthlyIncome = &v
	}
	if p.StartDate != nil {
		next.StartDate = *p.StartDate
	}
	if p.CycleType != nil {
		next.CycleType = *p.CycleType
	}
	if p.CycleDuration != nil {
		v := *p.CycleDuration
		next.CycleDuration = &v
	}
	s.commit(next)
}

// ExportBudgetData hands a snapshot of the budget and its analytics to the
// configured downloader and returns where the file went.
func (s *Store) ExportBudgetData() (string, error) {
	if s.cfg.Downloader == nil {
		return "", ErrNoDownloader
	}

	now := s.cfg.Now()
	b := s.Budget()
	data, err := export.NewBundle(b, analytics.Compute(b, now), now).Encode()
	if err != nil {
		s.cfg.Logger.Warn().Err(err).Msg("export")
		return "", err
	}

	loc, err := s.cfg.Downloader.Download(export.FileName(now), data)
	if err != nil {
		s.cfg.Logger.Warn().Err(err).Msg("export")
		return "", fmt.Errorf("exporting budget: %w", err)
	}
	s.cfg.Logger.Info().Str("path", loc).Msg("budget exported")
	return loc, nil
}
