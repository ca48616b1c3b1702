package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/rpggio/smartcredit/internal/domain/activity"
)

// DefaultSlotKey is the storage slot holding the ledger.
const DefaultSlotKey = "smartCreditData"

// Service owns the persisted ledger. Every mutation reads the whole
// collection, changes it and writes it back.
type Service struct {
	storage    Storage
	ids        IDGenerator
	activities ActivityRepository
	logger     *slog.Logger
	key        string
	now        Clock

	mu sync.Mutex
}

// Option customizes a Service.
type Option func(*Service)

// WithSlotKey stores the ledger under a different slot.
func WithSlotKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock overrides the time source used for default dates.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewService creates a new ledger service. activities and logger may be nil.
func NewService(
	storage Storage,
	ids IDGenerator,
	activities ActivityRepository,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		storage:    storage,
		ids:        ids,
		activities: activities,
		logger:     logger,
		key:        DefaultSlotKey,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SlotKey returns the storage slot in use.
func (s *Service) SlotKey() string {
	return s.key
}

// Load returns the persisted ledger. Missing or malformed content yields an
// empty ledger; it never fails.
func (s *Service) Load(ctx context.Context) []Customer {
	records, err := s.load(ctx)
	if err != nil {
		s.logger.Warn("ledger unavailable, using empty ledger", "key", s.key, "error", err)
		return []Customer{}
	}
	return records
}

// Save replaces the persisted ledger.
func (s *Service) Save(ctx context.Context, records []Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, records)
}

// Add validates and appends a new unpaid record.
func (s *Service) Add(ctx context.Context, fields Fields) (*Customer, error) {
	fields = normalizeFields(fields)
	if err := ValidateFields(fields); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	date := fields.Date
	if date == "" {
		date = s.now().Format(DateLayout)
	}
	c := Customer{
		ID:     s.nextID(records),
		Name:   fields.Name,
		Phone:  fields.Phone,
		Amount: Amount(fields.Amount),
		Note:   fields.Note,
		Date:   date,
		Due:    optional(fields.Due),
		Paid:   false,
	}

	records = append(records, c)
	if err := s.save(ctx, records); err != nil {
		return nil, err
	}

	s.logActivity(ctx, activity.TypeRecordAdded, &c.ID, fmt.Sprintf("added %s for %s", c.Name, c.Amount))
	return &c, nil
}

// Update overwrites the editable fields of the record with the given ID.
// An unknown ID is a no-op. An empty date keeps the current one.
func (s *Service) Update(ctx context.Context, id int64, fields Fields) error {
	fields = normalizeFields(fields)
	if err := ValidateFields(fields); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(records, id)
	if i < 0 {
		s.logger.Debug("update skipped, record not found", "id", id)
		return nil
	}

	c := &records[i]
	c.Name = fields.Name
	c.Phone = fields.Phone
	c.Amount = Amount(fields.Amount)
	c.Note = fields.Note
	if fields.Date != "" {
		c.Date = fields.Date
	}
	c.Due = optional(fields.Due)

	if err := s.save(ctx, records); err != nil {
		return err
	}

	s.logActivity(ctx, activity.TypeRecordUpdated, &id, fmt.Sprintf("updated %s", c.Name))
	return nil
}

// MarkPaid flips the record to paid. Unknown or already-paid records are left alone.
func (s *Service) MarkPaid(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(records, id)
	if i < 0 || records[i].Paid {
		return nil
	}

	records[i].Paid = true
	if err := s.save(ctx, records); err != nil {
		return err
	}

	s.logActivity(ctx, activity.TypeMarkedPaid, &id, fmt.Sprintf("marked %s paid", records[i].Name))
	return nil
}

// Delete removes the record with the given ID, if present.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(records, id)
	if i < 0 {
		return nil
	}

	name := records[i].Name
	records = append(records[:i], records[i+1:]...)
	if err := s.save(ctx, records); err != nil {
		return err
	}

	s.logActivity(ctx, activity.TypeRecordDeleted, &id, fmt.Sprintf("deleted %s", name))
	return nil
}

// Prune removes every paid record and returns how many were removed.
func (s *Service) Prune(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	kept := Filter(records, "", StatusUnpaid)
	removed := len(records) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.save(ctx, kept); err != nil {
		return 0, err
	}

	s.logActivity(ctx, activity.TypePaidPruned, nil, fmt.Sprintf("removed %d paid records", removed))
	return removed, nil
}

// ReplaceAll swaps the whole ledger for the records in raw, which must be a
// JSON array of record objects. Existing data is untouched on rejection.
func (s *Service) ReplaceAll(ctx context.Context, raw []byte) (int, error) {
	records, err := decodeBackup(raw)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, records); err != nil {
		return 0, err
	}

	s.logActivity(ctx, activity.TypeBackupRestored, nil, fmt.Sprintf("restored %d records", len(records)))
	return len(records), nil
}

// Get returns the record with the given ID.
func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	records := s.Load(ctx)
	i := indexOf(records, id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}
	c := records[i]
	return &c, nil
}

// List returns the ledger narrowed by opts.
func (s *Service) List(ctx context.Context, opts FilterOptions) []Customer {
	status := opts.Status
	if status == "" {
		status = StatusAll
	}
	return Filter(s.Load(ctx), opts.Search, status)
}

// Summary aggregates the whole ledger.
func (s *Service) Summary(ctx context.Context) Summary {
	return Summarize(s.Load(ctx))
}

func (s *Service) load(ctx context.Context) ([]Customer, error) {
	raw, ok, err := s.storage.Read(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	if !ok {
		return []Customer{}, nil
	}

	records, dropped, err := decodeLedger([]byte(raw))
	if err != nil {
		s.logger.Warn("stored ledger is malformed, treating as empty", "key", s.key, "error", err)
		return []Customer{}, nil
	}
	if dropped > 0 {
		s.logger.Warn("dropped malformed ledger entries", "key", s.key, "count", dropped)
	}
	return records, nil
}

func (s *Service) save(ctx context.Context, records []Customer) error {
	data, err := encodeLedger(records)
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	if err := s.storage.Write(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	return nil
}

// nextID keeps IDs unique even when restored records carry larger values.
// IDs climb above the current maximum; once that maximum is math.MaxInt64
// the first free ID from the generator's value upward is used instead.
func (s *Service) nextID(records []Customer) int64 {
	id := s.ids.NextID()
	maxID := int64(math.MinInt64)
	for _, c := range records {
		maxID = max(maxID, c.ID)
	}
	if maxID < math.MaxInt64 {
		if id <= maxID {
			id = maxID + 1
		}
		return id
	}

	used := make(map[int64]struct{}, len(records))
	for _, c := range records {
		used[c.ID] = struct{}{}
	}
	if id < 1 {
		id = 1
	}
	for {
		if _, taken := used[id]; !taken {
			return id
		}
		if id == math.MaxInt64 {
			id = 1
			continue
		}
		id++
	}
}

func (s *Service) logActivity(ctx context.Context, typ activity.ActivityType, recordID *int64, summary string) {
	if s.activities == nil {
		return
	}
	err := s.activities.Log(ctx, &activity.ActivityEntry{
		RecordID:     recordID,
		ActivityType: typ,
		Summary:      summary,
		CreatedAt:    s.now(),
	})
	if err != nil {
		s.logger.Warn("failed to log activity", "type", typ, "error", err)
	}
}

func indexOf(records []Customer, id int64) int {
	for i, c := range records {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
