package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/smartcredit/internal/domain/activity"
	"github.com/rpggio/smartcredit/internal/domain/ledger"
)

// Service builds and dispatches payment reminders.
type Service struct {
	clipboard   Clipboard
	opener      Opener
	activities  ActivityRepository
	logger      *slog.Logger
	countryCode string
}

// Option customizes a Service.
type Option func(*Service)

// WithCountryCode replaces the default "91" prefix.
func WithCountryCode(code string) Option {
	return func(s *Service) {
		if code = strings.TrimPrefix(strings.TrimSpace(code), "+"); code != "" {
			s.countryCode = code
		}
	}
}

// NewService creates a reminder service. Any dependency may be nil; a nil
// clipboard or opener simply skips that step.
func NewService(clipboard Clipboard, opener Opener, activities ActivityRepository, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		clipboard:   clipboard,
		opener:      opener,
		activities:  activities,
		logger:      logger,
		countryCode: DefaultCountryCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build renders the reminder for c without side effects.
func (s *Service) Build(c ledger.Customer) (*Reminder, error) {
	phone := strings.TrimSpace(c.Phone)
	if phone == "" {
		return nil, ErrMissingPhone
	}
	msg := Message(c.Name, c.Amount.String())
	return &Reminder{
		RecordID: c.ID,
		Name:     c.Name,
		Phone:    phone,
		Message:  msg,
		Link:     Link(s.countryCode, phone, msg),
	}, nil
}

// Send builds the reminder, copies its text to the clipboard and opens the
// link. Clipboard failures are logged and otherwise ignored.
func (s *Service) Send(ctx context.Context, c ledger.Customer) (*Reminder, error) {
	r, err := s.Build(c)
	if err != nil {
		return nil, err
	}

	if s.clipboard != nil {
		if err := s.clipboard.WriteText(r.Message); err != nil {
			s.logger.Warn("clipboard copy failed", "id", c.ID, "error", err)
		} else {
			r.Copied = true
		}
	}

	if s.opener != nil {
		if err := s.opener.Open(ctx, r.Link); err != nil {
			return r, fmt.Errorf("opening reminder link: %w", err)
		}
		r.Opened = true
	}

	s.logActivity(ctx, r)
	return r, nil
}

func (s *Service) logActivity(ctx context.Context, r *Reminder) {
	if s.activities == nil {
		return
	}
	id := r.RecordID
	err := s.activities.Log(ctx, &activity.ActivityEntry{
		RecordID:     &id,
		ActivityType: activity.TypeReminderSent,
		Summary:      fmt.Sprintf("reminded %s", r.Name),
		CreatedAt:    time.Now(),
	})
	if err != nil {
		s.logger.Warn("failed to log activity", "type", activity.TypeReminderSent, "error", err)
	}
}
