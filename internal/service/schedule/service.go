package schedule

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/tacovision/backend/internal/domain/models"
	"github.com/tacovision/backend/internal/repository/mongodb"
	"github.com/tacovision/backend/pkg/clients/anthropic"
)

// ErrNoSchedule indicates no schedule has been uploaded for the current week.
var ErrNoSchedule = errors.New("no schedule uploaded for this week")

// ErrExtractionUnavailable indicates the AI extraction client is not configured.
var ErrExtractionUnavailable = errors.New("schedule extraction is not configured")

// ErrUnrecognizedDocument wraps an empty extraction result; the user should
// retry with a clearer scan.
var ErrUnrecognizedDocument = errors.New("document unrecognized, retry with a clearer scan")

// Service owns the weekly schedule: PDF upload through AI extraction, wholesale
// overwrite under the week key, and the derived per-user and per-day views.
type Service struct {
	repo       mongodb.Repository
	ai         anthropic.Client
	aggregator Aggregator
	anchor     time.Weekday
	logger     *zap.Logger
	now        func() time.Time
}

// NewService wires a new schedule service. ai may be nil when no extraction
// client is configured; uploads then fail fast.
func NewService(repo mongodb.Repository, ai anthropic.Client, anchor time.Weekday, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:       repo,
		ai:         ai,
		aggregator: NewAggregator(anchor),
		anchor:     anchor,
		logger:     logger,
		now:        time.Now,
	}
}

// Upload extracts shift entries from a schedule PDF and stores them under the
// current week's key, replacing any previous upload for the same week.
func (s *Service) Upload(ctx context.Context, actor models.User, pdfDataURI string) (models.Schedule, error) {
	if s.ai == nil {
		return models.Schedule{}, ErrExtractionUnavailable
	}

	extracted, err := s.ai.ExtractSchedule(ctx, pdfDataURI)
	if errors.Is(err, anthropic.ErrEmptyExtraction) {
		return models.Schedule{}, ErrUnrecognizedDocument
	}
	if err != nil {
		return models.Schedule{}, err
	}

	entries := make([]models.ShiftEntry, 0, len(extracted))
	for _, row := range extracted {
		entries = append(entries, models.ShiftEntry{
			Name:        row.Name,
			UserID:      row.UserID,
			DayOfWeek:   row.DayOfWeek,
			TimeRange:   row.TimeRange,
			HoursWorked: row.HoursWorked,
		})
	}

	uploadedAt := s.now()
	schedule := models.Schedule{
		ID:         WeekKey(StartOfWeek(uploadedAt, s.anchor)),
		Entries:    Normalize(entries),
		UploadedAt: uploadedAt,
	}

	if err := s.repo.UpsertSchedule(ctx, schedule); err != nil {
		return models.Schedule{}, err
	}

	s.audit(ctx, actor.Name, schedule.ID)
	s.logger.Info("schedule uploaded",
		zap.String("week", schedule.ID),
		zap.Int("entries", len(schedule.Entries)),
		zap.String("by", actor.Name))

	return schedule, nil
}

// Current returns the schedule for the week containing now.
func (s *Service) Current(ctx context.Context) (models.Schedule, error) {
	key := WeekKey(StartOfWeek(s.now(), s.anchor))
	schedule, err := s.repo.GetSchedule(ctx, key)
	if errors.Is(err, mongodb.ErrNotFound) {
		return models.Schedule{}, ErrNoSchedule
	}
	if err != nil {
		return models.Schedule{}, err
	}
	return schedule, nil
}

// ShiftsFor returns the current week's shifts for one user in day order.
func (s *Service) ShiftsFor(ctx context.Context, userID string) ([]models.ShiftEntry, error) {
	schedule, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.aggregator.ShiftsForUser(schedule.Entries, userID), nil
}

// ByDay returns the current week's schedule grouped per canonical day.
func (s *Service) ByDay(ctx context.Context) ([]models.DaySchedule, error) {
	schedule, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.aggregator.ShiftsByDay(schedule.Entries), nil
}

// TodayShift returns the user's shift for today, if any.
func (s *Service) TodayShift(ctx context.Context, userID string) (models.ShiftEntry, bool, error) {
	schedule, err := s.Current(ctx)
	if err != nil {
		return models.ShiftEntry{}, false, err
	}

	today := DayName(s.now().Weekday())
	for _, entry := range schedule.Entries {
		if entry.UserID == userID && entry.DayOfWeek == today {
			return entry, true, nil
		}
	}
	return models.ShiftEntry{}, false, nil
}

func (s *Service) audit(ctx context.Context, user, weekKey string) {
	entry := models.AuditLogEntry{
		ID:        primitive.NewObjectID().Hex(),
		User:      user,
		Action:    models.ActionUploadedSchedule,
		Item:      weekKey,
		Timestamp: s.now(),
	}
	if err := s.repo.AppendAuditLog(ctx, entry); err != nil {
		s.logger.Error("failed to append audit log", zap.Error(err))
	}
}
