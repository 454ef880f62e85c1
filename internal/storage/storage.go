package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"meetgogo/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// participationCacheTTL bounds how stale a cached participation status can
// get. Writes invalidate the key eagerly, the TTL only covers writes that
// bypass this process.
const participationCacheTTL = 5 * time.Minute

type Storage interface {
	SaveUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	SaveEvent(ctx context.Context, event *models.Event) error
	GetEventByID(ctx context.Context, id string) (*models.Event, error)

	SetParticipation(ctx context.Context, eventID, userID, status string) error
	ParticipationStatus(ctx context.Context, eventID, userID string) (string, error)

	SaveMessage(ctx context.Context, msg *models.ChatHistory) error
	GetChatHistory(ctx context.Context, eventID string, limit int) ([]models.ChatHistory, error)

	SaveReport(ctx context.Context, report *models.MessageReport) error
	GetOpenReports(ctx context.Context) ([]models.MessageReport, error)
	ResolveReport(ctx context.Context, id uint) error
}

// Service implements Storage on PostgreSQL (via GORM) with a Redis
// read-through cache for participation lookups. Redis is optional; with a
// nil client every lookup goes to the database.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{DB: db, Redis: rdb}
}

func (s *Service) SaveUser(ctx context.Context, user *models.User) error {
	return s.DB.WithContext(ctx).Save(user).Error
}

func (s *Service) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) SaveEvent(ctx context.Context, event *models.Event) error {
	return s.DB.WithContext(ctx).Save(event).Error
}

func (s *Service) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := s.DB.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func participationKey(eventID, userID string) string {
	return "participation:" + eventID + ":" + userID
}

// SetParticipation upserts the (event, user) row. Status "none" deletes the
// row instead. The Redis cache entry is refreshed either way.
func (s *Service) SetParticipation(ctx context.Context, eventID, userID, status string) error {
	if status == models.ParticipationNone {
		if err := s.DB.WithContext(ctx).
			Where("event_id = ? AND user_id = ?", eventID, userID).
			Delete(&models.Participation{}).Error; err != nil {
			return err
		}
		if s.Redis != nil {
			s.Redis.Del(ctx, participationKey(eventID, userID))
		}
		return nil
	}

	p := models.Participation{EventID: eventID, UserID: userID, Status: status}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(&p).Error
	if err != nil {
		return err
	}
	if s.Redis != nil {
		s.Redis.Set(ctx, participationKey(eventID, userID), status, participationCacheTTL)
	}
	return nil
}

// ParticipationStatus reports the user's relationship to the event:
// "attending", "interested" or "none". Hits Redis first; a cache or Redis
// failure falls back to the database rather than failing the lookup.
func (s *Service) ParticipationStatus(ctx context.Context, eventID, userID string) (string, error) {
	key := participationKey(eventID, userID)
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, key).Result()
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			log.Printf("WARNING: participation cache read failed for %s: %v", key, err)
		}
	}

	var p models.Participation
	err := s.DB.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&p).Error

	status := p.Status
	if errors.Is(err, gorm.ErrRecordNotFound) {
		status = models.ParticipationNone
	} else if err != nil {
		return "", err
	}

	if s.Redis != nil {
		s.Redis.Set(ctx, key, status, participationCacheTTL)
	}
	return status, nil
}

// SaveMessage persists the message. GORM fills in ID and CreatedAt, which
// become the canonical message id and timestamp.
func (s *Service) SaveMessage(ctx context.Context, msg *models.ChatHistory) error {
	if err := s.DB.WithContext(ctx).Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for event %s: %v", msg.EventID, err)
		return err
	}
	return nil
}

// GetChatHistory returns the latest messages of an event's room in
// chronological order.
func (s *Service) GetChatHistory(ctx context.Context, eventID string, limit int) ([]models.ChatHistory, error) {
	var history []models.ChatHistory
	err := s.DB.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at desc").
		Limit(limit).
		Find(&history).Error
	if err != nil {
		log.Printf("ERROR: Failed to get chat history for event %s: %v", eventID, err)
		return nil, err
	}
	// The query walks backwards from the newest message; callers want
	// oldest first.
	return lo.Reverse(history), nil
}

func (s *Service) SaveReport(ctx context.Context, report *models.MessageReport) error {
	if report.Status == "" {
		report.Status = models.ReportStatusNew
	}
	if err := s.DB.WithContext(ctx).Create(report).Error; err != nil {
		log.Printf("ERROR: Failed to save report for event %s: %v", report.EventID, err)
		return err
	}
	return nil
}

func (s *Service) GetOpenReports(ctx context.Context) ([]models.MessageReport, error) {
	var reports []models.MessageReport
	err := s.DB.WithContext(ctx).
		Where("status = ?", models.ReportStatusNew).
		Order("created_at asc").
		Find(&reports).Error
	return reports, err
}

func (s *Service) ResolveReport(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).
		Model(&models.MessageReport{}).
		Where("id = ?", id).
		Update("status", models.ReportStatusResolved).Error
}
