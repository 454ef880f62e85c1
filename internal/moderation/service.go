// Package moderation handles user reports of chat messages and hands them
// off to moderators.
package moderation

import (
	"context"

	"meetgogo/backend/internal/models"
	"meetgogo/backend/internal/storage"
)

// Notifier pushes a newly filed report to moderators. Notification is
// best-effort; a failed notification never fails the report.
type Notifier interface {
	NotifyReport(report *models.MessageReport)
}

// Service persists reports and fans them out to the configured notifier.
type Service struct {
	Storage  storage.Storage
	Notifier Notifier
}

// NewService creates a new moderation service. notifier may be nil.
func NewService(s storage.Storage, notifier Notifier) *Service {
	return &Service{Storage: s, Notifier: notifier}
}

// HandleReport stores a new report and alerts moderators.
func (s *Service) HandleReport(ctx context.Context, report *models.MessageReport) error {
	report.Status = models.ReportStatusNew
	if err := s.Storage.SaveReport(ctx, report); err != nil {
		return err
	}
	if s.Notifier != nil {
		s.Notifier.NotifyReport(report)
	}
	return nil
}

// OpenReports lists reports that no moderator has resolved yet.
func (s *Service) OpenReports(ctx context.Context) ([]models.MessageReport, error) {
	return s.Storage.GetOpenReports(ctx)
}

// Resolve marks a report as handled.
func (s *Service) Resolve(ctx context.Context, id uint) error {
	return s.Storage.ResolveReport(ctx, id)
}
