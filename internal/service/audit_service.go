package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/student-records/internal/events"
)

// AuditService logs domain events structurally.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventStudentRegistered, a.handle)
	a.dispatcher.Subscribe(events.EventStudentLoggedIn, a.handle)
	a.dispatcher.Subscribe(events.EventSessionRevoked, a.handle)
	a.dispatcher.Subscribe(events.EventStudentUpdated, a.handle)
	a.dispatcher.Subscribe(events.EventMarksUpdated, a.handle)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("student_id", event.StudentID),
		zap.String("actor_role", string(event.Actor.Role)),
		zap.Any("payload", event.Payload),
	)
	return nil
}
