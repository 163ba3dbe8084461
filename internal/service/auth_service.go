package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/student-records/internal/auth"
	"github.com/spec-kit/student-records/internal/config"
	"github.com/spec-kit/student-records/internal/domain"
	"github.com/spec-kit/student-records/internal/events"
	"github.com/spec-kit/student-records/internal/repository"
	apperrors "github.com/spec-kit/student-records/pkg/util"
)

// LoginResult carries the issued credential back to the handler. ExpiresAt
// is zero for admin tokens.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Role      domain.Role
	StudentID string
}

// AuthService coordinates registration, login and logout flows.
type AuthService struct {
	students      repository.StudentRepository
	subjects      repository.SubjectRepository
	marks         repository.MarkRepository
	registry      repository.RevocationRegistry
	dispatcher    events.Dispatcher
	tokenMgr      *auth.TokenManager
	bcryptCost    int
	studentTTL    time.Duration
	adminEmail    string
	adminPassword string
}

// AuthDependencies encapsulates collaborator requirements for the service.
type AuthDependencies struct {
	StudentRepo repository.StudentRepository
	SubjectRepo repository.SubjectRepository
	MarkRepo    repository.MarkRepository
	Registry    repository.RevocationRegistry
	Dispatcher  events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		students:      deps.StudentRepo,
		subjects:      deps.SubjectRepo,
		marks:         deps.MarkRepo,
		registry:      deps.Registry,
		dispatcher:    deps.Dispatcher,
		tokenMgr:      auth.NewTokenManager(cfg.Auth.JWTSecret),
		bcryptCost:    cfg.Auth.BcryptCost,
		studentTTL:    cfg.Auth.StudentTokenTTL(),
		adminEmail:    cfg.Auth.AdminEmail,
		adminPassword: cfg.Auth.AdminPassword,
	}
}

// Register creates a student account, assigns every subject for the chosen
// field and seeds a zero mark per subject.
func (s *AuthService) Register(ctx context.Context, username, email, password, field string) (*domain.Student, error) {
	if _, err := s.students.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	student := &domain.Student{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		RollNumber:   newRollNumber(),
		Field:        field,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	subjects, err := s.subjects.ListByField(ctx, field)
	if err != nil {
		return nil, err
	}
	subjectIDs := make([]string, 0, len(subjects))
	for _, subject := range subjects {
		subjectIDs = append(subjectIDs, subject.ID)
	}
	if err := s.students.AssignSubjects(ctx, student.ID, subjectIDs); err != nil {
		return nil, err
	}
	for _, subjectID := range subjectIDs {
		mark := &domain.Mark{StudentID: student.ID, SubjectID: subjectID, Marks: 0}
		if err := s.marks.Create(ctx, mark); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventStudentRegistered,
		StudentID: student.ID,
		Actor:     events.Actor{Role: domain.RoleStudent, StudentID: student.ID},
		Timestamp: time.Now(),
		Payload: events.StudentRegisteredPayload{
			Username:   student.Username,
			Field:      student.Field,
			RollNumber: student.RollNumber,
			Subjects:   len(subjectIDs),
		},
	})

	return student, nil
}

// Login authenticates the caller and issues a token. The admin credential
// pair yields an anonymous admin token with no expiry; students get a
// short-lived token bound to their identity.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if s.isAdmin(email, password) {
		token, _, err := s.tokenMgr.Issue("", "", domain.RoleAdmin, 0)
		if err != nil {
			return nil, err
		}
		return &LoginResult{Token: token, Role: domain.RoleAdmin}, nil
	}

	student, err := s.students.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("student", nil)
		}
		return nil, err
	}
	if err := auth.ComparePassword(student.PasswordHash, password); err != nil {
		return nil, apperrors.NewDomainError(apperrors.CodeBadLogin, "incorrect password", http.StatusUnauthorized, nil)
	}

	token, exp, err := s.tokenMgr.Issue(student.ID, student.Username, domain.RoleStudent, s.studentTTL)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventStudentLoggedIn,
		StudentID: student.ID,
		Actor:     events.Actor{Role: domain.RoleStudent, StudentID: student.ID},
		Timestamp: time.Now(),
	})

	return &LoginResult{
		Token:     token,
		ExpiresAt: exp,
		Role:      domain.RoleStudent,
		StudentID: student.ID,
	}, nil
}

// Logout revokes the presented token. The registry write must be
// acknowledged before the handler responds; a registry failure surfaces as a
// storage error, not an authentication failure.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.registry.Revoke(ctx, token); err != nil {
		return apperrors.NewStorageError(err)
	}

	digest := sha256.Sum256([]byte(token))
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSessionRevoked,
		Timestamp: time.Now(),
		Payload: events.SessionRevokedPayload{
			TokenDigest: hex.EncodeToString(digest[:8]),
		},
	})
	return nil
}

// TokenManager exposes the underlying token manager for the gate.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) isAdmin(email, password string) bool {
	emailMatch := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
	return emailMatch && passMatch
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// newRollNumber derives a roll number from the last six digits of the
// current epoch millis.
func newRollNumber() string {
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	return millis[len(millis)-6:]
}
