package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/jobify-service/internal/domain"
	"github.com/spec-kit/jobify-service/internal/events"
	"github.com/spec-kit/jobify-service/internal/repository"
)

// UserService coordinates user records.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewUserService builds the service. dispatcher may be nil.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher}
}

// UserCreateInput describes a new user.
type UserCreateInput struct {
	Email  string
	Name   string
	Image  string
	Status domain.UserStatus
}

// Register stores a new user with no privileged role.
func (s *UserService) Register(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	status := input.Status
	if status == "" {
		status = domain.UserStatusActive
	}
	user := &domain.User{
		Email:  input.Email,
		Name:   input.Name,
		Image:  input.Image,
		Role:   domain.RoleNone,
		Status: status,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns the user stored under email.
func (s *UserService) Get(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// UpdateProfile upserts the profile fields for email.
func (s *UserService) UpdateProfile(ctx context.Context, email, name, image string) (*domain.User, error) {
	return s.users.UpsertProfile(ctx, email, name, image)
}

// List returns all users, newest first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// UpdateStatus changes a user's status on behalf of actor.
func (s *UserService) UpdateStatus(ctx context.Context, actor, id string, status domain.UserStatus) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	if err := s.users.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	publish(ctx, s.dispatcher, events.EventUserStatusChanged, actor, id, events.StatusChangedPayload{Status: string(status)})
	return nil
}

// UpdateRole changes a user's role on behalf of actor.
func (s *UserService) UpdateRole(ctx context.Context, actor, id string, role domain.Role) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return err
	}
	publish(ctx, s.dispatcher, events.EventUserRoleChanged, actor, id, events.RoleChangedPayload{Role: string(role)})
	return nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func publish(ctx context.Context, dispatcher events.Dispatcher, eventType events.EventType, actor, target string, payload interface{}) {
	if dispatcher == nil {
		return
	}
	_ = dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		TargetID:  target,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}
