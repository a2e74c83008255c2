package service

import (
	"context"
	"fmt"
	"time"

	"agentcraft-be/internal/dto"
	"agentcraft-be/internal/pkg/apperror"
	"agentcraft-be/internal/repository/specification"
	"agentcraft-be/internal/repository/unitofwork"

	"agentcraft-be/pkg/events"
	pktNats "agentcraft-be/pkg/nats"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error
	GetNotificationPreferences(ctx context.Context, userId uuid.UUID) (*dto.NotificationPreferencesResponse, error)
	UpdateNotificationPreferences(ctx context.Context, userId uuid.UUID, req *dto.UpdateNotificationPreferencesRequest) error
	DeleteAccount(ctx context.Context, userId uuid.UUID) error
}

type userService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IUserService {
	return &userService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	return userToProfile(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	repo := uow.UserRepository()
	user, err := repo.FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.BusinessName != "" {
		user.BusinessName = &req.BusinessName
	}
	if req.Industry != "" {
		user.Industry = &req.Industry
	}
	if req.Goal != "" {
		user.Goal = &req.Goal
	}
	user.UpdatedAt = time.Now()

	if err := repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return userToProfile(user), nil
}

func (s *userService) ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("user not found")
	}

	if user.PasswordHash == nil {
		return apperror.InvalidInput("account has no local password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperror.InvalidInput("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return uow.UserRepository().UpdatePassword(ctx, userId, string(hash))
}

func (s *userService) GetNotificationPreferences(ctx context.Context, userId uuid.UUID) (*dto.NotificationPreferencesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	return &dto.NotificationPreferencesResponse{
		EmailNotifications: user.EmailNotifications,
		WeeklyReports:      user.WeeklyReports,
	}, nil
}

func (s *userService) UpdateNotificationPreferences(ctx context.Context, userId uuid.UUID, req *dto.UpdateNotificationPreferencesRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	repo := uow.UserRepository()
	user, err := repo.FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("user not found")
	}

	if req.EmailNotifications != nil {
		user.EmailNotifications = *req.EmailNotifications
	}
	if req.WeeklyReports != nil {
		user.WeeklyReports = *req.WeeklyReports
	}
	user.UpdatedAt = time.Now()

	return repo.Update(ctx, user)
}

func (s *userService) DeleteAccount(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "USER_DELETED",
			Data: map[string]interface{}{
				"user_id":     userId,
				"occurred_at": time.Now(),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish USER_DELETED event: %v\n", err)
		}
	}

	return uow.UserRepository().Delete(ctx, userId)
}
