package service

import (
	"context"
	"fmt"
	"time"

	"agentcraft-be/internal/dto"
	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/pkg/apperror"
	"agentcraft-be/internal/repository/specification"
	"agentcraft-be/internal/repository/unitofwork"

	"agentcraft-be/pkg/agenttemplate"
	"agentcraft-be/pkg/events"
	pktNats "agentcraft-be/pkg/nats"

	"github.com/google/uuid"
)

type IOnboardingService interface {
	GetProgress(ctx context.Context, userId uuid.UUID) (*dto.OnboardingProgressResponse, error)
	UpdateProgress(ctx context.Context, userId uuid.UUID, req *dto.UpdateOnboardingRequest) (*dto.OnboardingProgressResponse, error)
	Complete(ctx context.Context, userId uuid.UUID, req *dto.CompleteOnboardingRequest) (*dto.CompleteOnboardingResponse, error)
}

type onboardingService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewOnboardingService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IOnboardingService {
	return &onboardingService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *onboardingService) GetProgress(ctx context.Context, userId uuid.UUID) (*dto.OnboardingProgressResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	progress, err := uow.OnboardingRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if progress == nil {
		// A fresh account starts at step 0 with nothing persisted.
		return &dto.OnboardingProgressResponse{
			CurrentStep: 0,
			Completed:   false,
		}, nil
	}

	return progressToResponse(progress), nil
}

func (s *onboardingService) UpdateProgress(ctx context.Context, userId uuid.UUID, req *dto.UpdateOnboardingRequest) (*dto.OnboardingProgressResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	progress := &entity.OnboardingProgress{
		Id:          uuid.New(),
		UserId:      userId,
		CurrentStep: req.CurrentStep,
		WizardData:  req.WizardData,
		Completed:   false,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := uow.OnboardingRepository().Upsert(ctx, progress); err != nil {
		return nil, err
	}

	// Business fields collected by the wizard flow straight onto the profile.
	if req.BusinessName != "" || req.Industry != "" || req.Goal != "" {
		if err := s.syncProfileFields(ctx, uow, userId, req.BusinessName, req.Industry, req.Goal); err != nil {
			return nil, err
		}
	}

	saved, err := uow.OnboardingRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if saved == nil {
		saved = progress
	}

	return progressToResponse(saved), nil
}

func (s *onboardingService) Complete(ctx context.Context, userId uuid.UUID, req *dto.CompleteOnboardingRequest) (*dto.CompleteOnboardingResponse, error) {
	template, ok := agenttemplate.FindByID(req.TemplateId)
	if !ok {
		return nil, apperror.InvalidInput("unknown agent template")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	agent := &entity.Agent{
		Id:           uuid.New(),
		UserId:       userId,
		Name:         template.Name,
		Description:  template.Description,
		Template:     template.ID,
		SystemPrompt: agenttemplate.RenderSystemPrompt(template.Name, template.Name, template.Description),
		Status:       entity.AgentStatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.AgentRepository().Create(ctx, agent); err != nil {
		return nil, err
	}

	progress := &entity.OnboardingProgress{
		Id:          uuid.New(),
		UserId:      userId,
		CurrentStep: onboardingFinalStep,
		Completed:   true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := uow.OnboardingRepository().Upsert(ctx, progress); err != nil {
		return nil, err
	}

	if req.BusinessName != "" || req.Industry != "" || req.Goal != "" {
		if err := s.syncProfileFields(ctx, uow, userId, req.BusinessName, req.Industry, req.Goal); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewAgentCreatedEvent(userId.String(), agent.Id.String(), template.ID)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish AGENT_CREATED event: %v\n", err)
		}
	}

	return &dto.CompleteOnboardingResponse{
		Agent:    agentToResponse(agent),
		Progress: progressToResponse(progress),
	}, nil
}

// onboardingFinalStep matches the last screen of the setup wizard.
const onboardingFinalStep = 4

func (s *onboardingService) syncProfileFields(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, businessName, industry, goal string) error {
	repo := uow.UserRepository()
	user, err := repo.FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("user not found")
	}

	if businessName != "" {
		user.BusinessName = &businessName
	}
	if industry != "" {
		user.Industry = &industry
	}
	if goal != "" {
		user.Goal = &goal
	}
	user.UpdatedAt = time.Now()

	return repo.Update(ctx, user)
}

func progressToResponse(p *entity.OnboardingProgress) *dto.OnboardingProgressResponse {
	return &dto.OnboardingProgressResponse{
		Id:          p.Id,
		CurrentStep: p.CurrentStep,
		WizardData:  p.WizardData,
		Completed:   p.Completed,
		UpdatedAt:   p.UpdatedAt,
	}
}

func agentToResponse(a *entity.Agent) *dto.AgentResponse {
	return &dto.AgentResponse{
		Id:           a.Id,
		Name:         a.Name,
		Description:  a.Description,
		Template:     a.Template,
		SystemPrompt: a.SystemPrompt,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
