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

// freeTierMaxAgents applies when the user has no active subscription.
const freeTierMaxAgents = 1

type IAgentService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateAgentRequest) (*dto.AgentResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.AgentResponse, error)
	Get(ctx context.Context, userId uuid.UUID, agentId uuid.UUID) (*dto.AgentResponse, error)
	Update(ctx context.Context, userId uuid.UUID, agentId uuid.UUID, req *dto.UpdateAgentRequest) (*dto.AgentResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, agentId uuid.UUID) error
}

type agentService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewAgentService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IAgentService {
	return &agentService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *agentService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateAgentRequest) (*dto.AgentResponse, error) {
	template, ok := agenttemplate.FindByID(req.Template)
	if !ok {
		return nil, apperror.InvalidInput("unknown agent template")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	maxAgents, err := s.resolveAgentLimit(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if maxAgents >= 0 {
		count, err := uow.AgentRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
		if err != nil {
			return nil, err
		}
		if count >= int64(maxAgents) {
			return nil, apperror.Forbidden("agent limit reached for your plan")
		}
	}

	status := entity.AgentStatusDraft
	if req.Status != "" {
		status = entity.AgentStatus(req.Status)
	}

	agent := &entity.Agent{
		Id:           uuid.New(),
		UserId:       userId,
		Name:         req.Name,
		Description:  req.Description,
		Template:     template.ID,
		SystemPrompt: agenttemplate.RenderSystemPrompt(template.Name, req.Name, req.Description),
		Status:       status,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.AgentRepository().Create(ctx, agent); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewAgentCreatedEvent(userId.String(), agent.Id.String(), template.ID)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish AGENT_CREATED event: %v\n", err)
		}
	}

	return agentToResponse(agent), nil
}

func (s *agentService) List(ctx context.Context, userId uuid.UUID) ([]*dto.AgentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	agents, err := uow.AgentRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.AgentResponse, len(agents))
	for i, a := range agents {
		res[i] = agentToResponse(a)
	}
	return res, nil
}

func (s *agentService) Get(ctx context.Context, userId uuid.UUID, agentId uuid.UUID) (*dto.AgentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	agent, err := s.findOwnedAgent(ctx, uow, userId, agentId)
	if err != nil {
		return nil, err
	}
	return agentToResponse(agent), nil
}

func (s *agentService) Update(ctx context.Context, userId uuid.UUID, agentId uuid.UUID, req *dto.UpdateAgentRequest) (*dto.AgentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	agent, err := s.findOwnedAgent(ctx, uow, userId, agentId)
	if err != nil {
		return nil, err
	}

	rerender := false
	if req.Name != "" && req.Name != agent.Name {
		agent.Name = req.Name
		rerender = true
	}
	if req.Description != "" && req.Description != agent.Description {
		agent.Description = req.Description
		rerender = true
	}
	if req.Template != "" && req.Template != agent.Template {
		if _, ok := agenttemplate.FindByID(req.Template); !ok {
			return nil, apperror.InvalidInput("unknown agent template")
		}
		agent.Template = req.Template
		rerender = true
	}
	if req.Status != "" {
		agent.Status = entity.AgentStatus(req.Status)
	}

	// The prompt is derived from name, description and template, so any of
	// those changing invalidates the stored prompt.
	if rerender {
		template, _ := agenttemplate.FindByID(agent.Template)
		agent.SystemPrompt = agenttemplate.RenderSystemPrompt(template.Name, agent.Name, agent.Description)
	}
	agent.UpdatedAt = time.Now()

	if err := uow.AgentRepository().Update(ctx, agent); err != nil {
		return nil, err
	}

	return agentToResponse(agent), nil
}

func (s *agentService) Delete(ctx context.Context, userId uuid.UUID, agentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	agent, err := s.findOwnedAgent(ctx, uow, userId, agentId)
	if err != nil {
		return err
	}

	// Agent, its conversations and their messages go together or not at all.
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	conversations, err := uow.ConversationRepository().FindAll(ctx, specification.Filter("agent_id", agent.Id))
	if err != nil {
		return err
	}

	if len(conversations) > 0 {
		conversationIds := make([]uuid.UUID, len(conversations))
		for i, c := range conversations {
			conversationIds[i] = c.Id
		}
		if err := uow.MessageRepository().DeleteByConversationIds(ctx, conversationIds); err != nil {
			return err
		}
		if err := uow.ConversationRepository().DeleteByAgentId(ctx, agent.Id); err != nil {
			return err
		}
	}

	if err := uow.AgentRepository().Delete(ctx, agent.Id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *agentService) findOwnedAgent(ctx context.Context, uow unitofwork.UnitOfWork, userId, agentId uuid.UUID) (*entity.Agent, error) {
	agent, err := uow.AgentRepository().FindOne(ctx, specification.ByID{ID: agentId})
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, apperror.NotFound("agent not found")
	}
	if agent.UserId != userId {
		return nil, apperror.Forbidden("agent belongs to another user")
	}
	return agent, nil
}

func (s *agentService) resolveAgentLimit(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (int, error) {
	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.Filter("user_id", userId),
		specification.Filter("status", string(entity.SubscriptionStatusActive)),
	)
	if err != nil {
		return 0, err
	}
	if sub == nil {
		return freeTierMaxAgents, nil
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		return 0, err
	}
	if plan == nil {
		return freeTierMaxAgents, nil
	}
	return plan.MaxAgents, nil
}
