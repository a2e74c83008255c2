package mapper

import (
	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/model"
)

type AgentMapper struct{}

func NewAgentMapper() *AgentMapper {
	return &AgentMapper{}
}

func (m *AgentMapper) ToEntity(a *model.Agent) *entity.Agent {
	if a == nil {
		return nil
	}
	return &entity.Agent{
		Id:           a.Id,
		UserId:       a.UserId,
		Name:         a.Name,
		Description:  a.Description,
		Template:     a.Template,
		SystemPrompt: a.SystemPrompt,
		Status:       entity.AgentStatus(a.Status),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (m *AgentMapper) ToModel(a *entity.Agent) *model.Agent {
	if a == nil {
		return nil
	}
	return &model.Agent{
		Id:           a.Id,
		UserId:       a.UserId,
		Name:         a.Name,
		Description:  a.Description,
		Template:     a.Template,
		SystemPrompt: a.SystemPrompt,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (m *AgentMapper) ToEntities(agents []*model.Agent) []*entity.Agent {
	entities := make([]*entity.Agent, len(agents))
	for i, a := range agents {
		entities[i] = m.ToEntity(a)
	}
	return entities
}

func (m *AgentMapper) ToModels(agents []*entity.Agent) []*model.Agent {
	models := make([]*model.Agent, len(agents))
	for i, a := range agents {
		models[i] = m.ToModel(a)
	}
	return models
}
