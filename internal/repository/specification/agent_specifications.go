package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByAgentID struct {
	AgentID uuid.UUID
}

func (s ByAgentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("agent_id = ?", s.AgentID)
}

type ByAgentIDs struct {
	AgentIDs []uuid.UUID
}

func (s ByAgentIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("agent_id IN ?", s.AgentIDs)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
