package mapper

import (
	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.SubscriptionPlan) *entity.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &entity.SubscriptionPlan{
		Id:                  p.Id,
		Name:                p.Name,
		Slug:                p.Slug,
		Description:         p.Description,
		Tagline:             p.Tagline,
		Price:               p.Price,
		BillingPeriod:       entity.BillingPeriod(p.BillingPeriod),
		MaxAgents:           p.MaxAgents,
		MaxMessagesPerMonth: p.MaxMessagesPerMonth,
		AnalyticsEnabled:    p.AnalyticsEnabled,
		PrioritySupport:     p.PrioritySupport,
		IsMostPopular:       p.IsMostPopular,
		IsActive:            p.IsActive,
		SortOrder:           p.SortOrder,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.SubscriptionPlan) *model.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &model.SubscriptionPlan{
		Id:                  p.Id,
		Name:                p.Name,
		Slug:                p.Slug,
		Description:         p.Description,
		Tagline:             p.Tagline,
		Price:               p.Price,
		BillingPeriod:       string(p.BillingPeriod),
		MaxAgents:           p.MaxAgents,
		MaxMessagesPerMonth: p.MaxMessagesPerMonth,
		AnalyticsEnabled:    p.AnalyticsEnabled,
		PrioritySupport:     p.PrioritySupport,
		IsMostPopular:       p.IsMostPopular,
		IsActive:            p.IsActive,
		SortOrder:           p.SortOrder,
	}
}

func (m *SubscriptionMapper) PlansToEntities(plans []*model.SubscriptionPlan) []*entity.SubscriptionPlan {
	entities := make([]*entity.SubscriptionPlan, len(plans))
	for i, p := range plans {
		entities[i] = m.PlanToEntity(p)
	}
	return entities
}

func (m *SubscriptionMapper) SubscriptionToEntity(s *model.UserSubscription) *entity.UserSubscription {
	if s == nil {
		return nil
	}
	return &entity.UserSubscription{
		Id:                    s.Id,
		UserId:                s.UserId,
		PlanId:                s.PlanId,
		Status:                entity.SubscriptionStatus(s.Status),
		CurrentPeriodStart:    s.CurrentPeriodStart,
		CurrentPeriodEnd:      s.CurrentPeriodEnd,
		PaymentStatus:         entity.PaymentStatus(s.PaymentStatus),
		MidtransTransactionId: s.MidtransTransactionId,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionToModel(s *entity.UserSubscription) *model.UserSubscription {
	if s == nil {
		return nil
	}
	return &model.UserSubscription{
		Id:                    s.Id,
		UserId:                s.UserId,
		PlanId:                s.PlanId,
		Status:                string(s.Status),
		CurrentPeriodStart:    s.CurrentPeriodStart,
		CurrentPeriodEnd:      s.CurrentPeriodEnd,
		PaymentStatus:         string(s.PaymentStatus),
		MidtransTransactionId: s.MidtransTransactionId,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionsToEntities(subs []*model.UserSubscription) []*entity.UserSubscription {
	entities := make([]*entity.UserSubscription, len(subs))
	for i, s := range subs {
		entities[i] = m.SubscriptionToEntity(s)
	}
	return entities
}
