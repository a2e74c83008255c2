package service

import (
	"context"
	"sort"
	"time"

	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/repository/contract"
	"agentcraft-be/internal/repository/specification"
	"agentcraft-be/internal/repository/unitofwork"

	"agentcraft-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory doubles for the repository contracts. They interpret the
// specification types the services actually pass; anything else is ignored.

type fakeUow struct {
	users         *fakeUserRepo
	agents        *fakeAgentRepo
	conversations *fakeConversationRepo
	messages      *fakeMessageRepo
	onboarding    *fakeOnboardingRepo
	subscriptions *fakeSubscriptionRepo

	commits   int
	rollbacks int
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		users:         &fakeUserRepo{},
		agents:        &fakeAgentRepo{},
		conversations: &fakeConversationRepo{},
		messages:      &fakeMessageRepo{},
		onboarding:    &fakeOnboardingRepo{},
		subscriptions: &fakeSubscriptionRepo{},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { u.commits++; return nil }
func (u *fakeUow) Rollback() error                 { u.rollbacks++; return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                 { return u.users }
func (u *fakeUow) AgentRepository() contract.AgentRepository               { return u.agents }
func (u *fakeUow) ConversationRepository() contract.ConversationRepository { return u.conversations }
func (u *fakeUow) MessageRepository() contract.MessageRepository           { return u.messages }
func (u *fakeUow) OnboardingRepository() contract.OnboardingRepository     { return u.onboarding }
func (u *fakeUow) SubscriptionRepository() contract.SubscriptionRepository { return u.subscriptions }

// fakeFactory hands out the same unit of work every time so tests can
// inspect state across service calls.
type fakeFactory struct {
	uow *fakeUow
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{uow: newFakeUow()}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// --- users ---

type fakeUserRepo struct {
	users       []*entity.User
	resetTokens []*entity.PasswordResetToken
	refresh     []*entity.UserRefreshToken
	providers   []*entity.UserProvider
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	for i, u := range r.users {
		if u.Id == user.Id {
			r.users[i] = user
		}
	}
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.users[:0]
	for _, u := range r.users {
		if u.Id != id {
			kept = append(kept, u)
		}
	}
	r.users = kept
	return nil
}

func matchUser(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != s.Email {
				return false
			}
		case specification.FilterBy:
			if s.Field == "role" && string(u.Role) != s.Value.(string) {
				return false
			}
		}
	}
	return true
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.users {
		if matchUser(u, specs) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if matchUser(u, specs) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error {
	for _, u := range r.users {
		if u.Id == userId {
			u.PasswordHash = &hash
		}
	}
	return nil
}

func (r *fakeUserRepo) CreatePasswordResetToken(ctx context.Context, token *entity.PasswordResetToken) error {
	r.resetTokens = append(r.resetTokens, token)
	return nil
}

func (r *fakeUserRepo) FindPasswordResetToken(ctx context.Context, specs ...specification.Specification) (*entity.PasswordResetToken, error) {
	for _, t := range r.resetTokens {
		ok := true
		for _, spec := range specs {
			if s, is := spec.(specification.BySelector); is && t.Selector != s.Selector {
				ok = false
			}
		}
		if ok {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) MarkTokenUsed(ctx context.Context, id uuid.UUID) error {
	for _, t := range r.resetTokens {
		if t.Id == id {
			t.Used = true
		}
	}
	return nil
}

func (r *fakeUserRepo) CreateRefreshToken(ctx context.Context, token *entity.UserRefreshToken) error {
	r.refresh = append(r.refresh, token)
	return nil
}

func (r *fakeUserRepo) FindRefreshToken(ctx context.Context, specs ...specification.Specification) (*entity.UserRefreshToken, error) {
	for _, t := range r.refresh {
		ok := true
		for _, spec := range specs {
			if s, is := spec.(specification.ByTokenHash); is && t.TokenHash != s.Hash {
				ok = false
			}
		}
		if ok {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	for _, t := range r.refresh {
		if t.TokenHash == tokenHash {
			t.Revoked = true
		}
	}
	return nil
}

func (r *fakeUserRepo) SaveUserProvider(ctx context.Context, provider *entity.UserProvider) error {
	r.providers = append(r.providers, provider)
	return nil
}

func (r *fakeUserRepo) FindUserProvider(ctx context.Context, specs ...specification.Specification) (*entity.UserProvider, error) {
	for _, p := range r.providers {
		ok := true
		for _, spec := range specs {
			if s, is := spec.(specification.ByProviderUser); is {
				if p.ProviderName != s.ProviderName || p.ProviderUserId != s.ProviderUserId {
					ok = false
				}
			}
		}
		if ok {
			return p, nil
		}
	}
	return nil, nil
}

// --- agents ---

type fakeAgentRepo struct {
	agents []*entity.Agent
}

func (r *fakeAgentRepo) Create(ctx context.Context, agent *entity.Agent) error {
	r.agents = append(r.agents, agent)
	return nil
}

func (r *fakeAgentRepo) Update(ctx context.Context, agent *entity.Agent) error {
	for i, a := range r.agents {
		if a.Id == agent.Id {
			r.agents[i] = agent
		}
	}
	return nil
}

func (r *fakeAgentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.agents[:0]
	for _, a := range r.agents {
		if a.Id != id {
			kept = append(kept, a)
		}
	}
	r.agents = kept
	return nil
}

func matchAgent(a *entity.Agent, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if a.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if a.UserId != s.UserID {
				return false
			}
		}
	}
	return true
}

func (r *fakeAgentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Agent, error) {
	for _, a := range r.agents {
		if matchAgent(a, specs) {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAgentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Agent, error) {
	var out []*entity.Agent
	for _, a := range r.agents {
		if matchAgent(a, specs) {
			out = append(out, a)
		}
	}
	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok && s.Field == "created_at" {
			sort.Slice(out, func(i, j int) bool {
				if s.Desc {
					return out[i].CreatedAt.After(out[j].CreatedAt)
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
		}
	}
	return out, nil
}

func (r *fakeAgentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- conversations ---

type fakeConversationRepo struct {
	conversations []*entity.Conversation
}

func (r *fakeConversationRepo) Create(ctx context.Context, c *entity.Conversation) error {
	r.conversations = append(r.conversations, c)
	return nil
}

func (r *fakeConversationRepo) Update(ctx context.Context, c *entity.Conversation) error {
	for i, existing := range r.conversations {
		if existing.Id == c.Id {
			r.conversations[i] = c
		}
	}
	return nil
}

func (r *fakeConversationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.conversations[:0]
	for _, c := range r.conversations {
		if c.Id != id {
			kept = append(kept, c)
		}
	}
	r.conversations = kept
	return nil
}

func (r *fakeConversationRepo) DeleteByAgentId(ctx context.Context, agentId uuid.UUID) error {
	kept := r.conversations[:0]
	for _, c := range r.conversations {
		if c.AgentId != agentId {
			kept = append(kept, c)
		}
	}
	r.conversations = kept
	return nil
}

func matchConversation(c *entity.Conversation, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if c.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if c.UserId != s.UserID {
				return false
			}
		case specification.FilterBy:
			if s.Field == "agent_id" {
				if id, ok := s.Value.(uuid.UUID); ok && c.AgentId != id {
					return false
				}
			}
		}
	}
	return true
}

func (r *fakeConversationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	for _, c := range r.conversations {
		if matchConversation(c, specs) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeConversationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	var out []*entity.Conversation
	for _, c := range r.conversations {
		if matchConversation(c, specs) {
			out = append(out, c)
		}
	}
	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok && s.Field == "updated_at" {
			sort.Slice(out, func(i, j int) bool {
				if s.Desc {
					return out[i].UpdatedAt.After(out[j].UpdatedAt)
				}
				return out[i].UpdatedAt.Before(out[j].UpdatedAt)
			})
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeConversationRepo) Touch(ctx context.Context, id uuid.UUID) error {
	for _, c := range r.conversations {
		if c.Id == id {
			c.UpdatedAt = time.Now()
		}
	}
	return nil
}

// --- messages ---

type fakeMessageRepo struct {
	messages []*entity.Message
}

func (r *fakeMessageRepo) Create(ctx context.Context, m *entity.Message) error {
	r.messages = append(r.messages, m)
	return nil
}

func (r *fakeMessageRepo) DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error {
	return r.DeleteByConversationIds(ctx, []uuid.UUID{conversationId})
}

func (r *fakeMessageRepo) DeleteByConversationIds(ctx context.Context, conversationIds []uuid.UUID) error {
	drop := make(map[uuid.UUID]bool, len(conversationIds))
	for _, id := range conversationIds {
		drop[id] = true
	}
	kept := r.messages[:0]
	for _, m := range r.messages {
		if !drop[m.ConversationId] {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

func matchMessage(m *entity.Message, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.FilterBy:
			if s.Field == "conversation_id" {
				if id, ok := s.Value.(uuid.UUID); ok && m.ConversationId != id {
					return false
				}
			}
		case specification.ByConversationID:
			if m.ConversationId != s.ConversationID {
				return false
			}
		}
	}
	return true
}

func (r *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	for _, m := range r.messages {
		if matchMessage(m, specs) {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, m := range r.messages {
		if matchMessage(m, specs) {
			out = append(out, m)
		}
	}
	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok && s.Field == "created_at" {
			sort.Slice(out, func(i, j int) bool {
				if s.Desc {
					return out[i].CreatedAt.After(out[j].CreatedAt)
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) FindAllByConversationIds(ctx context.Context, conversationIds []uuid.UUID) ([]*entity.Message, error) {
	want := make(map[uuid.UUID]bool, len(conversationIds))
	for _, id := range conversationIds {
		want[id] = true
	}
	var out []*entity.Message
	for _, m := range r.messages {
		if want[m.ConversationId] {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- onboarding ---

type fakeOnboardingRepo struct {
	progress []*entity.OnboardingProgress
}

func (r *fakeOnboardingRepo) Upsert(ctx context.Context, p *entity.OnboardingProgress) error {
	for i, existing := range r.progress {
		if existing.UserId == p.UserId {
			r.progress[i] = p
			return nil
		}
	}
	r.progress = append(r.progress, p)
	return nil
}

func (r *fakeOnboardingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OnboardingProgress, error) {
	for _, p := range r.progress {
		ok := true
		for _, spec := range specs {
			if s, is := spec.(specification.UserOwnedBy); is && p.UserId != s.UserID {
				ok = false
			}
		}
		if ok {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeOnboardingRepo) DeleteByUserId(ctx context.Context, userId uuid.UUID) error {
	kept := r.progress[:0]
	for _, p := range r.progress {
		if p.UserId != userId {
			kept = append(kept, p)
		}
	}
	r.progress = kept
	return nil
}

// --- subscriptions ---

type fakeSubscriptionRepo struct {
	plans []*entity.SubscriptionPlan
	subs  []*entity.UserSubscription
}

func (r *fakeSubscriptionRepo) CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	r.plans = append(r.plans, plan)
	return nil
}

func (r *fakeSubscriptionRepo) UpdatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	for i, p := range r.plans {
		if p.Id == plan.Id {
			r.plans[i] = plan
		}
	}
	return nil
}

func matchPlan(p *entity.SubscriptionPlan, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if p.Id != s.ID {
				return false
			}
		case specification.FilterBy:
			if s.Field == "is_active" {
				if active, ok := s.Value.(bool); ok && p.IsActive != active {
					return false
				}
			}
		}
	}
	return true
}

func (r *fakeSubscriptionRepo) FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	for _, p := range r.plans {
		if matchPlan(p, specs) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error) {
	var out []*entity.SubscriptionPlan
	for _, p := range r.plans {
		if matchPlan(p, specs) {
			out = append(out, p)
		}
	}
	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok && s.Field == "sort_order" {
			sort.Slice(out, func(i, j int) bool {
				if s.Desc {
					return out[i].SortOrder > out[j].SortOrder
				}
				return out[i].SortOrder < out[j].SortOrder
			})
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) CreateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	r.subs = append(r.subs, sub)
	return nil
}

func (r *fakeSubscriptionRepo) UpdateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	for i, s := range r.subs {
		if s.Id == sub.Id {
			r.subs[i] = sub
		}
	}
	return nil
}

func (r *fakeSubscriptionRepo) DeleteSubscription(ctx context.Context, id uuid.UUID) error {
	kept := r.subs[:0]
	for _, s := range r.subs {
		if s.Id != id {
			kept = append(kept, s)
		}
	}
	r.subs = kept
	return nil
}

func matchSubscription(sub *entity.UserSubscription, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if sub.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if sub.UserId != s.UserID {
				return false
			}
		case specification.FilterBy:
			switch s.Field {
			case "user_id":
				if id, ok := s.Value.(uuid.UUID); ok && sub.UserId != id {
					return false
				}
			case "status":
				if status, ok := s.Value.(string); ok && string(sub.Status) != status {
					return false
				}
			}
		}
	}
	return true
}

func (r *fakeSubscriptionRepo) FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.UserSubscription, error) {
	for _, s := range r.subs {
		if matchSubscription(s, specs) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindAllSubscriptions(ctx context.Context, specs ...specification.Specification) ([]*entity.UserSubscription, error) {
	var out []*entity.UserSubscription
	for _, s := range r.subs {
		if matchSubscription(s, specs) {
			out = append(out, s)
		}
	}
	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok && s.Field == "created_at" {
			sort.Slice(out, func(i, j int) bool {
				if s.Desc {
					return out[i].CreatedAt.After(out[j].CreatedAt)
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
		}
	}
	return out, nil
}

// --- llm provider ---

type fakeProvider struct {
	reply   string
	err     error
	history []llm.Message
	calls   int
}

func (p *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.calls++
	p.history = history
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func (p *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}
