package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"os"
	"time"

	"agentcraft-be/internal/config"
	"agentcraft-be/internal/dto"
	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/pkg/apperror"
	"agentcraft-be/internal/repository/specification"
	"agentcraft-be/internal/repository/unitofwork"

	"agentcraft-be/pkg/events"
	pktNats "agentcraft-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type IPaymentService interface {
	GetPlans(ctx context.Context) ([]*dto.PlanResponse, error)
	Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.PaymentNotificationRequest) error
	GetSubscriptionStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error)
	CancelSubscription(ctx context.Context, userId uuid.UUID) error
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	cfg            config.PaymentConfig
}

func NewPaymentService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, cfg config.PaymentConfig) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		cfg:            cfg,
	}
}

func (s *paymentService) GetPlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plans, err := uow.SubscriptionRepository().FindAllPlans(ctx,
		specification.Filter("is_active", true),
		specification.OrderBy{Field: "sort_order", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PlanResponse, len(plans))
	for i, p := range plans {
		res[i] = &dto.PlanResponse{
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
		}
	}
	return res, nil
}

func (s *paymentService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: req.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NotFound("plan not found")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	subId := uuid.New()
	sub := &entity.UserSubscription{
		Id:                 subId,
		UserId:             userId,
		PlanId:             plan.Id,
		Status:             entity.SubscriptionStatusInactive,
		PaymentStatus:      entity.PaymentStatusPending,
		CurrentPeriodStart: time.Now(),
		CurrentPeriodEnd:   time.Now().AddDate(0, 1, 0),
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
	if plan.BillingPeriod == entity.BillingPeriodYearly {
		sub.CurrentPeriodEnd = time.Now().AddDate(1, 0, 0)
	}

	if err := uow.SubscriptionRepository().CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	// External call stays outside any DB transaction.
	var sClient snap.Client
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}
	sClient.New(s.cfg.MidtransServerKey, env)

	frontendURL := os.Getenv("FRONTEND_URL")
	finishRedirectURL := fmt.Sprintf("%s/app?payment=success", frontendURL)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  subId.String(),
			GrossAmt: int64(plan.Price),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: finishRedirectURL,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FirstName,
			LName: user.LastName,
			Email: user.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    plan.Id.String(),
				Price: int64(plan.Price),
				Qty:   1,
				Name:  fmt.Sprintf("%s (%s)", plan.Name, plan.BillingPeriod),
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "SUBSCRIPTION_CREATED",
			Data: map[string]interface{}{
				"user_id":     userId,
				"plan_id":     plan.Id,
				"plan_name":   plan.Name,
				"amount":      plan.Price,
				"occurred_at": time.Now(),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish SUBSCRIPTION_CREATED event: %v\n", err)
		}
	}

	return &dto.CheckoutResponse{
		OrderId:     subId.String(),
		SnapToken:   snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.PaymentNotificationRequest) error {
	serverKey := s.cfg.MidtransServerKey
	if serverKey == "" {
		return fmt.Errorf("server configuration error")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		return apperror.Forbidden("invalid signature")
	}

	subId, err := uuid.Parse(req.OrderId)
	if err != nil {
		return apperror.InvalidInput("invalid order id format")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.ByID{ID: subId})
	if err != nil {
		return err
	}
	if sub == nil {
		return apperror.NotFound("subscription not found")
	}

	var newStatus entity.SubscriptionStatus
	var newPaymentStatus entity.PaymentStatus

	switch req.TransactionStatus {
	case "capture", "settlement":
		newStatus = entity.SubscriptionStatusActive
		newPaymentStatus = entity.PaymentStatusPaid
	case "deny", "cancel", "expire":
		newStatus = entity.SubscriptionStatusInactive
		newPaymentStatus = entity.PaymentStatusFailed
	case "pending":
		return nil
	default:
		fmt.Printf("[WEBHOOK] Unknown status '%s' for order %s, no action taken\n", req.TransactionStatus, req.OrderId)
		return nil
	}

	// Midtrans retries notifications, replays must be no-ops.
	if sub.Status == newStatus && sub.PaymentStatus == newPaymentStatus {
		return nil
	}

	sub.Status = newStatus
	sub.PaymentStatus = newPaymentStatus
	if req.TransactionId != "" {
		sub.MidtransTransactionId = &req.TransactionId
	}
	sub.UpdatedAt = time.Now()

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	if newStatus == entity.SubscriptionStatusActive && s.eventPublisher != nil {
		evt := events.NewSubscriptionActivatedEvent(sub.UserId.String(), sub.Id.String())
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish SUBSCRIPTION_ACTIVATED event: %v\n", err)
		}
	}

	return nil
}

func (s *paymentService) GetSubscriptionStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subs, err := uow.SubscriptionRepository().FindAllSubscriptions(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	var activeSub *entity.UserSubscription
	for _, sub := range subs {
		if sub.Status == entity.SubscriptionStatusActive && sub.CurrentPeriodEnd.After(time.Now()) {
			activeSub = sub
			break
		}
	}

	if activeSub == nil {
		return &dto.SubscriptionStatusResponse{
			PlanName: "Free Plan",
			PlanSlug: "free",
			Status:   string(entity.SubscriptionStatusInactive),
			IsActive: false,
		}, nil
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: activeSub.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NotFound("plan not found for active subscription")
	}

	return &dto.SubscriptionStatusResponse{
		SubscriptionId:   activeSub.Id,
		PlanName:         plan.Name,
		PlanSlug:         plan.Slug,
		Status:           string(activeSub.Status),
		PaymentStatus:    string(activeSub.PaymentStatus),
		CurrentPeriodEnd: activeSub.CurrentPeriodEnd,
		IsActive:         true,
	}, nil
}

func (s *paymentService) CancelSubscription(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subs, err := uow.SubscriptionRepository().FindAllSubscriptions(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return err
	}

	var activeSub *entity.UserSubscription
	for _, sub := range subs {
		if sub.Status == entity.SubscriptionStatusActive {
			activeSub = sub
			break
		}
	}

	if activeSub == nil {
		return apperror.NotFound("no active subscription found")
	}

	// Access is retained until the end of the paid period.
	activeSub.Status = entity.SubscriptionStatusCanceled
	activeSub.UpdatedAt = time.Now()
	return uow.SubscriptionRepository().UpdateSubscription(ctx, activeSub)
}
