package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"testing"
	"time"

	"agentcraft-be/internal/config"
	"agentcraft-be/internal/dto"
	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServerKey = "SB-Mid-server-test"

func signNotification(req *dto.PaymentNotificationRequest) {
	input := req.OrderId + req.StatusCode + req.GrossAmount + testServerKey
	req.SignatureKey = fmt.Sprintf("%x", sha512.Sum512([]byte(input)))
}

func seedPendingSubscription(f *fakeFactory) *entity.UserSubscription {
	sub := &entity.UserSubscription{
		Id:                 uuid.New(),
		UserId:             uuid.New(),
		PlanId:             uuid.New(),
		Status:             entity.SubscriptionStatusInactive,
		PaymentStatus:      entity.PaymentStatusPending,
		CurrentPeriodStart: time.Now(),
		CurrentPeriodEnd:   time.Now().AddDate(0, 1, 0),
	}
	f.uow.subscriptions.subs = append(f.uow.subscriptions.subs, sub)
	return sub
}

func newPaymentServiceForTest(factory *fakeFactory) IPaymentService {
	return NewPaymentService(factory, nil, config.PaymentConfig{MidtransServerKey: testServerKey})
}

func TestHandleNotificationInvalidSignature(t *testing.T) {
	factory := newFakeFactory()
	sub := seedPendingSubscription(factory)
	svc := newPaymentServiceForTest(factory)

	err := svc.HandleNotification(context.Background(), &dto.PaymentNotificationRequest{
		TransactionStatus: "settlement",
		OrderId:           sub.Id.String(),
		StatusCode:        "200",
		GrossAmount:       "149000.00",
		SignatureKey:      "forged",
	})

	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
	assert.Equal(t, entity.SubscriptionStatusInactive, sub.Status)
}

func TestHandleNotificationSettlement(t *testing.T) {
	factory := newFakeFactory()
	sub := seedPendingSubscription(factory)
	svc := newPaymentServiceForTest(factory)

	req := &dto.PaymentNotificationRequest{
		TransactionStatus: "settlement",
		OrderId:           sub.Id.String(),
		StatusCode:        "200",
		GrossAmount:       "149000.00",
		TransactionId:     "mt-12345",
	}
	signNotification(req)

	require.NoError(t, svc.HandleNotification(context.Background(), req))

	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, entity.PaymentStatusPaid, sub.PaymentStatus)
	require.NotNil(t, sub.MidtransTransactionId)
	assert.Equal(t, "mt-12345", *sub.MidtransTransactionId)

	// Midtrans retries the webhook; a replay must not fail.
	require.NoError(t, svc.HandleNotification(context.Background(), req))
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
}

func TestHandleNotificationDeny(t *testing.T) {
	factory := newFakeFactory()
	sub := seedPendingSubscription(factory)
	svc := newPaymentServiceForTest(factory)

	req := &dto.PaymentNotificationRequest{
		TransactionStatus: "deny",
		OrderId:           sub.Id.String(),
		StatusCode:        "202",
		GrossAmount:       "149000.00",
	}
	signNotification(req)

	require.NoError(t, svc.HandleNotification(context.Background(), req))

	assert.Equal(t, entity.SubscriptionStatusInactive, sub.Status)
	assert.Equal(t, entity.PaymentStatusFailed, sub.PaymentStatus)
}

func TestHandleNotificationPendingIsNoOp(t *testing.T) {
	factory := newFakeFactory()
	sub := seedPendingSubscription(factory)
	svc := newPaymentServiceForTest(factory)

	req := &dto.PaymentNotificationRequest{
		TransactionStatus: "pending",
		OrderId:           sub.Id.String(),
		StatusCode:        "201",
		GrossAmount:       "149000.00",
	}
	signNotification(req)

	require.NoError(t, svc.HandleNotification(context.Background(), req))
	assert.Equal(t, entity.PaymentStatusPending, sub.PaymentStatus)
}

func TestHandleNotificationBadOrderId(t *testing.T) {
	factory := newFakeFactory()
	svc := newPaymentServiceForTest(factory)

	req := &dto.PaymentNotificationRequest{
		TransactionStatus: "settlement",
		OrderId:           "not-a-uuid",
		StatusCode:        "200",
		GrossAmount:       "149000.00",
	}
	signNotification(req)

	err := svc.HandleNotification(context.Background(), req)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))
}

func TestGetSubscriptionStatus(t *testing.T) {
	factory := newFakeFactory()
	userId := uuid.New()
	svc := newPaymentServiceForTest(factory)

	t.Run("free plan fallback", func(t *testing.T) {
		res, err := svc.GetSubscriptionStatus(context.Background(), userId)
		require.NoError(t, err)
		assert.Equal(t, "Free Plan", res.PlanName)
		assert.False(t, res.IsActive)
	})

	plan := &entity.SubscriptionPlan{Id: uuid.New(), Name: "Growth", Slug: "growth"}
	factory.uow.subscriptions.plans = append(factory.uow.subscriptions.plans, plan)
	factory.uow.subscriptions.subs = append(factory.uow.subscriptions.subs, &entity.UserSubscription{
		Id:               uuid.New(),
		UserId:           userId,
		PlanId:           plan.Id,
		Status:           entity.SubscriptionStatusActive,
		PaymentStatus:    entity.PaymentStatusPaid,
		CurrentPeriodEnd: time.Now().AddDate(0, 1, 0),
	})

	t.Run("active subscription", func(t *testing.T) {
		res, err := svc.GetSubscriptionStatus(context.Background(), userId)
		require.NoError(t, err)
		assert.Equal(t, "Growth", res.PlanName)
		assert.True(t, res.IsActive)
	})

	t.Run("expired subscription falls back to free", func(t *testing.T) {
		factory.uow.subscriptions.subs[0].CurrentPeriodEnd = time.Now().Add(-time.Hour)
		res, err := svc.GetSubscriptionStatus(context.Background(), userId)
		require.NoError(t, err)
		assert.Equal(t, "Free Plan", res.PlanName)
	})
}

func TestCancelSubscription(t *testing.T) {
	factory := newFakeFactory()
	userId := uuid.New()
	svc := newPaymentServiceForTest(factory)

	t.Run("nothing to cancel", func(t *testing.T) {
		err := svc.CancelSubscription(context.Background(), userId)
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})

	sub := &entity.UserSubscription{
		Id:               uuid.New(),
		UserId:           userId,
		Status:           entity.SubscriptionStatusActive,
		CurrentPeriodEnd: time.Now().AddDate(0, 1, 0),
	}
	factory.uow.subscriptions.subs = append(factory.uow.subscriptions.subs, sub)

	t.Run("cancel keeps the row", func(t *testing.T) {
		require.NoError(t, svc.CancelSubscription(context.Background(), userId))
		assert.Equal(t, entity.SubscriptionStatusCanceled, sub.Status)
		assert.Len(t, factory.uow.subscriptions.subs, 1)
	})
}
