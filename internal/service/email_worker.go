package service

import (
	"context"
	"encoding/json"
	"fmt"

	"agentcraft-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
)

const resetEmailTopic = "SEND_RESET_EMAIL"

// ResetEmailJob is the payload published to the reset-email topic.
type ResetEmailJob struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// EmailWorker drains the email topics and delivers through the SMTP mailer.
// Publishing and delivery are decoupled so a slow SMTP server never blocks
// a request handler.
type EmailWorker struct {
	subscriber        message.Subscriber
	emailService      mailer.IEmailService
	welcomeEmailTopic string
}

func NewEmailWorker(subscriber message.Subscriber, emailService mailer.IEmailService, welcomeEmailTopic string) *EmailWorker {
	return &EmailWorker{
		subscriber:        subscriber,
		emailService:      emailService,
		welcomeEmailTopic: welcomeEmailTopic,
	}
}

// Start subscribes to both email topics and processes messages until the
// subscriber is closed. It returns after the subscriptions are established.
func (w *EmailWorker) Start(ctx context.Context) error {
	welcomeMessages, err := w.subscriber.Subscribe(ctx, w.welcomeEmailTopic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", w.welcomeEmailTopic, err)
	}

	resetMessages, err := w.subscriber.Subscribe(ctx, resetEmailTopic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", resetEmailTopic, err)
	}

	go w.processWelcome(welcomeMessages)
	go w.processReset(resetMessages)

	return nil
}

func (w *EmailWorker) processWelcome(messages <-chan *message.Message) {
	for msg := range messages {
		var job WelcomeEmailJob
		if err := json.Unmarshal(msg.Payload, &job); err != nil {
			fmt.Printf("[WORKER ERROR] Malformed welcome email job: %v\n", err)
			msg.Ack()
			continue
		}
		if err := w.emailService.SendWelcome(job.Email, job.FirstName); err != nil {
			fmt.Printf("[WORKER ERROR] Failed to send welcome email to %s: %v\n", job.Email, err)
		}
		msg.Ack()
	}
}

func (w *EmailWorker) processReset(messages <-chan *message.Message) {
	for msg := range messages {
		var job ResetEmailJob
		if err := json.Unmarshal(msg.Payload, &job); err != nil {
			fmt.Printf("[WORKER ERROR] Malformed reset email job: %v\n", err)
			msg.Ack()
			continue
		}
		if err := w.emailService.SendResetToken(job.Email, job.Token); err != nil {
			fmt.Printf("[WORKER ERROR] Failed to send reset email to %s: %v\n", job.Email, err)
		}
		msg.Ack()
	}
}
