package service

import (
	"context"
	"encoding/json"
	"log"
	"strconv"

	"library-membership-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the mail queue and talks SMTP, keeping email
// latency out of the request path.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	emailService mailer.IEmailService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		emailService: emailService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload MailMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal mail message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if payload.To == "" {
		log.Printf("[WARN] Mail message without recipient, template=%s", payload.Template)
		msg.Ack()
		return
	}

	var err error
	data := payload.Data
	switch payload.Template {
	case MailTemplateApplicationReceived:
		err = cs.emailService.SendApplicationReceived(payload.To, data["full_name"])
	case MailTemplateApplicationApproved:
		err = cs.emailService.SendApplicationApproved(payload.To, data["full_name"])
	case MailTemplateApplicationRejected:
		err = cs.emailService.SendApplicationRejected(payload.To, data["full_name"])
	case MailTemplatePaymentConfirmed:
		amount, _ := strconv.ParseFloat(data["amount"], 64)
		err = cs.emailService.SendPaymentConfirmed(payload.To, data["full_name"], amount, data["reference"])
	case MailTemplatePaymentFailed:
		err = cs.emailService.SendPaymentFailed(payload.To, data["full_name"])
	case MailTemplateMembershipActivated:
		err = cs.emailService.SendMembershipActivated(payload.To, data["full_name"], data["membership_number"], data["end_date"])
	case MailTemplateMembershipExpired:
		err = cs.emailService.SendMembershipExpired(payload.To, data["full_name"], data["membership_number"])
	default:
		log.Printf("[WARN] Unknown mail template %q", payload.Template)
		msg.Ack()
		return
	}

	if err != nil {
		log.Printf("[ERROR] Failed to send %s email to %s: %v", payload.Template, payload.To, err)
		msg.Nack() // Retry transient SMTP failures
		return
	}

	msg.Ack()
}
