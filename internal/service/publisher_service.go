package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Mail templates rendered by the consumer side.
const (
	MailTemplateApplicationReceived = "application_received"
	MailTemplateApplicationApproved = "application_approved"
	MailTemplateApplicationRejected = "application_rejected"
	MailTemplatePaymentConfirmed    = "payment_confirmed"
	MailTemplatePaymentFailed       = "payment_failed"
	MailTemplateMembershipActivated = "membership_activated"
	MailTemplateMembershipExpired   = "membership_expired"
)

// MailMessage travels over the in-process mail queue from the services that
// drive status transitions to the consumer that talks SMTP.
type MailMessage struct {
	To       string            `json:"to"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data"`
}

type IPublisherService interface {
	PublishMail(ctx context.Context, msg MailMessage) error
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewPublisherService(pubSub *gochannel.GoChannel, topicName string) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (s *publisherService) PublishMail(ctx context.Context, msg MailMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	wmMsg := message.NewMessage(watermill.NewUUID(), payload)
	wmMsg.SetContext(ctx)
	return s.pubSub.Publish(s.topicName, wmMsg)
}
