package service

import (
	"context"
	"crypto/sha512"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"library-membership-be/internal/dto"
	"library-membership-be/internal/entity"
	"library-membership-be/internal/pkg/logger"
	"library-membership-be/internal/repository/specification"
	"library-membership-be/internal/repository/unitofwork"
	"library-membership-be/pkg/events"
	"library-membership-be/pkg/membership"
	pktNats "library-membership-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type IPaymentService interface {
	GetFees(ctx context.Context) ([]*dto.FeeResponse, error)
	GetOrderSummary(ctx context.Context, membershipId uuid.UUID) (*dto.OrderSummaryResponse, error)
	Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
	VerifyPayment(ctx context.Context, membershipId uuid.UUID, verifier string, req *dto.VerifyPaymentRequest) (*dto.MembershipResponse, error)
}

type paymentService struct {
	uowFactory       unitofwork.RepositoryFactory
	eventPublisher   *pktNats.Publisher
	publisherService IPublisherService
	log              logger.ILogger
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	publisherService IPublisherService,
	log logger.ILogger,
) IPaymentService {
	return &paymentService{
		uowFactory:       uowFactory,
		eventPublisher:   eventPublisher,
		publisherService: publisherService,
		log:              log,
	}
}

func (s *paymentService) GetFees(ctx context.Context) ([]*dto.FeeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	fees, err := uow.FeeRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var res []*dto.FeeResponse
	for _, f := range fees {
		if !f.IsActive {
			continue
		}
		res = append(res, &dto.FeeResponse{
			Id:             f.Id,
			MembershipType: string(f.MembershipType),
			Amount:         f.Amount,
			Currency:       f.Currency,
			ValidityMonths: f.ValidityMonths,
			Description:    f.Description,
		})
	}
	return res, nil
}

func (s *paymentService) GetOrderSummary(ctx context.Context, membershipId uuid.UUID) (*dto.OrderSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	_, fee, err := s.findRecordAndFee(ctx, uow, membershipId)
	if err != nil {
		return nil, err
	}

	return &dto.OrderSummaryResponse{
		MembershipType: string(fee.MembershipType),
		Amount:         fee.Amount,
		Currency:       fee.Currency,
		ValidityMonths: fee.ValidityMonths,
	}, nil
}

func (s *paymentService) Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rec, fee, err := s.findRecordAndFee(ctx, uow, req.MembershipId)
	if err != nil {
		return nil, err
	}

	orderId := rec.Id.String()
	updated, err := membership.BeginPayment(*rec, entity.PaymentDetails{
		Amount:         fee.Amount,
		Method:         entity.PaymentMethodOnline,
		GatewayOrderId: &orderId,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.MembershipRepository().UpdateVersioned(ctx, &updated, rec.Version); err != nil {
		return nil, err
	}

	// -- Midtrans Logic (external call stays outside any DB transaction) --
	var sClient snap.Client
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}
	sClient.New(serverKey, env)

	frontendURL := os.Getenv("FRONTEND_URL")
	finishRedirectURL := fmt.Sprintf("%s/membership/status?payment=success", frontendURL)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderId,
			GrossAmt: int64(fee.Amount),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: finishRedirectURL,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: rec.Application.FirstName,
			LName: rec.Application.LastName,
			Email: rec.Application.PersonalEmail,
			Phone: rec.Application.ContactNo,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    fee.Id.String(),
				Price: int64(fee.Amount),
				Qty:   1,
				Name:  fmt.Sprintf("%s library membership fee", fee.MembershipType),
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	s.log.Info("payment", "Checkout session created", map[string]interface{}{
		"membership_id": rec.Id,
		"amount":        fee.Amount,
	})

	return &dto.CheckoutResponse{
		MembershipId:    rec.Id,
		SnapToken:       snapResp.Token,
		SnapRedirectUrl: snapResp.RedirectURL,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		s.log.Error("payment", "MIDTRANS_SERVER_KEY not configured", nil)
		return fmt.Errorf("server configuration error")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		s.log.Warn("payment", "Webhook signature mismatch", map[string]interface{}{"order_id": req.OrderId})
		return fmt.Errorf("invalid signature")
	}

	membershipId, err := uuid.Parse(req.OrderId)
	if err != nil {
		return fmt.Errorf("invalid order id format")
	}

	var outcome entity.PaymentStatus
	switch req.TransactionStatus {
	case "capture", "settlement":
		outcome = entity.PaymentStatusConfirmed
	case "deny", "cancel", "expire":
		outcome = entity.PaymentStatusFailed
	case "pending":
		// Payment still in flight at the gateway, nothing to record.
		return nil
	default:
		s.log.Warn("payment", "Unknown transaction status", map[string]interface{}{"status": req.TransactionStatus})
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rec, err := uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: membershipId})
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("membership not found for order %s", req.OrderId)
	}

	amount, _ := strconv.ParseFloat(req.GrossAmount, 64)
	orderId := req.OrderId
	updated, err := membership.RecordPayment(*rec, outcome, entity.PaymentDetails{
		Amount:          amount,
		Method:          entity.PaymentMethodOnline,
		ReferenceNumber: req.TransactionId,
		GatewayOrderId:  &orderId,
	})
	if err != nil {
		// Gateways retry webhooks. A redelivery of an already applied
		// outcome is not a failure, just drop it.
		var finalized *membership.AlreadyFinalizedError
		if errors.As(err, &finalized) && rec.PaymentStatus == outcome {
			s.log.Info("payment", "Webhook redelivery ignored", map[string]interface{}{"order_id": req.OrderId})
			return nil
		}
		return err
	}

	if err := uow.MembershipRepository().UpdateVersioned(ctx, &updated, rec.Version); err != nil {
		return err
	}

	s.log.Info("payment", "Webhook payment recorded", map[string]interface{}{
		"membership_id": membershipId,
		"outcome":       string(outcome),
	})
	s.afterPaymentRecorded(ctx, &updated)
	return nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, membershipId uuid.UUID, verifier string, req *dto.VerifyPaymentRequest) (*dto.MembershipResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rec, err := uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: membershipId})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("membership not found")
	}

	updated, err := membership.RecordPayment(*rec, entity.PaymentStatus(req.Outcome), entity.PaymentDetails{
		Amount:          req.Amount,
		Method:          entity.PaymentMethodBankTransfer,
		ReferenceNumber: req.ReferenceNumber,
		ConfirmedBy:     verifier,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.MembershipRepository().UpdateVersioned(ctx, &updated, rec.Version); err != nil {
		return nil, err
	}

	s.log.Info("payment", "Payment verified manually", map[string]interface{}{
		"membership_id": membershipId,
		"outcome":       req.Outcome,
		"verifier":      verifier,
	})
	s.afterPaymentRecorded(ctx, &updated)
	return toMembershipResponse(&updated), nil
}

// findRecordAndFee loads the membership record and the fee row for its type,
// rejecting records that are not ready to pay.
func (s *paymentService) findRecordAndFee(ctx context.Context, uow unitofwork.UnitOfWork, membershipId uuid.UUID) (*entity.LibraryMembership, *entity.MembershipFee, error) {
	rec, err := uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: membershipId})
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, errors.New("membership not found")
	}

	fee, err := uow.FeeRepository().FindByMembershipType(ctx, string(rec.Application.MembershipType))
	if err != nil {
		return nil, nil, err
	}
	if fee == nil {
		return nil, nil, fmt.Errorf("no fee configured for membership type %s", rec.Application.MembershipType)
	}
	return rec, fee, nil
}

func (s *paymentService) afterPaymentRecorded(ctx context.Context, rec *entity.LibraryMembership) {
	eventType := "PAYMENT_FAILED"
	mailTemplate := MailTemplatePaymentFailed
	if rec.PaymentStatus == entity.PaymentStatusConfirmed {
		eventType = "PAYMENT_CONFIRMED"
		mailTemplate = MailTemplatePaymentConfirmed
	}

	if s.eventPublisher != nil {
		data := map[string]interface{}{
			"membership_id": rec.Id,
			"full_name":     rec.Application.FullName,
			"email":         rec.Application.UniversityEmail,
		}
		if rec.ApplicantId != nil {
			data["user_id"] = rec.ApplicantId.String()
		}
		if rec.PaymentDetails != nil {
			data["amount"] = rec.PaymentDetails.Amount
		}
		evt := events.BaseEvent{
			Type:       eventType,
			Data:       data,
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("payment", "Failed to publish "+eventType, map[string]interface{}{"error": err.Error()})
		}
	}

	if s.publisherService != nil {
		data := map[string]string{"full_name": rec.Application.FullName}
		if pd := rec.PaymentDetails; pd != nil {
			data["amount"] = strconv.FormatFloat(pd.Amount, 'f', 2, 64)
			data["reference"] = pd.ReferenceNumber
		}
		err := s.publisherService.PublishMail(ctx, MailMessage{
			To:       rec.Application.PersonalEmail,
			Template: mailTemplate,
			Data:     data,
		})
		if err != nil {
			s.log.Warn("payment", "Failed to queue email", map[string]interface{}{"error": err.Error()})
		}
	}
}
