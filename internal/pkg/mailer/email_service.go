package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendApplicationReceived(toEmail, fullName string) error
	SendApplicationApproved(toEmail, fullName string) error
	SendApplicationRejected(toEmail, fullName string) error
	SendPaymentConfirmed(toEmail, fullName string, amount float64, reference string) error
	SendPaymentFailed(toEmail, fullName string) error
	SendMembershipActivated(toEmail, fullName, membershipNumber, endDate string) error
	SendMembershipExpired(toEmail, fullName, membershipNumber string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	frontendURL string
}

func NewEmailService(host string, port int, username, password, senderEmail, frontendURL string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		frontendURL: frontendURL,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send %q to %s: %v\n", subject, toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] %q sent to %s\n", subject, toEmail)
	return nil
}

func (s *emailService) SendApplicationReceived(toEmail, fullName string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Application Received</h2>
			<p>Dear %s,</p>
			<p>Your library membership application has been received and is awaiting review.</p>
			<p>You can track its progress here:</p>
			<p><a href="%s/membership/status">%s/membership/status</a></p>
		</div>
	`, fullName, s.frontendURL, s.frontendURL)
	return s.send(toEmail, "Library Membership Application Received", body)
}

func (s *emailService) SendApplicationApproved(toEmail, fullName string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Application Approved</h2>
			<p>Dear %s,</p>
			<p>Your library membership application has been approved.</p>
			<p>The next step is to complete the membership fee payment:</p>
			<a href="%s/membership/payment" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Pay Membership Fee</a>
		</div>
	`, fullName, s.frontendURL)
	return s.send(toEmail, "Library Membership Application Approved", body)
}

func (s *emailService) SendApplicationRejected(toEmail, fullName string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Application Update</h2>
			<p>Dear %s,</p>
			<p>We regret to inform you that your library membership application was not approved.</p>
			<p>Please contact the library office for further details.</p>
		</div>
	`, fullName)
	return s.send(toEmail, "Library Membership Application Update", body)
}

func (s *emailService) SendPaymentConfirmed(toEmail, fullName string, amount float64, reference string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Payment Confirmed</h2>
			<p>Dear %s,</p>
			<p>Your membership fee payment of <strong>%.2f</strong> has been confirmed.</p>
			<p>Reference: %s</p>
			<p>Your membership will be activated by the library shortly.</p>
		</div>
	`, fullName, amount, reference)
	return s.send(toEmail, "Membership Fee Payment Confirmed", body)
}

func (s *emailService) SendPaymentFailed(toEmail, fullName string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Payment Failed</h2>
			<p>Dear %s,</p>
			<p>Your membership fee payment could not be processed.</p>
			<p>Please contact the finance division to resolve the issue.</p>
		</div>
	`, fullName)
	return s.send(toEmail, "Membership Fee Payment Failed", body)
}

func (s *emailService) SendMembershipActivated(toEmail, fullName, membershipNumber, endDate string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Membership Activated</h2>
			<p>Dear %s,</p>
			<p>Your library membership is now active.</p>
			<h1 style="color: #4CAF50; letter-spacing: 3px;">%s</h1>
			<p>Valid until: %s</p>
			<p>You can collect your membership card at the library front desk.</p>
		</div>
	`, fullName, membershipNumber, endDate)
	return s.send(toEmail, "Library Membership Activated", body)
}

func (s *emailService) SendMembershipExpired(toEmail, fullName, membershipNumber string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Membership Expired</h2>
			<p>Dear %s,</p>
			<p>Your library membership (%s) has expired.</p>
			<p>Visit the library office to renew your membership.</p>
		</div>
	`, fullName, membershipNumber)
	return s.send(toEmail, "Library Membership Expired", body)
}
