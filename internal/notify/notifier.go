// Package notify delivers refund confirmations over SES email and SNS SMS.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	awsclient "airline-assist/internal/common/aws"
	apperrors "airline-assist/internal/common/errors"
	"airline-assist/internal/common/logger"
	"airline-assist/internal/common/validation"
	"airline-assist/internal/models"
)

// Delivery statuses.
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	SMSSenderID  string
}

// Result describes one notification attempt.
type Result struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"`
	EmailSent      bool   `json:"emailSent"`
	SMSSent        bool   `json:"smsSent"`
	SentAt         string `json:"sentAt"`
}

type RefundNotifier struct {
	config Config
	ses    awsclient.SESService
	sns    awsclient.SNSService
	logger logger.Logger
	now    func() time.Time
}

func NewRefundNotifier(cfg Config, ses awsclient.SESService, sns awsclient.SNSService, log logger.Logger) *RefundNotifier {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &RefundNotifier{
		config: cfg,
		ses:    ses,
		sns:    sns,
		logger: log.WithFields(map[string]interface{}{"component": "refund-notifier"}),
		now:    time.Now,
	}
}

// RefundInitiated sends the initiation message to the passenger's email and
// phone. A channel that is disabled or has no usable address is skipped. The
// error is a NOTIFICATION_SEND_FAILED StandardError when every attempted
// channel failed.
func (n *RefundNotifier) RefundInitiated(ctx context.Context, record models.BookingRecord, refundID, message string) (*Result, error) {
	res := &Result{
		NotificationID: uuid.New().String(),
		Status:         StatusDisabled,
		SentAt:         n.now().UTC().Format(time.RFC3339),
	}

	subject := fmt.Sprintf("Refund %s initiated for booking %s", refundID, record.BookingID)
	attempted := 0
	var lastErr error

	email := strings.TrimSpace(record.ContactEmail())
	if n.config.EmailEnabled && n.ses != nil && validation.ValidateEmail(email) {
		attempted++
		if _, err := n.ses.SendEmail(ctx, awsclient.PlainTextEmail(n.config.FromEmail, email, subject, message)); err != nil {
			n.logger.Error("email send failed", map[string]interface{}{"error": err, "refundId": refundID})
			lastErr = apperrors.NewNotificationSendFailedError("email", err)
		} else {
			res.EmailSent = true
		}
	}

	phone := strings.TrimSpace(record.ContactNumber)
	if n.config.SMSEnabled && n.sns != nil && validation.ValidatePhone(phone) {
		attempted++
		if _, err := n.sns.Publish(ctx, awsclient.TransactionalSMS(phone, message, n.config.SMSSenderID)); err != nil {
			n.logger.Error("SMS send failed", map[string]interface{}{"error": err, "refundId": refundID})
			lastErr = apperrors.NewNotificationSendFailedError("sms", err)
		} else {
			res.SMSSent = true
		}
	}

	switch {
	case res.EmailSent || res.SMSSent:
		res.Status = StatusSent
	case attempted > 0:
		res.Status = StatusFailed
		return res, lastErr
	}
	return res, nil
}
