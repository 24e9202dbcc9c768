package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"airline-assist/internal/assistant/refund"
	apperrors "airline-assist/internal/common/errors"
	httpclient "airline-assist/internal/common/http"
	"airline-assist/internal/common/logger"
	"airline-assist/internal/models"
)

// SheetDBStore reads bookings from a SheetDB spreadsheet API.
type SheetDBStore struct {
	baseURL string
	client  *httpclient.Client
	logger  logger.Logger
}

func NewSheetDBStore(baseURL string, timeout time.Duration, log logger.Logger) *SheetDBStore {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &SheetDBStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpclient.NewClient(timeout),
		logger:  log.WithFields(map[string]interface{}{"source": "sheetdb"}),
	}
}

// FindByEmail searches the sheet by user_email. A body that is not a JSON
// array is treated as no matches.
func (s *SheetDBStore) FindByEmail(ctx context.Context, email string) ([]models.BookingRecord, error) {
	endpoint := s.baseURL + "/search?user_email=" + url.QueryEscape(strings.TrimSpace(email))
	rows, err := s.fetchRows(ctx, endpoint)
	if err != nil {
		return nil, apperrors.NewBookingLookupFailedError("sheetdb", err)
	}
	s.logger.Debug("bookings loaded", map[string]interface{}{"count": len(rows)})
	return rows, nil
}

// NextRefundID scans every row for the highest refund id.
func (s *SheetDBStore) NextRefundID(ctx context.Context) (string, error) {
	rows, err := s.fetchRows(ctx, s.baseURL)
	if err != nil {
		return "", apperrors.NewBookingLookupFailedError("sheetdb", err)
	}
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.RefundID)
	}
	return refund.NextRefundID(ids), nil
}

// SaveRefund patches the row keyed by transaction_id, or booking_id when the
// transaction id is unknown.
func (s *SheetDBStore) SaveRefund(ctx context.Context, r models.RefundInitiation) error {
	column, key := "transaction_id", r.TransactionID
	if strings.TrimSpace(key) == "" {
		column, key = "booking_id", r.BookingID
	}
	endpoint := fmt.Sprintf("%s/%s/%s", s.baseURL, column, url.PathEscape(key))

	payload := map[string]interface{}{
		"data": map[string]interface{}{
			"refund_id":     r.RefundID,
			"refund_status": r.RefundStatus,
			"refund_amount": r.RefundAmount.Float64(),
			"refund_date":   r.RefundDate,
			"refund_mode":   r.RefundMode,
		},
	}
	body, err := s.client.SendJSON(ctx, http.MethodPatch, endpoint, payload)
	if err != nil {
		return apperrors.NewRefundPersistFailedError(r.RefundID, err)
	}

	var res struct {
		Updated int `json:"updated"`
	}
	if err := json.Unmarshal(body, &res); err == nil && res.Updated == 0 {
		return apperrors.NewRefundPersistFailedError(r.RefundID, errors.New("no sheet row matched"))
	}
	return nil
}

func (s *SheetDBStore) fetchRows(ctx context.Context, endpoint string) ([]models.BookingRecord, error) {
	body, err := s.client.GetRaw(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode sheet response: %w", err)
	}
	if _, ok := raw.([]interface{}); !ok {
		return []models.BookingRecord{}, nil
	}

	var rows []models.BookingRecord
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode sheet rows: %w", err)
	}
	return rows, nil
}
