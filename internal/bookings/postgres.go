package bookings

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"airline-assist/internal/assistant/refund"
	apperrors "airline-assist/internal/common/errors"
	"airline-assist/internal/common/logger"
	"airline-assist/internal/models"
)

const bookingColumns = `transaction_id, booking_id, pnr, user_email, passenger_name, contact_number,
	frequent_flyer_id, flight_number, departure_airport, arrival_airport, departure_time, arrival_time,
	travel_date, booking_date, travel_class, seat_number, seat_type, meal_selected, baggage_allowance,
	baggage_addon, wifi_addon, ticket_price, taxes, total_amount_paid, payment_instrument, currency,
	status, checkin_status, boarding_group, refund_id, refund_status, refund_amount, refund_date, refund_mode`

const (
	findByEmailQuery = `SELECT ` + bookingColumns + `
	FROM bookings
	WHERE lower(user_email) = lower($1)
	ORDER BY booking_date DESC`

	refundIDsQuery = `SELECT refund_id FROM bookings WHERE refund_id IS NOT NULL AND refund_id <> ''`

	saveRefundQuery = `UPDATE bookings
	SET refund_id = $1, refund_status = $2, refund_amount = $3, refund_date = $4, refund_mode = $5
	WHERE transaction_id = $6 OR (transaction_id IS NULL AND booking_id = $7)`
)

// Querier is the subset of database/sql used by the Postgres store.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// PostgresStore reads bookings from and writes refunds to the bookings table.
type PostgresStore struct {
	db     Querier
	logger logger.Logger
}

func NewPostgresStore(db Querier, log logger.Logger) *PostgresStore {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &PostgresStore{db: db, logger: log.WithFields(map[string]interface{}{"source": "postgres"})}
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) ([]models.BookingRecord, error) {
	rows, err := s.db.QueryContext(ctx, findByEmailQuery, normalizeEmail(email))
	if err != nil {
		return nil, s.queryError("find_by_email", err)
	}
	defer rows.Close()

	var out []models.BookingRecord
	for rows.Next() {
		rec, err := scanBooking(rows)
		if err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("find_by_email", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, s.queryError("find_by_email", err)
	}

	s.logger.Debug("bookings loaded", map[string]interface{}{"count": len(out)})
	return out, nil
}

func (s *PostgresStore) NextRefundID(ctx context.Context) (string, error) {
	rows, err := s.db.QueryContext(ctx, refundIDsQuery)
	if err != nil {
		return "", s.queryError("refund_ids", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", apperrors.NewQueryExecutionFailedError("refund_ids", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", s.queryError("refund_ids", err)
	}
	return refund.NextRefundID(ids), nil
}

func (s *PostgresStore) SaveRefund(ctx context.Context, r models.RefundInitiation) error {
	res, err := s.db.ExecContext(ctx, saveRefundQuery,
		r.RefundID, r.RefundStatus, r.RefundAmount.Float64(), r.RefundDate, r.RefundMode,
		nullable(r.TransactionID), r.BookingID,
	)
	if err != nil {
		return apperrors.NewRefundPersistFailedError(r.RefundID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewRefundPersistFailedError(r.RefundID, err)
	}
	if n == 0 {
		return apperrors.NewRefundPersistFailedError(r.RefundID, errors.New("no booking row matched"))
	}
	s.logger.Info("refund saved", map[string]interface{}{"refundId": r.RefundID, "bookingId": r.BookingID})
	return nil
}

func (s *PostgresStore) queryError(queryType string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewQueryTimeoutError(queryType)
	}
	return apperrors.NewQueryExecutionFailedError(queryType, err)
}

func nullable(s string) interface{} {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (models.BookingRecord, error) {
	var (
		txID, bookingID, pnr, email, name, phone, ffID, flight, from, to, dep, arr sql.NullString
		travelDate, bookingDate, class, seat, seatType, meal, bagAllow, bagAddon   sql.NullString
		wifi, instrument, currency, status, checkin, group, refundID, refundStat   sql.NullString
		refundDate, refundMode                                                     sql.NullString
		ticket, taxes, total, refundAmount                                         sql.NullFloat64
	)
	err := row.Scan(
		&txID, &bookingID, &pnr, &email, &name, &phone,
		&ffID, &flight, &from, &to, &dep, &arr,
		&travelDate, &bookingDate, &class, &seat, &seatType, &meal, &bagAllow,
		&bagAddon, &wifi, &ticket, &taxes, &total, &instrument, &currency,
		&status, &checkin, &group, &refundID, &refundStat, &refundAmount, &refundDate, &refundMode,
	)
	if err != nil {
		return models.BookingRecord{}, err
	}
	return models.BookingRecord{
		TransactionID:     txID.String,
		BookingID:         bookingID.String,
		PNR:               pnr.String,
		UserEmail:         email.String,
		PassengerName:     name.String,
		ContactNumber:     phone.String,
		FrequentFlyerID:   ffID.String,
		FlightNumber:      flight.String,
		DepartureAirport:  from.String,
		ArrivalAirport:    to.String,
		DepartureTime:     dep.String,
		ArrivalTime:       arr.String,
		TravelDate:        travelDate.String,
		BookingDate:       bookingDate.String,
		TravelClass:       class.String,
		SeatNumber:        seat.String,
		SeatType:          seatType.String,
		MealSelected:      meal.String,
		BaggageAllowance:  bagAllow.String,
		BaggageAddon:      bagAddon.String,
		WifiAddon:         wifi.String,
		TicketPrice:       models.Amount(ticket.Float64),
		Taxes:             models.Amount(taxes.Float64),
		TotalAmountPaid:   models.Amount(total.Float64),
		PaymentInstrument: instrument.String,
		Currency:          currency.String,
		Status:            status.String,
		CheckinStatus:     checkin.String,
		BoardingGroup:     group.String,
		RefundID:          refundID.String,
		RefundStatus:      refundStat.String,
		RefundAmount:      models.Amount(refundAmount.Float64),
		RefundDate:        refundDate.String,
		RefundMode:        refundMode.String,
	}, nil
}
