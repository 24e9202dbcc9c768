// cmd/worker-manager/wiring.go
package main

import (
	"context"
	"fmt"

	"airline-assist/internal/bookings"
	awsclient "airline-assist/internal/common/aws"
	"airline-assist/internal/common/config"
	"airline-assist/internal/common/database"
	"airline-assist/internal/common/logger"
	"airline-assist/internal/notify"
)

// bookingStores is the booking source chosen by config plus the store refunds
// are written to, which may differ when bookings are read from Elasticsearch.
type bookingStores struct {
	Source  bookings.Source
	Refunds bookings.RefundRepository
	Cache   *bookings.CachedSource

	pg *database.PostgresClient
	es *database.ElasticsearchClient
}

func (s *bookingStores) Close() {
	if s.pg != nil {
		s.pg.Close()
	}
}

func buildStores(ctx context.Context, cfg *config.Config, rdb *database.RedisClient, log logger.Logger) (*bookingStores, error) {
	stores := &bookingStores{}
	sheetTimeout := config.GetDuration(cfg.Bookings.SheetDB.Timeout)

	openPostgres := func() (*bookings.PostgresStore, error) {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, err
		}
		if err := pg.Ping(ctx); err != nil {
			pg.Close()
			return nil, err
		}
		stores.pg = pg
		return bookings.NewPostgresStore(pg, log), nil
	}

	switch cfg.Bookings.Source {
	case config.BookingSourcePostgres:
		pgStore, err := openPostgres()
		if err != nil {
			return nil, err
		}
		stores.Source, stores.Refunds = pgStore, pgStore

	case config.BookingSourceSheetDB:
		sheet := bookings.NewSheetDBStore(cfg.Bookings.SheetDB.BaseURL, sheetTimeout, log)
		stores.Source, stores.Refunds = sheet, sheet

	case config.BookingSourceElasticsearch:
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return nil, err
		}
		if err := es.Ping(ctx); err != nil {
			return nil, err
		}
		stores.es = es
		stores.Source = bookings.NewElasticsearchSource(es.Client, cfg.Bookings.Elasticsearch.Index, log)

		// The search index is read-only; refunds go to the system of record.
		switch {
		case cfg.Database.Postgres.Host != "":
			pgStore, err := openPostgres()
			if err != nil {
				return nil, err
			}
			stores.Refunds = pgStore
		case cfg.Bookings.SheetDB.BaseURL != "":
			stores.Refunds = bookings.NewSheetDBStore(cfg.Bookings.SheetDB.BaseURL, sheetTimeout, log)
		}

	default:
		return nil, fmt.Errorf("unknown booking source %q", cfg.Bookings.Source)
	}

	if ttl := config.GetDuration(cfg.Bookings.CacheTTL); ttl > 0 {
		stores.Cache = bookings.NewCachedSource(stores.Source, rdb.Client, ttl, log)
		stores.Source = stores.Cache
	}
	return stores, nil
}

// buildNotifier returns nil when every channel is disabled.
func buildNotifier(ctx context.Context, cfg *config.Config, log logger.Logger) (*notify.RefundNotifier, error) {
	n := cfg.Notifications
	if !n.Email.Enabled && !n.SMS.Enabled {
		return nil, nil
	}

	awsCfg, err := awsclient.LoadConfig(ctx, n.AWS.Region)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return notify.NewRefundNotifier(notify.Config{
		EmailEnabled: n.Email.Enabled,
		SMSEnabled:   n.SMS.Enabled,
		FromEmail:    n.Email.FromEmail,
		SMSSenderID:  n.SMS.SenderID,
	}, awsclient.NewSESClient(awsCfg), awsclient.NewSNSClient(awsCfg), log), nil
}
