package bookings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	apperrors "airline-assist/internal/common/errors"
	"airline-assist/internal/common/logger"
	"airline-assist/internal/models"
)

const maxBookingsPerEmail = 100

// ElasticsearchSource reads bookings indexed by the reporting pipeline.
type ElasticsearchSource struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewElasticsearchSource(client *elasticsearch.Client, index string, log logger.Logger) *ElasticsearchSource {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &ElasticsearchSource{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"source": "elasticsearch", "index": index}),
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.BookingRecord `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func buildEmailQuery(email string) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"user_email": map[string]interface{}{
					"value":            normalizeEmail(email),
					"case_insensitive": true,
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"booking_date": map[string]interface{}{"order": "desc", "unmapped_type": "keyword"}},
		},
	}
}

func (s *ElasticsearchSource) FindByEmail(ctx context.Context, email string) ([]models.BookingRecord, error) {
	body, err := json.Marshal(buildEmailQuery(email))
	if err != nil {
		return nil, err
	}

	size := maxBookingsPerEmail
	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, apperrors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, apperrors.NewIndexNotFoundError(s.index)
	}
	if res.IsError() {
		return nil, apperrors.NewSearchQueryFailedError(s.index, fmt.Errorf("status %s", res.Status()))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewSearchQueryFailedError(s.index, err)
	}

	out := make([]models.BookingRecord, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	s.logger.Debug("bookings loaded", map[string]interface{}{"count": len(out)})
	return out, nil
}
