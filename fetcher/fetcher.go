// Package fetcher performs the authenticated API reads. Every fetch is
// contained: a transport failure, a non-200 status, or a malformed body is
// logged and degrades that fetch to whatever data was recovered, so the
// pipeline always runs to completion over the data it has.
package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"unity-handler-report/config"
	"unity-handler-report/decoder"
	apperrors "unity-handler-report/errors"
	"unity-handler-report/metrics"
	"unity-handler-report/models"
)

// XML element names the API wraps each entity in.
const (
	elementSchedule          = "Schedule"
	elementCallHandler       = "Callhandler"
	elementScheduleSetMember = "ScheduleSetMember"
)

// Client fetches configuration entities from the admin API.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
	log      *zap.Logger
}

// New builds a Client from the loaded configuration. TLS verification is on
// unless the config explicitly opts out.
func New(cfg *config.Config, log *zap.Logger) *Client {
	transport := http.DefaultTransport
	if cfg.InsecureSkipVerify {
		log.Warn("TLS certificate verification is disabled")
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		username: cfg.Username,
		password: cfg.Password,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		log: log,
	}
}

// get performs one authenticated GET and returns the full body. endpoint is
// the metrics label, path the URL suffix under the base URL.
func (c *Client) get(ctx context.Context, endpoint, path string) ([]byte, error) {
	url := c.baseURL + path
	c.log.Debug("sending request", zap.String("url", url))

	start := time.Now()
	defer func() {
		metrics.FetchDurationSeconds.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &apperrors.TransportError{Endpoint: endpoint, Err: err}
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &apperrors.TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.TransportError{Endpoint: endpoint, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &apperrors.TransportError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}
	return body, nil
}

// fetchRecords runs a GET and decodes the body into records. Failures of
// either kind are logged and counted; the partial record list is returned.
func (c *Client) fetchRecords(ctx context.Context, endpoint, path, element string) []models.Record {
	body, err := c.get(ctx, endpoint, path)
	if err != nil {
		metrics.FetchErrorsTotal.WithLabelValues(endpoint).Inc()
		c.log.Error("fetch failed", zap.String("endpoint", endpoint), zap.Error(err))
		return nil
	}

	records, err := decoder.DecodeAll(body, element)
	if err != nil {
		metrics.DecodeErrorsTotal.WithLabelValues(element).Inc()
		c.log.Error("decode failed, keeping records parsed before the error",
			zap.String("endpoint", endpoint),
			zap.Int("records", len(records)),
			zap.Error(err))
	}
	metrics.RecordsDecodedTotal.WithLabelValues(element).Add(float64(len(records)))
	return records
}

// Schedules retrieves the full schedule list.
func (c *Client) Schedules(ctx context.Context) []models.Schedule {
	records := c.fetchRecords(ctx, "schedules", "/schedules", elementSchedule)
	schedules := make([]models.Schedule, 0, len(records))
	for _, r := range records {
		schedules = append(schedules, models.ScheduleFromRecord(r))
	}
	c.log.Info("retrieved schedules", zap.Int("count", len(schedules)))
	return schedules
}

// CallHandlers retrieves the full call handler list, unclassified.
func (c *Client) CallHandlers(ctx context.Context) []models.CallHandler {
	records := c.fetchRecords(ctx, "callhandlers", "/handlers/callhandlers", elementCallHandler)
	handlers := make([]models.CallHandler, 0, len(records))
	for _, r := range records {
		handlers = append(handlers, models.CallHandlerFromRecord(r))
	}
	c.log.Info("retrieved call handlers", zap.Int("count", len(handlers)))
	return handlers
}

// ScheduleSetMembers retrieves the members of one schedule set.
func (c *Client) ScheduleSetMembers(ctx context.Context, setID string) []models.ScheduleSetMember {
	path := fmt.Sprintf("/schedulesets/%s/schedulesetmembers", setID)
	records := c.fetchRecords(ctx, "schedulesetmembers", path, elementScheduleSetMember)
	members := make([]models.ScheduleSetMember, 0, len(records))
	for _, r := range records {
		members = append(members, models.ScheduleSetMemberFromRecord(r))
	}
	return members
}

// AllScheduleSetMembers fetches members for every distinct schedule set the
// given handlers reference, sequentially, and indexes them by set id.
func (c *Client) AllScheduleSetMembers(ctx context.Context, handlers []models.CallHandler) models.MemberIndex {
	index := make(models.MemberIndex)
	for _, h := range handlers {
		id := h.ScheduleSetObjectID
		if id == "" {
			continue
		}
		if _, done := index[id]; done {
			continue
		}
		c.log.Debug("retrieving schedule set members", zap.String("schedule_set", id))
		index[id] = c.ScheduleSetMembers(ctx, id)
	}
	return index
}
