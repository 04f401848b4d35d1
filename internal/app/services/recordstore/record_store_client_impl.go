package recordstore

import (
	"bytes"
	"class-registration-service/internal/app/config"
	"class-registration-service/internal/app/contracts"
	"class-registration-service/internal/pkg/constvars"
	"class-registration-service/internal/pkg/exceptions"
	"class-registration-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const recordsPath = "%s/api/v2/tables/%s/records"

var (
	recordStoreClientInstance contracts.RecordStoreClient
	onceRecordStoreClient     sync.Once
)

// StatusError is a non-2xx answer from the record store.
type StatusError struct {
	Table      string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("record store %s responded %d: %s", e.Table, e.StatusCode, e.Message)
}

// IsNotFound reports whether err carries a 404 from the record store.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == constvars.StatusNotFound
}

type recordStoreClient struct {
	BaseUrl     string
	ApiToken    string
	MaxAttempts int
	Backoff     time.Duration
	HTTPClient  *http.Client
	Limiter     *rate.Limiter
	Log         *zap.Logger
}

func NewRecordStoreClient(cfg config.AppRecordStore, logger *zap.Logger) contracts.RecordStoreClient {
	onceRecordStoreClient.Do(func() {
		recordStoreClientInstance = newRecordStoreClient(cfg, logger)
	})
	return recordStoreClientInstance
}

func newRecordStoreClient(cfg config.AppRecordStore, logger *zap.Logger) *recordStoreClient {
	maxAttempts := max(cfg.MaxAttempts, 1)
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &recordStoreClient{
		BaseUrl:     strings.TrimRight(cfg.BaseUrl, "/"),
		ApiToken:    cfg.ApiToken,
		MaxAttempts: maxAttempts,
		Backoff:     time.Duration(cfg.BackoffInMillis) * time.Millisecond,
		HTTPClient:  &http.Client{Timeout: time.Duration(cfg.TimeoutInSeconds) * time.Second},
		Limiter:     rate.NewLimiter(limit, max(cfg.RequestsPerSecond, 1)),
		Log:         logger,
	}
}

func (c *recordStoreClient) ListRecords(ctx context.Context, table string, query contracts.RecordQuery) (*contracts.RecordPage, error) {
	params := url.Values{}
	if query.Where != "" {
		params.Set("where", query.Where)
	}
	if query.Sort != "" {
		params.Set("sort", query.Sort)
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Offset > 0 {
		params.Set("offset", strconv.Itoa(query.Offset))
	}

	body, err := c.do(ctx, constvars.MethodGet, table, "", params, nil)
	if err != nil {
		return nil, err
	}

	list := gjson.GetBytes(body, "list")
	if !list.IsArray() {
		return nil, exceptions.ErrRecordStoreMalformedRow(errors.New("list is missing"), table)
	}
	page := &contracts.RecordPage{
		TotalRows: int(gjson.GetBytes(body, "pageInfo.totalRows").Int()),
	}
	for _, row := range list.Array() {
		page.Rows = append(page.Rows, []byte(row.Raw))
	}
	return page, nil
}

func (c *recordStoreClient) GetRecord(ctx context.Context, table, recordID string) ([]byte, error) {
	return c.do(ctx, constvars.MethodGet, table, "/"+url.PathEscape(recordID), nil, nil)
}

func (c *recordStoreClient) CreateRecord(ctx context.Context, table string, fields map[string]interface{}) ([]byte, error) {
	return c.do(ctx, constvars.MethodPost, table, "", nil, fields)
}

// UpdateRecord patches one row. fields must carry the row id.
func (c *recordStoreClient) UpdateRecord(ctx context.Context, table string, fields map[string]interface{}) ([]byte, error) {
	return c.do(ctx, constvars.MethodPatch, table, "", nil, fields)
}

// do sends one logical request, retrying transport failures, 429 and 5xx with
// exponential backoff. Other 4xx answers fail immediately.
func (c *recordStoreClient) do(ctx context.Context, method, table, path string, params url.Values, body interface{}) ([]byte, error) {
	requestID := utils.GetRequestID(ctx)

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, exceptions.ErrCannotMarshalJSON(err)
		}
	}

	endpoint := fmt.Sprintf(recordsPath, c.BaseUrl, url.PathEscape(table)) + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, c.Backoff<<(attempt-2)); err != nil {
				return nil, exceptions.ErrServerDeadlineExceeded(err)
			}
		}
		if err := c.Limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, exceptions.ErrServerDeadlineExceeded(ctx.Err())
			}
			return nil, exceptions.ErrRecordStoreRateLimited(err)
		}

		startTime := time.Now()
		respBody, statusCode, err := c.send(ctx, method, endpoint, payload)
		c.Log.Debug("recordStoreClient.do request finished",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMethodKey, method),
			zap.String(constvars.LoggingTableKey, table),
			zap.Int(constvars.LoggingAttemptKey, attempt),
			zap.Int(constvars.LoggingStatusCodeKey, statusCode),
			zap.Duration(constvars.LoggingDurationKey, time.Since(startTime)),
		)
		if err != nil {
			if ctx.Err() != nil {
				return nil, exceptions.ErrServerDeadlineExceeded(ctx.Err())
			}
			c.Log.Warn("recordStoreClient.do transport error, will retry",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingTableKey, table),
				zap.Int(constvars.LoggingAttemptKey, attempt),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		if statusCode >= 200 && statusCode < 300 {
			return respBody, nil
		}

		statusErr := &StatusError{Table: table, StatusCode: statusCode, Message: errorMessage(respBody)}
		if !retryable(statusCode) {
			return nil, exceptions.ErrRecordStoreRequest(statusErr, table, statusCode, statusErr.Message)
		}
		c.Log.Warn("recordStoreClient.do retryable status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTableKey, table),
			zap.Int(constvars.LoggingAttemptKey, attempt),
			zap.Int(constvars.LoggingStatusCodeKey, statusCode),
		)
		lastErr = statusErr
	}

	c.Log.Error("recordStoreClient.do giving up",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTableKey, table),
		zap.Int(constvars.LoggingAttemptKey, c.MaxAttempts),
		zap.Error(lastErr),
	)
	return nil, exceptions.ErrRecordStoreUnavailable(lastErr, c.MaxAttempts)
}

func (c *recordStoreClient) send(ctx context.Context, method, endpoint string, payload []byte) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set(constvars.HeaderRecordStoreToken, c.ApiToken)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	if payload != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

func (c *recordStoreClient) sleep(ctx context.Context, wait time.Duration) error {
	if wait <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func retryable(statusCode int) bool {
	return statusCode == constvars.StatusTooManyRequests || statusCode >= constvars.StatusInternalServerError
}

func errorMessage(body []byte) string {
	for _, path := range []string{"msg", "message", "error"} {
		if value := gjson.GetBytes(body, path); value.Exists() && value.String() != "" {
			return value.String()
		}
	}
	message := strings.TrimSpace(string(body))
	if len(message) > 200 {
		message = message[:200]
	}
	return message
}
