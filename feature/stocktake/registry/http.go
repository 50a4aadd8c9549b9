package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"stocktake/core/apperror"
	"stocktake/feature/stocktake/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// HTTPRegistry talks to a REST tool registry.
//
// Endpoints used:
//
//	GET {base}/tools            list, or search with ?sku= ?barcode= ?qr_code= ?inventory_number= ?q=
//	GET {base}/tools/{id}       single tool
//	PUT {base}/tools/{id}       {"quantity": n, "expected_quantity": m}, If-Match: "m"
//
// Writes are conditional on the quantity that was read. A 409 or 412 reply
// means another writer got there first; the adjustment is re-read and
// retried up to adjustAttempts times before apperror.ErrStorageConflict.
type HTTPRegistry struct {
	baseURL     string
	token       string
	concurrency int
	client      *http.Client
	logger      *zap.Logger

	// toolLocks serializes adjustments per tool within this process.
	toolLocks sync.Map
}

const adjustAttempts = 5

// errWriteConflict marks a conditional write the registry refused.
var errWriteConflict = errors.New("registry write conflict")

// NewHTTPRegistry creates a REST registry client.
func NewHTTPRegistry(cfg Config, logger *zap.Logger) *HTTPRegistry {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 8
	}
	return &HTTPRegistry{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		token:       cfg.Token,
		concurrency: concurrency,
		client:      &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// Get returns a single tool.
func (r *HTTPRegistry) Get(ctx context.Context, id string) (models.Tool, error) {
	var body any
	if err := r.do(ctx, http.MethodGet, "/tools/"+url.PathEscape(id), nil, nil, &body); err != nil {
		return models.Tool{}, fmt.Errorf("tool %s: %w", id, err)
	}
	obj, ok := extractObject(body)
	if !ok {
		return models.Tool{}, fmt.Errorf("tool %s: unexpected registry response", id)
	}
	tool := toolFromMap(obj)
	if tool.ID == "" {
		tool.ID = id
	}
	return tool, nil
}

// GetMany fetches tools concurrently. Unknown ids are omitted from the result.
func (r *HTTPRegistry) GetMany(ctx context.Context, ids []string) (map[string]models.Tool, error) {
	out := make(map[string]models.Tool, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for _, id := range ids {
		g.Go(func() error {
			tool, err := r.Get(gctx, id)
			if errors.Is(err, apperror.ErrNotFound) {
				r.logger.Debug("Counted tool missing from registry", zap.String("tool", id))
				return nil
			}
			if err != nil {
				return err
			}
			mu.Lock()
			out[id] = tool
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns every tool in registry order.
func (r *HTTPRegistry) List(ctx context.Context) ([]models.Tool, error) {
	var body any
	if err := r.do(ctx, http.MethodGet, "/tools", nil, nil, &body); err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	return toolsFromList(body), nil
}

// Search queries the registry and keeps only candidates that satisfy the
// field semantics locally, whatever matching the remote applies.
func (r *HTTPRegistry) Search(ctx context.Context, field Field, value string) ([]models.Tool, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return nil, nil
	}

	param := string(field)
	if field == FieldFuzzy {
		param = "q"
	} else if _, ok := exactColumns[field]; !ok {
		return nil, fmt.Errorf("%w: unknown search field %q", apperror.ErrInvalidInput, field)
	}

	var body any
	query := url.Values{param: {strings.TrimSpace(value)}}
	if err := r.do(ctx, http.MethodGet, "/tools", query, nil, &body); err != nil {
		return nil, fmt.Errorf("failed to search tools by %s: %w", field, err)
	}

	var out []models.Tool
	for _, t := range toolsFromList(body) {
		if fieldMatches(t, field, v) {
			out = append(out, t)
		}
	}
	return out, nil
}

// AdjustQuantity reads the current quantity and writes quantity+delta.
// The REST registry only accepts absolute quantities, so the write carries
// the quantity it was computed from and is retried when that went stale.
func (r *HTTPRegistry) AdjustQuantity(ctx context.Context, id string, delta int) (models.Tool, error) {
	mu, _ := r.toolLocks.LoadOrStore(id, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
	defer mu.(*sync.Mutex).Unlock()

	for attempt := 1; attempt <= adjustAttempts; attempt++ {
		tool, err := r.adjustOnce(ctx, id, delta)
		if !errors.Is(err, errWriteConflict) {
			return tool, err
		}
		r.logger.Debug("Registry quantity changed during adjustment, retrying",
			zap.String("tool", id), zap.Int("attempt", attempt))
	}
	return models.Tool{}, fmt.Errorf("%w: tool %s quantity kept changing after %d attempts",
		apperror.ErrStorageConflict, id, adjustAttempts)
}

func (r *HTTPRegistry) adjustOnce(ctx context.Context, id string, delta int) (models.Tool, error) {
	tool, err := r.Get(ctx, id)
	if err != nil {
		return models.Tool{}, err
	}
	next := tool.Quantity + delta
	if next < 0 {
		return models.Tool{}, fmt.Errorf("%w: tool %s quantity would become negative", apperror.ErrPreconditionFailed, id)
	}

	var body any
	payload := map[string]int{"quantity": next, "expected_quantity": tool.Quantity}
	header := http.Header{"If-Match": {strconv.Quote(strconv.Itoa(tool.Quantity))}}
	if err := r.send(ctx, http.MethodPut, "/tools/"+url.PathEscape(id), nil, header, payload, &body); err != nil {
		return models.Tool{}, fmt.Errorf("failed to update tool %s: %w", id, err)
	}
	if obj, ok := extractObject(body); ok {
		if updated := toolFromMap(obj); updated.ID != "" {
			return updated, nil
		}
	}
	tool.Quantity = next
	return tool, nil
}

func (r *HTTPRegistry) do(ctx context.Context, method, path string, query url.Values, payload any, out *any) error {
	return r.send(ctx, method, path, query, nil, payload, out)
}

func (r *HTTPRegistry) send(ctx context.Context, method, path string, query url.Values, header http.Header, payload any, out *any) error {
	endpoint := r.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound:
		return apperror.ErrNotFound
	case http.StatusConflict, http.StatusPreconditionFailed:
		return errWriteConflict
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("registry %s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("registry %s %s: invalid JSON: %w", method, path, err)
	}
	return nil
}

func fieldMatches(t models.Tool, field Field, v string) bool {
	switch field {
	case FieldSKU:
		return strings.ToLower(t.SKU) == v
	case FieldBarcode:
		return strings.ToLower(t.Barcode) == v
	case FieldQRCode:
		return strings.ToLower(t.QRCode) == v
	case FieldInventoryNumber:
		return strings.ToLower(t.InventoryNumber) == v
	case FieldFuzzy:
		return strings.Contains(strings.ToLower(t.Name), v) || strings.Contains(strings.ToLower(t.SerialNumber), v)
	}
	return false
}
