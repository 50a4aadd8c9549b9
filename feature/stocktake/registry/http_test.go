package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"stocktake/core/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRegistry struct {
	mu     sync.Mutex
	tools  map[string]map[string]any
	order  []string
	puts   []map[string]any
	header http.Header

	// beforePut runs under the lock ahead of each conditional write check.
	beforePut func(tools map[string]map[string]any)
	conflicts int
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		tools: map[string]map[string]any{
			"1": {"id": 1, "name": "Impact Drill", "sku": "D-1234", "quantity": "10.00", "issued_quantity": "2"},
			"2": {"tool_id": "2", "name": "Safety Helmet", "qrCode": "QR:HELMET", "qty": 5.0},
			"3": {"id": "3", "name": "Drill Bits", "sku": "D-1234-B", "serial": "SN-9", "quantity": 7},
		},
		order: []string{"1", "2", "3"},
	}
}

func (f *fakeRegistry) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.header = r.Header.Clone()

		id := strings.TrimPrefix(r.URL.Path, "/api/tools/")
		switch {
		case r.URL.Path == "/api/tools" && r.Method == http.MethodGet:
			var list []any
			for _, key := range f.order {
				list = append(list, f.tools[key])
			}
			// Remote search is loose on purpose; the client must filter.
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"items": list}})
		case r.Method == http.MethodGet:
			tool, ok := f.tools[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"data": tool})
		case r.Method == http.MethodPut:
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if f.beforePut != nil {
				f.beforePut(f.tools)
			}
			tool, ok := f.tools[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			current := strconv.Quote(strconv.Itoa(toolFromMap(tool).Quantity))
			if match := r.Header.Get("If-Match"); match != "" && match != current {
				f.conflicts++
				w.WriteHeader(http.StatusPreconditionFailed)
				return
			}
			f.puts = append(f.puts, body)
			tool["quantity"] = body["quantity"]
			delete(tool, "qty")
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func newHTTPRegistry(t *testing.T) (*HTTPRegistry, *fakeRegistry) {
	fake := newFakeRegistry()
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)
	return NewHTTPRegistry(Config{BaseURL: srv.URL + "/api/", Token: "secret", TimeoutSeconds: 2, Concurrency: 2}, zap.NewNop()), fake
}

func TestHTTPRegistry_Get(t *testing.T) {
	reg, fake := newHTTPRegistry(t)

	tool, err := reg.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "1", tool.ID)
	assert.Equal(t, "Impact Drill", tool.Name)
	assert.Equal(t, 10, tool.Quantity)
	assert.Equal(t, 2, tool.IssuedQuantity)
	assert.Equal(t, "Bearer secret", fake.header.Get("Authorization"))

	helmet, err := reg.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "2", helmet.ID)
	assert.Equal(t, "QR:HELMET", helmet.QRCode)
	assert.Equal(t, 5, helmet.Quantity)

	_, err = reg.Get(context.Background(), "404")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestHTTPRegistry_GetMany(t *testing.T) {
	reg, _ := newHTTPRegistry(t)

	tools, err := reg.GetMany(context.Background(), []string{"1", "2", "3", "nope"})
	require.NoError(t, err)
	assert.Len(t, tools, 3)
	assert.Equal(t, 7, tools["3"].Quantity)
}

func TestHTTPRegistry_ListAndSearch(t *testing.T) {
	reg, _ := newHTTPRegistry(t)
	ctx := context.Background()

	all, err := reg.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "1", all[0].ID)

	bySKU, err := reg.Search(ctx, FieldSKU, "d-1234")
	require.NoError(t, err)
	require.Len(t, bySKU, 1)
	assert.Equal(t, "1", bySKU[0].ID)

	fuzzy, err := reg.Search(ctx, FieldFuzzy, "drill")
	require.NoError(t, err)
	assert.Len(t, fuzzy, 2)

	bySerial, err := reg.Search(ctx, FieldFuzzy, "sn-9")
	require.NoError(t, err)
	require.Len(t, bySerial, 1)
	assert.Equal(t, "3", bySerial[0].ID)
}

func TestHTTPRegistry_AdjustQuantity(t *testing.T) {
	reg, fake := newHTTPRegistry(t)
	ctx := context.Background()

	tool, err := reg.AdjustQuantity(ctx, "2", -2)
	require.NoError(t, err)
	assert.Equal(t, 3, tool.Quantity)
	require.Len(t, fake.puts, 1)
	assert.EqualValues(t, 3, fake.puts[0]["quantity"])

	_, err = reg.AdjustQuantity(ctx, "2", -4)
	assert.ErrorIs(t, err, apperror.ErrPreconditionFailed)
	assert.Len(t, fake.puts, 1)
}

func TestHTTPRegistry_AdjustQuantityConcurrent(t *testing.T) {
	reg, fake := newHTTPRegistry(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := reg.AdjustQuantity(ctx, "3", 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	tool, err := reg.Get(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, 17, tool.Quantity)
	assert.Len(t, fake.puts, 10)
}

func TestHTTPRegistry_AdjustQuantityAcrossClients(t *testing.T) {
	fake := newFakeRegistry()
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)
	cfg := Config{BaseURL: srv.URL + "/api", TimeoutSeconds: 2}
	clients := []*HTTPRegistry{NewHTTPRegistry(cfg, zap.NewNop()), NewHTTPRegistry(cfg, zap.NewNop())}
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for _, reg := range clients {
		for range 2 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := reg.AdjustQuantity(ctx, "3", 1)
				errs <- err
			}()
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	tool, err := clients[0].Get(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, 11, tool.Quantity)
}

func TestHTTPRegistry_AdjustQuantityRetriesStaleWrite(t *testing.T) {
	reg, fake := newHTTPRegistry(t)
	bumped := false
	fake.beforePut = func(tools map[string]map[string]any) {
		if !bumped {
			bumped = true
			tools["3"]["quantity"] = 9
		}
	}

	tool, err := reg.AdjustQuantity(context.Background(), "3", 1)
	require.NoError(t, err)
	assert.Equal(t, 10, tool.Quantity)
	assert.Equal(t, 1, fake.conflicts)
	require.Len(t, fake.puts, 1)
	assert.EqualValues(t, 9, fake.puts[0]["expected_quantity"])
}

func TestHTTPRegistry_AdjustQuantityConflictExhausted(t *testing.T) {
	reg, fake := newHTTPRegistry(t)
	fake.beforePut = func(tools map[string]map[string]any) {
		tools["3"]["quantity"] = toolFromMap(tools["3"]).Quantity + 1
	}

	_, err := reg.AdjustQuantity(context.Background(), "3", 1)
	assert.ErrorIs(t, err, apperror.ErrStorageConflict)
	assert.Equal(t, adjustAttempts, fake.conflicts)
	assert.Empty(t, fake.puts)
}

func TestHTTPRegistry_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	reg := NewHTTPRegistry(Config{BaseURL: srv.URL}, zap.NewNop())
	_, err := reg.List(context.Background())
	assert.ErrorContains(t, err, "status 502")
}
