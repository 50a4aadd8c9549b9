package counting

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"stocktake/core/apperror"
	"stocktake/core/auth"
	"stocktake/feature/stocktake/models"
	"stocktake/feature/stocktake/registry"
	"stocktake/feature/stocktake/resolver"
	"stocktake/feature/stocktake/store"
	"stocktake/feature/stocktake/stocktaketest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*Service, *store.Store) {
	db := stocktaketest.NewDB(t)
	stocktaketest.SeedTools(t, db, stocktaketest.Drill, stocktaketest.Helmet, stocktaketest.Gloves)
	st := store.New(db, 3)
	reg := registry.NewGormRegistry(db)
	svc := NewService(st, resolver.New(reg, zap.NewNop()), reg, zap.NewNop())

	for id, status := range map[string]models.SessionStatus{"active": models.StatusActive, "paused": models.StatusPaused, "ended": models.StatusEnded} {
		require.NoError(t, st.CreateSession(context.Background(), &models.Session{ID: id, Name: id, Status: status}))
	}
	return svc, st
}

func TestScan_Accumulates(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	res, err := svc.Scan(ctx, stocktaketest.Operator, "active", "D-1234", 2)
	require.NoError(t, err)
	assert.Equal(t, "t-drill", res.Tool.ID)
	assert.Equal(t, 2, res.CountedQty)
	assert.Equal(t, "sku", res.MatchedBy)

	res, err = svc.Scan(ctx, stocktaketest.Operator, "active", "5901234123457", 3)
	require.NoError(t, err)
	assert.Equal(t, 5, res.CountedQty)
}

func TestScan_SetCountThenScan(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	rec, err := svc.SetCount(ctx, stocktaketest.Admin, "active", "t-drill", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, rec.CountedQty)

	res, err := svc.Scan(ctx, stocktaketest.Operator, "active", "D-1234", 2)
	require.NoError(t, err)
	assert.Equal(t, 9, res.CountedQty)
}

func TestScan_Errors(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   auth.Actor
		session string
		code    string
		qty     int
		wantErr error
	}{
		{"anonymous", auth.Actor{}, "active", "D-1234", 1, apperror.ErrUnauthorized},
		{"zero quantity", stocktaketest.Operator, "active", "D-1234", 0, apperror.ErrInvalidInput},
		{"negative quantity", stocktaketest.Operator, "active", "D-1234", -1, apperror.ErrInvalidInput},
		{"paused session", stocktaketest.Operator, "paused", "D-1234", 1, apperror.ErrSessionNotActive},
		{"ended session", stocktaketest.Operator, "ended", "D-1234", 1, apperror.ErrSessionNotActive},
		{"missing session", stocktaketest.Operator, "nope", "D-1234", 1, apperror.ErrNotFound},
		{"unresolved code", stocktaketest.Operator, "active", "XYZ-000", 1, apperror.ErrNotFound},
		{"empty code", stocktaketest.Operator, "active", "  ", 1, apperror.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Scan(ctx, tt.actor, tt.session, tt.code, tt.qty)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestScan_UnresolvedCarriesCode(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Scan(context.Background(), stocktaketest.Operator, "active", " XYZ-000 ", 1)
	require.Error(t, err)
	assert.True(t, IsUnresolved(err))
	assert.Contains(t, err.Error(), `"XYZ-000"`)
	assert.Contains(t, err.Error(), "session=active")
}

func TestScan_Concurrent(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(qty int) {
			defer wg.Done()
			_, err := svc.Scan(ctx, stocktaketest.Operator, "active", "D-1234", qty)
			assert.NoError(t, err)
		}(i%3 + 1)
	}
	wg.Wait()

	want := 0
	for i := 0; i < workers; i++ {
		want += i%3 + 1
	}
	counts, err := st.CountsByTool(ctx, "active")
	require.NoError(t, err)
	assert.Equal(t, want, counts["t-drill"])
}

func TestSetCount(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	rec, err := svc.SetCount(ctx, stocktaketest.Operator, "active", "t-helmet", -4)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.CountedQty)

	_, err = svc.SetCount(ctx, stocktaketest.Operator, "active", "t-unknown", 1)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.SetCount(ctx, stocktaketest.Operator, "paused", "t-helmet", 1)
	assert.ErrorIs(t, err, apperror.ErrSessionNotActive)

	records, err := svc.Counts(ctx, stocktaketest.Operator, "active")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "t-helmet", records[0].ToolID)
}

func TestScanBatch(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	result, err := svc.ScanBatch(ctx, stocktaketest.Operator, "active", []ScanEvent{
		{Code: "D-1234", Quantity: units(1)},
		{Code: "NOPE", Quantity: units(1)},
		{Code: "H-200", Quantity: units(0)},
		{Code: "D-1234", Quantity: units(2)},
		{Code: "H-200", Quantity: units(-3)},
		{Code: "QR:HELMET:200"},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 6)
	assert.Equal(t, 3, result.Counted)
	assert.Equal(t, 1, result.Unresolved)
	assert.Equal(t, 2, result.Rejected)
	assert.True(t, result.Items[1].Unresolved)
	assert.Equal(t, 3, result.Items[3].Result.CountedQty)
	assert.Equal(t, 1, result.Items[5].Quantity)
	assert.Equal(t, 1, result.Items[5].Result.CountedQty)
}

func TestScanEvent_Units(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"missing quantity", `{"code":"D-1234"}`, 1},
		{"null quantity", `{"code":"D-1234","quantity":null}`, 1},
		{"explicit quantity", `{"code":"D-1234","quantity":4}`, 4},
		{"explicit zero is kept", `{"code":"D-1234","quantity":0}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ev ScanEvent
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &ev))
			assert.Equal(t, tt.want, ev.Units())
		})
	}
}

func units(n int) *int { return &n }

func TestScanBatch_StopsOnSessionError(t *testing.T) {
	svc, _ := setup(t)

	result, err := svc.ScanBatch(context.Background(), stocktaketest.Operator, "paused", []ScanEvent{
		{Code: "D-1234"},
		{Code: "H-200"},
	})
	assert.ErrorIs(t, err, apperror.ErrSessionNotActive)
	assert.Len(t, result.Items, 1)
}
