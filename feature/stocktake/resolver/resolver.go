package resolver

import (
	"context"
	"fmt"
	"strings"

	"stocktake/core/apperror"
	"stocktake/feature/stocktake/models"
	"stocktake/feature/stocktake/registry"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Matcher is one step of the resolution chain.
type Matcher struct {
	// Name identifies the matcher in results and logs.
	Name string
	// Field is the registry attribute the matcher searches.
	Field registry.Field
}

// DefaultChain is the resolution order: exact identifiers first, fuzzy last.
var DefaultChain = []Matcher{
	{Name: "sku", Field: registry.FieldSKU},
	{Name: "barcode", Field: registry.FieldBarcode},
	{Name: "qr_code", Field: registry.FieldQRCode},
	{Name: "inventory_number", Field: registry.FieldInventoryNumber},
	{Name: "fuzzy", Field: registry.FieldFuzzy},
}

// Resolution is the outcome of resolving a scanned code.
type Resolution struct {
	Code      string      `json:"code"`
	Found     bool        `json:"found"`
	Tool      models.Tool `json:"tool"`
	MatchedBy string      `json:"matched_by,omitempty"`
	// Candidates is the number of registry items the winning matcher saw.
	Candidates int `json:"candidates,omitempty"`
	// Ambiguous is set when more than one item matched; Tool is the first
	// in registry order.
	Ambiguous bool `json:"ambiguous,omitempty"`
}

// Resolver maps raw scanned codes to registry tools.
type Resolver struct {
	registry registry.Registry
	chain    []Matcher
	logger   *zap.Logger
	group    singleflight.Group
}

// New creates a resolver using DefaultChain.
func New(reg registry.Registry, logger *zap.Logger) *Resolver {
	return NewWithChain(reg, DefaultChain, logger)
}

// NewWithChain creates a resolver with a custom matcher order.
func NewWithChain(reg registry.Registry, chain []Matcher, logger *zap.Logger) *Resolver {
	return &Resolver{registry: reg, chain: chain, logger: logger}
}

// Normalize trims and lowercases a scanned code.
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Resolve walks the matcher chain and returns the first match. A code that
// matches nothing is not an error: the Resolution has Found == false.
// Identical concurrent lookups share one registry round trip.
func (r *Resolver) Resolve(ctx context.Context, code string) (Resolution, error) {
	key := Normalize(code)
	if key == "" {
		return Resolution{}, fmt.Errorf("%w: empty code", apperror.ErrInvalidInput)
	}

	// One caller giving up must not fail the others sharing the lookup.
	shared := context.WithoutCancel(ctx)
	v, err, _ := r.group.Do(key, func() (any, error) {
		return r.resolve(shared, key)
	})
	if err != nil {
		return Resolution{}, err
	}
	res := v.(Resolution)
	res.Code = strings.TrimSpace(code)
	return res, nil
}

func (r *Resolver) resolve(ctx context.Context, key string) (Resolution, error) {
	for _, m := range r.chain {
		candidates, err := r.registry.Search(ctx, m.Field, key)
		if err != nil {
			return Resolution{}, fmt.Errorf("resolve by %s: %w", m.Name, err)
		}
		if len(candidates) == 0 {
			continue
		}

		res := Resolution{
			Found:      true,
			Tool:       candidates[0],
			MatchedBy:  m.Name,
			Candidates: len(candidates),
			Ambiguous:  len(candidates) > 1,
		}
		if res.Ambiguous {
			r.logger.Warn("Ambiguous code, using first registry match",
				zap.String("code", key),
				zap.String("matcher", m.Name),
				zap.Int("candidates", len(candidates)),
				zap.String("tool", res.Tool.ID),
			)
		}
		return res, nil
	}
	return Resolution{Found: false}, nil
}
