package stocktake

import (
	"stocktake/feature/stocktake/counting"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type createSessionRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Notes string `json:"notes" validate:"max=2000"`
}

type statusRequest struct {
	Action string `json:"action" validate:"required,oneof=pause resume end"`
}

type scanRequest struct {
	Code     string `json:"code" validate:"required,max=512"`
	Quantity *int   `json:"quantity,omitempty" validate:"omitempty,gte=1"`
}

type batchRequest struct {
	Events []counting.ScanEvent `json:"events" validate:"required,min=1,max=500"`
}

type setCountRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type proposeRequest struct {
	ToolID string `json:"tool_id" validate:"required"`
	// DifferenceQty is derived from the current counts when omitted.
	DifferenceQty *int   `json:"difference_qty"`
	Reason        string `json:"reason" validate:"max=1000"`
}

type bulkProposeRequest struct {
	Query            string `json:"q"`
	MinAbs           int    `json:"min_abs" validate:"gte=0"`
	IncludeUncounted bool   `json:"include_uncounted"`
	Reason           string `json:"reason" validate:"max=1000"`
}

type autoAcceptRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
