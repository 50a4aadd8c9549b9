package models

import "time"

// Correction is a proposed adjustment of a tool's registry quantity.
type Correction struct {
	ID            string     `json:"id" gorm:"column:id;primaryKey;size:36"`
	SessionID     string     `json:"session_id" gorm:"column:session_id;size:36;index;not null"`
	ToolID        string     `json:"tool_id" gorm:"column:tool_id;size:64;index;not null"`
	DifferenceQty int        `json:"difference_qty" gorm:"column:difference_qty;not null"`
	Reason        string     `json:"reason" gorm:"column:reason;size:1000"`
	ProposedBy    string     `json:"proposed_by" gorm:"column:proposed_by;size:64"`
	ProposedAt    time.Time  `json:"proposed_at" gorm:"column:proposed_at"`
	AcceptedBy    *string    `json:"accepted_by,omitempty" gorm:"column:accepted_by;size:64"`
	AcceptedAt    *time.Time `json:"accepted_at,omitempty" gorm:"column:accepted_at;index"`
}

// TableName overrides the table name.
func (Correction) TableName() string {
	return "inventory_corrections"
}

// Pending reports whether the correction still awaits acceptance.
func (c Correction) Pending() bool {
	return c.AcceptedAt == nil
}

// Setting is a persisted key/value option.
type Setting struct {
	Key       string    `json:"key" gorm:"column:setting_key;primaryKey;size:64"`
	Value     string    `json:"value" gorm:"column:value;size:255"`
	UpdatedBy string    `json:"updated_by" gorm:"column:updated_by;size:64"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (Setting) TableName() string {
	return "settings"
}

// SettingAutoAccept holds "true" when admin proposals are accepted immediately.
const SettingAutoAccept = "auto_accept_corrections"

// All returns every model owned by the stock-take schema.
func All() []any {
	return []any{&Session{}, &CountRecord{}, &Correction{}, &Setting{}}
}

// Registry returns the models backing the database tool registry.
func Registry() []any {
	return []any{&Tool{}, &Issuance{}}
}
