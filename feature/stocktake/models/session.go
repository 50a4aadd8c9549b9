package models

import "time"

// SessionStatus is the lifecycle state of an inventory session.
type SessionStatus string

const (
	StatusActive SessionStatus = "active"
	StatusPaused SessionStatus = "paused"
	StatusEnded  SessionStatus = "ended"
)

// Valid reports whether s is a known status.
func (s SessionStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusEnded:
		return true
	}
	return false
}

// Session is a named stock-take period.
type Session struct {
	ID        string        `json:"id" gorm:"column:id;primaryKey;size:36"`
	Name      string        `json:"name" gorm:"column:name;size:200;not null"`
	Notes     string        `json:"notes,omitempty" gorm:"column:notes;size:2000"`
	Status    SessionStatus `json:"status" gorm:"column:status;size:16;not null;index"`
	CreatedAt time.Time     `json:"created_at" gorm:"column:created_at"`
	CreatedBy string        `json:"created_by" gorm:"column:created_by;size:64"`
	UpdatedAt time.Time     `json:"updated_at" gorm:"column:updated_at"`
	// CountedItems is the number of count records, filled on read.
	CountedItems int `json:"counted_items" gorm:"column:counted_items;->;-:migration"`
}

// TableName overrides the table name.
func (Session) TableName() string {
	return "inventory_sessions"
}

// CountRecord is the physically counted quantity of one tool in one session.
type CountRecord struct {
	SessionID  string    `json:"session_id" gorm:"column:session_id;primaryKey;size:36"`
	ToolID     string    `json:"tool_id" gorm:"column:tool_id;primaryKey;size:64"`
	CountedQty int       `json:"counted_qty" gorm:"column:counted_qty;not null;default:0"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"column:updated_at"`
	UpdatedBy  string    `json:"updated_by" gorm:"column:updated_by;size:64"`
}

// TableName overrides the table name.
func (CountRecord) TableName() string {
	return "inventory_counts"
}
