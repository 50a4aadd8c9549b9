package models

import (
	"strings"
	"time"
)

// Tool is an item of the tool and PPE registry.
type Tool struct {
	ID              string `json:"id" gorm:"column:id;primaryKey;size:64"`
	Name            string `json:"name" gorm:"column:name;size:255;not null"`
	SKU             string `json:"sku" gorm:"column:sku;size:128;index"`
	Barcode         string `json:"barcode" gorm:"column:barcode;size:128;index"`
	QRCode          string `json:"qr_code" gorm:"column:qr_code;size:512"`
	InventoryNumber string `json:"inventory_number" gorm:"column:inventory_number;size:128;index"`
	SerialNumber    string `json:"serial_number" gorm:"column:serial_number;size:128"`
	Quantity        int    `json:"quantity" gorm:"column:quantity;not null;default:0"`
	// IssuedQuantity is derived from open issuances and never stored on the tool row.
	IssuedQuantity int `json:"issued_quantity" gorm:"column:issued_quantity;->;-:migration"`
}

// TableName overrides the table name.
func (Tool) TableName() string {
	return "tools"
}

// Code returns the most human-meaningful identifier of the tool.
func (t Tool) Code() string {
	for _, c := range []string{t.SKU, t.Barcode, t.InventoryNumber, t.QRCode} {
		if c != "" {
			return c
		}
	}
	return t.ID
}

// Available is the quantity not currently issued to employees.
func (t Tool) Available() int {
	return t.Quantity - t.IssuedQuantity
}

// Matches reports whether any searchable field contains needle.
// needle must already be lowercased.
func (t Tool) Matches(needle string) bool {
	for _, f := range []string{t.Name, t.SKU, t.Barcode, t.QRCode, t.InventoryNumber, t.SerialNumber} {
		if f != "" && strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Issuance records tools handed out to an employee.
type Issuance struct {
	ID         string     `json:"id" gorm:"column:id;primaryKey;size:36"`
	ToolID     string     `json:"tool_id" gorm:"column:tool_id;size:64;index;not null"`
	EmployeeID string     `json:"employee_id" gorm:"column:employee_id;size:64"`
	Quantity   int        `json:"quantity" gorm:"column:quantity;not null;default:1"`
	IssuedAt   time.Time  `json:"issued_at" gorm:"column:issued_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty" gorm:"column:returned_at"`
}

// TableName overrides the table name.
func (Issuance) TableName() string {
	return "issuances"
}
