package registry

import (
	"stocktake/core/utils"
	"stocktake/feature/stocktake/models"
)

// listKeys are the envelope keys REST registries wrap collections in.
var listKeys = []string{"data", "items", "results", "tools"}

// extractList finds the tool objects in a decoded list response. It accepts
// a bare array and arrays nested under any of listKeys, at any depth.
func extractList(v any) []map[string]any {
	switch t := v.(type) {
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, e := range t {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	case map[string]any:
		for _, k := range listKeys {
			if inner, ok := t[k]; ok {
				return extractList(inner)
			}
		}
	}
	return nil
}

// extractObject unwraps a single tool from {"data": {...}} or returns the
// object itself.
func extractObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	if _, hasID := m["id"]; !hasID {
		for _, k := range []string{"data", "tool"} {
			if inner, ok := m[k].(map[string]any); ok {
				return inner, true
			}
		}
	}
	return m, true
}

func firstValue(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// toolFromMap maps a loosely typed registry object onto a Tool. Numbers may
// arrive as JSON numbers or strings such as "5" or "5.00".
func toolFromMap(m map[string]any) models.Tool {
	return models.Tool{
		ID:              utils.FirstString(m, "id", "tool_id", "toolId"),
		Name:            utils.FirstString(m, "name", "title"),
		SKU:             utils.FirstString(m, "sku", "SKU"),
		Barcode:         utils.FirstString(m, "barcode", "ean"),
		QRCode:          utils.FirstString(m, "qr_code", "qrCode", "qr"),
		InventoryNumber: utils.FirstString(m, "inventory_number", "inventoryNumber", "inv_number"),
		SerialNumber:    utils.FirstString(m, "serial_number", "serialNumber", "serial"),
		Quantity:        utils.ToInt(firstValue(m, "quantity", "qty")),
		IssuedQuantity:  utils.ToInt(firstValue(m, "issued_quantity", "issuedQuantity", "issued")),
	}
}

// toolsFromList skips entries without an id and entries flagged as deleted.
func toolsFromList(v any) []models.Tool {
	raw := extractList(v)
	tools := make([]models.Tool, 0, len(raw))
	for _, m := range raw {
		t := toolFromMap(m)
		if t.ID == "" || utils.ToBool(firstValue(m, "deleted", "archived", "is_deleted")) {
			continue
		}
		tools = append(tools, t)
	}
	return tools
}
