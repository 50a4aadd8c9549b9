package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"stocktake/feature/stocktake/differences"
)

// Header is the column order of every export.
var Header = []string{
	"tool_name",
	"code",
	"system_qty",
	"counted_qty",
	"difference",
	"session_name",
	"exported_at",
	"exported_by",
}

// Meta describes who exported what and when.
type Meta struct {
	SessionName string
	ExportedBy  string
	ExportedAt  time.Time
	// Delimiter is ';' or ','. Zero means ';'.
	Delimiter rune
}

func (m Meta) delimiter() (rune, error) {
	switch m.Delimiter {
	case 0, ';':
		return ';', nil
	case ',':
		return ',', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter %q", m.Delimiter)
	}
}

// WriteCSV serializes rows in order. Fields containing the delimiter, quotes
// or line breaks are quoted with doubled inner quotes.
func WriteCSV(w io.Writer, rows []differences.Row, meta Meta) error {
	delim, err := meta.delimiter()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = delim
	cw.UseCRLF = true

	if err := cw.Write(Header); err != nil {
		return err
	}

	exportedAt := meta.ExportedAt.UTC().Format(time.RFC3339)
	for _, r := range rows {
		name, code := r.Item.Name, r.Item.Code()
		if !r.InSystem {
			code = r.Key
		}
		record := []string{
			name,
			code,
			strconv.Itoa(r.SystemQty),
			strconv.Itoa(r.CountedQty),
			strconv.Itoa(r.Difference),
			meta.SessionName,
			exportedAt,
			meta.ExportedBy,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// CSV returns the export as text.
func CSV(rows []differences.Row, meta Meta) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows, meta); err != nil {
		return "", err
	}
	return buf.String(), nil
}
