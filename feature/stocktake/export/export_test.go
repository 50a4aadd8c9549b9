package export

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"stocktake/core/storage/mocks"
	"stocktake/feature/stocktake/differences"
	"stocktake/feature/stocktake/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var exportedAt = time.Date(2025, 3, 31, 16, 30, 0, 0, time.UTC)

func rows() []differences.Row {
	return []differences.Row{
		{
			Key:        "t-1",
			Item:       models.Tool{ID: "t-1", Name: "Drill; cordless", SKU: "D-1234"},
			InSystem:   true,
			Counted:    true,
			SystemQty:  5,
			CountedQty: 3,
			Difference: -2,
		},
		{
			Key:        "t-2",
			Item:       models.Tool{ID: "t-2", Name: `Helmet "XL"`, Barcode: "590"},
			InSystem:   true,
			Counted:    true,
			SystemQty:  1,
			CountedQty: 2,
			Difference: 1,
		},
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	out, err := CSV(rows(), Meta{SessionName: "Q1-2025", ExportedBy: "Anna Admin", ExportedAt: exportedAt})
	require.NoError(t, err)
	assert.Contains(t, out, `"Drill; cordless"`)

	r := csv.NewReader(strings.NewReader(out))
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{"Drill; cordless", "D-1234", "5", "3", "-2", "Q1-2025", "2025-03-31T16:30:00Z", "Anna Admin"}, records[1])
	assert.Equal(t, []string{`Helmet "XL"`, "590", "1", "2", "1", "Q1-2025", "2025-03-31T16:30:00Z", "Anna Admin"}, records[2])
}

func TestCSV_Comma(t *testing.T) {
	in := rows()
	in[0].Item.Name = "Drill, cordless\nbox"

	out, err := CSV(in, Meta{SessionName: "Q1", ExportedAt: exportedAt, Delimiter: ','})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "tool_name,code,"))

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Drill, cordless\nbox", records[1][0])
}

func TestCSV_UnknownTool(t *testing.T) {
	out, err := CSV([]differences.Row{{Key: "gone", CountedQty: 2, Difference: 2}}, Meta{ExportedAt: exportedAt})
	require.NoError(t, err)
	assert.Contains(t, out, ";gone;0;2;2;")
}

func TestCSV_Empty(t *testing.T) {
	out, err := CSV(nil, Meta{ExportedAt: exportedAt})
	require.NoError(t, err)
	assert.Equal(t, strings.Join(Header, ";")+"\r\n", out)
}

func TestCSV_BadDelimiter(t *testing.T) {
	_, err := CSV(rows(), Meta{Delimiter: '|'})
	assert.ErrorContains(t, err, "unsupported delimiter")
}

func TestArchive(t *testing.T) {
	client := new(mocks.Client)
	a := NewArchiver(client, "exports-bucket")
	ctx := context.Background()

	client.On("PutObject", ctx, "exports-bucket", "exports/s1/20250331T163000Z.csv", "a;b\r\n", int64(5), mock.Anything).
		Return(minio.UploadInfo{}, nil).Once()

	name, err := a.Archive(ctx, "s1", exportedAt, "a;b\r\n")
	require.NoError(t, err)
	assert.Equal(t, "exports/s1/20250331T163000Z.csv", name)
	client.AssertExpectations(t)
}

func TestArchive_Error(t *testing.T) {
	client := new(mocks.Client)
	a := NewArchiver(client, "b")
	client.On("PutObject", mock.Anything, "b", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("denied"))

	_, err := a.Archive(context.Background(), "s1", exportedAt, "x")
	assert.ErrorContains(t, err, "denied")
}

func TestList(t *testing.T) {
	client := new(mocks.Client)
	a := NewArchiver(client, "b")

	ch := make(chan minio.ObjectInfo, 2)
	ch <- minio.ObjectInfo{Key: "exports/s1/1.csv"}
	ch <- minio.ObjectInfo{Key: "exports/s1/2.csv"}
	close(ch)
	client.On("ListObjects", mock.Anything, "b", minio.ListObjectsOptions{Prefix: "exports/s1/", Recursive: true}).
		Return((<-chan minio.ObjectInfo)(ch))

	keys, err := a.List(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"exports/s1/1.csv", "exports/s1/2.csv"}, keys)
}
