// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package loader

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tfctl/xlsxdiff/internal/cacheutil"
	"github.com/tfctl/xlsxdiff/internal/workbook"
)

// fixture builds a two-sheet workbook covering every cell kind.
func fixture(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	require.NoError(t, f.SetSheetName("Sheet1", "staff"))
	require.NoError(t, f.SetCellStr("staff", "A1", "Name"))
	require.NoError(t, f.SetCellInt("staff", "B1", 42))
	require.NoError(t, f.SetCellBool("staff", "C1", true))
	require.NoError(t, f.SetCellValue("staff", "D1", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellFormula("staff", "E1", "B1*2"))
	require.NoError(t, f.SetCellStr("staff", "F1", "tail"))
	require.NoError(t, f.SetCellStr("staff", "A3", "last"))
	require.NoError(t, f.SetColWidth("staff", "A", "A", 30))

	_, err := f.NewSheet("extra")
	require.NoError(t, err)
	require.NoError(t, f.SetCellStr("extra", "B2", "x"))
	return f
}

func save(t *testing.T, f *excelize.File, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadLocal(t *testing.T) {
	path := save(t, fixture(t), "book.xlsx")

	wb, err := Load(context.Background(), path, Options{})
	require.NoError(t, err)
	assert.Equal(t, path, wb.Path)
	assert.Equal(t, []string{"staff", "extra"}, wb.SheetNames())

	staff, ok := wb.Sheet("staff")
	require.True(t, ok)
	assert.Equal(t, 3, staff.RowCount())
	assert.Equal(t, 6, staff.ColumnCount())

	assert.Equal(t, workbook.Text("Name"), staff.Cell(1, 1))
	assert.Equal(t, workbook.Number("42"), staff.Cell(1, 2))
	assert.Equal(t, workbook.KindBool, staff.Cell(1, 3).Kind)
	assert.Equal(t, "TRUE", staff.Cell(1, 3).Display)
	assert.Equal(t, workbook.KindDate, staff.Cell(1, 4).Kind)

	formula := staff.Cell(1, 5)
	assert.Equal(t, workbook.KindFormula, formula.Kind)
	assert.Equal(t, "=B1*2", formula.Content(workbook.ModeFormula))

	assert.True(t, staff.Cell(2, 1).IsEmpty())
	assert.Equal(t, "last", staff.Cell(3, 1).Display)
	assert.InDelta(t, 30.0, staff.ColumnWidth(1), 0.01)

	extra, _ := wb.Sheet("extra")
	assert.Equal(t, "x", extra.Cell(2, 2).Display)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "broken.xlsx")
	require.NoError(t, os.WriteFile(garbage, []byte("not a zip"), 0o600))

	tests := []struct {
		name   string
		path   string
		reason string
	}{
		{"unsupported", filepath.Join(dir, "book.csv"), "unsupported file type"},
		{"missing", filepath.Join(dir, "absent.xlsx"), "cannot read file"},
		{"corrupt", garbage, "not a valid workbook"},
		{"bad uri", "s3://bucket-only", "bad s3 uri"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tt.path, Options{S3: &fakeS3{}})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrLoad))

			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.path, le.Path)
			assert.Contains(t, le.Reason, tt.reason)
			assert.Contains(t, err.Error(), tt.path)
		})
	}

	_, err := Load(context.Background(), filepath.Join(dir, "absent.xlsx"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type fakeS3 struct {
	body []byte
	etag string
	gets int
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3v2.HeadObjectInput, _ ...func(*s3v2.Options)) (*s3v2.HeadObjectOutput, error) {
	if f.body == nil {
		return nil, errors.New("NotFound: " + awsv2.ToString(in.Key))
	}
	return &s3v2.HeadObjectOutput{ETag: awsv2.String(`"` + f.etag + `"`)}, nil
}

func (f *fakeS3) GetObject(_ context.Context, _ *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	f.gets++
	return &s3v2.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(f.body)))}, nil
}

func TestLoadS3(t *testing.T) {
	buf, err := fixture(t).WriteToBuffer()
	require.NoError(t, err)

	client := &fakeS3{body: buf.Bytes(), etag: "v1"}
	opts := Options{S3: client, Cache: cacheutil.NewAt(t.TempDir())}

	for range 2 {
		wb, err := Load(context.Background(), "s3://books/q1/book.xlsx", opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"staff", "extra"}, wb.SheetNames())
	}
	assert.Equal(t, 1, client.gets, "second load is served from cache")

	client.etag = "v2"
	_, err = Load(context.Background(), "s3://books/q1/book.xlsx", opts)
	require.NoError(t, err)
	assert.Equal(t, 2, client.gets, "new etag misses the cache")

	_, err = Load(context.Background(), "s3://books/missing.xlsx", Options{S3: &fakeS3{}})
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "cannot stat object", le.Reason)
}

func TestIsDateFormat(t *testing.T) {
	code := func(s string) *string { return &s }
	tests := []struct {
		id     int
		custom *string
		want   bool
	}{
		{0, nil, false},
		{2, nil, false},
		{14, nil, true},
		{22, nil, true},
		{49, nil, false},
		{164, code("yyyy-mm-dd"), true},
		{164, code("[h]:mm"), true},
		{164, code(`#,##0.00 "days"`), false},
		{164, code("[Red]0.00"), false},
		{164, code("0.00_);(0.00)"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isDateFormat(tt.id, tt.custom), "%d %v", tt.id, tt.custom)
	}
}
