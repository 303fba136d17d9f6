// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"

	"github.com/tfctl/xlsxdiff/internal/aws"
	"github.com/tfctl/xlsxdiff/internal/cacheutil"
	"github.com/tfctl/xlsxdiff/internal/log"
	"github.com/tfctl/xlsxdiff/internal/workbook"
)

// Extensions lists the accepted local file extensions.
var Extensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm"}

// Options configures remote loading. The zero value loads local files only
// and builds an S3 client on demand from the default credential chain.
type Options struct {
	AWSProfile  string
	AWSRegion   string
	S3Endpoint  string
	MaxAttempts int
	// S3 overrides the client built from the fields above.
	S3 aws.S3API
	// Cache stores S3 downloads keyed by URI and ETag. Nil disables caching.
	Cache *cacheutil.Cache
}

// Load reads the workbook at path, which is a local file or s3://bucket/key.
func Load(ctx context.Context, path string, opts Options) (*workbook.Workbook, error) {
	start := time.Now()

	var (
		f   *excelize.File
		err error
	)
	if aws.IsURI(path) {
		f, err = openS3(ctx, path, opts)
	} else {
		f, err = openLocal(path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb, err := read(f, path)
	if err != nil {
		return nil, err
	}
	log.Infof("loaded %s: %d sheets, %s cells (%s)", path, wb.Len(),
		humanize.Comma(int64(wb.CellCount())), time.Since(start))
	return wb, nil
}

func openLocal(path string) (*excelize.File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	supported := false
	for _, e := range Extensions {
		if ext == e {
			supported = true
		}
	}
	if !supported {
		return nil, loadError(path, "unsupported file type (want one of "+strings.Join(Extensions, ", ")+")", nil)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, loadError(path, "cannot read file", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, loadError(path, "not a valid workbook", err)
	}
	return f, nil
}

func openS3(ctx context.Context, uri string, opts Options) (*excelize.File, error) {
	bucket, key, err := aws.ParseURI(uri)
	if err != nil {
		return nil, loadError(uri, "bad s3 uri", err)
	}

	client := opts.S3
	if client == nil {
		cfg, err := aws.LoadAWSConfig(ctx,
			aws.WithProfile(opts.AWSProfile),
			aws.WithRegion(opts.AWSRegion),
			aws.WithMaxAttempts(opts.MaxAttempts))
		if err != nil {
			return nil, loadError(uri, "cannot load aws config", err)
		}
		client = aws.NewS3(cfg, aws.WithEndpoint(opts.S3Endpoint))
	}

	etag, err := aws.ObjectETag(ctx, client, bucket, key)
	if err != nil {
		return nil, loadError(uri, "cannot stat object", err)
	}

	cacheKey := uri + "@" + etag
	data, hit := opts.Cache.Get("s3", cacheKey)
	if !hit {
		data, err = aws.FetchObject(ctx, client, bucket, key)
		if err != nil {
			return nil, loadError(uri, "cannot download object", err)
		}
		if err := opts.Cache.Put("s3", cacheKey, data); err != nil {
			log.WithError(err).Warnf("not caching %s", uri)
		}
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, loadError(uri, "not a valid workbook", err)
	}
	return f, nil
}

func read(f *excelize.File, path string) (*workbook.Workbook, error) {
	wb := workbook.New(path)
	kinds := newStyleKinds(f)
	for _, name := range f.GetSheetList() {
		sheet, err := readSheet(f, name, kinds)
		if err != nil {
			return nil, loadError(path, "cannot read sheet "+name, err)
		}
		if err := wb.Add(sheet); err != nil {
			return nil, loadError(path, "duplicate sheet", err)
		}
	}
	return wb, nil
}

func readSheet(f *excelize.File, name string, kinds *styleKinds) (*workbook.Sheet, error) {
	display, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	rows, cols := max(len(display), len(raw)), 0
	for _, r := range display {
		cols = max(cols, len(r))
	}
	for _, r := range raw {
		cols = max(cols, len(r))
	}

	sheet := workbook.NewSheet(name, rows, cols)
	for r := range rows {
		for c := range cols {
			ref, _ := excelize.CoordinatesToCellName(c+1, r+1)
			formula, err := f.GetCellFormula(name, ref)
			if err != nil {
				return nil, err
			}
			d, v := at(display, r, c), at(raw, r, c)
			if d == "" && v == "" && formula == "" {
				continue
			}
			cell, err := readCell(f, name, ref, formula, d, v, kinds)
			if err != nil {
				return nil, err
			}
			sheet.Set(r+1, c+1, cell)
		}
	}

	for c := 1; c <= cols; c++ {
		col, _ := excelize.ColumnNumberToName(c)
		if w, err := f.GetColWidth(name, col); err == nil {
			sheet.SetColumnWidth(c, w)
		}
	}
	log.Debugf("sheet %q: %dx%d", name, rows, cols)
	return sheet, nil
}

func at(rows [][]string, r, c int) string {
	if r < len(rows) && c < len(rows[r]) {
		return rows[r][c]
	}
	return ""
}
