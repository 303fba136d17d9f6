// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

//go:build integration
// +build integration

package aws

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_FetchObject round-trips an object through a real bucket.
// Uses the default credential chain; set XLSXDIFF_S3_ENDPOINT to target an
// S3-compatible store instead of AWS.
func TestIntegration_FetchObject(t *testing.T) {
	ctx := context.Background()

	cfg, err := LoadAWSConfig(ctx, WithRegion("us-east-1"), WithMaxAttempts(2))
	require.NoError(t, err)
	client := NewS3(cfg, WithEndpoint(os.Getenv("XLSXDIFF_S3_ENDPOINT")))

	bucket := fmt.Sprintf("xlsxdiff-test-%d", time.Now().UnixNano())
	key := "books/old.xlsx"
	data := []byte("PK\x03\x04 not really a workbook")

	_, err = client.CreateBucket(ctx, &s3v2.CreateBucketInput{Bucket: awsv2.String(bucket)})
	require.NoError(t, err)
	defer func() {
		client.DeleteObject(ctx, &s3v2.DeleteObjectInput{Bucket: awsv2.String(bucket), Key: awsv2.String(key)})
		client.DeleteBucket(ctx, &s3v2.DeleteBucketInput{Bucket: awsv2.String(bucket)})
	}()

	_, err = client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
		Body:   bytes.NewReader(data),
	})
	require.NoError(t, err)

	etag, err := ObjectETag(ctx, client, bucket, key)
	require.NoError(t, err)
	assert.NotEmpty(t, etag)
	assert.NotContains(t, etag, `"`)

	got, err := FetchObject(ctx, client, bucket, key)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	_, err = FetchObject(ctx, client, bucket, "missing.xlsx")
	assert.Error(t, err)
}
