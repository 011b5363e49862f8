/*
 * Copyright © 2025 Draftbase Software, All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/draftbase/dxfspace/tags"
)

// RecordResult represents a single streamed record with metadata
type RecordResult struct {
	Record *tags.TagSet                    // The restored record
	Raw    map[string]types.AttributeValue // Raw DynamoDB attributes
	Error  error                           // Item-specific error, if any
	Meta   StreamMeta                      // Metadata about this item
}

// StreamMeta contains metadata about a streamed record
type StreamMeta struct {
	Index      int64     // Record index in stream (0-based)
	PageNumber int       // DynamoDB page number (1-based)
	Timestamp  time.Time // When the record was retrieved
}

// StreamOptions configures streaming behavior
type StreamOptions struct {
	BufferSize      int                  // Channel buffer size (default: 100)
	MaxRetries      int                  // Retry attempts for transient errors (default: 3)
	RetryBackoff    time.Duration        // Backoff between retries (default: 1s)
	PageSize        int32                // Records per DynamoDB page (default: 100)
	ProgressHandler func(StreamProgress) // Optional progress callback
	ErrorHandler    func(error) bool     // Return true to continue, false to stop
}

// StreamProgress tracks streaming progress
type StreamProgress struct {
	RecordsProcessed int64                           // Total records processed
	PagesProcessed   int                             // Total pages processed
	LastKey          map[string]types.AttributeValue // Last evaluated key
	StartTime        time.Time                       // When streaming started
	CurrentRate      float64                         // Records per second
}

// StreamOption is a functional option for configuring streaming
type StreamOption func(*StreamOptions)

// DefaultStreamOptions returns default streaming options
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{
		BufferSize:   100,
		MaxRetries:   3,
		RetryBackoff: time.Second,
		PageSize:     100,
	}
}

// WithBufferSize sets the channel buffer size
func WithBufferSize(size int) StreamOption {
	return func(opts *StreamOptions) {
		opts.BufferSize = size
	}
}

// WithMaxRetries sets the maximum retry attempts
func WithMaxRetries(retries int) StreamOption {
	return func(opts *StreamOptions) {
		opts.MaxRetries = retries
	}
}

// WithRetryBackoff sets the retry backoff duration
func WithRetryBackoff(backoff time.Duration) StreamOption {
	return func(opts *StreamOptions) {
		opts.RetryBackoff = backoff
	}
}

// WithPageSize sets the DynamoDB page size
func WithPageSize(size int32) StreamOption {
	return func(opts *StreamOptions) {
		opts.PageSize = size
	}
}

// WithProgressHandler sets a progress callback
func WithProgressHandler(handler func(StreamProgress)) StreamOption {
	return func(opts *StreamOptions) {
		opts.ProgressHandler = handler
	}
}

// WithErrorHandler sets an error handler that can decide whether to continue
func WithErrorHandler(handler func(error) bool) StreamOption {
	return func(opts *StreamOptions) {
		opts.ErrorHandler = handler
	}
}

// StreamRecords streams every archived record of a document with
// configurable options
func (s *DocumentStore) StreamRecords(ctx context.Context, docID string, opts ...StreamOption) <-chan RecordResult {
	options := DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	resultCh := make(chan RecordResult, options.BufferSize)
	go s.streamWorker(ctx, docID, options, resultCh)
	return resultCh
}

// streamWorker handles the actual streaming logic
func (s *DocumentStore) streamWorker(
	ctx context.Context,
	docID string,
	options StreamOptions,
	resultCh chan<- RecordResult,
) {
	defer close(resultCh)

	var index int64
	var pageNumber int
	startTime := time.Now()

	reportProgress := func(lastKey map[string]types.AttributeValue) {
		if options.ProgressHandler == nil {
			return
		}
		progress := StreamProgress{
			RecordsProcessed: index,
			PagesProcessed:   pageNumber,
			LastKey:          lastKey,
			StartTime:        startTime,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(index) / elapsed
		}
		options.ProgressHandler(progress)
	}

	pk, _ := recordKeys(docID, "")
	keyCond := "PK = :pk"
	input := &dynamodb.QueryInput{
		TableName:              &s.tableName,
		KeyConditionExpression: &keyCond,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: pk},
		},
		Limit: aws.Int32(options.PageSize),
	}

	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if lastEvaluatedKey != nil {
			input.ExclusiveStartKey = lastEvaluatedKey
		}

		out, err := s.queryWithRetry(ctx, input, options)
		if err != nil {
			if options.ErrorHandler != nil && options.ErrorHandler(err) {
				continue
			}
			resultCh <- RecordResult{
				Error: fmt.Errorf("query failed: %w", err),
				Meta:  StreamMeta{Index: index, PageNumber: pageNumber, Timestamp: time.Now()},
			}
			return
		}

		pageNumber++

		for _, rawItem := range out.Items {
			result := processItem(rawItem, index, pageNumber)
			index++

			select {
			case <-ctx.Done():
				return
			case resultCh <- result:
			}
		}

		reportProgress(out.LastEvaluatedKey)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		lastEvaluatedKey = out.LastEvaluatedKey
	}

	reportProgress(nil)
}

// queryWithRetry executes a query with configurable retry logic
func (s *DocumentStore) queryWithRetry(
	ctx context.Context,
	input *dynamodb.QueryInput,
	options StreamOptions,
) (*dynamodb.QueryOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		out, err := s.client.Query(ctx, input)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if attempt < options.MaxRetries {
			backoff := time.Duration(attempt+1) * options.RetryBackoff
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("query failed after %d retries: %w", options.MaxRetries, lastErr)
}

// processItem converts a DynamoDB item to a record result
func processItem(raw map[string]types.AttributeValue, index int64, pageNumber int) RecordResult {
	meta := StreamMeta{
		Index:      index,
		PageNumber: pageNumber,
		Timestamp:  time.Now(),
	}

	rawCopy := make(map[string]types.AttributeValue, len(raw))
	for k, v := range raw {
		rawCopy[k] = v
	}

	var item recordItem
	if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
		return RecordResult{
			Error: fmt.Errorf("failed to unmarshal record: %w", err),
			Raw:   rawCopy,
			Meta:  meta,
		}
	}

	return RecordResult{
		Record: item.toTagSet(),
		Raw:    rawCopy,
		Meta:   meta,
	}
}
