/*
 * Copyright © 2025 Draftbase Software, All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/draftbase/dxfspace/entitydb"
	"github.com/draftbase/dxfspace/entitydb/memory"
	"github.com/draftbase/dxfspace/errors"
	"github.com/draftbase/dxfspace/tags"
)

// DocumentStore archives whole documents in AWS DynamoDB, one item per
// entity record, using a single-table layout keyed by document ID and
// handle:
//
//	PK = "DOC#<docID>"   SK = "REC#<handle>"
//
// The archive persists records, not space membership: a restored
// document is re-partitioned by a SpaceRegistry from the owner tags
// the records carry.
type DocumentStore struct {
	client    *sdk.Client
	tableName string
}

// tagItem is the persisted form of one group code/value pair.
type tagItem struct {
	Code  int    `dynamodbav:"code"`
	Value string `dynamodbav:"value"`
}

// recordItem is the persisted form of one entity record.
type recordItem struct {
	PK     string    `dynamodbav:"PK"`
	SK     string    `dynamodbav:"SK"`
	DocID  string    `dynamodbav:"DocID"`
	Handle string    `dynamodbav:"Handle"`
	Link   string    `dynamodbav:"Link,omitempty"`
	Tags   []tagItem `dynamodbav:"Tags"`
}

func recordKeys(docID, handle string) (string, string) {
	return "DOC#" + docID, "REC#" + handle
}

func itemFromRecord(docID string, ts *tags.TagSet) (recordItem, error) {
	handle, err := ts.Handle()
	if err != nil {
		return recordItem{}, err
	}
	item := recordItem{
		DocID:  docID,
		Handle: handle,
		Link:   ts.Link,
		Tags:   make([]tagItem, 0, ts.Len()),
	}
	item.PK, item.SK = recordKeys(docID, handle)
	for _, tag := range ts.Tags() {
		item.Tags = append(item.Tags, tagItem{Code: tag.Code, Value: tag.Value})
	}
	return item, nil
}

func (item recordItem) toTagSet() *tags.TagSet {
	ts := tags.New()
	for _, t := range item.Tags {
		ts.Append(tags.Tag{Code: t.Code, Value: t.Value})
	}
	ts.Link = item.Link
	return ts
}

// NewDynamoDBClient initializes a DynamoDB client using AWS credentials.
func NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return sdk.NewFromConfig(cfg), nil
}

// NewDocumentStore constructs a DocumentStore over the given table.
func NewDocumentStore(awsAccessKey, awsSecretKey, awsRegion, tableName string) (*DocumentStore, error) {
	client, err := NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return &DocumentStore{client: client, tableName: tableName}, nil
}

// PutRecord stores one record of a document.
func (s *DocumentStore) PutRecord(ctx context.Context, docID string, ts *tags.TagSet) error {
	item, err := itemFromRecord(docID, ts)
	if err != nil {
		return err
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	_, err = s.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &s.tableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// GetRecord retrieves one record of a document by handle.
func (s *DocumentStore) GetRecord(ctx context.Context, docID, handle string) (*tags.TagSet, error) {
	pk, sk := recordKeys(docID, handle)
	out, err := s.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, errors.NewNotFoundError("record", handle)
	}
	var item recordItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return item.toTagSet(), nil
}

// DeleteRecord removes one record of a document from the archive.
func (s *DocumentStore) DeleteRecord(ctx context.Context, docID, handle string) error {
	pk, sk := recordKeys(docID, handle)
	_, err := s.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
	})
	if err != nil {
		return fmt.Errorf("DeleteItem failed: %w", err)
	}
	return nil
}

// PutDocument archives every record of the given database.
func (s *DocumentStore) PutDocument(ctx context.Context, docID string, db entitydb.DB) error {
	for _, handle := range db.Handles() {
		ts, err := db.Get(handle)
		if err != nil {
			return err
		}
		if err := s.PutRecord(ctx, docID, ts); err != nil {
			return fmt.Errorf("archiving record %q: %w", handle, err)
		}
	}
	return nil
}

// LoadDocument restores an archived document into a fresh in-memory
// database. Records arrive in handle order; document order is
// reconstructed by re-partitioning through a SpaceRegistry.
func (s *DocumentStore) LoadDocument(ctx context.Context, docID string) (*memory.DB, error) {
	db := memory.New()
	for result := range s.StreamRecords(ctx, docID) {
		if result.Error != nil {
			return nil, result.Error
		}
		if _, err := db.Put(result.Record); err != nil {
			return nil, err
		}
	}
	if db.Len() == 0 {
		return nil, errors.NewNotFoundError("document", docID)
	}
	return db, nil
}
