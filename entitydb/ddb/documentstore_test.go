/*
 * Copyright © 2025 Draftbase Software, All rights reserved.
 */

package ddb

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/draftbase/dxfspace/errors"
	"github.com/draftbase/dxfspace/tags"
)

func TestItemFromRecord(t *testing.T) {
	ts := tags.New(
		tags.Tag{Code: tags.CodeType, Value: "POLYLINE"},
		tags.Tag{Code: tags.CodeHandle, Value: "1F"},
		tags.Tag{Code: tags.CodeOwner, Value: "100"},
	)
	ts.Link = "20"

	item, err := itemFromRecord("doc-1", ts)
	if err != nil {
		t.Fatalf("itemFromRecord failed: %v", err)
	}
	if item.PK != "DOC#doc-1" || item.SK != "REC#1F" {
		t.Errorf("Unexpected keys: PK=%q SK=%q", item.PK, item.SK)
	}
	if item.Handle != "1F" || item.Link != "20" {
		t.Errorf("Unexpected handle/link: %q/%q", item.Handle, item.Link)
	}
	if len(item.Tags) != 3 {
		t.Fatalf("Expected 3 tags, got %d", len(item.Tags))
	}

	// A record without a handle cannot be archived
	if _, err := itemFromRecord("doc-1", tags.New(tags.Tag{Code: tags.CodeType, Value: "LINE"})); !errors.IsValidationError(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestRecordItemRoundTrip(t *testing.T) {
	ts := tags.New(
		tags.Tag{Code: tags.CodeType, Value: "LINE"},
		tags.Tag{Code: tags.CodeHandle, Value: "2A"},
		tags.Tag{Code: tags.CodeSubclass, Value: tags.SubclassEntity},
		tags.Tag{Code: tags.CodePaperSpace, Value: "1"},
	)

	item, err := itemFromRecord("doc-1", ts)
	if err != nil {
		t.Fatalf("itemFromRecord failed: %v", err)
	}

	// Through the attributevalue marshaling layer and back
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		t.Fatalf("MarshalMap failed: %v", err)
	}
	var restored recordItem
	if err := attributevalue.UnmarshalMap(av, &restored); err != nil {
		t.Fatalf("UnmarshalMap failed: %v", err)
	}

	got := restored.toTagSet()
	if got.DXFType() != "LINE" {
		t.Errorf("Expected LINE, got %q", got.DXFType())
	}
	if h, _ := got.Handle(); h != "2A" {
		t.Errorf("Expected handle 2A, got %q", h)
	}
	if got.Link != "" {
		t.Errorf("Expected empty link, got %q", got.Link)
	}
	sub, err := got.Subclass(tags.SubclassEntity)
	if err != nil {
		t.Fatalf("Subclass lost in round trip: %v", err)
	}
	if sub.GetFirst(tags.CodePaperSpace, "0") != "1" {
		t.Error("Paper-space flag lost in round trip")
	}
}

func TestProcessItemBadItem(t *testing.T) {
	raw, err := attributevalue.MarshalMap(map[string]string{"Tags": "not-a-list"})
	if err != nil {
		t.Fatalf("MarshalMap failed: %v", err)
	}

	result := processItem(raw, 7, 2)
	if result.Error == nil {
		t.Fatal("Expected error for malformed item")
	}
	if result.Meta.Index != 7 || result.Meta.PageNumber != 2 {
		t.Errorf("Unexpected meta: %+v", result.Meta)
	}
	if result.Raw == nil {
		t.Error("Expected raw attributes to be preserved")
	}
}
