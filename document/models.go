/*
 * Copyright © 2025 Draftbase Software, All rights reserved.
 */

package document

import (
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// DocumentInfo carries identifying metadata for a loaded document.
type DocumentInfo struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Version    string          `json:"version"`
	CreatedAt  strfmt.DateTime `json:"createdAt"`
	ModifiedAt strfmt.DateTime `json:"modifiedAt"`
}

// NewDocumentInfo creates metadata for a fresh document.
func NewDocumentInfo(name, version string) DocumentInfo {
	now := strfmt.DateTime(time.Now())
	return DocumentInfo{
		ID:         uuid.NewString(),
		Name:       name,
		Version:    version,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}
