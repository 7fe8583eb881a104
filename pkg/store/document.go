package store

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import "time"

// InvocationDocument records one tool invocation.
type InvocationDocument struct {
	ID           string `json:"id,omitempty"`
	PartitionKey string `json:"partitionKey,omitempty"`

	Tool              string    `json:"tool,omitempty"`
	PrincipalObjectID string    `json:"principalObjectId,omitempty"`
	PrincipalName     string    `json:"principalName,omitempty"`
	AuthSource        string    `json:"authSource,omitempty"`
	IncludeEmail      bool      `json:"includeEmail"`
	Succeeded         bool      `json:"succeeded"`
	DurationMS        int64     `json:"durationMs,omitempty"`
	InvokedAt         time.Time `json:"invokedAt,omitempty"`

	// Values provided by Cosmos after doc creation
	ResourceID  string `json:"_rid,omitempty"`
	Self        string `json:"_self,omitempty"`
	ETag        string `json:"_etag,omitempty"`
	Attachments string `json:"_attachments,omitempty"`
	Timestamp   int    `json:"_ts,omitempty"`
}
