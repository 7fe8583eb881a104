package store

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"sync"
)

var _ DBClient = &Cache{}

// Cache is an in-memory DBClient for local development runs against
// emulated storage.
type Cache struct {
	mu          sync.RWMutex
	invocations map[string]*InvocationDocument
}

func NewCache() DBClient {
	return &Cache{
		invocations: make(map[string]*InvocationDocument),
	}
}

func (c *Cache) DBConnectionTest(ctx context.Context) error {
	return nil
}

func (c *Cache) GetInvocationDoc(ctx context.Context, id string, partitionKey string) (*InvocationDocument, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if doc, ok := c.invocations[id]; ok {
		return doc, nil
	}

	return nil, ErrNotFound
}

func (c *Cache) SetInvocationDoc(ctx context.Context, doc *InvocationDocument) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.invocations[doc.ID] = doc
	return nil
}
