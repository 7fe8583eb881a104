package store

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"github.com/Azure-Samples/whoami-func-go/pkg/azsdk"
)

const invocationsContainer = "Invocations"

var ErrNotFound = errors.New("DocumentNotFound")

// DBClient is the document store the host records invocations in.
type DBClient interface {
	// DBConnectionTest is used to health check the database. If the database
	// is not reachable or otherwise not ready to be used, an error should be
	// returned.
	DBConnectionTest(ctx context.Context) error

	// GetInvocationDoc retrieves an InvocationDocument given its id and
	// partition key. ErrNotFound is returned if no document matches.
	GetInvocationDoc(ctx context.Context, id string, partitionKey string) (*InvocationDocument, error)
	SetInvocationDoc(ctx context.Context, doc *InvocationDocument) error
}

var _ DBClient = &CosmosDBClient{}

// CosmosDBClient performs CRUD operations against the invocations database.
type CosmosDBClient struct {
	client *azcosmos.Client
	config *CosmosDBConfig
}

// CosmosDBConfig stores database and client configuration data
type CosmosDBConfig struct {
	DBName        string
	DBUrl         string
	ClientOptions *azidentity.DefaultAzureCredentialOptions
}

// NewCosmosDBConfig configures database configuration values for access
func NewCosmosDBConfig(dbName, dbURL string) *CosmosDBConfig {
	opt := &azidentity.DefaultAzureCredentialOptions{
		ClientOptions: azsdk.NewClientOptions(azsdk.ComponentDocument),
	}
	c := &CosmosDBConfig{
		DBName:        dbName,
		DBUrl:         dbURL,
		ClientOptions: opt,
	}
	return c
}

// NewCosmosDBClient instantiates a Cosmos client for the invocations DB
func NewCosmosDBClient(config *CosmosDBConfig) (DBClient, error) {
	cred, err := azidentity.NewDefaultAzureCredential(config.ClientOptions)
	if err != nil {
		return nil, err
	}

	d := &CosmosDBClient{
		config: config,
	}

	client, err := azcosmos.NewClient(d.config.DBUrl, cred, nil)
	if err != nil {
		return nil, err
	}

	d.client = client
	return d, nil
}

// DBConnectionTest checks the invocations database is accessible on startup
func (d *CosmosDBClient) DBConnectionTest(ctx context.Context) error {
	database, err := d.client.NewDatabase(d.config.DBName)
	if err != nil {
		return fmt.Errorf("failed to create Cosmos database client during healthcheck: %v", err)
	}

	if _, err := database.Read(ctx, nil); err != nil {
		return fmt.Errorf("failed to read Cosmos database information during healthcheck: %v", err)
	}

	return nil
}

// GetInvocationDoc retrieves an invocation document by id within a partition
func (d *CosmosDBClient) GetInvocationDoc(ctx context.Context, id string, partitionKey string) (*InvocationDocument, error) {
	container, err := d.client.NewContainer(d.config.DBName, invocationsContainer)
	if err != nil {
		return nil, err
	}

	query := "SELECT * FROM c WHERE c.id = @id"
	opt := azcosmos.QueryOptions{
		PageSizeHint:    1,
		QueryParameters: []azcosmos.QueryParameter{{Name: "@id", Value: id}},
	}

	pk := azcosmos.NewPartitionKeyString(partitionKey)
	queryPager := container.NewQueryItemsPager(query, pk, &opt)

	var doc *InvocationDocument
	for queryPager.More() {
		queryResponse, err := queryPager.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, item := range queryResponse.Items {
			err = json.Unmarshal(item, &doc)
			if err != nil {
				return nil, err
			}
		}
	}
	if doc != nil {
		return doc, nil
	}
	return nil, ErrNotFound
}

// SetInvocationDoc creates/updates an invocation document
func (d *CosmosDBClient) SetInvocationDoc(ctx context.Context, doc *InvocationDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	container, err := d.client.NewContainer(d.config.DBName, invocationsContainer)
	if err != nil {
		return err
	}

	_, err = container.UpsertItem(ctx, azcosmos.NewPartitionKeyString(doc.PartitionKey), data, nil)
	if err != nil {
		return err
	}

	return nil
}
