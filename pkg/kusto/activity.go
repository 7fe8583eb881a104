// Copyright 2025 Microsoft Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package kusto

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-kusto-go/kusto"
	kustoerrors "github.com/Azure/azure-kusto-go/kusto/data/errors"
	"github.com/Azure/azure-kusto-go/kusto/data/table"
	"github.com/Azure/azure-kusto-go/kusto/kql"

	"github.com/Azure-Samples/whoami-func-go/pkg/api"
)

const (
	// DefaultLookback bounds how far back sign-in activity is queried.
	DefaultLookback = 7 * 24 * time.Hour

	// DefaultRowLimit caps the number of activity rows per invocation.
	DefaultRowLimit = 10
)

// ActivityQuerier is the part of the Kusto client the host depends on.
type ActivityQuerier interface {
	RecentSignins(ctx context.Context, userObjectID string) ([]api.SigninActivity, error)
}

// Client queries the configured Azure Data Explorer database for sign-in
// activity of a resolved principal.
type Client struct {
	client   *kusto.Client
	database string
	lookback time.Duration
	rowLimit int64
}

var _ ActivityQuerier = (*Client)(nil)

// NewClient connects to the given cluster endpoint with
// DefaultAzureCredential.
func NewClient(clusterURL, database string) (*Client, error) {
	kcsb := kusto.NewConnectionStringBuilder(clusterURL).WithDefaultAzureCredential()

	client, err := kusto.New(kcsb)
	if err != nil {
		return nil, fmt.Errorf("create Kusto client for %s: %w", clusterURL, err)
	}

	return &Client{
		client:   client,
		database: database,
		lookback: DefaultLookback,
		rowLimit: DefaultRowLimit,
	}, nil
}

// Close releases the underlying Kusto connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// signinRow maps the projected SigninEvents columns.
type signinRow struct {
	Timestamp      time.Time `kusto:"Timestamp"`
	AppDisplayName string    `kusto:"AppDisplayName"`
	IPAddress      string    `kusto:"IpAddress"`
	Location       string    `kusto:"Location"`
	ResultType     string    `kusto:"ResultType"`
}

// RecentSignins returns the caller's most recent sign-in events, newest
// first, bounded by the configured lookback and row limit.
func (c *Client) RecentSignins(ctx context.Context, userObjectID string) ([]api.SigninActivity, error) {
	stmt := kql.New("SigninEvents").
		AddLiteral(" | where UserObjectId == _user_object_id").
		AddLiteral(" | where Timestamp > ago(_lookback)").
		AddLiteral(" | top _row_limit by Timestamp desc").
		AddLiteral(" | project Timestamp, AppDisplayName, IpAddress, Location, ResultType")

	params := kql.NewParameters().
		AddString("_user_object_id", userObjectID).
		AddTimespan("_lookback", c.lookback).
		AddLong("_row_limit", c.rowLimit)

	iter, err := c.client.Query(ctx, c.database, stmt, kusto.QueryParameters(params))
	if err != nil {
		return nil, fmt.Errorf("query sign-in events: %w", err)
	}
	defer iter.Stop()

	var activity []api.SigninActivity
	err = iter.DoOnRowOrError(func(row *table.Row, inlineErr *kustoerrors.Error) error {
		if inlineErr != nil {
			return inlineErr
		}

		var rec signinRow
		if err := row.ToStruct(&rec); err != nil {
			return fmt.Errorf("scan sign-in row: %w", err)
		}

		activity = append(activity, api.SigninActivity{
			Timestamp:      rec.Timestamp,
			AppDisplayName: rec.AppDisplayName,
			IPAddress:      rec.IPAddress,
			Location:       rec.Location,
			Status:         rec.ResultType,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate sign-in events: %w", err)
	}

	return activity, nil
}
