package host

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

const (
	ProgramName = "WhoAmI Function Host"

	// QueryParamCode is the query parameter carrying the function key,
	// accepted as an alternative to the x-functions-key header.
	QueryParamCode = "code"
)
