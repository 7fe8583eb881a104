package host

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Azure-Samples/whoami-func-go/pkg/cloud"
	"github.com/Azure-Samples/whoami-func-go/pkg/identity"
)

type ContextError struct {
	got any
}

func (c *ContextError) Error() string {
	return fmt.Sprintf(
		"error retrieving value from context, value obtained was '%v' and type obtained was '%T'",
		c.got,
		c.got)
}

type contextKey int

const (
	// Keys for request-scoped data in http.Request contexts
	contextKeyLogger contextKey = iota
	contextKeyBody
	contextKeyCorrelationData
	contextKeyPrincipal
	contextKeyPattern
)

func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// LoggerFromContext returns the contextual logger, falling back to the
// default logger so callers never receive nil.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(contextKeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

func ContextWithBody(ctx context.Context, body []byte) context.Context {
	return context.WithValue(ctx, contextKeyBody, body)
}

func BodyFromContext(ctx context.Context) ([]byte, error) {
	body, ok := ctx.Value(contextKeyBody).([]byte)
	if !ok {
		return nil, &ContextError{got: body}
	}
	return body, nil
}

func ContextWithCorrelationData(ctx context.Context, correlationData *cloud.CorrelationData) context.Context {
	return context.WithValue(ctx, contextKeyCorrelationData, correlationData)
}

func CorrelationDataFromContext(ctx context.Context) (*cloud.CorrelationData, error) {
	correlationData, ok := ctx.Value(contextKeyCorrelationData).(*cloud.CorrelationData)
	if !ok {
		return nil, &ContextError{got: correlationData}
	}
	return correlationData, nil
}

func ContextWithPrincipal(ctx context.Context, principal *identity.Principal) context.Context {
	return context.WithValue(ctx, contextKeyPrincipal, principal)
}

func PrincipalFromContext(ctx context.Context) (*identity.Principal, error) {
	principal, ok := ctx.Value(contextKeyPrincipal).(*identity.Principal)
	if !ok {
		return nil, &ContextError{got: principal}
	}
	return principal, nil
}

func ContextWithPattern(ctx context.Context, pattern *string) context.Context {
	return context.WithValue(ctx, contextKeyPattern, pattern)
}

func PatternFromContext(ctx context.Context) *string {
	pattern, ok := ctx.Value(contextKeyPattern).(*string)
	if !ok {
		return nil
	}
	return pattern
}
