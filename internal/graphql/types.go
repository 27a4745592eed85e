// Package graphql provides a GraphQL HTTP client for communicating with the
// games GraphQL API.
package graphql

import (
	"context"
	"errors"
	"strings"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// ErrUnauthorized is returned when the server answers HTTP 401.
var ErrUnauthorized = errors.New("graphql: authentication failed (HTTP 401)")

// ErrNoData is returned when a response carries neither errors nor data.
var ErrNoData = errors.New("graphql: response has no data")

// ResponseError wraps the errors array of a GraphQL response.
type ResponseError struct {
	Operation string
	Errors    gqlerror.List
}

func (e *ResponseError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ge := range e.Errors {
		msgs[i] = ge.Message
	}
	prefix := "graphql: "
	if e.Operation != "" {
		prefix += e.Operation + ": "
	}
	return prefix + strings.Join(msgs, "; ")
}

// Client defines the interface for executing GraphQL operations.
type Client interface {
	Execute(ctx context.Context, op Operation, variables map[string]any) ([]byte, error)
}
