package middleware

import (
	"context"
	"io"

	"github.com/goccy/go-json"

	skema "github.com/reoring/skema"
)

// ctxKeyValue is a typed context key for the decoded request value.
type ctxKeyValue struct{}

// ContextWithValue attaches a validated request value to the context.
func ContextWithValue(ctx context.Context, value any) context.Context {
	return context.WithValue(ctx, ctxKeyValue{}, value)
}

// ValueFromContext retrieves the validated request value from context.
func ValueFromContext(ctx context.Context) (any, bool) {
	v := ctx.Value(ctxKeyValue{})
	return v, v != nil
}

// DecodeBody reads r fully and unmarshals it into a generic JSON value,
// ready to hand to skema.Validate.
func DecodeBody(r io.Reader) (any, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues skema.Issues) map[string]any {
	return map[string]any{"issues": issues}
}
