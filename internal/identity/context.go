package identity

import "context"

type contextKey struct{}

// WithAnnotator stores the authenticated annotator on the context.
func WithAnnotator(ctx context.Context, a Annotator) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

// FromContext returns the annotator attached by the auth middleware.
func FromContext(ctx context.Context) (Annotator, bool) {
	a, ok := ctx.Value(contextKey{}).(Annotator)
	return a, ok
}
