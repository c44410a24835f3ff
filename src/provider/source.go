package provider

import "context"

type sourceKey struct{}

// Change sources recorded in the audit log
const (
	SourceHTTP    = "http"
	SourceGraphQL = "graphql"
	SourceCLI     = "cli"
	SourceTUI     = "tui"
)

// WithSource tags ctx with the origin of a preference change
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey{}, source)
}

// SourceFrom returns the change origin stored in ctx, or "unknown"
func SourceFrom(ctx context.Context) string {
	if s, ok := ctx.Value(sourceKey{}).(string); ok && s != "" {
		return s
	}
	return "unknown"
}
