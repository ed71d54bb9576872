package session

import "context"

type tokenKey struct{}

// WithUpstreamToken attaches the session's upstream bearer token to the
// request context for the upstream client to use.
func WithUpstreamToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// UpstreamToken returns the upstream bearer token for the request, if any.
func UpstreamToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}
