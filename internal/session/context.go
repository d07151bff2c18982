package session

import "context"

type tokenContextKey struct{}

// ContextWithTokens stores the decoded token pair in the request context.
func ContextWithTokens(ctx context.Context, pair *TokenPair) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, pair)
}

// FromContext extracts the token pair, nil when the request is anonymous.
func FromContext(ctx context.Context) *TokenPair {
	pair, _ := ctx.Value(tokenContextKey{}).(*TokenPair)
	return pair
}

// AccessToken returns the bearer token for server-side data calls, empty
// when the request carries no session.
func AccessToken(ctx context.Context) string {
	if pair := FromContext(ctx); pair != nil {
		return pair.AccessToken
	}
	return ""
}
