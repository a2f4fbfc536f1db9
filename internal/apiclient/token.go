package apiclient

import "context"

// TokenSource yields the bearer token for authenticated requests.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) AccessToken(ctx context.Context) (string, error) {
	return f(ctx)
}

type accessTokenKey struct{}

// WithAccessToken returns a context carrying the caller's access token.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessTokenFromContext returns the token stored by WithAccessToken.
func AccessTokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	token, _ := ctx.Value(accessTokenKey{}).(string)
	return token
}

// ContextTokenSource reads the token placed in the request context by the
// identity middleware.
type ContextTokenSource struct{}

func (ContextTokenSource) AccessToken(ctx context.Context) (string, error) {
	token := AccessTokenFromContext(ctx)
	if token == "" {
		return "", NoTokenError("no access token in session")
	}
	return token, nil
}
