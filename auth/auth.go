// Package auth resolves bearer tokens into principals.
package auth

import "context"

// Principal is the identity resolved from a verified bearer token.
type Principal struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

// Verifier checks a bearer token against an identity provider.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*Principal, error)
}
