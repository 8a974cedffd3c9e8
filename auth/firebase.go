package auth

import (
	"context"
	"encoding/base64"
	"fmt"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

// FirebaseVerifier verifies ID tokens against the Firebase project the
// service account belongs to.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier initializes a Firebase app from a base64-encoded
// service-account JSON blob, as delivered in the environment.
func NewFirebaseVerifier(ctx context.Context, encodedKey, projectID string) (*FirebaseVerifier, error) {
	creds, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("decode service account key: %w", err)
	}

	opt := option.WithCredentialsJSON(creds)
	config := &firebase.Config{ProjectID: projectID}

	app, err := firebase.NewApp(ctx, config, opt)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Principal, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	p := &Principal{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		p.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		p.Name = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		p.Picture = picture
	}
	return p, nil
}
