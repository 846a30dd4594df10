package auth

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/jobnav-app/jobnav-backend/config"
)

// InitializeFirebase initializes the Firebase Admin SDK and returns the Auth
// and Firestore clients. With no credentials path, application default
// credentials are used.
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*auth.Client, *firestore.Client, error) {
	if cfg.ProjectID == "" {
		return nil, nil, fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	storeClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	return authClient, storeClient, nil
}
