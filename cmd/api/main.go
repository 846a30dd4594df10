package main

import (
	"context"
	"log"

	"github.com/jobnav-app/jobnav-backend/config"
	"github.com/jobnav-app/jobnav-backend/internal/applications/repository"
	"github.com/jobnav-app/jobnav-backend/internal/assistant"
	"github.com/jobnav-app/jobnav-backend/internal/auth"
	"github.com/jobnav-app/jobnav-backend/internal/auth/identity"
	authservice "github.com/jobnav-app/jobnav-backend/internal/auth/service"
	"github.com/jobnav-app/jobnav-backend/internal/bootstrap"
)

const serviceName = "jobnav-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// A missing backend descriptor is fatal to startup.
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	authClient, storeClient, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	defer storeClient.Close()

	bootstrap.SetGinMode(cfg.App.Environment)

	repo := repository.New(storeClient, cfg.App.Namespace)
	idp := identity.NewClient(cfg.Firebase.APIKey, "")
	sessions := authservice.NewSessionService(idp, authClient)
	sessions.Bootstrap(ctx, cfg.Firebase.InitialAuthToken)

	drafter := assistant.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, "")

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		AuthClient:  authClient,
		Sessions:    sessions,
		Store:       repo,
		Drafter:     drafter,
	})

	log.Printf("[info] service=%s version=%s listening on :%s", serviceName, cfg.App.Version, cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
