package main

import (
	"context"
	"log"
	"os"

	"github.com/jobnav-app/jobnav-backend/config"
	"github.com/jobnav-app/jobnav-backend/internal/applications/repository"
	"github.com/jobnav-app/jobnav-backend/internal/auth"
	"github.com/jobnav-app/jobnav-backend/internal/reminders"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker scan|cron")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	authClient, storeClient, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	defer storeClient.Close()

	repo := repository.New(storeClient, cfg.App.Namespace)
	scanner := reminders.NewScanner(authClient, repo)

	switch os.Args[1] {
	case "scan":
		if err := scanner.Scan(ctx); err != nil {
			log.Fatalf("scan: %v", err)
		}
	case "cron":
		scheduler := reminders.NewScheduler(scanner)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("scheduler: %v", err)
		}
		select {}
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
