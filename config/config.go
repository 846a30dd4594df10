package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	App      AppConfig
	Firebase FirebaseConfig
	Gemini   GeminiConfig
}

type ServerConfig struct {
	Port string
}

type AppConfig struct {
	Environment string
	Version     string
	// Namespace is the {appId} segment of the per-user collection path
	// artifacts/{appId}/users/{uid}/job_applications.
	Namespace string
}

type FirebaseConfig struct {
	ProjectID       string
	CredentialsPath string
	// APIKey is the web API key for identity toolkit REST calls
	// (email/password sign-in). The admin SDK uses CredentialsPath instead.
	APIKey string
	// InitialAuthToken is an optional bootstrap custom token exchanged once
	// at startup.
	InitialAuthToken string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Namespace:   getEnv("APP_NAMESPACE", "default-app-id"),
		},
		Firebase: FirebaseConfig{
			ProjectID:        getEnv("FIREBASE_PROJECT_ID", ""),
			CredentialsPath:  getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			APIKey:           getEnv("FIREBASE_API_KEY", ""),
			InitialAuthToken: getEnv("INITIAL_AUTH_TOKEN", ""),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Firebase.ProjectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}

	if c.Firebase.APIKey == "" {
		return fmt.Errorf("FIREBASE_API_KEY is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
