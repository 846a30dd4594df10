package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobnav-app/jobnav-backend/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("APP_NAMESPACE", "")
	t.Setenv("FIREBASE_PROJECT_ID", "demo-project")
	t.Setenv("FIREBASE_API_KEY", "web-api-key")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "default-app-id", cfg.App.Namespace)
	assert.Equal(t, "demo-project", cfg.Firebase.ProjectID)
	assert.Equal(t, "web-api-key", cfg.Firebase.APIKey)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_NAMESPACE", "jobnav-prod")
	t.Setenv("FIREBASE_PROJECT_ID", "demo-project")
	t.Setenv("FIREBASE_API_KEY", "web-api-key")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-flash")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "jobnav-prod", cfg.App.Namespace)
	assert.Equal(t, "gemini-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
}

func TestValidate(t *testing.T) {
	base := func() *config.Config {
		return &config.Config{
			Server: config.ServerConfig{Port: "8080"},
			Firebase: config.FirebaseConfig{
				ProjectID: "demo-project",
				APIKey:    "web-api-key",
			},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("missing project id", func(t *testing.T) {
		cfg := base()
		cfg.Firebase.ProjectID = ""
		assert.ErrorContains(t, cfg.Validate(), "FIREBASE_PROJECT_ID")
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := base()
		cfg.Firebase.APIKey = ""
		assert.ErrorContains(t, cfg.Validate(), "FIREBASE_API_KEY")
	})
}
