package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unity-handler-report/config"
	apperrors "unity-handler-report/errors"
)

// clearEnv removes every variable Load reads so ambient shell state cannot
// leak into a test case. t.Setenv first so the original value is restored;
// godotenv only fills variables that are truly unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvBaseURL, config.EnvUsername, config.EnvPassword,
		config.EnvOutput, config.EnvTimeout, config.EnvInsecure,
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvBaseURL, "https://unity.example.com/vmrest/")
	t.Setenv(config.EnvUsername, "admin")
	t.Setenv(config.EnvPassword, "secret")

	cfg, err := config.Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "https://unity.example.com/vmrest", cfg.BaseURL, "trailing slash trimmed")
	assert.Equal(t, "admin", cfg.Username)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "call_handlers_and_schedules.csv", cfg.OutputPath)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.InsecureSkipVerify)
}

func TestLoad_MissingCredentialsFatal(t *testing.T) {
	tests := map[string]struct {
		baseURL  string
		username string
		password string
	}{
		"MissingBaseURL":  {baseURL: "", username: "admin", password: "secret"},
		"MissingUsername": {baseURL: "https://u.example.com", username: "", password: "secret"},
		"MissingPassword": {baseURL: "https://u.example.com", username: "admin", password: ""},
		"MissingAll":      {},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(config.EnvBaseURL, tc.baseURL)
			t.Setenv(config.EnvUsername, tc.username)
			t.Setenv(config.EnvPassword, tc.password)

			_, err := config.Load("", "")
			require.Error(t, err)
			var cfgErr *apperrors.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestLoad_TomlFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`
base_url = "https://file.example.com"
username = "file-admin"
password = "file-secret"
output_path = "file.csv"
timeout_seconds = 10
insecure_skip_verify = true
`), 0644))

	// Environment wins over the file for the base URL only.
	t.Setenv(config.EnvBaseURL, "https://env.example.com")

	cfg, err := config.Load("", tomlPath)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.BaseURL)
	assert.Equal(t, "file-admin", cfg.Username)
	assert.Equal(t, "file-secret", cfg.Password)
	assert.Equal(t, "file.csv", cfg.OutputPath)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.True(t, cfg.InsecureSkipVerify)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte(
		config.EnvBaseURL+"=https://dotenv.example.com\n"+
			config.EnvUsername+"=dotenv-admin\n"+
			config.EnvPassword+"=dotenv-secret\n",
	), 0644))

	cfg, err := config.Load(envPath, "")
	require.NoError(t, err)
	assert.Equal(t, "https://dotenv.example.com", cfg.BaseURL)
	assert.Equal(t, "dotenv-admin", cfg.Username)
	assert.Equal(t, "dotenv-secret", cfg.Password)
}

func TestLoad_NamedButMissingFilesAreErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvBaseURL, "https://u.example.com")
	t.Setenv(config.EnvUsername, "admin")
	t.Setenv(config.EnvPassword, "secret")

	_, err := config.Load(filepath.Join(t.TempDir(), "absent.env"), "")
	assert.Error(t, err)

	_, err = config.Load("", filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_TimeoutAndInsecureFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvBaseURL, "https://u.example.com")
	t.Setenv(config.EnvUsername, "admin")
	t.Setenv(config.EnvPassword, "secret")
	t.Setenv(config.EnvTimeout, "5")
	t.Setenv(config.EnvInsecure, "true")

	cfg, err := config.Load("", "")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.InsecureSkipVerify)
}

func TestLoad_BadTimeoutRejected(t *testing.T) {
	tests := map[string]string{
		"NotANumber": "soon",
		"Zero":       "0",
		"Negative":   "-3",
	}

	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(config.EnvBaseURL, "https://u.example.com")
			t.Setenv(config.EnvUsername, "admin")
			t.Setenv(config.EnvPassword, "secret")
			t.Setenv(config.EnvTimeout, value)

			_, err := config.Load("", "")
			assert.Error(t, err)
		})
	}
}
