package deploy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/config"
)

func deployConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Deploy.OutputDir = t.TempDir()
	cfg.Paths.InboxDir = "/srv/audio/inbox"
	cfg.Paths.TranscriptsDir = "/srv/audio/transcripts"
	return &cfg
}

func TestResolveCredentialsPrefersConfig(t *testing.T) {
	cfg := deployConfig(t)
	cfg.Deploy.DBPassword = "from-config"
	t.Setenv(EnvDBPassword, "from-env")

	creds, err := ResolveCredentials(cfg)
	if err != nil {
		t.Fatalf("ResolveCredentials: %v", err)
	}
	if creds.DBPassword != "from-config" {
		t.Fatalf("expected config value to win, got %q", creds.DBPassword)
	}
}

func TestResolveCredentialsReadsEnvFile(t *testing.T) {
	cfg := deployConfig(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	content := EnvDBPassword + "=secret\n" + EnvDBRootPassword + "=rootsecret\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg.Deploy.EnvFile = envFile

	creds, err := ResolveCredentials(cfg)
	if err != nil {
		t.Fatalf("ResolveCredentials: %v", err)
	}
	if creds.DBPassword != "secret" || creds.DBRootPassword != "rootsecret" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
}

func TestResolveCredentialsMissingEnvFile(t *testing.T) {
	cfg := deployConfig(t)
	cfg.Deploy.EnvFile = filepath.Join(t.TempDir(), "missing.env")
	if _, err := ResolveCredentials(cfg); err == nil {
		t.Fatal("expected error for missing env file")
	}
}

func TestEnvCheckReportsMissing(t *testing.T) {
	cfg := deployConfig(t)
	t.Setenv(EnvDBPassword, "")
	t.Setenv(EnvDBRootPassword, "")

	missing, err := EnvCheck(cfg)
	if err != nil {
		t.Fatalf("EnvCheck: %v", err)
	}
	// Defaults supply name and user; both passwords are unset.
	if len(missing) != 2 {
		t.Fatalf("expected 2 missing credentials, got %v", missing)
	}
}

func TestRenderWritesComposeFiles(t *testing.T) {
	cfg := deployConfig(t)
	cfg.Deploy.DBPassword = "wp-pass"
	cfg.Deploy.DBRootPassword = "root-pass"

	written, err := Render(cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 files, got %v", written)
	}

	wordpress, err := os.ReadFile(filepath.Join(cfg.Deploy.OutputDir, WordPressComposeFile))
	if err != nil {
		t.Fatalf("read wordpress compose: %v", err)
	}
	for _, want := range []string{
		"image: mysql:5.7",
		"image: wordpress:latest",
		`"8000:80"`,
		"MYSQL_ROOT_PASSWORD: root-pass",
		"WORDPRESS_DB_PASSWORD: wp-pass",
		"WORDPRESS_DB_HOST: db:3306",
	} {
		if !strings.Contains(string(wordpress), want) {
			t.Errorf("wordpress compose missing %q", want)
		}
	}

	whisper, err := os.ReadFile(filepath.Join(cfg.Deploy.OutputDir, WhisperComposeFile))
	if err != nil {
		t.Fatalf("read whisper compose: %v", err)
	}
	for _, want := range []string{
		"image: scribe-whisper:latest",
		"WHISPER_MODEL: small",
		"/srv/audio/inbox:/audio/inbox",
		"/srv/audio/transcripts:/audio/transcripts",
	} {
		if !strings.Contains(string(whisper), want) {
			t.Errorf("whisper compose missing %q", want)
		}
	}
}

func TestRenderFailsWithoutCredentials(t *testing.T) {
	cfg := deployConfig(t)
	t.Setenv(EnvDBPassword, "")
	t.Setenv(EnvDBRootPassword, "")
	if _, err := Render(cfg); err == nil {
		t.Fatal("expected render to fail without passwords")
	}
}
