package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/testsupport"
)

func TestDeployRenderCommand(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Deploy.DBPassword = "wp-secret"
	cfg.Deploy.DBRootPassword = "root-secret"
	configPath := filepath.Join(cfg.Paths.LogDir, "config.toml")
	writeTestConfig(t, configPath, cfg)

	out, _, err := runCLI(t, []string{"deploy", "render"}, filepath.Join(t.TempDir(), "none.sock"), configPath)
	if err != nil {
		t.Fatalf("deploy render: %v", err)
	}
	if !strings.Contains(out, "docker-compose.wordpress.yml") || !strings.Contains(out, "docker-compose.whisper.yml") {
		t.Fatalf("render output missing compose files: %q", out)
	}

	rendered, err := os.ReadFile(filepath.Join(cfg.Deploy.OutputDir, "docker-compose.wordpress.yml"))
	if err != nil {
		t.Fatalf("read rendered compose: %v", err)
	}
	if !strings.Contains(string(rendered), "wp-secret") {
		t.Fatalf("rendered compose missing credentials: %q", string(rendered))
	}
}

func TestDeployEnvCheckCommand(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	configPath := filepath.Join(cfg.Paths.LogDir, "config.toml")
	writeTestConfig(t, configPath, cfg)

	t.Setenv("WORDPRESS_DB_PASSWORD", "")
	t.Setenv("MYSQL_ROOT_PASSWORD", "")

	out, _, err := runCLI(t, []string{"deploy", "env-check"}, filepath.Join(t.TempDir(), "none.sock"), configPath)
	if err == nil {
		t.Fatal("expected env-check to fail without credentials")
	}
	if !strings.Contains(out, "WORDPRESS_DB_PASSWORD") || !strings.Contains(out, "MYSQL_ROOT_PASSWORD") {
		t.Fatalf("env-check output missing variables: %q", out)
	}

	t.Setenv("WORDPRESS_DB_PASSWORD", "wp-secret")
	t.Setenv("MYSQL_ROOT_PASSWORD", "root-secret")

	out, _, err = runCLI(t, []string{"deploy", "env-check"}, filepath.Join(t.TempDir(), "none.sock"), configPath)
	if err != nil {
		t.Fatalf("deploy env-check: %v", err)
	}
	if !strings.Contains(out, "All deployment credentials are set") {
		t.Fatalf("unexpected env-check output: %q", out)
	}
}
