package deploy

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/joho/godotenv"

	"scribe/internal/config"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Rendered file names inside the deploy output directory.
const (
	WordPressComposeFile = "docker-compose.wordpress.yml"
	WhisperComposeFile   = "docker-compose.whisper.yml"
)

// Environment variable names honored for credential resolution.
const (
	EnvDBName         = "WORDPRESS_DB_NAME"
	EnvDBUser         = "WORDPRESS_DB_USER"
	EnvDBPassword     = "WORDPRESS_DB_PASSWORD"
	EnvDBRootPassword = "MYSQL_ROOT_PASSWORD"
)

// Credentials holds the database settings injected into the compose files.
type Credentials struct {
	DBName         string
	DBUser         string
	DBPassword     string
	DBRootPassword string
}

// templateData is the merged view handed to both templates.
type templateData struct {
	Credentials

	WordPressPort  int
	WordPressImage string
	MySQLImage     string

	WhisperImage string
	WhisperModel string

	InboxDir       string
	TranscriptsDir string
}

// ResolveCredentials merges credentials from config, an optional dotenv file,
// and the process environment, in that order of precedence.
func ResolveCredentials(cfg *config.Config) (Credentials, error) {
	creds := Credentials{
		DBName:         strings.TrimSpace(cfg.Deploy.DBName),
		DBUser:         strings.TrimSpace(cfg.Deploy.DBUser),
		DBPassword:     strings.TrimSpace(cfg.Deploy.DBPassword),
		DBRootPassword: strings.TrimSpace(cfg.Deploy.DBRootPassword),
	}

	var fileEnv map[string]string
	if envFile := strings.TrimSpace(cfg.Deploy.EnvFile); envFile != "" {
		loaded, err := godotenv.Read(envFile)
		if err != nil {
			return Credentials{}, fmt.Errorf("read env file %s: %w", envFile, err)
		}
		fileEnv = loaded
	}

	lookup := func(key string) string {
		if fileEnv != nil {
			if value, ok := fileEnv[key]; ok && strings.TrimSpace(value) != "" {
				return strings.TrimSpace(value)
			}
		}
		return strings.TrimSpace(os.Getenv(key))
	}

	if creds.DBName == "" {
		creds.DBName = lookup(EnvDBName)
	}
	if creds.DBUser == "" {
		creds.DBUser = lookup(EnvDBUser)
	}
	if creds.DBPassword == "" {
		creds.DBPassword = lookup(EnvDBPassword)
	}
	if creds.DBRootPassword == "" {
		creds.DBRootPassword = lookup(EnvDBRootPassword)
	}
	return creds, nil
}

// EnvCheck reports which required credentials are missing after resolution.
func EnvCheck(cfg *config.Config) ([]string, error) {
	creds, err := ResolveCredentials(cfg)
	if err != nil {
		return nil, err
	}
	return missingCredentials(creds), nil
}

func missingCredentials(creds Credentials) []string {
	var missing []string
	if creds.DBName == "" {
		missing = append(missing, EnvDBName)
	}
	if creds.DBUser == "" {
		missing = append(missing, EnvDBUser)
	}
	if creds.DBPassword == "" {
		missing = append(missing, EnvDBPassword)
	}
	if creds.DBRootPassword == "" {
		missing = append(missing, EnvDBRootPassword)
	}
	return missing
}

// Render writes both compose files into the configured output directory and
// returns the written paths.
func Render(cfg *config.Config) ([]string, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	creds, err := ResolveCredentials(cfg)
	if err != nil {
		return nil, err
	}
	if missing := missingCredentials(creds); len(missing) > 0 {
		return nil, fmt.Errorf("missing credentials: %s", strings.Join(missing, ", "))
	}

	outputDir := strings.TrimSpace(cfg.Deploy.OutputDir)
	if outputDir == "" {
		return nil, fmt.Errorf("deploy output_dir is not configured")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create deploy output dir: %w", err)
	}

	data := templateData{
		Credentials:    creds,
		WordPressPort:  cfg.Deploy.WordPressPort,
		WordPressImage: cfg.Deploy.WordPressImage,
		MySQLImage:     cfg.Deploy.MySQLImage,
		WhisperImage:   cfg.Deploy.WhisperImage,
		WhisperModel:   cfg.Whisper.Model,
		InboxDir:       cfg.Paths.InboxDir,
		TranscriptsDir: cfg.Paths.TranscriptsDir,
	}

	templates, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse deploy templates: %w", err)
	}

	written := make([]string, 0, 2)
	for _, spec := range []struct {
		templateName string
		fileName     string
	}{
		{"wordpress.yml.tmpl", WordPressComposeFile},
		{"whisper.yml.tmpl", WhisperComposeFile},
	} {
		templateName, fileName := spec.templateName, spec.fileName
		target := filepath.Join(outputDir, fileName)
		file, err := os.Create(target)
		if err != nil {
			return written, fmt.Errorf("create %s: %w", target, err)
		}
		if err := templates.ExecuteTemplate(file, templateName, data); err != nil {
			file.Close()
			return written, fmt.Errorf("render %s: %w", fileName, err)
		}
		if err := file.Close(); err != nil {
			return written, fmt.Errorf("close %s: %w", target, err)
		}
		written = append(written, target)
	}
	return written, nil
}
