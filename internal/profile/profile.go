package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory, only used by the sqlite driver
	Data string
	// DSN points to where chatrelay stores its own data
	DSN string
	// Driver is the database driver (mongo, postgres or sqlite)
	Driver string
	// Database is the MongoDB database name
	Database string
	// Version is the current version of server
	Version string

	// Completion API configuration
	OpenAIAPIKey  string // CHATRELAY_OPENAI_API_KEY (legacy: OPENAI_API_KEY)
	OpenAIBaseURL string // CHATRELAY_OPENAI_BASE_URL (legacy: OPENAI_BASE_URL, default: https://api.openai.com/v1)
	ChatModel     string // CHATRELAY_CHAT_MODEL (default: gpt-3.5-turbo)
}

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultDatabase  = "chat_bot"
	defaultBaseURL   = "https://api.openai.com/v1"
	defaultChatModel = "gpt-3.5-turbo"
)

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// HasCompletionCredential reports whether a completion API key is configured.
// The key is checked per chat request, never at startup.
func (p *Profile) HasCompletionCredential() bool {
	return p.OpenAIAPIKey != ""
}

// FromEnv loads configuration from environment variables.
// Supports both CHATRELAY_* (new) and the bare names used by the original deployment (legacy).
// Values already set (for example from flags) are kept.
func (p *Profile) FromEnv() {
	// Skips empty values to allow defaults to take effect
	getEnvWithDefault := func(newKey, legacyKey, defaultValue string) string {
		if val := os.Getenv(newKey); val != "" {
			return val
		}
		if legacyKey != "" {
			if val := os.Getenv(legacyKey); val != "" {
				return val
			}
		}
		return defaultValue
	}

	if p.DSN == "" {
		p.DSN = getEnvWithDefault("CHATRELAY_DSN", "MONGODB_URL", "")
	}
	if p.Database == "" {
		p.Database = getEnvWithDefault("CHATRELAY_DATABASE", "", defaultDatabase)
	}
	if p.OpenAIAPIKey == "" {
		p.OpenAIAPIKey = getEnvWithDefault("CHATRELAY_OPENAI_API_KEY", "OPENAI_API_KEY", "")
	}
	if p.OpenAIBaseURL == "" {
		p.OpenAIBaseURL = getEnvWithDefault("CHATRELAY_OPENAI_BASE_URL", "OPENAI_BASE_URL", defaultBaseURL)
	}
	if p.ChatModel == "" {
		p.ChatModel = getEnvWithDefault("CHATRELAY_CHAT_MODEL", "", defaultChatModel)
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}
	if p.Driver == "" {
		p.Driver = DriverMongo
	}

	switch p.Driver {
	case DriverMongo, DriverPostgres:
		if p.DSN == "" {
			return errors.Errorf("dsn is required for the %s driver", p.Driver)
		}
	case DriverSQLite:
		if p.Data == "" {
			p.Data = "."
		}
		dataDir, err := checkDataDir(p.Data)
		if err != nil {
			slog.Error("failed to check data dir", slog.String("data", p.Data), slog.String("error", err.Error()))
			return err
		}
		p.Data = dataDir
		if p.DSN == "" {
			dbFile := fmt.Sprintf("chatrelay_%s.db", p.Mode)
			p.DSN = filepath.Join(dataDir, dbFile)
		}
	default:
		return errors.Errorf("unknown db driver %q: only 'mongo', 'postgres' and 'sqlite' are supported", p.Driver)
	}

	return nil
}
