package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModePasskey  = "passkey"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Storage StorageConfig     `yaml:"storage"`
	Auth    AuthConfig        `yaml:"auth"`
	Seed    SeedConfig        `yaml:"seed"`
	CORS    CORSConfig        `yaml:"cors"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// StorageConfig holds paths for the SQLite database and the blob
// directory, plus the key that signs blob retrieval URLs.
type StorageConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
	BlobDir    string `yaml:"blob_dir"`
	SignKey    string `yaml:"sign_key"`
}

// Validate validates the storage configuration.
func (c *StorageConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.SQLitePath, validation.Required),
		validation.Field(&c.BlobDir, validation.Required),
		validation.Field(&c.SignKey, validation.Required, validation.Length(16, 0)),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how admin writes are gated:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "passkey": the login endpoint compares against PasskeyHash and issues
//     session tokens signed with SessionSecret; both must be non-empty.
type AuthConfig struct {
	Mode          string `yaml:"mode"`
	PasskeyHash   string `yaml:"passkey_hash"`
	SessionSecret string `yaml:"session_secret"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModePasskey)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModePasskey {
		if c.PasskeyHash == "" {
			return fmt.Errorf("auth: mode is %q but passkey_hash is empty", AuthModePasskey)
		}
		if c.SessionSecret == "" {
			return fmt.Errorf("auth: mode is %q but session_secret is empty", AuthModePasskey)
		}
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModePasskey
}

// SeedConfig holds the optional seed content directory. When Dir is empty
// no seed import or watching happens.
type SeedConfig struct {
	Dir string `yaml:"dir"`
}

// CORSConfig holds the allowed browser origins.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Storage: StorageConfig{
			SQLitePath: "./folio.db",
			BlobDir:    "./blobs",
			SignKey:    "folio-dev-signing-key",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}
}
