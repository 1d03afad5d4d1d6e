package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Upload   UploadConfig   `mapstructure:"upload"   validate:"required"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// Development enables the "errors" member of response envelopes.
	// It must stay false in any deployed environment.
	Development bool `mapstructure:"development"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeSeconds int    `mapstructure:"token_lifetime_seconds" validate:"required,gt=0"`
}

// UploadConfig controls the file upload endpoint.
type UploadConfig struct {
	Dir          string   `mapstructure:"dir"           validate:"required"`
	PublicPrefix string   `mapstructure:"public_prefix" validate:"required"`
	MaxSizeMB    int64    `mapstructure:"max_size_mb"   validate:"required,gt=0"`
	AllowedTypes []string `mapstructure:"allowed_types" validate:"required,min=1"`
}

// CORSConfig holds the cross-origin response header settings.
type CORSConfig struct {
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

// DefaultAllowedUploadTypes lists the MIME types accepted by the upload endpoint
// when none are configured.
var DefaultAllowedUploadTypes = []string{
	"image/jpg",
	"image/jpeg",
	"image/png",
	"application/psd",
	"image/vnd.adobe.photoshop",
	"application/ai",
	"application/illustrator",
	"application/postscript",
	"application/pdf",
	"application/eps",
	"application/vnd.adobe.illustrator",
	"application/cdr",
	"application/x-cdr",
	"application/coreldraw",
	"image/x-coreldraw",
}
