package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Token issuance
	JWTIssuer         string
	JWTExpiryDuration time.Duration
	RSAPrivateKeyPath string // PEM file; empty means generate a key at startup
	JWKSURL           string // Remote key set for verification; empty means use the local key

	// The single registered OAuth2 client (client-credentials only)
	ClientID         string
	ClientSecret     string // Plaintext, only used to derive the hash when no hash is given
	ClientSecretHash string // bcrypt hash; takes precedence over ClientSecret
	ClientScopes     []string

	// Treasury rates API endpoint
	TreasuryScheme string
	TreasuryHost   string
	TreasuryPath   string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_ISSUER", "purchase-converter-app")
	viper.SetDefault("JWT_EXPIRY_DURATION", "5m")
	viper.SetDefault("RSA_PRIVATE_KEY_PATH", "")
	viper.SetDefault("JWKS_URL", "")
	viper.SetDefault("OAUTH_CLIENT_ID", "client1")
	viper.SetDefault("OAUTH_CLIENT_SECRET", "password1")
	viper.SetDefault("OAUTH_CLIENT_SECRET_HASH", "")
	viper.SetDefault("OAUTH_CLIENT_SCOPES", "purchase")
	viper.SetDefault("TREASURY_SCHEME", "https")
	viper.SetDefault("TREASURY_HOST", "api.fiscaldata.treasury.gov")
	viper.SetDefault("TREASURY_PATH", "/services/api/fiscal_service/v1/accounting/od/rates_of_exchange")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 5 * time.Minute
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.RSAPrivateKeyPath = viper.GetString("RSA_PRIVATE_KEY_PATH")
	if cfg.RSAPrivateKeyPath == "" {
		log.Println("Warning: RSA_PRIVATE_KEY_PATH not set. Generating an ephemeral signing key; tokens will not survive a restart.")
	}
	cfg.JWKSURL = viper.GetString("JWKS_URL")

	cfg.ClientID = viper.GetString("OAUTH_CLIENT_ID")
	cfg.ClientSecret = viper.GetString("OAUTH_CLIENT_SECRET")
	cfg.ClientSecretHash = viper.GetString("OAUTH_CLIENT_SECRET_HASH")
	if cfg.ClientSecretHash == "" && cfg.ClientSecret == "password1" {
		log.Println("Warning: OAUTH_CLIENT_SECRET not set. Using default insecure client credentials. THIS IS NOT FOR PRODUCTION.")
	}

	scopesStr := viper.GetString("OAUTH_CLIENT_SCOPES")
	cfg.ClientScopes = strings.Fields(scopesStr)
	if len(cfg.ClientScopes) == 0 {
		cfg.ClientScopes = []string{"purchase"}
		log.Println("Warning: OAUTH_CLIENT_SCOPES not set. Defaulting to 'purchase'.")
	}

	cfg.TreasuryScheme = viper.GetString("TREASURY_SCHEME")
	cfg.TreasuryHost = viper.GetString("TREASURY_HOST")
	cfg.TreasuryPath = viper.GetString("TREASURY_PATH")

	return cfg, nil
}
