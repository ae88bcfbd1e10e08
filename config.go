package auth

import (
	"os"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"
)

// ConfigObject is a file or literal backed Config. Durations use Go syntax
// ("15m", "720h") in YAML.
type ConfigObject struct {
	SigningKey         string `yaml:"signing_key" json:"-"`
	AccessTokenTTLRaw  string `yaml:"access_token_ttl" json:"access_token_ttl,omitempty"`
	RefreshTokenTTLRaw string `yaml:"refresh_token_ttl" json:"refresh_token_ttl,omitempty"`
	Issuer             string `yaml:"issuer" json:"issuer,omitempty"`
	AuthScheme         string `yaml:"auth_scheme" json:"auth_scheme,omitempty"`
	ContextKey         string `yaml:"context_key" json:"context_key,omitempty"`

	accessTTL  time.Duration
	refreshTTL time.Duration
}

var _ Config = (*ConfigObject)(nil)

// DefaultConfig returns a config with conventional TTLs and the given key.
// The signing key has no default; it always comes from the caller.
func DefaultConfig(signingKey string) *ConfigObject {
	cfg := &ConfigObject{
		SigningKey:         signingKey,
		AccessTokenTTLRaw:  "15m",
		RefreshTokenTTLRaw: "720h",
		Issuer:             "bazarhub",
		AuthScheme:         "Bearer",
		ContextKey:         "user",
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// LoadConfig reads a YAML config file and validates it
func LoadConfig(path string) (*ConfigObject, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to read config file")
	}

	cfg := &ConfigObject{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "failed to parse config file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate parses the raw durations and checks the TTL ordering invariant
func (c *ConfigObject) Validate() error {
	if c.SigningKey == "" {
		return goerrors.New("signing_key is required", goerrors.CategoryValidation)
	}

	var err error
	if c.accessTTL, err = time.ParseDuration(c.AccessTokenTTLRaw); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid access_token_ttl")
	}

	if c.refreshTTL, err = time.ParseDuration(c.RefreshTokenTTLRaw); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid refresh_token_ttl")
	}

	if c.accessTTL <= 0 || c.refreshTTL <= 0 {
		return goerrors.New("token TTLs must be positive", goerrors.CategoryValidation)
	}

	if c.refreshTTL <= c.accessTTL {
		return goerrors.New("refresh_token_ttl must be greater than access_token_ttl", goerrors.CategoryValidation)
	}

	if c.AuthScheme == "" {
		c.AuthScheme = "Bearer"
	}

	if c.ContextKey == "" {
		c.ContextKey = "user"
	}

	return nil
}

func (c *ConfigObject) GetSigningKey() string { return c.SigningKey }

func (c *ConfigObject) GetAccessTokenTTL() time.Duration { return c.accessTTL }

func (c *ConfigObject) GetRefreshTokenTTL() time.Duration { return c.refreshTTL }

func (c *ConfigObject) GetIssuer() string { return c.Issuer }

func (c *ConfigObject) GetAuthScheme() string { return c.AuthScheme }

func (c *ConfigObject) GetContextKey() string { return c.ContextKey }

// NewTokenCodecFromConfig wires a TokenCodec straight from a Config
func NewTokenCodecFromConfig(cfg Config, logger Logger) (*TokenCodecImpl, error) {
	return NewTokenCodec(
		[]byte(cfg.GetSigningKey()),
		cfg.GetAccessTokenTTL(),
		cfg.GetRefreshTokenTTL(),
		cfg.GetIssuer(),
		logger,
	)
}
