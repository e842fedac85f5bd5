package infra

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"webtrade_go/internal/domain"
	"webtrade_go/internal/otp"
)

const (
	// DefaultUserAgent is a browser-like user agent string, the web-trading API rejects bare clients
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Config는 애플리케이션의 모든 설정을 담습니다.
// LoadConfig로 로드된 후에 환경 변수를 통해 민감 내용을 덮어씁니다.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	API struct {
		BaseURL    string `yaml:"base_url"`
		TimeoutSec int    `yaml:"timeout_sec"`
	} `yaml:"api"`

	Account struct {
		Username     string  `yaml:"username"`
		Password     string  `yaml:"password"`
		AccountNo    string  `yaml:"account_no"`
		SubAccountNo string  `yaml:"sub_account_no"`
		PrivateKey   *string `yaml:"private_key"` // nil when never configured
	} `yaml:"account"`

	OTP struct {
		// Matrix maps row letter to its cells, e.g. A: [I, "1", Q, M, "1", "2", F]
		Matrix        map[string][]string `yaml:"matrix"`
		MinChallenges int                 `yaml:"min_challenges"`
	} `yaml:"otp"`

	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`

	Logging struct {
		Level string `yaml:"level"`
		Dir   string `yaml:"dir"`
	} `yaml:"logging"`

	table *otp.MatrixTable
}

// LoadConfig는 설정 파일을 읽고 파싱합니다.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML config bytes, applies env overrides and validates.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// 4원칙: 보안 우선 - 환경 변수 오버라이드 지원
	overrideWithEnv(&cfg)

	// 5원칙: 설정 유효성 검사
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity and builds the OTP matrix table
func (c *Config) Validate() error {
	if c.API.BaseURL == "" || (!strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://")) {
		return &domain.ConfigError{Field: "api.base_url", Err: fmt.Errorf("invalid URL %q", c.API.BaseURL)}
	}
	if c.API.TimeoutSec < 0 {
		return &domain.ConfigError{Field: "api.timeout_sec", Err: fmt.Errorf("must not be negative")}
	}
	if c.OTP.MinChallenges < 0 {
		return &domain.ConfigError{Field: "otp.min_challenges", Err: fmt.Errorf("must not be negative")}
	}

	table, err := otp.NewMatrixTable(c.OTP.Matrix)
	if err != nil {
		return &domain.ConfigError{Field: "otp.matrix", Err: err}
	}
	c.table = table

	return nil
}

// MatrixTable returns the OTP table built by Validate
func (c *Config) MatrixTable() *otp.MatrixTable {
	return c.table
}

// overrideWithEnv는 환경 변수가 존재할 경우 설정 값을 덮어씁니다.
func overrideWithEnv(cfg *Config) {
	if user := os.Getenv("WEBTRADE_USERNAME"); user != "" {
		cfg.Account.Username = user
	}
	if pass := os.Getenv("WEBTRADE_PASSWORD"); pass != "" {
		cfg.Account.Password = pass
	}
	if key, ok := os.LookupEnv("WEBTRADE_PRIVATE_KEY"); ok {
		cfg.Account.PrivateKey = &key
	}
	if url := os.Getenv("WEBTRADE_BASE_URL"); url != "" {
		cfg.API.BaseURL = url
	}
}
