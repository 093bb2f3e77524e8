package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Rows      int      `yaml:"rows" json:"rows" validate:"gt=0"`
	Columns   int      `yaml:"columns" json:"columns" validate:"gte=2"`
	Trials    int      `yaml:"trials" json:"trials" validate:"gt=0"`
	Warmup    int      `yaml:"warmup" json:"warmup" validate:"gte=0"`
	Seed      uint64   `yaml:"seed" json:"seed"`
	ModelMode string   `yaml:"model_mode" json:"model_mode" validate:"oneof=construct solve both"`
	Methods   []string `yaml:"methods" json:"methods" validate:"min=1,unique,dive,oneof=lstsq model direct"`
	CLT       CLT      `yaml:"clt" json:"clt"`
	Results   Results  `yaml:"results" json:"results"`
}

type CLT struct {
	Method        string `yaml:"method" json:"method" validate:"oneof=lstsq model direct"`
	SubsampleSize int    `yaml:"subsample_size" json:"subsample_size" validate:"gt=0"`
	Repetitions   int    `yaml:"repetitions" json:"repetitions" validate:"gt=0"`
	Seed          uint64 `yaml:"seed" json:"seed"`
}

type Results struct {
	Dir string `yaml:"dir" json:"dir" validate:"required"`
}

var validate = validator.New()

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Rows:      1000,
		Columns:   5,
		Trials:    1000,
		ModelMode: "construct",
		Methods:   []string{"lstsq", "model", "direct"},
		CLT: CLT{
			Method:        "direct",
			SubsampleSize: 150,
			Repetitions:   500,
		},
		Results: Results{Dir: "results"},
	}
}

// Load reads path over the defaults, so a file only needs the keys it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every failing field in one error wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be > %s, got %v", field, fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be >= %s, got %v", field, fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
	case "unique":
		return fmt.Sprintf("%s must not repeat entries", field)
	case "required":
		return fmt.Sprintf("%s is required", field)
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
