package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dshills/canvasedit/internal/config/loader"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CANVASEDIT_"

// Option configures Load.
type Option func(*options)

type options struct {
	path    string
	fs      loader.FileSystem
	env     bool
	environ func() []string
}

// WithFile reads settings from path. A missing file is not an error.
func WithFile(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithFileSystem sets the file system used to read the config file.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithoutEnv disables environment variable overrides.
func WithoutEnv() Option {
	return func(o *options) {
		o.env = false
	}
}

// WithEnviron replaces the environment source.
func WithEnviron(environ func() []string) Option {
	return func(o *options) {
		o.environ = environ
	}
}

// Load resolves defaults, the config file and the environment into a
// validated Config.
func Load(opts ...Option) (*Config, error) {
	o := options{env: true}
	for _, opt := range opts {
		opt(&o)
	}

	merged, err := toMap(Default())
	if err != nil {
		return nil, err
	}

	if o.path != "" {
		fl, err := loader.ForPath(o.fs, o.path)
		if err != nil {
			return nil, err
		}
		data, err := fl.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	if o.env {
		el := loader.NewEnvLoader(EnvPrefix)
		if o.environ != nil {
			el.SetEnviron(o.environ)
		}
		data, err := el.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	normalizeDurations(merged)

	cfg, err := fromMap(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// durationPaths lists the settings decoded as time.Duration.
var durationPaths = []string{"script.timeout"}

// normalizeDurations rewrites bare numbers at durationPaths as seconds, so
// `timeout = 10` and CANVASEDIT_SCRIPT_TIMEOUT=10 both mean ten seconds.
func normalizeDurations(m map[string]any) {
	for _, path := range durationPaths {
		section, key, _ := strings.Cut(path, ".")
		sec, ok := m[section].(map[string]any)
		if !ok {
			continue
		}
		switch v := sec[key].(type) {
		case int:
			sec[key] = (time.Duration(v) * time.Second).String()
		case int64:
			sec[key] = (time.Duration(v) * time.Second).String()
		case float64:
			sec[key] = time.Duration(v * float64(time.Second)).String()
		}
	}
}

// toMap converts a Config into the generic shape produced by loaders.
func toMap(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	return m, nil
}

// fromMap decodes a merged settings map into a Config.
func fromMap(m map[string]any) (*Config, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks every setting and reports all failures at once.
func (c *Config) Validate() error {
	err := structValidator().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return newValidationError(verrs)
	}
	return err
}
