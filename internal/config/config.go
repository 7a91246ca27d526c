// Package config resolves scriptindex settings from defaults, an optional
// YAML file, the environment and finally command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gobwas/glob"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/agentflare-ai/go-scriptindex/internal/index"
)

// Config holds one invocation's settings.
type Config struct {
	Root        string   `yaml:"root" validate:"required"`
	Readme      string   `yaml:"readme" validate:"required"`
	TableFields []string `yaml:"table_fields" validate:"min=1,dive,required"`
	LinkFields  []string `yaml:"link_fields" validate:"dive,required"`
	Include     []string `yaml:"include" validate:"dive,required"`
	Ignore      []string `yaml:"ignore" validate:"dive,required"`
	Workers     int      `yaml:"workers" validate:"gte=0"`
}

// DefaultFileNames are searched in the working directory when no config file
// is given explicitly.
var DefaultFileNames = []string{".scriptindex.yaml", ".scriptindex.yml"}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Root:        ".",
		Readme:      "README.md",
		TableFields: []string{"Description", "Link"},
		LinkFields:  []string{"Link"},
		Include:     append([]string(nil), index.DefaultInclude...),
		Ignore:      append([]string(nil), index.DefaultIgnore...),
	}
}

// Load starts from Default, applies the YAML file at path (or the first of
// DefaultFileNames that exists when path is empty) and then the environment.
// A missing file is only an error when path was given.
func Load(path string) (Config, error) {
	// .env is optional, but a broken one is reported.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	file := path
	if file == "" {
		for _, name := range DefaultFileNames {
			if _, err := os.Stat(name); err == nil {
				file = name
				break
			}
		}
	}
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return Config{}, fmt.Errorf("open config %s: %w", file, err)
		}
		defer f.Close()
		if err := decode(f, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", file, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides settings from SCRIPTINDEX_* variables. List values are
// comma separated.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("SCRIPTINDEX_ROOT"); ok && v != "" {
		c.Root = v
	}
	if v, ok := lookup("SCRIPTINDEX_README"); ok && v != "" {
		c.Readme = v
	}
	lists := []struct {
		key  string
		dest *[]string
	}{
		{"SCRIPTINDEX_TABLE_FIELDS", &c.TableFields},
		{"SCRIPTINDEX_LINK_FIELDS", &c.LinkFields},
		{"SCRIPTINDEX_INCLUDE", &c.Include},
		{"SCRIPTINDEX_IGNORE", &c.Ignore},
	}
	for _, l := range lists {
		if v, ok := lookup(l.key); ok {
			*l.dest = SplitList(v)
		}
	}
	if v, ok := lookup("SCRIPTINDEX_WORKERS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SCRIPTINDEX_WORKERS: %w", err)
		}
		c.Workers = n
	}
	return nil
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the shape of the configuration. Whether link fields are a
// subset of table fields is left to the pipeline, which reports it as its
// own result.
func (c Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for _, pattern := range append(append([]string(nil), c.Include...), c.Ignore...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("invalid configuration: glob %q: %w", pattern, err)
		}
	}
	return nil
}

// Fields returns the table layout described by c.
func (c Config) Fields() index.FieldSpec {
	return index.FieldSpec{Table: c.TableFields, Link: c.LinkFields}
}
