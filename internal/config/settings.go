package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/larascaffold/larascaffold/internal/branding"
	"github.com/larascaffold/larascaffold/internal/column"
	"github.com/larascaffold/larascaffold/internal/logging"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config keys.
const (
	KeyControllersDir       = "paths.controllers"
	KeyModelsDir            = "paths.models"
	KeyMigrationsDir        = "paths.migrations"
	KeyViewsDir             = "paths.views"
	KeyRoutesDir            = "paths.routes"
	KeyControllersNamespace = "namespaces.controllers"
	KeyModelsNamespace      = "namespaces.models"
	KeyMigrationStyle       = "migration_style"
	KeyTemplates            = "templates"
	KeyExcludedTypes        = "excluded_types"
)

// Migration class styles.
const (
	MigrationStyleNamed     = "named"
	MigrationStyleAnonymous = "anonymous"
)

// Flags bound to config keys when present on the command.
var flagKeys = map[string]string{
	"templates":       KeyTemplates,
	"migration-style": KeyMigrationStyle,
}

var defaults = map[string]any{
	KeyControllersDir:       "app/Http/Controllers",
	KeyModelsDir:            "", // empty: derived from the detected framework version
	KeyMigrationsDir:        "database/migrations",
	KeyViewsDir:             "resources/views",
	KeyRoutesDir:            "routes",
	KeyControllersNamespace: `App\Http\Controllers`,
	KeyModelsNamespace:      "",
	KeyMigrationStyle:       MigrationStyleNamed,
	KeyTemplates:            "",
	KeyExcludedTypes:        column.ExcludedTypes,
}

// Paths are project-relative target directories.
type Paths struct {
	Controllers string `mapstructure:"controllers"`
	Models      string `mapstructure:"models"`
	Migrations  string `mapstructure:"migrations"`
	Views       string `mapstructure:"views"`
	Routes      string `mapstructure:"routes"`
}

// Namespaces are PHP namespaces of generated classes.
type Namespaces struct {
	Controllers string `mapstructure:"controllers"`
	Models      string `mapstructure:"models"`
}

// Settings is the resolved generator configuration.
type Settings struct {
	Paths          Paths      `mapstructure:"paths"`
	Namespaces     Namespaces `mapstructure:"namespaces"`
	MigrationStyle string     `mapstructure:"migration_style"`
	Templates      string     `mapstructure:"templates"`
	ExcludedTypes  []string   `mapstructure:"excluded_types"`

	// Sources lists the config files that were read, lowest precedence first.
	Sources []string `mapstructure:"-"`
}

// KnownKeys returns every settable key in sorted order.
func KnownKeys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// IsKnownKey reports whether key is a recognized setting.
func IsKnownKey(key string) bool {
	_, ok := defaults[key]
	return ok
}

// LoadSettings resolves settings for the project at root. Precedence, highest
// first: flags, environment, the project's .env file, .larascaffold.yaml,
// the user config file, defaults. flags may be nil.
func LoadSettings(root string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var sources []string
	for _, path := range []string{FilePath(), filepath.Join(root, branding.ProjectFile())} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		sources = append(sources, path)
	}

	if err := loadDotEnv(root); err != nil {
		return nil, err
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	s.Sources = sources

	if err := s.validate(); err != nil {
		return nil, err
	}

	logging.Logger.Debugw("settings resolved",
		logging.FieldConfig, sources,
		KeyMigrationStyle, s.MigrationStyle,
		KeyTemplates, s.Templates)
	return &s, nil
}

// loadDotEnv exports prefixed variables from root/.env that are not already
// set in the process environment.
func loadDotEnv(root string) error {
	path := filepath.Join(root, ".env")
	vars, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	prefix := branding.EnvPrefix() + "_"
	for k, val := range vars {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return fmt.Errorf("exporting %s: %w", k, err)
		}
	}
	return nil
}

func (s *Settings) validate() error {
	if err := validateMigrationStyle(s.MigrationStyle); err != nil {
		return err
	}

	required := map[string]string{
		KeyControllersDir: s.Paths.Controllers,
		KeyMigrationsDir:  s.Paths.Migrations,
		KeyViewsDir:       s.Paths.Views,
		KeyRoutesDir:      s.Paths.Routes,
	}
	for _, key := range KnownKeys() {
		if val, ok := required[key]; ok && strings.TrimSpace(val) == "" {
			return fmt.Errorf("config key %s must not be empty", key)
		}
	}
	return nil
}

func validateMigrationStyle(style string) error {
	if style != MigrationStyleNamed && style != MigrationStyleAnonymous {
		return fmt.Errorf("%s must be %q or %q, got %q",
			KeyMigrationStyle, MigrationStyleNamed, MigrationStyleAnonymous, style)
	}
	return nil
}
