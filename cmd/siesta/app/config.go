package app

import (
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
)

// Config holds the application configuration loaded from flags, the
// environment, .env files and the config file.
type Config struct {
	// Global flags
	Verbose   bool
	Quiet     bool
	NoColor   bool
	AssumeYes bool

	// Config file
	ConfigFile string

	// Where boilerplate comes from
	Branch      string
	Contents    string
	Local       bool
	Repository  string
	APIURL      string
	Concurrency int

	// GitignoreURL is the .gitignore template project gitignore downloads
	GitignoreURL string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	v *viper.Viper
}

// Viper returns the instance the config was read from.
func (c *Config) Viper() *viper.Viper {
	return c.v
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. SIESTA_* environment variables
//  3. .env and .env.local
//  4. Config file ($XDG_CONFIG_HOME/siesta/config.yaml or ./.siesta.yaml)
//  5. Defaults
//
// configFile, when set, replaces the config file search.
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix("siesta")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// LOG_* without the prefix is still honored
	for _, key := range []string{"log_level", "log_format", "log_output"} {
		_ = v.BindEnv(key, "SIESTA_"+strings.ToUpper(key), strings.ToUpper(key))
	}

	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	}

	return &Config{
		AssumeYes:    v.GetBool("assume_yes"),
		ConfigFile:   v.ConfigFileUsed(),
		Branch:       v.GetString("branch"),
		Contents:     v.GetString("contents"),
		Local:        v.GetBool("local"),
		Repository:   v.GetString("repository"),
		APIURL:       v.GetString("api_url"),
		Concurrency:  v.GetInt("concurrency"),
		GitignoreURL: v.GetString("gitignore_url"),
		LogLevel:     v.GetString("log_level"),
		LogFormat:    v.GetString("log_format"),
		LogOutput:    v.GetString("log_output"),
		v:            v,
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("branch", constants.DefaultBranch)
	v.SetDefault("contents", constants.DefaultContentPath)
	v.SetDefault("repository", constants.Repository)
	v.SetDefault("api_url", constants.GitHubAPIURL)
	v.SetDefault("concurrency", constants.MaxConcurrentDownloads)
	v.SetDefault("gitignore_url", constants.PythonGitignoreURL)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if p, err := xdg.SearchConfigFile("siesta/config.yaml"); err == nil {
		return p
	}
	if _, err := os.Stat(".siesta.yaml"); err == nil {
		return ".siesta.yaml"
	}
	return ""
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags so flag values take
// precedence over the config file and environment.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor, assumeYes bool, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	c.AssumeYes = c.AssumeYes || assumeYes
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded first so its values win.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
