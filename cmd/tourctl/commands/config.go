package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tourdesk/admin-client/internal/constants"
)

// Config represents the CLI configuration.
type Config struct {
	API     string `json:"api,omitempty"     yaml:"api,omitempty"`
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Output  string `json:"output"            yaml:"output"`

	Cache CacheSettings `json:"cache" yaml:"cache"`

	// Sessions holds the cookies saved per API endpoint after login.
	Sessions []*SessionConfig `json:"sessions,omitempty" yaml:"sessions,omitempty"`
}

// CacheSettings selects and configures the response cache backend.
type CacheSettings struct {
	Type          string `json:"type"                     yaml:"type"`
	NATSURL       string `json:"nats_url,omitempty"       yaml:"nats_url,omitempty"`
	NATSBucket    string `json:"nats_bucket,omitempty"    yaml:"nats_bucket,omitempty"`
	RedisAddr     string `json:"redis_addr,omitempty"     yaml:"redis_addr,omitempty"`
	RedisPassword string `json:"redis_password,omitempty" yaml:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db,omitempty"       yaml:"redis_db,omitempty"`
	RedisPrefix   string `json:"redis_prefix,omitempty"   yaml:"redis_prefix,omitempty"`
}

// SessionConfig is the saved login state for one API endpoint.
type SessionConfig struct {
	Endpoint  string        `json:"endpoint"             mapstructure:"endpoint"   yaml:"endpoint"`
	Username  string        `json:"username,omitempty"   mapstructure:"username"   yaml:"username,omitempty"`
	Cookies   []SavedCookie `json:"cookies,omitempty"    mapstructure:"cookies"    yaml:"cookies,omitempty"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty" mapstructure:"updated_at" yaml:"updated_at,omitempty"`
}

// SavedCookie is a session cookie as reported by the cookie jar.
type SavedCookie struct {
	Name  string `json:"name"  mapstructure:"name"  yaml:"name"`
	Value string `json:"value" mapstructure:"value" yaml:"value"`
}

// findSession returns the saved session for endpoint, or nil.
func (c *Config) findSession(endpoint string) *SessionConfig {
	for _, session := range c.Sessions {
		if session.Endpoint == endpoint {
			return session
		}
	}

	return nil
}

// removeSession drops the saved session for endpoint.
func (c *Config) removeSession(endpoint string) bool {
	for i, session := range c.Sessions {
		if session.Endpoint == endpoint {
			c.Sessions = append(c.Sessions[:i], c.Sessions[i+1:]...)

			return true
		}
	}

	return false
}

// configKeys are the keys accepted by 'config set' and 'config unset'.
var configKeys = map[string]func(*Config, string) error{
	"api": func(c *Config, v string) error {
		c.API = v

		return nil
	},
	"timeout": func(c *Config, v string) error {
		if v != "" {
			_, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid timeout %q: %w", v, err)
			}
		}

		c.Timeout = v

		return nil
	},
	"output": func(c *Config, v string) error {
		if v != "" && !isOutputFormat(v) {
			return fmt.Errorf("%w: %s", constants.ErrInvalidOutput, v)
		}

		c.Output = v

		return nil
	},
	"cache.type": func(c *Config, v string) error {
		c.Cache.Type = v

		return nil
	},
	"cache.nats_url": func(c *Config, v string) error {
		c.Cache.NATSURL = v

		return nil
	},
	"cache.nats_bucket": func(c *Config, v string) error {
		c.Cache.NATSBucket = v

		return nil
	},
	"cache.redis_addr": func(c *Config, v string) error {
		c.Cache.RedisAddr = v

		return nil
	},
	"cache.redis_password": func(c *Config, v string) error {
		c.Cache.RedisPassword = v

		return nil
	},
	"cache.redis_db": func(c *Config, v string) error {
		if v == "" {
			c.Cache.RedisDB = 0

			return nil
		}

		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid redis db %q: %w", v, err)
		}

		c.Cache.RedisDB = db

		return nil
	},
	"cache.redis_prefix": func(c *Config, v string) error {
		c.Cache.RedisPrefix = v

		return nil
	},
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage tourctl configuration including the API endpoint and cache backend",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective CLI configuration. Session cookie values are masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := maskSessions(loadConfig())

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return StandardJSONRenderer(config)
			case constants.FormatYAML:
				return StandardYAMLRenderer(config)
			default:
				return displayConfigTable(config)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + configKeyList(),
		Args:  cobra.ExactArgs(constants.TwoArgumentsRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfigValue(args[0], args[1])
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value. Keys: " + configKeyList(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfigValue(args[0], "")
		},
	}
}

func updateConfigValue(key, value string) error {
	setter, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	config := loadConfig()

	err := setter(config, value)
	if err != nil {
		return err
	}

	err = saveConfigStruct(config)
	if err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	if value == "" {
		_, _ = fmt.Fprintf(os.Stdout, "Unset %s\n", key)
	} else {
		_, _ = fmt.Fprintf(os.Stdout, "Set %s = %s\n", key, value)
	}

	return nil
}

func configKeyList() string {
	keys := make([]string, 0, len(configKeys))
	for key := range configKeys {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return strings.Join(keys, ", ")
}

// loadConfig reads the effective configuration from viper: flags, then
// TOURCTL_* environment variables, then the config file.
func loadConfig() *Config {
	config := &Config{
		API:     viper.GetString("api"),
		Timeout: viper.GetString("timeout"),
		Output:  viper.GetString("output"),
		Cache: CacheSettings{
			Type:          viper.GetString("cache.type"),
			NATSURL:       viper.GetString("cache.nats_url"),
			NATSBucket:    viper.GetString("cache.nats_bucket"),
			RedisAddr:     viper.GetString("cache.redis_addr"),
			RedisPassword: viper.GetString("cache.redis_password"),
			RedisDB:       viper.GetInt("cache.redis_db"),
			RedisPrefix:   viper.GetString("cache.redis_prefix"),
		},
	}

	var sessions []*SessionConfig

	err := viper.UnmarshalKey("sessions", &sessions)
	if err == nil && len(sessions) > 0 {
		config.Sessions = sessions
	}

	return config
}

// configFilePath returns the file viper read, or the default location.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, constants.ConfigDirName)

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, constants.ConfigFileName), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Keep the in-process view consistent with the file for later reads.
	viper.Set("sessions", config.Sessions)

	return nil
}

func maskSessions(config *Config) *Config {
	masked := *config
	masked.Sessions = make([]*SessionConfig, 0, len(config.Sessions))

	for _, session := range config.Sessions {
		copied := *session
		copied.Cookies = make([]SavedCookie, 0, len(session.Cookies))

		for _, cookie := range session.Cookies {
			copied.Cookies = append(copied.Cookies, SavedCookie{Name: cookie.Name, Value: constants.MaskedSecret})
		}

		masked.Sessions = append(masked.Sessions, &copied)
	}

	return &masked
}

func displayConfigTable(config *Config) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append([]string{"API", formatConfigValue(config.API)})
	_ = table.Append([]string{"Timeout", formatConfigValue(config.Timeout)})
	_ = table.Append([]string{"Output", formatConfigValue(config.Output)})
	_ = table.Append([]string{"Cache", formatConfigValue(config.Cache.Type)})

	if config.Cache.NATSURL != "" {
		_ = table.Append([]string{"Cache NATS URL", config.Cache.NATSURL})
	}

	if config.Cache.RedisAddr != "" {
		_ = table.Append([]string{"Cache Redis Address", config.Cache.RedisAddr})
	}

	for _, session := range config.Sessions {
		_ = table.Append([]string{"Session " + session.Endpoint, formatConfigValue(session.Username)})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func formatConfigValue(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}
