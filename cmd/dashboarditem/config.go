package main

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-dashboarditem/pkg/renderers/vanilla"
)

// Config is the CLI configuration. Values come from dashboarditem.yaml, then
// DASHBOARDITEM_* environment variables, then flags.
type Config struct {
	Origin       string `mapstructure:"origin"`
	ContextPath  string `mapstructure:"context_path"`
	PrefsFile    string `mapstructure:"prefs_file"`
	SchemaFile   string `mapstructure:"schema_file"`
	Editable     bool   `mapstructure:"editable"`
	Renderer     string `mapstructure:"renderer"`
	ThemeFile    string `mapstructure:"theme_file"`
	Theme        string `mapstructure:"theme"`
	ThemeVariant string `mapstructure:"theme_variant"`
	LogFile      string `mapstructure:"log_file"`
	Debug        bool   `mapstructure:"debug"`
}

func defaultConfig() Config {
	return Config{
		PrefsFile: "preferences.yaml",
		Editable:  true,
		Renderer:  vanilla.Name,
	}
}

// flag name -> config key
var configFlags = map[string]string{
	"origin":        "origin",
	"context-path":  "context_path",
	"prefs-file":    "prefs_file",
	"schema-file":   "schema_file",
	"editable":      "editable",
	"renderer":      "renderer",
	"theme-file":    "theme_file",
	"theme":         "theme",
	"theme-variant": "theme_variant",
	"log-file":      "log_file",
	"debug":         "debug",
}

func registerConfigFlags(flags *pflag.FlagSet) {
	def := defaultConfig()
	flags.String("config", "", "config file (default ./dashboarditem.yaml)")
	flags.String("origin", def.Origin, "page origin; localhost origins use local dev defaults")
	flags.String("context-path", def.ContextPath, "host application base URL")
	flags.String("prefs-file", def.PrefsFile, "YAML file holding saved preferences")
	flags.String("schema-file", def.SchemaFile, "OpenAPI document declaring the preferences (default built-in)")
	flags.Bool("editable", def.Editable, "whether the user may edit the item")
	flags.String("renderer", def.Renderer, "renderer used for output (vanilla, text)")
	flags.String("theme-file", def.ThemeFile, "YAML go-theme manifest")
	flags.String("theme", def.Theme, "theme name")
	flags.String("theme-variant", def.ThemeVariant, "theme variant")
	flags.String("log-file", def.LogFile, "also write JSON logs to this file")
	flags.Bool("debug", def.Debug, "enable debug logging")
}

// loadConfig reads configuration from file, environment and flags.
// Environment variables use the prefix "DASHBOARDITEM"; for example
// "prefs_file" becomes "DASHBOARDITEM_PREFS_FILE".
func loadConfig(flags *pflag.FlagSet) (*Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetDefault("prefs_file", cfg.PrefsFile)
	v.SetDefault("editable", cfg.Editable)
	v.SetDefault("renderer", cfg.Renderer)

	configFile := ""
	if flags != nil {
		configFile, _ = flags.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("dashboarditem")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("DASHBOARDITEM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, &cfg)

	if flags != nil {
		for flagName, key := range configFlags {
			if flag := flags.Lookup(flagName); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("config: bind flag %s: %w", flagName, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &cfg, nil
}

// bindEnvs registers all keys within cfg so that viper will look up
// corresponding environment variables when unmarshalling.
func bindEnvs(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}
		key := append(parts, tag)
		if f.Type.Kind() == reflect.Struct {
			bindEnvs(v, val.Field(i).Interface(), key...)
			continue
		}
		_ = v.BindEnv(strings.Join(key, "."))
	}
}
