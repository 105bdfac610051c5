package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/eringen/skillsite"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = "skillsite.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Only flags set on the command line; defaults would shadow the file.
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}
	return nil
}

// loadConfigFromPath loads the config file, if present, and SKILLSITE_*
// environment variables.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// SKILLSITE_ADMIN_PASSWORD -> admin.password
	if err := k.Load(env.Provider("SKILLSITE_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "SKILLSITE_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}
	return nil
}

// buildSiteConfig constructs the server configuration from koanf state.
// Zero values are filled in by skillsite.New.
func buildSiteConfig() skillsite.SiteConfig {
	return skillsite.SiteConfig{
		Name:          k.String("site.name"),
		Tagline:       k.String("site.tagline"),
		URL:           k.String("site.url"),
		Description:   k.String("site.description"),
		Addr:          getStringWithFallback("addr", "server.addr", ""),
		DatabasePath:  getStringWithFallback("db", "database.path", ""),
		ContentPath:   getStringWithFallback("content", "content.path", ""),
		MediaDir:      k.String("media.dir"),
		AdminPassword: k.String("admin.password"),
		SessionSecret: k.String("admin.secret"),
		CookieSecure:  k.Bool("server.secure"),
		PostCacheTTL:  k.Duration("cache.ttl"),
		PostsPerPage:  k.Int("posts.perpage"),
		Dev:           getBoolWithFallback("dev", "server.dev", false),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
