// Package config loads tool configuration from an optional
// invoicer.yml file and INVOICER_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/smallbiznis/invoicer/internal/invoice/format"
)

// Fetch-failure policies. The remote fetch is optional input, so the
// user chooses whether a broken fetch kills the run or only warns.
const (
	OnFetchErrorFail = "fail"
	OnFetchErrorWarn = "warn"
)

type Config struct {
	PartiesDir     string
	SecretsFile    string
	InvoicesDir    string
	Currency       string
	DefaultRate    string
	NumberTemplate string
	OnFetchError   string
	Editor         string
	LogLevel       string
}

// Load reads .env (optional), then invoicer.yml from the working
// directory or ~/.config/invoicer, then environment overrides.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("invoicer")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/invoicer")

	v.SetEnvPrefix("INVOICER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("parties_dir", "parties")
	v.SetDefault("secrets_file", "secrets.json")
	v.SetDefault("invoices_dir", "invoices")
	v.SetDefault("currency", "EUR")
	v.SetDefault("default_rate", "0")
	v.SetDefault("number_template", format.DefaultNumberTemplate)
	v.SetDefault("on_fetch_error", OnFetchErrorFail)
	v.SetDefault("editor", defaultEditor())
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		// no config file, defaults and env apply
	}

	cfg := Config{
		PartiesDir:     v.GetString("parties_dir"),
		SecretsFile:    v.GetString("secrets_file"),
		InvoicesDir:    v.GetString("invoices_dir"),
		Currency:       v.GetString("currency"),
		DefaultRate:    v.GetString("default_rate"),
		NumberTemplate: v.GetString("number_template"),
		OnFetchError:   strings.ToLower(v.GetString("on_fetch_error")),
		Editor:         v.GetString("editor"),
		LogLevel:       v.GetString("log_level"),
	}
	return cfg, nil
}

// Validate collects every configuration problem into one error.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.PartiesDir) == "" {
		problems = append(problems, "parties_dir cannot be empty")
	}
	if strings.TrimSpace(c.InvoicesDir) == "" {
		problems = append(problems, "invoices_dir cannot be empty")
	}
	if strings.TrimSpace(c.Currency) == "" {
		problems = append(problems, "currency cannot be empty")
	}
	if c.OnFetchError != OnFetchErrorFail && c.OnFetchError != OnFetchErrorWarn {
		problems = append(problems, fmt.Sprintf("invalid on_fetch_error %q: must be %q or %q", c.OnFetchError, OnFetchErrorFail, OnFetchErrorWarn))
	}
	if rate, err := decimal.NewFromString(c.DefaultRate); err != nil {
		problems = append(problems, fmt.Sprintf("invalid default_rate %q: not a decimal", c.DefaultRate))
	} else if rate.IsNegative() {
		problems = append(problems, fmt.Sprintf("invalid default_rate %q: must not be negative", c.DefaultRate))
	}
	if strings.TrimSpace(c.NumberTemplate) == "" {
		problems = append(problems, "number_template cannot be empty")
	}
	if strings.TrimSpace(c.Editor) == "" {
		problems = append(problems, "editor cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func defaultEditor() string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	return "vi"
}
