package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load loads and validates configuration from:
// 1. Default values
// 2. config.yaml file (optional)
// 3. BOT_* environment variables
func Load(configPath string) (*Config, error) {
	setDefaults()

	if err := readConfig(configPath); err != nil {
		return nil, fmt.Errorf("%w: failed to load config file: %v", ErrConfiguration, err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

// readConfig initializes and loads the configuration using viper.
// A missing config file is not an error; defaults and environment apply.
func readConfig(configPath string) error {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("BOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %v", err)
		}
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("log.level", DefaultLogLevel)
	viper.SetDefault("log.format", DefaultLogFormat)

	viper.SetDefault("database.path", DefaultDBPath)
	viper.SetDefault("database.max_open_conns", DefaultDBMaxOpenConns)
	viper.SetDefault("database.max_idle_conns", DefaultDBMaxIdleConns)
	viper.SetDefault("database.conn_max_lifetime", DefaultDBConnMaxLifetime)

	viper.SetDefault("ai.base_url", DefaultAIBaseURL)
	viper.SetDefault("ai.temperature", DefaultAITemperature)
	viper.SetDefault("ai.max_tokens", DefaultAIMaxTokens)
	viper.SetDefault("ai.timeout", DefaultAITimeout)
	viper.SetDefault("ai.instruction", DefaultAIInstruction)

	viper.SetDefault("messages.welcome", DefaultMessages.WelcomeFmt)
	viper.SetDefault("messages.help", DefaultMessages.Help)
	viper.SetDefault("messages.not_authorized", DefaultMessages.NotAuthorized)
	viper.SetDefault("messages.general_error", DefaultMessages.GeneralError)
	viper.SetDefault("messages.no_messages", DefaultMessages.NoMessages)
	viper.SetDefault("messages.nothing_to_analyze", DefaultMessages.NothingToAnalyze)
	viper.SetDefault("messages.no_issues", DefaultMessages.NoIssues)
	viper.SetDefault("messages.analyze_complete", DefaultMessages.AnalyzeCompleteFmt)
	viper.SetDefault("messages.usage_history", DefaultMessages.UsageHistory)
	viper.SetDefault("messages.usage_analyze", DefaultMessages.UsageAnalyze)
	viper.SetDefault("messages.usage_issues", DefaultMessages.UsageIssues)
	viper.SetDefault("messages.usage_report", DefaultMessages.UsageReport)
}
