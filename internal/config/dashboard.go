package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DashboardConfig holds the tunable dashboard constants. The thresholds carry
// no business rule beyond what the charts render; they are configuration, not
// code.
type DashboardConfig struct {
	TopProductsLimit  int `mapstructure:"topProductsLimit"`
	LowStockThreshold int `mapstructure:"lowStockThreshold"`
	LowStockLimit     int `mapstructure:"lowStockLimit"`
	DefaultWindowDays int `mapstructure:"defaultWindowDays"`
}

func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		TopProductsLimit:  10,
		LowStockThreshold: 50,
		LowStockLimit:     10,
		DefaultWindowDays: 30,
	}
}

// DashboardConfigHolder exposes the current dashboard config and follows
// dashboard.yml edits without a restart.
type DashboardConfigHolder struct {
	current atomic.Value // holds DashboardConfig
}

func NewDashboardConfigHolder() (*DashboardConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("dashboard")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/mercato/config")
	v.AddConfigPath("/etc/mercato")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MERCATO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultDashboardConfig()
	v.SetDefault("dashboard.topProductsLimit", defaults.TopProductsLimit)
	v.SetDefault("dashboard.lowStockThreshold", defaults.LowStockThreshold)
	v.SetDefault("dashboard.lowStockLimit", defaults.LowStockLimit)
	v.SetDefault("dashboard.defaultWindowDays", defaults.DefaultWindowDays)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg, err := unmarshalDashboardConfig(v)
	if err != nil {
		return nil, err
	}

	holder := &DashboardConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		updated, err := unmarshalDashboardConfig(v)
		if err != nil {
			zap.L().Warn("ignoring invalid dashboard config change", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		zap.L().Info("dashboard config reloaded")
	})

	return holder, nil
}

func (h *DashboardConfigHolder) Current() DashboardConfig {
	return h.current.Load().(DashboardConfig)
}

// NewStaticDashboardConfigHolder pins a fixed config, for tests.
func NewStaticDashboardConfigHolder(cfg DashboardConfig) *DashboardConfigHolder {
	holder := &DashboardConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func unmarshalDashboardConfig(v *viper.Viper) (DashboardConfig, error) {
	var cfg DashboardConfig
	if err := v.UnmarshalKey("dashboard", &cfg); err != nil {
		return cfg, err
	}
	return cfg, validateDashboardConfig(cfg)
}

func validateDashboardConfig(cfg DashboardConfig) error {
	if cfg.TopProductsLimit <= 0 {
		return errors.New("dashboard.topProductsLimit must be positive")
	}
	if cfg.LowStockThreshold < 0 {
		return errors.New("dashboard.lowStockThreshold must not be negative")
	}
	if cfg.LowStockLimit <= 0 {
		return errors.New("dashboard.lowStockLimit must be positive")
	}
	if cfg.DefaultWindowDays <= 0 {
		return errors.New("dashboard.defaultWindowDays must be positive")
	}
	return nil
}
