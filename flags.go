package labelforge

import (
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/pflag"

	"github.com/labelforge/labelforge/store"
)

type AllFlags struct {
	ServiceOptions
	CacheOptions
	logger.Flags
}

// ServiceOptions locates the template service.
type ServiceOptions struct {
	Server   string // Template service base URL
	Customer string // Customer account the designs belong to
}

// CacheOptions controls the local template cache.
type CacheOptions struct {
	CacheDB  string        // Database file path
	CacheTTL time.Duration // Cache TTL for templates
	NoCache  bool          // Disable caching (equivalent to --cache-ttl=0)
}

// GetEffectiveTTL returns the effective cache TTL considering the no-cache flag
func (c CacheOptions) GetEffectiveTTL() time.Duration {
	if c.NoCache {
		return 0
	}
	return c.CacheTTL
}

// CacheConfig converts the flag values into a store cache configuration.
func (c CacheOptions) CacheConfig() store.CacheConfig {
	return store.CacheConfig{
		DBPath:   c.CacheDB,
		TTL:      c.GetEffectiveTTL(),
		Disabled: c.NoCache,
	}
}

var Flags AllFlags = AllFlags{
	CacheOptions: CacheOptions{
		CacheTTL: 24 * time.Hour,
		NoCache:  false,
	},
	Flags: logger.Flags{
		Level:        "info",
		LevelCount:   0,
		JsonLogs:     false,
		ReportCaller: false,
		LogToStderr:  true,
	},
}

// BindAllFlags adds every flag group to a pflag set (for Cobra).
func BindAllFlags(flags *pflag.FlagSet) AllFlags {
	flags.CountVarP(&Flags.Flags.LevelCount, "loglevel", "v", "Increase logging level")
	flags.StringVar(&Flags.Flags.Level, "log-level", "info", "Set the default log level")
	flags.BoolVar(&Flags.Flags.JsonLogs, "json-logs", false, "Print logs in json format to stderr")

	flags.BoolVar(&Flags.Flags.ReportCaller, "report-caller", false, "Report log caller info")
	flags.BoolVar(&Flags.Flags.LogToStderr, "log-to-stderr", true, "Log to stderr instead of stdout")

	flags.StringVar(&Flags.Server, "server", "", "Template service base URL")
	flags.StringVar(&Flags.Customer, "customer", "", "Customer account ID")

	flags.StringVar(&Flags.CacheDB, "cache-db", "", "Template cache database path")
	flags.DurationVar(&Flags.CacheTTL, "cache-ttl", 24*time.Hour, "Cache TTL for templates")
	flags.BoolVar(&Flags.NoCache, "no-cache", false, "Disable the template cache")

	return Flags
}

func (a AllFlags) UseFlags() {
	logger.Configure(a.Flags)
}
