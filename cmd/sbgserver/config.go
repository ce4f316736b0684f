package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/yourusername/sbgengine/pkg/api"
	"github.com/yourusername/sbgengine/pkg/engine"
)

// serverEnv is the server configuration read from the environment.
type serverEnv struct {
	Host            string        `env:"SBG_HOST" envDefault:"localhost"`
	Port            int           `env:"SBG_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SBG_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"SBG_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"SBG_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SBG_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxFastWorkers  int           `env:"SBG_MAX_FAST_WORKERS" envDefault:"100"`
	MaxSlowWorkers  int           `env:"SBG_MAX_SLOW_WORKERS" envDefault:"4"`
	CacheSize       uint          `env:"SBG_CACHE_SIZE" envDefault:"16384"`
}

type options struct {
	server      api.ServerConfig
	cacheSize   uint32
	showVersion bool
}

// loadConfig reads the environment, then lets command line flags override it.
func loadConfig(args []string) (options, error) {
	var cfg serverEnv
	if err := env.Parse(&cfg); err != nil {
		return options{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("sbgserver", flag.ContinueOnError)
	host := fs.String("host", cfg.Host, "Host to bind to (use 0.0.0.0 for all interfaces)")
	port := fs.Int("port", cfg.Port, "Port to listen on")
	readTimeout := fs.Duration("read-timeout", cfg.ReadTimeout, "HTTP read timeout")
	writeTimeout := fs.Duration("write-timeout", cfg.WriteTimeout, "HTTP write timeout")
	fastWorkers := fs.Int("fast-workers", cfg.MaxFastWorkers, "Max concurrent plays/apply requests")
	slowWorkers := fs.Int("slow-workers", cfg.MaxSlowWorkers, "Max concurrent self-play runs")
	cacheSize := fs.Uint("cache", cfg.CacheSize, "Play cache entries (0 disables the cache)")
	showVersion := fs.Bool("version", false, "Show version and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *port <= 0 || *port > 65535 {
		return options{}, fmt.Errorf("invalid port %d", *port)
	}
	if *cacheSize > engine.MaxCacheSize {
		return options{}, fmt.Errorf("cache size %d exceeds %d", *cacheSize, engine.MaxCacheSize)
	}

	return options{
		server: api.ServerConfig{
			Host:            *host,
			Port:            *port,
			ReadTimeout:     *readTimeout,
			WriteTimeout:    *writeTimeout,
			IdleTimeout:     cfg.IdleTimeout,
			ShutdownTimeout: cfg.ShutdownTimeout,
			MaxFastWorkers:  *fastWorkers,
			MaxSlowWorkers:  *slowWorkers,
		},
		cacheSize:   uint32(*cacheSize),
		showVersion: *showVersion,
	}, nil
}
