// Command sbgserver runs the sbgengine REST and WebSocket API server.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/yourusername/sbgengine/pkg/api"
	"github.com/yourusername/sbgengine/pkg/engine"
)

const version = "0.1.0"

func main() {
	opts, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if opts.showVersion {
		fmt.Printf("sbgengine API Server v%s\n", version)
		os.Exit(0)
	}

	log.Printf("sbgengine API Server v%s", version)

	eng, err := engine.NewEngine(engine.EngineOptions{
		CacheSize:    opts.cacheSize,
		DisableCache: opts.cacheSize == 0,
	})
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	server := api.NewServer(eng, opts.server, version)

	if err := server.ListenAndServeWithGracefulShutdown(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
