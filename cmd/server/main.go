package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/AgentOS/addons/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/addons/internal/infrastructure/server"
)

func main() {
	// Parse flags
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "YAML or TOML config file")
	port := flag.String("port", "", "HTTP port (overrides config and env)")
	grpcPort := flag.String("grpc-port", "", "gRPC port (overrides config and env)")
	dev := flag.Bool("dev", false, "Development mode (colored logs, debug level)")
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *grpcPort != "" {
		cfg.GRPC.Port = *grpcPort
	}
	if *dev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Cancelled on SIGINT/SIGTERM, which starts the graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = srv.Run(ctx)
	stop()
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
