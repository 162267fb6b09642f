package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	liquidroplog "github.com/liquidrop-labs/liquidrop/log"
)

func main() {
	configPath := flag.String("config", "config.json", "config file location")

	// Parse the command-line arguments
	flag.Parse()

	config := DefaultConfig
	if *configPath != "" {
		viper.SetConfigFile(*configPath)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("error reading config: %s", err)
		}

		if err := viper.Unmarshal(&config); err != nil {
			log.Fatalf("error unmarshalling config: %s", err)
		}
	}

	logger, err := liquidroplog.NewLogger(config.LoggerIsProduction, config.LoggerFilename, config.LoggerLevel)
	if err != nil {
		log.Fatalf("error while creating logger: %s", err)
	}

	server, err := NewAuctionServer(config, logger)
	if err != nil {
		log.Fatalf("error while creating auction server: %s", err)
	}

	// Handle SIGINT and SIGTERM signals to initiate shutdown
	exitChan := make(chan os.Signal, 1)
	signal.Notify(exitChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-exitChan

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("error while shutting down: %s", err)
		}

		os.Exit(0)
	}()

	if err := server.Start(context.Background()); err != nil {
		log.Printf("server stopped: %s", err)
	}
}
