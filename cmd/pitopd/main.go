package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"pitopd/internal/config"
	"pitopd/internal/daemon"
	"pitopd/internal/device"
	"pitopd/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "configuration file path")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	dev := device.NewSimulated(cfg.Daemon.DeviceID)

	d, err := daemon.New(cfg, dev, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		return
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("start daemon", logging.Error(err))
		return
	}

	<-ctx.Done()
	d.Stop()
	logger.Info("pitopd shutting down")
}
