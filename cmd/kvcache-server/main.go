package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/leonardcser/kvcache/internal/cache"
	"github.com/leonardcser/kvcache/internal/config"
	"github.com/leonardcser/kvcache/internal/logger"
	"github.com/leonardcser/kvcache/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.LogPath); err != nil {
		panic(err)
	}
	defer logger.Close()
	logger.SetDebug(cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := cache.New(cache.Options{})
	srv := server.New(store)

	if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
		logger.Errorf("server error: %v", err)
		logger.Close()
		os.Exit(1)
	}
	logger.Infof("Shut down, %d entries held at exit", store.Len())
}
