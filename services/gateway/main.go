package main

import (
	"github.com/sibuku/sibuku-gateway/internal/config"
	"github.com/sibuku/sibuku-gateway/internal/handlers"
	log "github.com/sirupsen/logrus"
)

func init() {
	// Initialize logger
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	cfg := config.Load()

	router := handlers.NewRouter(cfg)

	log.WithFields(log.Fields{
		"addr":         cfg.HTTPAddr,
		"api_base_url": cfg.APIBaseURL,
		"environment":  cfg.Environment,
	}).Info("SiBuku gateway starting")

	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
