package main

import (
	"log"

	"github.com/ieeespac/spac_site/config"
	"github.com/ieeespac/spac_site/internal/api"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	api.StartServer(cfg)
}
