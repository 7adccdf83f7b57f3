package main

import (
	"log"

	"github.com/adamkadda/bank-demo/bank/server"
	"github.com/adamkadda/bank-demo/internal/config"
	"github.com/adamkadda/bank-demo/internal/logging"
)

func main() {
	config, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[CONFIG] Load failure: %v\n", err)
	}

	log.Printf("[CONFIG] Load finished !\n")

	if err := logging.Setup(config.Logging); err != nil {
		log.Fatalf("[LOGGING] Setup failure: %v\n", err)
	}

	s, err := server.New(config)
	if err != nil {
		log.Fatalf("Server setup failed: %v", err)
	}

	if err := s.Run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
