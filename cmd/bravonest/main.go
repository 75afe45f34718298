package main

import (
	"log"

	"bravonest/internal/cli"
)

func main() {
	log.SetFlags(log.LstdFlags)
	if err := cli.Execute(); err != nil {
		log.Fatalf("[bravonest] %v", err)
	}
}
