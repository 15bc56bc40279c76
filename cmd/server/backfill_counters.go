package main

// Helper: go run ./cmd/server -backfill-counters
// Rebuilds doc_counters from the highest document number already issued per
// type and month, for databases imported from older installs.

import (
	"flag"
	"log"

	"github.com/packytong/Flowaccount/internal/db"
	"github.com/packytong/Flowaccount/internal/services"
)

func runBackfillCounters() {
	conn, err := db.ConnectAndMigrate()
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	seeded, err := services.SeedCounters(conn)
	if err != nil {
		log.Fatalf("seed counters: %v", err)
	}
	log.Printf("Counter backfill done: %d counters touched", seeded)
}

var backfillFlag = flag.Bool("backfill-counters", false, "Rebuild number counters from existing documents and exit")
