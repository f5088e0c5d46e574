package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"call-routing/internal/rates"
)

func main() {
	dbPath := flag.String("db", defaultDBPath(), "Path to the SQLite rates database")
	policyName := flag.String("policy", "keep-min", "Duplicate prefix policy (keep-min, keep-max, keep-last, reject)")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatalf("Usage: ratesdb [flags] carrier=ratefile [carrier=ratefile ...]")
	}

	policy, err := rates.ParsePolicy(*policyName)
	if err != nil {
		log.Fatalf("Bad policy: %v", err)
	}

	log.Printf("Setting up rates database at: %s", *dbPath)
	db, err := rates.OpenRatesDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	for _, arg := range flag.Args() {
		carrier, path, ok := strings.Cut(arg, "=")
		if !ok || carrier == "" || path == "" {
			log.Fatalf("Bad argument %q: want carrier=ratefile", arg)
		}

		records, err := rates.ReadRateFile(path)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", path, err)
		}
		if err := rates.LoadCarrierRates(db, carrier, records, policy); err != nil {
			log.Fatalf("Failed to load carrier %s: %v", carrier, err)
		}
		log.Printf("Loaded carrier %s: %d records from %s", carrier, len(records), path)
	}

	log.Println("Rates database setup completed successfully!")
}

func defaultDBPath() string {
	if p := os.Getenv("RATES_DB"); p != "" {
		return p
	}
	return "./rates.db"
}
