// routecost resolves destination numbers to per-carrier call costs by
// longest-prefix match over carrier rate tables.
//
// Usage:
//
//	routecost --carrier telA=rates-a.csv resolve --number 4155551234
//	routecost --carrier telA=a.csv --carrier telB=b.csv batch --numbers numbers.txt --precompute
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"call-routing/internal/rates"
	"call-routing/internal/route"
)

func main() {
	app := &cli.App{
		Name:  "routecost",
		Usage: "Resolve destination numbers to per-carrier call costs",

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "backend",
				Value: "memory",
				Usage: "Storage backend (memory, scan, sqlite)",
			},
			&cli.StringFlag{
				Name:    "db",
				Value:   "./rates.db",
				Usage:   "SQLite database path (sqlite backend only)",
				EnvVars: []string{"RATES_DB"},
			},
			&cli.StringFlag{
				Name:  "policy",
				Value: "keep-min",
				Usage: "Duplicate prefix policy (keep-min, keep-max, keep-last, reject)",
			},
			&cli.StringSliceFlag{
				Name:  "carrier",
				Usage: "Carrier table as name=ratefile, repeatable. With the sqlite backend a bare name reuses rows already loaded by ratesdb",
			},
		},

		Commands: []*cli.Command{
			resolveCommand(),
			batchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func resolveCommand() *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Resolve a single number against every loaded carrier",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "number",
				Aliases:  []string{"n"},
				Usage:    "Destination number with prefix",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "cheapest",
				Usage: "Print only the cheapest carrier",
			},
		},
		Action: func(c *cli.Context) error {
			number := c.String("number")
			if !rates.ValidNumber(number) {
				return fmt.Errorf("bad number %q: want at least two digits", number)
			}

			reg, cleanup, err := buildRegistry(c)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := reg.Resolve(number)
			if err != nil {
				return err
			}

			if c.Bool("cheapest") {
				id, cost, ok := result.Cheapest()
				if !ok {
					fmt.Printf("%s: no match\n", number)
					return nil
				}
				fmt.Printf("%s: %s via %s\n", number, cost, id)
				return nil
			}

			fmt.Println(formatResult(result))
			return nil
		},
	}
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Resolve every number in a file, lazily or via a precomputed cache",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "numbers",
				Usage:    "Path to the phone-number list file",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write number,cost results to this file instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "precompute",
				Usage: "Resolve all numbers up front and serve lookups from the cache",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Parallel workers for precompute (default: number of CPUs)",
			},
		},
		Action: func(c *cli.Context) error {
			reg, cleanup, err := buildRegistry(c)
			if err != nil {
				return err
			}
			defer cleanup()

			numbers, err := rates.ReadNumberFile(c.String("numbers"))
			if err != nil {
				return err
			}
			if len(numbers) == 0 {
				return fmt.Errorf("no numbers in %s", c.String("numbers"))
			}
			log.Printf("Loaded %d numbers", len(numbers))

			var results []route.RouteResult
			if c.Bool("precompute") {
				start := time.Now()
				cache, err := route.Precompute(c.Context, reg, numbers, c.Int("workers"))
				if err != nil {
					return err
				}
				log.Printf("Precomputed %d routes in %v", cache.Len(), time.Since(start).Round(time.Microsecond))

				start = time.Now()
				cur := cache.Cursor()
				for r, ok := cur.Next(); ok; r, ok = cur.Next() {
					results = append(results, r)
				}
				log.Printf("Served %d lookups from cache in %v", len(results), time.Since(start).Round(time.Microsecond))
			} else {
				start := time.Now()
				for _, number := range numbers {
					r, err := reg.Resolve(number)
					if err != nil {
						return err
					}
					results = append(results, r)
				}
				elapsed := time.Since(start)
				log.Printf("Resolved %d numbers in %v (%v per lookup)",
					len(results), elapsed.Round(time.Microsecond), (elapsed / time.Duration(len(results))).Round(time.Nanosecond))
			}

			if out := c.String("output"); out != "" {
				if err := route.WriteResults(results, out); err != nil {
					return err
				}
				log.Printf("Results written to %s", out)
				return nil
			}

			for _, r := range results {
				fmt.Println(formatResult(r))
			}
			return nil
		},
	}
}

// buildRegistry loads every --carrier table with the selected backend. The
// returned cleanup closes the registry and, for sqlite, the database handle.
func buildRegistry(c *cli.Context) (*route.Registry, func(), error) {
	specs := c.StringSlice("carrier")
	if len(specs) == 0 {
		return nil, nil, fmt.Errorf("at least one --carrier is required")
	}

	policy, err := rates.ParsePolicy(c.String("policy"))
	if err != nil {
		return nil, nil, err
	}

	backend := c.String("backend")
	reg := route.NewRegistry()

	var db *sql.DB
	if backend == "sqlite" {
		db, err = rates.OpenRatesDB(c.String("db"))
		if err != nil {
			return nil, nil, err
		}
	}
	cleanup := func() {
		reg.Close()
		if db != nil {
			db.Close()
		}
	}

	start := time.Now()
	total := 0
	for _, spec := range specs {
		name, path, err := parseCarrierSpec(spec)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		table, err := buildTable(backend, db, name, path, policy)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("carrier %s: %w", name, err)
		}
		reg.Install(name, table)
		total += table.Len()
	}
	log.Printf("Loaded %d carriers (%d route costs) in %v", reg.Len(), total, time.Since(start).Round(time.Microsecond))

	return reg, cleanup, nil
}

func buildTable(backend string, db *sql.DB, name, path string, policy rates.DuplicatePolicy) (rates.Backend, error) {
	switch backend {
	case "memory":
		if path == "" {
			return nil, fmt.Errorf("memory backend needs a rate file, got bare carrier name")
		}
		records, err := rates.ReadRateFile(path)
		if err != nil {
			return nil, err
		}
		return rates.BuildMemoryTable(records, policy)

	case "scan":
		if path == "" {
			return nil, fmt.Errorf("scan backend needs a rate file, got bare carrier name")
		}
		return rates.OpenScanTable(path)

	case "sqlite":
		if path != "" {
			records, err := rates.ReadRateFile(path)
			if err != nil {
				return nil, err
			}
			if err := rates.LoadCarrierRates(db, name, records, policy); err != nil {
				return nil, err
			}
		}
		return rates.NewSQLTable(db, name), nil
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}

// parseCarrierSpec splits a --carrier value. The path is empty for a bare
// carrier name, which only the sqlite backend accepts.
func parseCarrierSpec(spec string) (name, path string, err error) {
	name, path, cut := strings.Cut(spec, "=")
	if name == "" || (cut && path == "") {
		return "", "", fmt.Errorf("bad carrier spec %q: want name=ratefile", spec)
	}
	return name, path, nil
}

func formatResult(r route.RouteResult) string {
	if !r.Matched() {
		return fmt.Sprintf("%s: no match", r.Number)
	}
	parts := make([]string, 0, len(r.Costs))
	for _, id := range r.Carriers() {
		parts = append(parts, fmt.Sprintf("%s=%s", id, r.Costs[id]))
	}
	return fmt.Sprintf("%s: %s", r.Number, strings.Join(parts, " "))
}
