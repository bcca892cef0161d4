// ateema builds budget-constrained media proposals.
//
// Usage:
//
//	ateema allocate --products data/products --budget 45000 --tourist-pct 60 --industry-pct 40
//	ateema discount --product "Chicago Does Reels" --base-price 995 --other-products
//	ateema products --products data/products
//	ateema serve --port 8080
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/eshaffer321/ateema-proposal-engine/internal/cli"
)

var version = "dev"

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := cli.NewApp(version).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
