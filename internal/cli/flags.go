package cli

import (
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/eshaffer321/ateema-proposal-engine/internal/api/dto"
)

// Global flag names
const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Value:   "config.yaml",
			Usage:   "Path to config file (falls back to environment variables)",
			EnvVars: []string{"ATEEMA_CONFIG"},
		},
		&cli.StringFlag{
			Name:    flagLogLevel,
			Usage:   "Log level (debug, info, warn, error); overrides config",
			EnvVars: []string{"LOG_LEVEL"},
		},
	}
}

// catalogFlags locate the product data.
func catalogFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "products",
			Aliases: []string{"p"},
			Usage:   "Directory of product JSON files (default from config)",
			EnvVars: []string{"ATEEMA_PRODUCTS_DIR"},
		},
		&cli.StringFlag{
			Name:    "awards",
			Usage:   "Summit awards JSON file used to fill in a profile's award",
			EnvVars: []string{"ATEEMA_AWARDS_PATH"},
		},
	}
}

// termsFlags are the purchase terms shared by allocate and discount.
func termsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "billing-date",
			Usage: "Billing date YYYY-MM-DD for seasonal and early-bird pricing",
		},
		&cli.BoolFlag{
			Name:  "advertiser",
			Usage: "Client is an existing advertiser (default: allocation.is_advertiser)",
		},
		&cli.BoolFlag{
			Name:  "prepay",
			Usage: "Client prepays the full year",
		},
	}
}

func allocateFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "Only consider these products (comma separated, loose names allowed)",
		},
		&cli.StringFlag{
			Name:  "input",
			Usage: "Client input JSON with client_profile, budget and candidate_products",
		},
		&cli.Float64Flag{
			Name:    "budget",
			Aliases: []string{"b"},
			Usage:   "Total budget in USD (default from config)",
		},
		&cli.Float64Flag{
			Name:  "tourist-pct",
			Usage: "Tourist pool share in percent (default from config)",
		},
		&cli.Float64Flag{
			Name:  "industry-pct",
			Usage: "Industry pool share in percent (default from config)",
		},
		&cli.Float64Flag{
			Name:  "soft-cap-pct",
			Usage: "Allowed overrun above the budget in percent (default from config)",
		},
		&cli.StringFlag{
			Name:  "profile-text",
			Usage: "Client profile text used for Summit Booth eligibility",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: "text",
			Usage: "Output format (text, json)",
		},
		&cli.BoolFlag{
			Name:  "preview",
			Value: true,
			Usage: "Print the allocator input preview (text format only)",
		},
	}
	flags = append(flags, catalogFlags()...)
	return append(flags, termsFlags()...)
}

func discountFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "product", Usage: "Product name", Required: true},
		&cli.StringFlag{Name: "option", Usage: "Price option name"},
		&cli.Float64Flag{Name: "base-price", Usage: "Unit price before discounts", Required: true},
		&cli.StringFlag{Name: "tier", Usage: "Tier label, e.g. 3X"},
		&cli.BoolFlag{Name: "other-products", Usage: "Other products are in the same proposal"},
	}
	return append(flags, termsFlags()...)
}

func productsFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "Only list products in this pool (tourist, industry)",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: "text",
			Usage: "Output format (text, json)",
		},
	}
	return append(flags, catalogFlags()...)
}

func serveFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Usage:   "Port to listen on (default from config)",
			EnvVars: []string{"ATEEMA_PORT"},
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Verbose output",
		},
	}
	return append(flags, catalogFlags()...)
}

// floatFlag returns a pointer to the flag value when it was set.
func floatFlag(c *cli.Context, name string) *float64 {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Float64(name)
	return &v
}

func boolFlag(c *cli.Context, name string) *bool {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Bool(name)
	return &v
}

// billingDate reads --billing-date. An invalid date is logged and ignored.
func billingDate(c *cli.Context, logger *slog.Logger) *time.Time {
	raw := c.String("billing-date")
	d, err := dto.ParseDate(raw)
	if err != nil {
		logger.Warn("ignoring billing date", "value", raw, "error", err)
		return nil
	}
	return d
}
