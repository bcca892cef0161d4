// Package cli implements the ateema command line tool.
package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/eshaffer321/ateema-proposal-engine/internal/adapters/catalogfs"
	"github.com/eshaffer321/ateema-proposal-engine/internal/api/dto"
	"github.com/eshaffer321/ateema-proposal-engine/internal/application/service"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/pricing"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/profile"
	"github.com/eshaffer321/ateema-proposal-engine/internal/infrastructure/config"
	"github.com/eshaffer321/ateema-proposal-engine/internal/infrastructure/logging"
)

// NewApp builds the ateema CLI.
func NewApp(version string) *cli.App {
	return &cli.App{
		Name:    "ateema",
		Usage:   "Budget-constrained media proposal engine",
		Version: version,
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			{
				Name:   "allocate",
				Usage:  "Allocate a client budget across tourist and industry products",
				Flags:  allocateFlags(),
				Action: allocateAction,
			},
			{
				Name:   "discount",
				Usage:  "Resolve the display price for a single line",
				Flags:  discountFlags(),
				Action: discountAction,
			},
			{
				Name:   "products",
				Usage:  "List the loaded product catalog",
				Flags:  productsFlags(),
				Action: productsAction,
			},
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Flags:  serveFlags(),
				Action: serveAction,
			},
		},
	}
}

// runtime is the per-command setup shared by every action.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
}

func setup(c *cli.Context, system string) (*runtime, error) {
	cfg, err := config.LoadOrEnv_WithPath(c.String(flagConfig))
	if err != nil {
		return nil, err
	}
	if lvl := c.String(flagLogLevel); lvl != "" {
		cfg.Observability.Logging.Level = lvl
	}
	if c.IsSet("verbose") && c.Bool("verbose") {
		cfg.Observability.Logging.Level = "debug"
	}
	if dir := c.String("products"); dir != "" {
		cfg.Catalog.ProductsDir = dir
	}
	if path := c.String("awards"); path != "" {
		cfg.Catalog.AwardsPath = path
	}

	// Logs go to stderr so text and JSON reports on stdout stay clean
	logger := logging.NewLoggerWithSystem(c.App.ErrWriter, cfg.Observability.Logging, system)
	return &runtime{cfg: cfg, logger: logger}, nil
}

// newService loads the catalog and awards named by the config.
func (r *runtime) newService() (*service.ProposalService, error) {
	snap, err := catalogfs.LoadDir(r.cfg.Catalog.ProductsDir)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("catalog loaded", "dir", r.cfg.Catalog.ProductsDir, "products", len(snap.Products))

	var opts []service.Option
	if r.cfg.Catalog.AwardsPath != "" {
		awards, err := catalogfs.LoadAwards(r.cfg.Catalog.AwardsPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, service.WithAwards(profile.NewAwardIndex(awards)))
	}
	return service.NewProposalService(r.cfg, snap, r.logger, opts...), nil
}

func allocateAction(c *cli.Context) error {
	rt, err := setup(c, "allocator")
	if err != nil {
		return err
	}
	format := strings.ToLower(c.String("format"))
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}

	svc, err := rt.newService()
	if err != nil {
		return err
	}

	req := service.ProposalRequest{
		Budget:         rt.cfg.Allocation.TotalBudget,
		TouristPct:     floatFlag(c, "tourist-pct"),
		IndustryPct:    floatFlag(c, "industry-pct"),
		SoftCapPct:     floatFlag(c, "soft-cap-pct"),
		Products:       c.StringSlice("filter"),
		ProfileText:    c.String("profile-text"),
		IsAdvertiser:   boolFlag(c, "advertiser"),
		PrepayFullYear: c.Bool("prepay"),
		BillingDate:    billingDate(c, rt.logger),
	}
	if path := c.String("input"); path != "" {
		in, err := catalogfs.LoadClientInput(path)
		if err != nil {
			return err
		}
		applyClientInput(&req, in)
	}
	if c.IsSet("budget") {
		req.Budget = c.Float64("budget")
	}

	p, err := svc.Generate(c.Context, req)
	if err != nil {
		return err
	}

	w := c.App.Writer
	if format == "json" {
		return WriteJSON(w, dto.NewProposalResponse(p))
	}
	PrintProposal(w, p)
	if c.Bool("preview") {
		PrintPreview(w, p.Preview())
	}
	return nil
}

// applyClientInput fills request fields the flags left empty.
func applyClientInput(req *service.ProposalRequest, in *catalogfs.ClientInput) {
	if req.ProfileText == "" {
		req.ProfileText = in.ClientProfile
	}
	if len(req.Products) == 0 {
		req.Products = in.CandidateProducts
	}
	if in.Budget > 0 {
		req.Budget = in.Budget
	}
}

func discountAction(c *cli.Context) error {
	rt, err := setup(c, "pricing")
	if err != nil {
		return err
	}
	d := pricing.ResolveDiscount(pricing.DiscountRequest{
		Product:          c.String("product"),
		Option:           c.String("option"),
		BasePrice:        c.Float64("base-price"),
		Tier:             c.String("tier"),
		HasOtherProducts: c.Bool("other-products"),
		PrepayFullYear:   c.Bool("prepay"),
		IsAdvertiser:     rt.cfg.Allocation.Advertiser(boolFlag(c, "advertiser")),
		BillingDate:      billingDate(c, rt.logger),
	})
	PrintDiscount(c.App.Writer, d)
	return nil
}

func productsAction(c *cli.Context) error {
	rt, err := setup(c, "catalog")
	if err != nil {
		return err
	}
	svc, err := rt.newService()
	if err != nil {
		return err
	}

	want := c.String("pool")
	products := []dto.ProductResponse{}
	for _, rec := range svc.Products() {
		poolName, _ := svc.PoolOf(rec)
		if want != "" && string(poolName) != want {
			continue
		}
		products = append(products, dto.NewProductResponse(rec, svc.Category(rec), string(poolName)))
	}

	if strings.EqualFold(c.String("format"), "json") {
		return WriteJSON(c.App.Writer, dto.ProductListResponse{Products: products, Count: len(products)})
	}
	PrintProducts(c.App.Writer, products)
	return nil
}

func serveAction(c *cli.Context) error {
	rt, err := setup(c, "api")
	if err != nil {
		return err
	}
	svc, err := rt.newService()
	if err != nil {
		return err
	}
	return RunServe(c.Context, rt.cfg, svc, ServeFlags{Port: c.Int("port")}, rt.logger)
}
