package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/catalog"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/eligibility"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/pool"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/pricing"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/profile"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/proposal"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/validator"
	"github.com/eshaffer321/ateema-proposal-engine/internal/infrastructure/config"
)

var (
	// ErrNoCandidates is returned when none of the requested products exist.
	ErrNoCandidates = errors.New("no candidate products found in catalog")

	// ErrInvalidRequest wraps request validation failures.
	ErrInvalidRequest = errors.New("invalid proposal request")

	// ErrNotFound is returned for unknown proposal IDs and product names.
	ErrNotFound = errors.New("not found")
)

// DefaultHistorySize is how many generated proposals are kept in memory.
const DefaultHistorySize = 100

// ProposalRequest holds the inputs for one proposal run. Nil percentages
// and soft cap fall back to the configured defaults.
type ProposalRequest struct {
	Budget      float64
	TouristPct  *float64
	IndustryPct *float64
	SoftCapPct  *float64

	// Products limits the run to these names. Empty means the whole catalog.
	Products []string

	// ProfileText is used for eligibility when set; otherwise Profile is
	// rendered to text.
	ProfileText string
	Profile     *profile.ClientProfile

	// IsAdvertiser selects advertiser pricing. nil falls back to
	// allocation.is_advertiser.
	IsAdvertiser   *bool
	PrepayFullYear bool
	BillingDate    *time.Time
}

// Section is one pool of a generated proposal.
type Section struct {
	Pool          pool.Pool
	Lines         []proposal.Line
	TotalOriginal float64
	Total         float64
	Validation    *validator.PoolValidation
}

// Proposal is the output of Generate.
type Proposal struct {
	ID          string
	GeneratedAt time.Time

	Budget       float64
	TouristPct   float64
	IndustryPct  float64
	Segment      eligibility.Segment
	ProfileText  string
	IsAdvertiser bool

	Tourist  Section
	Industry Section

	// GrandTotal is the allocator total before display discounts.
	GrandTotal float64

	// DiscountedTotal sums the discounted display lines.
	DiscountedTotal float64

	Validation *validator.BudgetValidation

	Products        []string
	MissingProducts []string

	// input is the eligibility-filtered catalog the allocator ran on
	input catalog.Snapshot
}

// Preview renders the allocator input block: the candidate products after
// eligibility filtering, with their price maps.
func (p *Proposal) Preview() string {
	return proposal.FormatProductBlock(p.input.Products, p.input.Meta)
}

// Sections returns the pool sections in reporting order.
func (p *Proposal) Sections() []Section {
	return []Section{p.Tourist, p.Industry}
}

// ProposalService generates proposals from a loaded catalog snapshot.
type ProposalService struct {
	cfg      *config.Config
	snapshot catalog.Snapshot
	filter   *eligibility.Filter
	awards   *profile.AwardIndex
	logger   *slog.Logger
	now      func() time.Time

	// Recent proposals, oldest first in order
	history    map[string]*Proposal
	order      []string
	historyCap int
	historyMu  sync.RWMutex
}

// Option configures a ProposalService.
type Option func(*ProposalService)

// WithAwards sets the award index used to fill in a profile's award.
func WithAwards(idx *profile.AwardIndex) Option {
	return func(s *ProposalService) { s.awards = idx }
}

// WithFilter replaces the default eligibility filter.
func WithFilter(f *eligibility.Filter) Option {
	return func(s *ProposalService) { s.filter = f }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *ProposalService) { s.now = now }
}

// WithHistorySize sets how many proposals Get can return. Zero disables
// history.
func WithHistorySize(n int) Option {
	return func(s *ProposalService) { s.historyCap = n }
}

// NewProposalService creates a new proposal service.
func NewProposalService(cfg *config.Config, snapshot catalog.Snapshot, logger *slog.Logger, opts ...Option) *ProposalService {
	if cfg == nil {
		cfg = &config.Config{}
	}
	s := &ProposalService{
		cfg:        cfg,
		snapshot:   snapshot,
		filter:     eligibility.NewFilter(nil),
		logger:     logger,
		now:        time.Now,
		history:    make(map[string]*Proposal),
		historyCap: DefaultHistorySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate runs the full pipeline: resolve candidates, apply eligibility,
// partition into pools, allocate each pool, price display lines and check
// the grand total against the soft cap.
func (s *ProposalService) Generate(ctx context.Context, req ProposalRequest) (*Proposal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	split, softCap, err := s.resolveSplit(req)
	if err != nil {
		return nil, err
	}

	snap, res, err := s.candidates(req.Products)
	if err != nil {
		return nil, err
	}
	if len(res.Missing) > 0 {
		s.logger.Warn("requested products not in catalog", "missing", res.Missing)
	}

	text := s.profileText(req)
	isAdvertiser := s.Advertiser(req.IsAdvertiser)
	eligible := s.filter.Apply(snap.Products, text, isAdvertiser)
	tourist, industry := pool.Partition(eligible, snap.Meta)

	for _, a := range pool.AuditPartition(split, tourist, industry) {
		s.logger.Debug("pool partition",
			"pool", a.Pool,
			"budget", pricing.RoundCents(a.Budget),
			"products", len(a.Products),
		)
	}

	terms := pricing.Terms{BillingDate: req.BillingDate, IsAdvertiser: isAdvertiser}
	result := pool.Allocate(split, tourist, industry, snap.Meta, terms)

	picked := proposal.PickedProducts(result.Pools()...)
	opts := proposal.Options{Terms: terms, PrepayFullYear: req.PrepayFullYear}

	p := &Proposal{
		ID:              uuid.New().String(),
		GeneratedAt:     s.now(),
		Budget:          split.TotalBudget,
		TouristPct:      split.TouristPct,
		IndustryPct:     split.IndustryPct,
		Segment:         s.filter.Segment(text),
		ProfileText:     text,
		IsAdvertiser:    isAdvertiser,
		Tourist:         s.section(result.Tourist, picked, opts),
		Industry:        s.section(result.Industry, picked, opts),
		GrandTotal:      result.GrandTotal,
		Validation:      validator.ValidateBudget(result.GrandTotal, split.TotalBudget, softCap),
		Products:        eligible.Names(),
		MissingProducts: res.Missing,
		input:           catalog.Snapshot{Products: eligible, Meta: snap.Meta},
	}
	p.DiscountedTotal = pricing.SumCents(p.Tourist.Total, p.Industry.Total)

	s.logSummary(p)
	s.remember(p)
	return p, nil
}

func (s *ProposalService) resolveSplit(req ProposalRequest) (pool.Split, float64, error) {
	split := pool.Split{
		TotalBudget: req.Budget,
		TouristPct:  floatOr(req.TouristPct, s.cfg.Allocation.Tourist()),
		IndustryPct: floatOr(req.IndustryPct, s.cfg.Allocation.Industry()),
	}
	softCap := floatOr(req.SoftCapPct, s.cfg.Allocation.SoftCap())

	if split.TotalBudget < 0 {
		return split, 0, fmt.Errorf("%w: budget must not be negative", ErrInvalidRequest)
	}
	if !inPercentRange(split.TouristPct) {
		return split, 0, fmt.Errorf("%w: tourist_pct must be between 0 and 100", ErrInvalidRequest)
	}
	if !inPercentRange(split.IndustryPct) {
		return split, 0, fmt.Errorf("%w: industry_pct must be between 0 and 100", ErrInvalidRequest)
	}
	if softCap < 0 {
		return split, 0, fmt.Errorf("%w: soft_cap_pct must not be negative", ErrInvalidRequest)
	}
	return split, softCap, nil
}

func (s *ProposalService) candidates(requested []string) (catalog.Snapshot, catalog.Resolution, error) {
	if len(requested) == 0 {
		return s.snapshot, catalog.Resolution{Present: s.snapshot.Products.Names()}, nil
	}
	res := s.snapshot.Products.Resolve(requested)
	if len(res.Present) == 0 {
		return catalog.Snapshot{}, res, fmt.Errorf("%w: %v", ErrNoCandidates, res.Missing)
	}
	return s.snapshot.Subset(res.Present), res, nil
}

func (s *ProposalService) profileText(req ProposalRequest) string {
	if req.ProfileText != "" || req.Profile == nil {
		return req.ProfileText
	}
	return s.awards.WithAward(*req.Profile).Text()
}

func (s *ProposalService) section(p pool.Pool, picked map[string]bool, opts proposal.Options) Section {
	lines := proposal.BuildLines(p.Name, p.Selection, picked, opts)
	orig, total := proposal.Totals(lines)
	return Section{
		Pool:          p,
		Lines:         lines,
		TotalOriginal: orig,
		Total:         total,
		Validation:    validator.ValidatePool(string(p.Name), p.Selection.Subtotal, p.Budget),
	}
}

func (s *ProposalService) logSummary(p *Proposal) {
	for _, sec := range p.Sections() {
		sel := sec.Pool.Selection
		s.logger.Info("pool allocated",
			"proposal_id", p.ID,
			"pool", sec.Pool.Name,
			"budget", pricing.RoundCents(sec.Pool.Budget),
			"picks", len(sel.Picks),
			"baseline", sel.Baseline,
			"subtotal", sel.Subtotal,
			"upgrades", sel.Upgrades,
		)
		if !sec.Validation.Valid {
			s.logger.Warn("pool over budget", "proposal_id", p.ID, "reason", sec.Validation.Reason)
		}
	}

	if !p.Validation.Valid {
		s.logger.Warn("proposal exceeds soft cap",
			"proposal_id", p.ID,
			"grand_total", p.GrandTotal,
			"cap", p.Validation.Cap,
		)
		return
	}
	s.logger.Info("proposal generated",
		"proposal_id", p.ID,
		"grand_total", p.GrandTotal,
		"discounted_total", p.DiscountedTotal,
		"budget", p.Budget,
	)
}

// remember stores p, evicting the oldest proposal past the history size.
func (s *ProposalService) remember(p *Proposal) {
	if s.historyCap <= 0 {
		return
	}
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	s.history[p.ID] = p
	s.order = append(s.order, p.ID)
	for len(s.order) > s.historyCap {
		delete(s.history, s.order[0])
		s.order = s.order[1:]
	}
}

// Get returns a previously generated proposal.
func (s *ProposalService) Get(id string) (*Proposal, error) {
	s.historyMu.RLock()
	defer s.historyMu.RUnlock()

	p, ok := s.history[id]
	if !ok {
		return nil, fmt.Errorf("proposal %s: %w", id, ErrNotFound)
	}
	return p, nil
}

// Recent returns stored proposals, newest first.
func (s *ProposalService) Recent(limit int) []*Proposal {
	s.historyMu.RLock()
	defer s.historyMu.RUnlock()

	out := make([]*Proposal, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, s.history[s.order[i]])
	}
	return out
}

// Advertiser resolves a request's advertiser flag against the configured
// default.
func (s *ProposalService) Advertiser(override *bool) bool {
	return s.cfg.Allocation.Advertiser(override)
}

// Discount resolves the display price for a single line.
func (s *ProposalService) Discount(req pricing.DiscountRequest) pricing.Discount {
	return pricing.ResolveDiscount(req)
}

// Products returns the catalog records sorted by name.
func (s *ProposalService) Products() []catalog.ProductRecord {
	names := s.snapshot.Products.Names()
	out := make([]catalog.ProductRecord, 0, len(names))
	for _, name := range names {
		out = append(out, s.snapshot.Products[name])
	}
	return out
}

// Product looks a product up by exact or canonical name.
func (s *ProposalService) Product(name string) (catalog.ProductRecord, error) {
	res := s.snapshot.Products.Resolve([]string{name})
	if len(res.Present) == 0 {
		return catalog.ProductRecord{}, fmt.Errorf("product %q: %w", name, ErrNotFound)
	}
	return s.snapshot.Products[res.Present[0]], nil
}

// Category returns the raw category of a product.
func (s *ProposalService) Category(rec catalog.ProductRecord) string {
	return s.snapshot.Meta.CategoryOf(rec.Name, rec)
}

// PoolOf reports which pool a product falls into, if any.
func (s *ProposalService) PoolOf(rec catalog.ProductRecord) (pool.Name, bool) {
	n := pool.Name(pool.NormalizeCategory(s.Category(rec)))
	switch n {
	case pool.Tourist, pool.Industry:
		return n, true
	}
	return "", false
}

// AwardCategories lists the general award categories known to the service.
func (s *ProposalService) AwardCategories() []string {
	return s.awards.Categories()
}

// AwardFor returns the Summit award a business type qualifies for.
func (s *ProposalService) AwardFor(businessType string) (string, bool) {
	return s.awards.Match(businessType)
}

func floatOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func inPercentRange(v float64) bool {
	return v >= 0 && v <= 100
}
