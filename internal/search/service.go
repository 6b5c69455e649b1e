package search

import (
	"context"
	"time"

	"github.com/jonathan/catalitium/internal/listings"
	"github.com/jonathan/catalitium/internal/money"
	"github.com/jonathan/catalitium/internal/normalize"
	"github.com/jonathan/catalitium/internal/salaryref"
	"github.com/jonathan/catalitium/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ListingLoader reads listings from a dataset path.
type ListingLoader func(path string) ([]types.Listing, error)

// Config holds the dataset locations a Service reads on every search.
type Config struct {
	JobsPath   string
	SalaryPath string
}

// Service answers search requests against the listing and salary reference
// datasets. Listings are reloaded for every search; the reference index comes
// from the Provider.
type Service struct {
	cfg    Config
	refs   salaryref.Provider
	load   ListingLoader
	logger *zap.Logger
}

// NewService creates a Service. A nil logger disables logging.
func NewService(cfg Config, refs salaryref.Provider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cfg:    cfg,
		refs:   refs,
		load:   listings.Load,
		logger: logger,
	}
}

// WithLoader replaces the listing loader.
func (s *Service) WithLoader(load ListingLoader) *Service {
	s.load = load
	return s
}

// Search runs one request through the pipeline. Dataset failures are logged
// and treated as empty datasets; the only error returned is a cancelled
// context.
func (s *Service) Search(ctx context.Context, req types.SearchRequest) (*types.SearchResult, error) {
	start := time.Now()
	query := money.ParseQuery(req.Title)

	var (
		all []types.Listing
		idx *salaryref.Index
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		loaded, err := s.load(s.cfg.JobsPath)
		if err != nil {
			s.logger.Warn("failed to load listings, continuing with none",
				zap.String("path", s.cfg.JobsPath), zap.Error(err))
			return nil
		}
		all = loaded
		return nil
	})
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		if s.refs == nil || s.cfg.SalaryPath == "" {
			return nil
		}
		loaded, err := s.refs.Get(s.cfg.SalaryPath)
		if err != nil {
			s.logger.Warn("failed to load salary reference, skipping enrichment",
				zap.String("path", s.cfg.SalaryPath), zap.Error(err))
			return nil
		}
		idx = loaded
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all = Enrich(all, idx)
	matched := Filter(all, query.Text, req.Country, query.Floor, query.Ceiling)
	page := Paginate(matched, req.Page, req.PageSize)

	s.logger.Debug("search completed",
		zap.String("title", req.Title),
		zap.String("country", req.Country),
		zap.Int("listings", len(all)),
		zap.Int("matched", len(matched)),
		zap.Duration("elapsed", time.Since(start)))

	return &types.SearchResult{
		Results:    page.Items,
		Count:      page.Total,
		TitleQuery: normalize.Title(query.Text),
		Country:    normalize.Country(req.Country),
		SalaryMin:  query.Floor,
		SalaryMax:  query.Ceiling,
		Pagination: types.Pagination{
			Page:       page.Page,
			TotalPages: page.TotalPages,
			Total:      page.Total,
			PageSize:   page.PageSize,
			HasPrev:    page.HasPrev,
			HasNext:    page.HasNext,
		},
	}, nil
}
