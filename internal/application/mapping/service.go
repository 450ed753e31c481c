// Package mapping provides the application-level resolution service: input
// validation, snapshot selection, ancestor-path enrichment and metrics around
// the domain orchestrator.
package mapping

import (
	"context"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	domainMap "github.com/agrabowski5/TaxonomyViewing/internal/domain/mapping"
	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/monitoring/logging"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/monitoring/prometheus"
	"github.com/agrabowski5/TaxonomyViewing/pkg/errors"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// SnapshotProvider yields the current dataset snapshot.  Implemented by the
// data loader's store; tests supply fixtures directly.
type SnapshotProvider interface {
	Snapshot() *taxonomy.Snapshot
}

// Service defines the application operations over the resolution engine.
type Service interface {
	// Resolve maps one source code into every other taxonomy.
	Resolve(ctx context.Context, input *ResolveInput) (*ttypes.Resolution, error)
	// ResolveProvenance resolves a builder-authored node through its
	// provenance record.
	ResolveProvenance(ctx context.Context, prov *ttypes.Provenance) (*ttypes.Resolution, error)
	// ConcordanceCandidates lists every curated concordance candidate for a
	// code, not just the best one.
	ConcordanceCandidates(ctx context.Context, source ttypes.ID, code string) ([]ttypes.MatchResult, error)
	// AncestorPath returns the root-to-parent node chain for a tree node.
	AncestorPath(ctx context.Context, tax ttypes.ID, nodeID string) ([]string, error)
	// Taxonomies describes every registered taxonomy.
	Taxonomies(ctx context.Context) []TaxonomyInfo
	// Tree returns a taxonomy's root forest.
	Tree(ctx context.Context, tax ttypes.ID) ([]*ttypes.Node, error)
}

// ResolveInput carries one resolution request.  NodeID is optional and only
// meaningful for synthetic sources.
type ResolveInput struct {
	Source ttypes.ID
	Code   string
	NodeID string
}

// TaxonomyInfo describes one registered taxonomy for listings.
type TaxonomyInfo struct {
	ID        ttypes.ID   `json:"id"`
	Name      string      `json:"name"`
	Kind      ttypes.Kind `json:"kind"`
	Codes     int         `json:"codes"`
	TreeNodes int         `json:"treeNodes"`
}

// resolutionCacheSize bounds the per-process resolution cache.  Resolutions
// are deterministic for a given snapshot, so entries never go stale within one
// snapshot generation.
const resolutionCacheSize = 1024

type serviceImpl struct {
	registry     *taxonomy.Registry
	provider     SnapshotProvider
	orchestrator *domainMap.Orchestrator
	cache        *lru.Cache[string, *ttypes.Resolution]
	metrics      *prometheus.Metrics
	logger       logging.Logger
}

// NewService creates the resolution application service.  metrics may be nil.
func NewService(registry *taxonomy.Registry, provider SnapshotProvider, metrics *prometheus.Metrics, logger logging.Logger) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	cache, _ := lru.New[string, *ttypes.Resolution](resolutionCacheSize)
	return &serviceImpl{
		registry:     registry,
		provider:     provider,
		orchestrator: domainMap.NewOrchestrator(registry, logger),
		cache:        cache,
		metrics:      metrics,
		logger:       logger.Named("mapping"),
	}
}

func (s *serviceImpl) Resolve(ctx context.Context, input *ResolveInput) (*ttypes.Resolution, error) {
	if input == nil || input.Code == "" {
		return nil, errors.InvalidParam("code is required")
	}
	snap := s.provider.Snapshot()
	if snap == nil {
		return nil, errors.Internal("no dataset loaded")
	}

	// Keying on the snapshot load time makes entries from superseded
	// snapshots unreachable; the LRU evicts them without an explicit purge.
	key := cacheKey(snap, input)
	if res, ok := s.cache.Get(key); ok {
		return res, nil
	}

	start := time.Now()
	res, err := s.orchestrator.MapAll(snap, input.Source, input.Code, input.NodeID)
	if err != nil {
		return nil, err
	}
	s.attachAncestorPaths(snap, res)
	s.observe(input.Source, res, time.Since(start))
	s.cache.Add(key, res)

	return res, nil
}

func cacheKey(snap *taxonomy.Snapshot, input *ResolveInput) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(snap.LoadedAt.UnixNano(), 10))
	sb.WriteByte('|')
	sb.WriteString(string(input.Source))
	sb.WriteByte('|')
	sb.WriteString(input.Code)
	sb.WriteByte('|')
	sb.WriteString(input.NodeID)
	return sb.String()
}

func (s *serviceImpl) ResolveProvenance(ctx context.Context, prov *ttypes.Provenance) (*ttypes.Resolution, error) {
	if prov == nil || prov.SourceTaxonomy == "" || prov.SourceCode == "" {
		return nil, errors.New(errors.ErrCodeProvenanceEmpty, "provenance requires a source taxonomy and code")
	}
	return s.Resolve(ctx, &ResolveInput{Source: prov.SourceTaxonomy, Code: prov.SourceCode})
}

func (s *serviceImpl) ConcordanceCandidates(ctx context.Context, source ttypes.ID, code string) ([]ttypes.MatchResult, error) {
	src, ok := s.registry.Get(source)
	if !ok {
		return nil, errors.UnknownTaxonomy(string(source))
	}
	if code == "" {
		return nil, errors.InvalidParam("code is required")
	}
	snap := s.provider.Snapshot()
	if snap == nil {
		return nil, errors.Internal("no dataset loaded")
	}

	// Shared-family codes read the forward table; concordance-only codes
	// read the backward one.  Other kinds have no curated entries at all.
	switch src.Kind {
	case ttypes.KindShared:
		cpcDesc := s.concordanceCounterpart()
		if cpcDesc == nil {
			return []ttypes.MatchResult{}, nil
		}
		base, ok := taxonomy.BaseKey(code, src)
		if !ok {
			return []ttypes.MatchResult{}, nil
		}
		all := domainMap.ResolveConcordanceAll(base, ttypes.Forward, snap.Concordance, snap.Lookups[cpcDesc.ID], cpcDesc)
		return nonNil(all), nil
	case ttypes.KindConcordance:
		anchor := s.registry.Anchor()
		if anchor == nil {
			return []ttypes.MatchResult{}, nil
		}
		all := domainMap.ResolveConcordanceAll(code, ttypes.Backward, snap.Concordance, snap.Lookups[anchor.ID], anchor)
		return nonNil(all), nil
	default:
		return []ttypes.MatchResult{}, nil
	}
}

func (s *serviceImpl) AncestorPath(ctx context.Context, tax ttypes.ID, nodeID string) ([]string, error) {
	if _, ok := s.registry.Get(tax); !ok {
		return nil, errors.UnknownTaxonomy(string(tax))
	}
	snap := s.provider.Snapshot()
	if snap == nil {
		return nil, errors.Internal("no dataset loaded")
	}
	tree, ok := snap.Tree(tax)
	if !ok {
		return nil, errors.NotFound("no tree loaded for " + string(tax))
	}
	path := tree.AncestorPath(nodeID)
	if path == nil {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "node not found").WithDetail(nodeID)
	}
	return path, nil
}

func (s *serviceImpl) Taxonomies(ctx context.Context) []TaxonomyInfo {
	snap := s.provider.Snapshot()
	infos := make([]TaxonomyInfo, 0, len(s.registry.Order()))
	for _, id := range s.registry.Order() {
		d, _ := s.registry.Get(id)
		info := TaxonomyInfo{ID: d.ID, Name: d.Name, Kind: d.Kind}
		if snap != nil {
			if lookup, ok := snap.Lookup(id); ok {
				info.Codes = len(lookup)
			}
			if tree, ok := snap.Tree(id); ok {
				info.TreeNodes = tree.Len()
			}
		}
		infos = append(infos, info)
	}
	return infos
}

func (s *serviceImpl) Tree(ctx context.Context, tax ttypes.ID) ([]*ttypes.Node, error) {
	if _, ok := s.registry.Get(tax); !ok {
		return nil, errors.UnknownTaxonomy(string(tax))
	}
	snap := s.provider.Snapshot()
	if snap == nil {
		return nil, errors.Internal("no dataset loaded")
	}
	tree, ok := snap.Tree(tax)
	if !ok {
		return nil, errors.NotFound("no tree loaded for " + string(tax))
	}
	return tree.Roots(), nil
}

// concordanceCounterpart returns the first concordance-kind taxonomy.
func (s *serviceImpl) concordanceCounterpart() *taxonomy.Descriptor {
	for _, id := range s.registry.Order() {
		if d, _ := s.registry.Get(id); d != nil && d.Kind == ttypes.KindConcordance {
			return d
		}
	}
	return nil
}

func (s *serviceImpl) attachAncestorPaths(snap *taxonomy.Snapshot, res *ttypes.Resolution) {
	for ti := range res.Targets {
		tree, ok := snap.Tree(res.Targets[ti].Taxonomy)
		if !ok {
			continue
		}
		for mi := range res.Targets[ti].Matches {
			m := &res.Targets[ti].Matches[mi]
			m.AncestorPath = tree.AncestorPath(m.NodeID)
		}
	}
}

func (s *serviceImpl) observe(source ttypes.ID, res *ttypes.Resolution, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	for _, tr := range res.Targets {
		s.metrics.ObserveResolution(string(source), string(tr.Taxonomy), string(tr.Method), len(tr.Matches) > 0)
	}
	s.metrics.ObserveMapAll(string(source), elapsed)
}

func nonNil(ms []ttypes.MatchResult) []ttypes.MatchResult {
	if ms == nil {
		return []ttypes.MatchResult{}
	}
	return ms
}
