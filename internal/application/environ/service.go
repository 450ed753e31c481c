// Package environ serves the environmental-factor overlays: EPA supply-chain
// emission factors, Exiobase sector intensities, USLCI process coverage and
// ecoinvent product mappings, all keyed off the classification a code
// resolves to.
package environ

import (
	"context"

	appmapping "github.com/agrabowski5/TaxonomyViewing/internal/application/mapping"
	domainMap "github.com/agrabowski5/TaxonomyViewing/internal/domain/mapping"
	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/monitoring/logging"
	"github.com/agrabowski5/TaxonomyViewing/pkg/errors"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// Factors bundles every overlay attached to one resolved code.  Absent
// overlays are nil; an empty Factors value is the normal "no data" outcome.
type Factors struct {
	HS6       string                 `json:"hs6,omitempty"`
	Chapter   string                 `json:"chapter,omitempty"`
	Emission  *ttypes.EmissionFactor `json:"emission,omitempty"`
	Exiobase  *ttypes.ExiobaseFactor `json:"exiobase,omitempty"`
	USLCI     *ttypes.USLCICoverage  `json:"uslci,omitempty"`
	Ecoinvent *ttypes.EcoinventEntry `json:"ecoinvent,omitempty"`
}

// Service resolves environmental factors for a code in any taxonomy.
type Service interface {
	FactorsFor(ctx context.Context, source ttypes.ID, code string) (*Factors, error)
}

type serviceImpl struct {
	registry     *taxonomy.Registry
	provider     appmapping.SnapshotProvider
	orchestrator *domainMap.Orchestrator
	logger       logging.Logger
}

// NewService creates the environmental-factor service.
func NewService(registry *taxonomy.Registry, provider appmapping.SnapshotProvider, logger logging.Logger) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &serviceImpl{
		registry:     registry,
		provider:     provider,
		orchestrator: domainMap.NewOrchestrator(registry, logger),
		logger:       logger.Named("environ"),
	}
}

func (s *serviceImpl) FactorsFor(ctx context.Context, source ttypes.ID, code string) (*Factors, error) {
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

	f := &Factors{}

	// Ecoinvent products are keyed by CPC code on one side, so a
	// concordance-only source reads them directly, before any reduction to
	// the shared family.
	if src.Kind == ttypes.KindConcordance {
		if e, ok := snap.Ecoinvent.CPC[taxonomy.Normalize(code)]; ok {
			f.Ecoinvent = &e
		}
	}

	base := s.anchorBase(snap, src, code)
	if base == "" {
		return f, nil
	}
	if len(base) >= 2 {
		f.Chapter = base[:2]
		if x, ok := snap.Exiobase[f.Chapter]; ok {
			f.Exiobase = &x
		}
	}
	if len(base) == taxonomy.SharedDigitWidth {
		f.HS6 = base
		f.Emission = emissionFor(snap, base)
		if u, ok := snap.USLCI[base]; ok {
			f.USLCI = &u
		}
		if f.Ecoinvent == nil {
			if e, ok := snap.Ecoinvent.HS[base]; ok {
				f.Ecoinvent = &e
			}
		}
	}
	return f, nil
}

// emissionFor finds the most specific EPA factor for a base key, falling back
// to heading and chapter prefixes when no entry exists at full precision.
func emissionFor(snap *taxonomy.Snapshot, base string) *ttypes.EmissionFactor {
	for klen := len(base); klen >= 2; klen -= 2 {
		if e, ok := snap.Emission[base[:klen]]; ok {
			return &e
		}
	}
	return nil
}

// anchorBase reduces any source code to a shared-family base key: directly
// for family members, through a full resolution for everything else.
func (s *serviceImpl) anchorBase(snap *taxonomy.Snapshot, src *taxonomy.Descriptor, code string) string {
	if src.SharedFamily() {
		base, _ := taxonomy.BaseKey(code, src)
		return base
	}
	anchor := s.registry.Anchor()
	if anchor == nil {
		return ""
	}
	res, err := s.orchestrator.MapAll(snap, src.ID, code, "")
	if err != nil {
		return ""
	}
	for _, tr := range res.Targets {
		if tr.Taxonomy != anchor.ID || len(tr.Matches) == 0 {
			continue
		}
		base, _ := taxonomy.BaseKey(tr.Matches[0].Code, anchor)
		return base
	}
	return ""
}
