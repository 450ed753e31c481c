package mapping

import (
	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/monitoring/logging"
	"github.com/agrabowski5/TaxonomyViewing/pkg/errors"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// Orchestrator applies the right resolution strategy for every source/target
// pair and assembles the per-target results in the registry's fixed order.
// It is stateless; all data comes in through the snapshot argument, so one
// orchestrator serves concurrent callers against different snapshots.
type Orchestrator struct {
	registry *taxonomy.Registry
	logger   logging.Logger
}

// NewOrchestrator builds an orchestrator over a registry.
func NewOrchestrator(registry *taxonomy.Registry, logger logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Orchestrator{registry: registry, logger: logger.Named("orchestrator")}
}

// MapAll resolves one source code into every other registered taxonomy.  The
// result always contains one TargetResolution per non-source taxonomy, in
// registry order; targets with no counterpart carry an empty Matches slice.
// nodeID is optional and only consulted for synthetic sources, where it
// disambiguates grafted entries.
//
// The only error is an unknown source taxonomy.
func (o *Orchestrator) MapAll(snap *taxonomy.Snapshot, source ttypes.ID, code, nodeID string) (*ttypes.Resolution, error) {
	src, ok := o.registry.Get(source)
	if !ok {
		return nil, errors.UnknownTaxonomy(string(source))
	}
	res := &ttypes.Resolution{Source: source, SourceCode: code}

	switch src.Kind {
	case ttypes.KindSynthetic:
		return o.mapFromSynthetic(snap, src, res, code, nodeID)
	case ttypes.KindConcordance:
		res.Targets = o.resolveTargets(snap, src, o.anchorBaseFromConcordance(snap, code))
	case ttypes.KindFuzzy:
		res.Targets = o.resolveTargets(snap, src, o.anchorBaseFromFuzzy(snap, code))
	default:
		base, _ := taxonomy.BaseKey(code, src)
		res.Targets = o.resolveTargets(snap, src, base)
	}
	return res, nil
}

// resolveTargets produces one TargetResolution per non-source taxonomy from a
// shared-family base key.  An empty base key yields empty targets across the
// board, which covers section labels and other non-numeric sources.
func (o *Orchestrator) resolveTargets(snap *taxonomy.Snapshot, src *taxonomy.Descriptor, base string) []ttypes.TargetResolution {
	targets := make([]ttypes.TargetResolution, 0, len(o.registry.Order())-1)
	for _, id := range o.registry.Order() {
		if id == src.ID {
			continue
		}
		target, _ := o.registry.Get(id)
		targets = append(targets, o.resolveTarget(snap, target, base))
	}
	return targets
}

func (o *Orchestrator) resolveTarget(snap *taxonomy.Snapshot, target *taxonomy.Descriptor, base string) ttypes.TargetResolution {
	tr := ttypes.TargetResolution{
		Taxonomy: target.ID,
		Method:   ttypes.MethodNone,
		Matches:  []ttypes.MatchResult{},
	}
	if base == "" {
		return tr
	}
	lookup := snap.Lookups[target.ID]

	switch target.Kind {
	case ttypes.KindShared:
		if m := ResolvePrefix(base, target, lookup); m != nil {
			tr.Method = ttypes.MethodPrefix
			tr.Matches = append(tr.Matches, *m)
		}
	case ttypes.KindConcordance:
		if m := ResolveConcordance(base, ttypes.Forward, snap.Concordance, lookup, target); m != nil {
			tr.Method = ttypes.MethodConcordance
			tr.Matches = append(tr.Matches, *m)
		}
	case ttypes.KindFuzzy:
		if ms := ResolveFuzzy(base, ttypes.Forward, snap.Fuzzy, lookup, target); len(ms) > 0 {
			tr.Method = ttypes.MethodFuzzy
			tr.Matches = ms
		}
	case ttypes.KindSynthetic:
		if m := o.resolveSyntheticTarget(snap, target, base); m != nil {
			tr.Method = ttypes.MethodComposite
			tr.Matches = append(tr.Matches, *m)
		}
	}
	return tr
}

// resolveSyntheticTarget locates a shared-family base inside a synthetic
// taxonomy: first as a primary-backbone detail entry under the base's own
// key conventions, then as a grafted secondary entry reached through the
// concordance and the reserved key prefix.
func (o *Orchestrator) resolveSyntheticTarget(snap *taxonomy.Snapshot, target *taxonomy.Descriptor, base string) *ttypes.MatchResult {
	lookup := snap.Lookups[target.ID]
	if len(lookup) == 0 {
		return nil
	}
	for _, format := range target.KeyFormats {
		for _, key := range taxonomy.CandidateKeys(format, base) {
			if entry, ok := lookup[key]; ok {
				return &ttypes.MatchResult{
					Taxonomy:    target.ID,
					Code:        entry.Code,
					Description: entry.Description,
					NodeID:      target.NodeID(entry.Code),
				}
			}
		}
	}

	secondary, ok := o.registry.Get(target.Secondary)
	if !ok {
		return nil
	}
	candidates := ResolveConcordanceAll(base, ttypes.Forward, snap.Concordance, nil, secondary)
	for _, c := range candidates {
		norm := taxonomy.Normalize(c.Code)
		entry, ok := lookup[target.SecondaryKeyPrefix+norm]
		if !ok {
			continue
		}
		return &ttypes.MatchResult{
			Taxonomy:      target.ID,
			Code:          entry.Code,
			Description:   entry.Description,
			NodeID:        target.SecondaryNodePrefix + norm,
			SourcePartial: c.SourcePartial,
			TargetPartial: c.TargetPartial,
			Cardinality:   c.Cardinality,
		}
	}
	return nil
}

// mapFromSynthetic resolves a synthetic-taxonomy source by recovering the
// entry's origin taxonomy and re-dispatching as that origin.  The synthetic
// taxonomy itself is removed from the re-dispatched targets and replaced by
// the origin taxonomy's own slot, so the caller still receives one entry per
// non-source taxonomy.
func (o *Orchestrator) mapFromSynthetic(snap *taxonomy.Snapshot, src *taxonomy.Descriptor, res *ttypes.Resolution, code, nodeID string) (*ttypes.Resolution, error) {
	origin := ResolveOrigin(nodeID, code, src, snap.Lookups[src.ID])
	if origin == nil {
		o.logger.Debug("synthetic entry has no resolvable origin",
			logging.String("taxonomy", string(src.ID)),
			logging.String("code", code))
		res.Targets = o.resolveTargets(snap, src, "")
		return res, nil
	}

	inner, err := o.MapAll(snap, origin.Taxonomy, origin.Code, "")
	if err != nil {
		return nil, err
	}

	originDesc, _ := o.registry.Get(origin.Taxonomy)
	targets := make([]ttypes.TargetResolution, 0, len(inner.Targets))
	for _, tr := range inner.Targets {
		if tr.Taxonomy == src.ID {
			continue
		}
		targets = append(targets, tr)
	}
	targets = append(targets, o.originTarget(snap, originDesc, origin))
	res.Targets = orderTargets(o.registry, src.ID, targets)
	return res, nil
}

// originTarget represents the origin taxonomy itself inside a
// synthetic-source resolution: the entry is an exact composite redirection,
// not a computed match.
func (o *Orchestrator) originTarget(snap *taxonomy.Snapshot, origin *taxonomy.Descriptor, org *Origin) ttypes.TargetResolution {
	tr := ttypes.TargetResolution{
		Taxonomy: origin.ID,
		Method:   ttypes.MethodComposite,
		Matches:  []ttypes.MatchResult{},
	}
	m := ttypes.MatchResult{
		Taxonomy: origin.ID,
		Code:     org.Code,
		NodeID:   origin.NodeID(org.Code),
	}
	if lookup, ok := snap.Lookup(origin.ID); ok {
		if entry, found := lookup[taxonomy.Normalize(org.Code)]; found {
			m.Description = entry.Description
		}
	}
	tr.Matches = append(tr.Matches, m)
	return tr
}

// orderTargets reorders target resolutions into registry order, skipping the
// source taxonomy.
func orderTargets(registry *taxonomy.Registry, source ttypes.ID, targets []ttypes.TargetResolution) []ttypes.TargetResolution {
	byID := make(map[ttypes.ID]ttypes.TargetResolution, len(targets))
	for _, tr := range targets {
		byID[tr.Taxonomy] = tr
	}
	out := make([]ttypes.TargetResolution, 0, len(targets))
	for _, id := range registry.Order() {
		if id == source {
			continue
		}
		if tr, ok := byID[id]; ok {
			out = append(out, tr)
		} else {
			out = append(out, ttypes.TargetResolution{
				Taxonomy: id,
				Method:   ttypes.MethodNone,
				Matches:  []ttypes.MatchResult{},
			})
		}
	}
	return out
}

// anchorBaseFromConcordance recovers a representative shared-family base key
// for a concordance-only source code via the backward concordance table.
func (o *Orchestrator) anchorBaseFromConcordance(snap *taxonomy.Snapshot, code string) string {
	anchor := o.registry.Anchor()
	if anchor == nil {
		return ""
	}
	m := ResolveConcordance(code, ttypes.Backward, snap.Concordance, snap.Lookups[anchor.ID], anchor)
	if m == nil {
		return ""
	}
	base, _ := taxonomy.BaseKey(m.Code, anchor)
	return base
}

// anchorBaseFromFuzzy recovers a representative shared-family base key for a
// fuzzy-only source code via the backward fuzzy table, taking the top-ranked
// candidate.
func (o *Orchestrator) anchorBaseFromFuzzy(snap *taxonomy.Snapshot, code string) string {
	anchor := o.registry.Anchor()
	if anchor == nil {
		return ""
	}
	ms := ResolveFuzzy(code, ttypes.Backward, snap.Fuzzy, snap.Lookups[anchor.ID], anchor)
	if len(ms) == 0 {
		return ""
	}
	base, _ := taxonomy.BaseKey(ms[0].Code, anchor)
	return base
}
