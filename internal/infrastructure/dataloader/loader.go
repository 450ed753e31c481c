// Package dataloader reads the taxonomy dataset files from disk into an
// immutable snapshot and keeps a running service current through filesystem
// watching.  File layout per taxonomy: <id>-lookup.json (required) and
// <id>-tree.json (optional), plus concordance.json, fuzzy-mappings.json and
// the optional environmental overlay files.
package dataloader

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/monitoring/logging"
	"github.com/agrabowski5/TaxonomyViewing/pkg/errors"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// Dataset file names that are not per-taxonomy.
const (
	concordanceFile = "concordance.json"
	fuzzyFile       = "fuzzy-mappings.json"
	emissionFile    = "emission-factors.json"
	exiobaseFile    = "exiobase-factors.json"
	uslciFile       = "uslci-coverage.json"
	ecoinventFile   = "ecoinvent-mapping.json"
)

// Loader reads dataset files for every registered taxonomy.
type Loader struct {
	dir      string
	registry *taxonomy.Registry
	logger   logging.Logger
}

// NewLoader creates a Loader rooted at dir.
func NewLoader(dir string, registry *taxonomy.Registry, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Loader{dir: dir, registry: registry, logger: logger.Named("dataloader")}
}

// Load reads every dataset file and assembles a snapshot.  Lookup tables,
// the concordance and the fuzzy table are required; tree files and the
// environmental overlays are optional and logged when absent.
func (l *Loader) Load() (*taxonomy.Snapshot, error) {
	snap := &taxonomy.Snapshot{
		Lookups:  make(map[ttypes.ID]ttypes.Lookup),
		Trees:    make(map[ttypes.ID]*taxonomy.Index),
		LoadedAt: time.Now().UTC(),
	}

	for _, id := range l.registry.Order() {
		var lookup ttypes.Lookup
		if err := l.readRequired(string(id)+"-lookup.json", &lookup); err != nil {
			return nil, err
		}
		snap.Lookups[id] = lookup

		var roots []*ttypes.Node
		ok, err := l.readOptional(string(id)+"-tree.json", &roots)
		if err != nil {
			return nil, err
		}
		if !ok {
			l.logger.Warn("tree file missing, ancestor paths unavailable",
				logging.String("taxonomy", string(id)))
			continue
		}
		snap.Trees[id] = taxonomy.NewIndex(roots)
	}

	if err := l.readRequired(concordanceFile, &snap.Concordance); err != nil {
		return nil, err
	}
	if err := l.readRequired(fuzzyFile, &snap.Fuzzy); err != nil {
		return nil, err
	}

	if _, err := l.readOptional(emissionFile, &snap.Emission); err != nil {
		return nil, err
	}
	if _, err := l.readOptional(exiobaseFile, &snap.Exiobase); err != nil {
		return nil, err
	}
	if _, err := l.readOptional(uslciFile, &snap.USLCI); err != nil {
		return nil, err
	}
	if _, err := l.readOptional(ecoinventFile, &snap.Ecoinvent); err != nil {
		return nil, err
	}

	l.logger.Info("dataset loaded",
		logging.Int("taxonomies", len(snap.Lookups)),
		logging.Int("trees", len(snap.Trees)))
	return snap, nil
}

func (l *Loader) readRequired(name string, out interface{}) error {
	path := filepath.Join(l.dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatasetMissing, "required dataset file unreadable").WithDetail(path)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatasetParse, "failed to decode dataset file").WithDetail(path)
	}
	return nil
}

func (l *Loader) readOptional(name string, out interface{}) (bool, error) {
	path := filepath.Join(l.dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, errors.ErrCodeDatasetMissing, "dataset file unreadable").WithDetail(path)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, errors.Wrap(err, errors.ErrCodeDatasetParse, "failed to decode dataset file").WithDetail(path)
	}
	return true, nil
}

// ValidationReport summarizes referential integrity of a loaded snapshot.
type ValidationReport struct {
	DanglingConcordance int `json:"danglingConcordance"`
	DanglingFuzzy       int `json:"danglingFuzzy"`
	OrphanTreeNodes     int `json:"orphanTreeNodes"`
}

// Clean reports whether no integrity problems were found.
func (r *ValidationReport) Clean() bool {
	return r.DanglingConcordance == 0 && r.DanglingFuzzy == 0 && r.OrphanTreeNodes == 0
}

// Validate cross-checks a snapshot's tables: concordance and fuzzy targets
// must exist in their taxonomy's lookup, and every numeric tree node must
// have a lookup entry.  Problems are counted, not fatal; the engine skips
// dangling references at resolution time.
func (l *Loader) Validate(snap *taxonomy.Snapshot) *ValidationReport {
	report := &ValidationReport{}

	anchor := l.registry.Anchor()
	var anchorLookup, counterpartLookup ttypes.Lookup
	if anchor != nil {
		anchorLookup = snap.Lookups[anchor.ID]
	}
	for _, id := range l.registry.Order() {
		if d, _ := l.registry.Get(id); d != nil && d.Kind == ttypes.KindConcordance {
			counterpartLookup = snap.Lookups[id]
			break
		}
	}

	for _, entries := range snap.Concordance.Forward {
		for _, e := range entries {
			if _, ok := counterpartLookup[taxonomy.Normalize(e.Code)]; !ok {
				report.DanglingConcordance++
			}
		}
	}
	for _, entries := range snap.Concordance.Backward {
		for _, e := range entries {
			if _, ok := anchorLookup[taxonomy.Normalize(e.Code)]; !ok {
				report.DanglingConcordance++
			}
		}
	}

	var fuzzyLookup ttypes.Lookup
	for _, id := range l.registry.Order() {
		if d, _ := l.registry.Get(id); d != nil && d.Kind == ttypes.KindFuzzy {
			fuzzyLookup = snap.Lookups[id]
			break
		}
	}
	for _, candidates := range snap.Fuzzy.AToB {
		for _, c := range candidates {
			if _, ok := fuzzyLookup[taxonomy.Normalize(c.Code)]; !ok {
				report.DanglingFuzzy++
			}
		}
	}
	for _, candidates := range snap.Fuzzy.BToA {
		for _, c := range candidates {
			if _, ok := anchorLookup[taxonomy.Normalize(c.Code)]; !ok {
				report.DanglingFuzzy++
			}
		}
	}

	for id, tree := range snap.Trees {
		d, _ := l.registry.Get(id)
		lookup := snap.Lookups[id]
		for _, root := range tree.Roots() {
			report.OrphanTreeNodes += countOrphans(root, d, lookup)
		}
	}
	return report
}

func countOrphans(n *ttypes.Node, d *taxonomy.Descriptor, lookup ttypes.Lookup) int {
	if n == nil {
		return 0
	}
	count := 0
	norm := taxonomy.Normalize(n.Code)
	if taxonomy.IsNumeric(norm) && !nodeHasEntry(n, norm, d, lookup) {
		count++
	}
	for _, child := range n.Children {
		count += countOrphans(child, d, lookup)
	}
	return count
}

func nodeHasEntry(n *ttypes.Node, norm string, d *taxonomy.Descriptor, lookup ttypes.Lookup) bool {
	if _, ok := lookup[n.Code]; ok {
		return true
	}
	if _, ok := lookup[norm]; ok {
		return true
	}
	// Grafted entries of a synthetic taxonomy key under the reserved prefix.
	if d != nil && d.SecondaryKeyPrefix != "" {
		if _, ok := lookup[d.SecondaryKeyPrefix+norm]; ok {
			return true
		}
	}
	return false
}
