// Package semparse converts an English sentence into a typed semantic
// graph: discourse referents and the real-world entities, acts, roles,
// and structural assertions they denote, linked by a small set of
// ontological relations and anchored to the literal input by a
// provenance layer (IBE/ParserAgent/ParsingAct). See the package's
// Builder and Build for the library's entry point.
package semparse

import (
	"io"

	"github.com/textgraph/semparse/internal/confidence"
	"github.com/textgraph/semparse/internal/depparse"
	"github.com/textgraph/semparse/internal/domainconfig"
	"github.com/textgraph/semparse/internal/gazetteer"
	"github.com/textgraph/semparse/internal/postag"
	"github.com/textgraph/semparse/internal/semlog"
	"go.uber.org/zap"
)

// Version is the ParserAgent's pinned version (spec §3 "versioned
// singleton").
const Version = "semparse-0.1.0"

// Builder owns every piece of loaded, read-only state a build draws on:
// the POS/dependency models, the calibration table, the merged
// gazetteer, and the domain config registry (spec §9's "construct a
// builder struct that owns all registries ... and pass it explicitly",
// replacing the source's global singletons). Mirrors the teacher's
// PGraph struct, which owns a graph plus a parser; here the "graph" is
// rebuilt fresh per call (Build clones nothing mutable in, it only
// reads the Builder's loaded state) while the registries persist across
// calls so repeated builds don't reload models.
type Builder struct {
	posModel     *postag.Model
	depModel     *depparse.Model
	calibration  *confidence.Table
	gazetteer    *gazetteer.Gazetteer
	domainConfig *domainconfig.Registry

	logger  *semlog.Logger
	version string
}

// NewBuilder returns a Builder with no models loaded, an empty
// gazetteer, no domain config overlay, and a no-op logger — every model
// must be loaded explicitly before Build will run a full pipeline (spec
// §7 ModelMissing).
func NewBuilder() *Builder {
	return &Builder{
		gazetteer: gazetteer.New(),
		logger:    semlog.Nop(),
		version:   Version,
	}
}

// SetLogger installs a non-default logger; callers that don't care about
// diagnostics never need to call this (spec §9 "callers that don't care
// about logs pay nothing").
func (b *Builder) SetLogger(l *semlog.Logger) {
	if l != nil {
		b.logger = l
	}
}

// SetVerbose raises or lowers the installed logger's level (spec §6
// "verbose" option).
func (b *Builder) SetVerbose(v bool) { b.logger.SetVerbose(v) }

// LoadPOSModel loads the averaged-perceptron POS weight table (spec §6
// "POS weights").
func (b *Builder) LoadPOSModel(r io.Reader) error {
	m, err := postag.LoadModel(r)
	if err != nil {
		return err
	}
	b.posModel = m
	return nil
}

// LoadDepModel loads the dependency-parser weight table (spec §6 "Dep
// weights").
func (b *Builder) LoadDepModel(r io.Reader) error {
	m, err := depparse.LoadModel(r)
	if err != nil {
		return err
	}
	b.depModel = m
	return nil
}

// LoadCalibration loads the confidence-bucketing calibration table (spec
// §6 "Calibration"). An un-loaded calibration table is not an error —
// confidence.Table's nil behavior (every margin calibrates to 0.5) is
// itself spec-defined (spec §4.8).
func (b *Builder) LoadCalibration(r io.Reader) error {
	t, err := confidence.LoadTable(r)
	if err != nil {
		return err
	}
	b.calibration = t
	return nil
}

// LoadGazetteer registers a gazetteer file's entries into the Builder's
// merged gazetteer (spec §6 "Gazetteers", spec §4.9 first-write-wins:
// callers load gazetteers in priority order).
func (b *Builder) LoadGazetteer(r io.Reader) error {
	entries, err := gazetteer.LoadEntries(r)
	if err != nil {
		return err
	}
	b.gazetteer.Register(entries)
	return nil
}

// LoadDomainConfig merges a single domain config source into the
// Builder's registry (spec §6 "Domain config", spec §4.18). Conflicts
// are logged as warnings and returned, never fatal (spec §7
// ConfigConflict).
func (b *Builder) LoadDomainConfig(format domainconfig.Format, sourceName string, r io.Reader) ([]domainconfig.ConfigConflict, error) {
	var overlay domainconfig.Overlay
	var err error
	switch format {
	case domainconfig.FormatJSON:
		overlay, err = domainconfig.LoadJSON(r)
	case domainconfig.FormatYAML:
		overlay, err = domainconfig.LoadYAML(r)
	}
	if err != nil {
		return nil, err
	}
	if b.domainConfig == nil {
		b.domainConfig = domainconfig.NewRegistry()
	}
	conflicts := b.domainConfig.Merge(overlay, sourceName)
	for _, c := range conflicts {
		b.logger.Stage("domainconfig").Warn("config conflict",
			zap.String("domain", c.Domain), zap.String("key", c.Key),
			zap.String("source", c.Source),
			zap.String("losingValue", c.LosingValue), zap.String("winningValue", c.WinningValue))
	}
	return conflicts, nil
}

// ClearConfigs returns the Builder to ontology-base mode (spec §4.18
// `clearConfigs()`).
func (b *Builder) ClearConfigs() { b.domainConfig = domainconfig.NewRegistry() }
