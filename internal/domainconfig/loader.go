package domainconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/textgraph/semparse/internal/semlog"
)

// Format names the serialization of a domain config source.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// Source is one domain config file to load: a name (used in conflict
// logging), a format, and a reader. Callers own the reader's lifecycle;
// LoadAll only reads it, never closes it.
type Source struct {
	Name   string
	Format Format
	Reader io.Reader
}

// LoadJSON decodes a single JSON domain config. It reads the
// typeSpecializations, verbSenseOverrides and processRootSpecializations
// keys; other top-level keys (such as domain, version, verbOverrides or
// processRootWords) are ignored.
func LoadJSON(r io.Reader) (Overlay, error) {
	var o Overlay
	if err := json.NewDecoder(r).Decode(&o); err != nil {
		return Overlay{}, ConfigError{Kind: KindParseFailure, Message: "JSON decode: " + err.Error()}
	}
	return o, nil
}

// LoadYAML decodes a single YAML domain config, the format every pack
// repo with a config loader uses for human-edited files.
func LoadYAML(r io.Reader) (Overlay, error) {
	var o Overlay
	if err := yaml.NewDecoder(r).Decode(&o); err != nil {
		return Overlay{}, ConfigError{Kind: KindParseFailure, Message: "YAML decode: " + err.Error()}
	}
	return o, nil
}

func load(s Source) (Overlay, error) {
	switch s.Format {
	case FormatJSON:
		return LoadJSON(s.Reader)
	case FormatYAML:
		return LoadYAML(s.Reader)
	default:
		return Overlay{}, ConfigError{Kind: KindParseFailure, Message: fmt.Sprintf("unknown format %d for source %q", s.Format, s.Name)}
	}
}

type loadResult struct {
	index   int
	overlay Overlay
	err     error
}

// LoadAll reads and parses every source concurrently — each parse is a
// read-only operation with no shared mutable state, mirroring the
// teacher's executeConcurrent fan-out (internal/query/composite_queries.go):
// one goroutine per source, first error cancels the rest. The merge
// step that follows is sequential and last-loader-wins in source order,
// matching spec §4.18; any conflict it finds is logged at Warn level
// through logger and also returned for callers that want to inspect it
// directly.
func LoadAll(ctx context.Context, logger *semlog.Logger, sources []Source) (*Registry, []ConfigConflict, error) {
	if len(sources) == 0 {
		return nil, nil, ConfigError{Kind: KindEmptySources, Message: "LoadAll requires at least one source"}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resCh := make(chan loadResult, len(sources))
	var wg sync.WaitGroup
	wg.Add(len(sources))

	for i, s := range sources {
		go func(i int, s Source) {
			defer wg.Done()
			select {
			case <-ctx.Done():
				resCh <- loadResult{index: i, err: ctx.Err()}
				return
			default:
			}
			o, err := load(s)
			resCh <- loadResult{index: i, overlay: o, err: err}
		}(i, s)
	}

	go func() {
		wg.Wait()
		close(resCh)
	}()

	overlays := make([]Overlay, len(sources))
	for r := range resCh {
		if r.err != nil {
			cancel()
			return nil, nil, ConfigError{Kind: KindSourceRead, Message: fmt.Sprintf("source %q: %v", sources[r.index].Name, r.err)}
		}
		overlays[r.index] = r.overlay
	}

	registry := NewRegistry()
	var allConflicts []ConfigConflict
	for i, o := range overlays {
		conflicts := registry.Merge(o, sources[i].Name)
		allConflicts = append(allConflicts, conflicts...)
	}
	logConflicts(logger, allConflicts)

	return registry, allConflicts, nil
}

func logConflicts(logger *semlog.Logger, conflicts []ConfigConflict) {
	if logger == nil {
		return
	}
	stage := logger.Stage("domainconfig")
	for _, c := range conflicts {
		stage.Warn("domain config redefines an already-loaded term",
			zap.String("domain", c.Domain),
			zap.String("key", c.Key),
			zap.String("source", c.Source),
			zap.String("losingValue", c.LosingValue),
			zap.String("winningValue", c.WinningValue),
		)
	}
}
