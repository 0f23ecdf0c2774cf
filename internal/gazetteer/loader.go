package gazetteer

import (
	"encoding/json"
	"io"
	"sort"
)

// LoadError is returned for malformed gazetteer files.
type LoadError struct {
	Kind    string
	Message string
}

func (e LoadError) Error() string { return "gazetteer load error (" + e.Kind + "): " + e.Message }

// rawFile is the on-disk gazetteer shape (spec §6 "Gazetteers"):
// a metadata block plus a map of canonical name -> {type, aliases}.
type rawFile struct {
	Meta struct {
		GazetteerID string `json:"gazetteerId"`
		Version     string `json:"version"`
	} `json:"_meta"`
	Entities map[string]struct {
		Type    string   `json:"type"`
		Aliases []string `json:"aliases"`
	} `json:"entities"`
}

// LoadEntries parses a gazetteer JSON file from r into Entry records,
// ready for Register. The file's _meta block is informational only —
// callers that care about gazetteerId/version should decode it
// separately.
func LoadEntries(r io.Reader) ([]Entry, error) {
	var raw rawFile
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, LoadError{Kind: "InvalidGazetteer", Message: err.Error()}
	}
	entries := make([]Entry, 0, len(raw.Entities))
	for name, rec := range raw.Entities {
		entries = append(entries, Entry{Canonical: name, Type: rec.Type, Aliases: rec.Aliases})
	}
	// Map iteration order is randomized; sort so Register sees a
	// deterministic order (spec P1 — build(x) = build(x) byte-for-byte).
	sort.Slice(entries, func(i, j int) bool { return entries[i].Canonical < entries[j].Canonical })
	return entries, nil
}
