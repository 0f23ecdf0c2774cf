package confidence

import (
	"encoding/json"
	"io"
)

// LoadError is returned for malformed calibration files.
type LoadError struct {
	Kind    string
	Message string
}

func (e LoadError) Error() string { return "confidence load error (" + e.Kind + "): " + e.Message }

// rawFile is the on-disk calibration shape (spec §6): a list of bins,
// each carrying a margin threshold, its calibrated probability, and an
// optional sample count the loader ignores (count is informational —
// the calibration curve is already baked into probability).
type rawFile struct {
	Bins []struct {
		Margin      float64 `json:"margin"`
		Probability float64 `json:"probability"`
		Count       int     `json:"count,omitempty"`
	} `json:"bins"`
}

// LoadTable parses a calibration table from r.
func LoadTable(r io.Reader) (*Table, error) {
	var raw rawFile
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, LoadError{Kind: "InvalidCalibration", Message: err.Error()}
	}
	bins := make([]Bin, 0, len(raw.Bins))
	for _, b := range raw.Bins {
		bins = append(bins, Bin{Margin: b.Margin, Probability: b.Probability})
	}
	return NewTable(bins), nil
}
