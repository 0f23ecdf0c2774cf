package postag

import (
	"strings"
	"testing"

	"github.com/textgraph/semparse/internal/token"
)

func buildModel(weights map[string]map[string]float64) *Model {
	m, _ := LoadModel(strings.NewReader(toJSON(weights)))
	return m
}

func toJSON(weights map[string]map[string]float64) string {
	b := strings.Builder{}
	b.WriteString("{")
	first := true
	for feat, row := range weights {
		if !first {
			b.WriteString(",")
		}
		first = false
		b.WriteString(`"` + feat + `":{`)
		firstTag := true
		for tag, w := range row {
			if !firstTag {
				b.WriteString(",")
			}
			firstTag = false
			b.WriteString(`"` + tag + `":` + floatStr(w))
		}
		b.WriteString("}")
	}
	b.WriteString("}")
	return b.String()
}

func floatStr(f float64) string {
	if f == float64(int(f)) {
		return intStr(int(f))
	}
	return "0.5"
}

func intStr(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	s := string(digits)
	if neg {
		s = "-" + s
	}
	return s
}

func TestTagPicksHighestScoringTag(t *testing.T) {
	m := buildModel(map[string]map[string]float64{
		"lower=dog": {"NN": 2, "VB": 1},
		"bias":      {"NN": 0, "VB": 0},
	})
	tags := Tag(m, []token.Token{{Text: "dog"}})
	if tags[0] != "NN" {
		t.Errorf("got %q, want NN", tags[0])
	}
}

func TestTagIsDeterministicAcrossRuns(t *testing.T) {
	m := buildModel(map[string]map[string]float64{
		"lower=run": {"NN": 1, "VB": 1},
	})
	toks := []token.Token{{Text: "run"}}
	first := Tag(m, toks)
	second := Tag(m, toks)
	if first[0] != second[0] {
		t.Errorf("tagging not deterministic: %v vs %v", first, second)
	}
}

func TestTagUsesPreviousTagFeature(t *testing.T) {
	m := buildModel(map[string]map[string]float64{
		"lower=the":             {"DT": 5},
		"prevTag=DT":            {"NN": 3, "VB": -3},
		"prevTag=<s>":           {"DT": 1},
	})
	tags := Tag(m, []token.Token{{Text: "the"}, {Text: "dog"}})
	if tags[0] != "DT" {
		t.Fatalf("tags[0] = %q, want DT", tags[0])
	}
	if tags[1] != "NN" {
		t.Errorf("tags[1] = %q, want NN (via prevTag=DT)", tags[1])
	}
}

func TestShapeClassification(t *testing.T) {
	cases := map[string]string{
		"Bob":   "Xx",
		"USA":   "X",
		"dog":   "x",
		"3pm":   "dx",
		"well-known": "x-x",
	}
	for in, want := range cases {
		if got := shape(in); got != want {
			t.Errorf("shape(%q) = %q, want %q", in, got, want)
		}
	}
}
