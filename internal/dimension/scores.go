package dimension

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Scores maps a dimension name to a score. Missing dimensions count as zero.
type Scores map[string]float64

// Get returns the score for name, zero when absent.
func (s Scores) Get(name string) float64 {
	return s[name]
}

// Sum adds the scores of every catalog dimension. Keys outside the catalog
// are ignored.
func (s Scores) Sum() float64 {
	var total float64
	for _, d := range catalog {
		total += s[d.Name]
	}
	return total
}

// Keys returns the keys in catalog order followed by any unknown keys in
// lexical order.
func (s Scores) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, d := range catalog {
		if _, ok := s[d.Name]; ok {
			keys = append(keys, d.Name)
		}
	}
	var extra []string
	for k := range s {
		if Index(k) < 0 {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// MarshalJSON writes the mapping in catalog order so saved files stay stable
// and readable.
func (s Scores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(s[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
