package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type KeywordCount struct {
	Keyword string
	Count   int
}

// KeywordCounts is ordered by descending count. It serializes as a JSON
// object whose keys keep that order.
type KeywordCounts []KeywordCount

func (k KeywordCounts) Keywords() []string {
	out := make([]string, 0, len(k))
	for _, kc := range k {
		out = append(out, kc.Keyword)
	}
	return out
}

func (k KeywordCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kc := range k {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(kc.Keyword)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(kc.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
