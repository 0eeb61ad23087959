package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const timestampField = "timestamp"

// UnmarshalJSON decodes {"timestamp": ..., "<category>": {"<key>": value}}.
// Members that are not JSON objects are not categories and are dropped.
func (p *DataPoint) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode data point: %w", err)
	}
	out := DataPoint{Categories: make(map[string]map[string]any, len(raw))}
	for name, msg := range raw {
		if name == timestampField {
			out.Timestamp = parseTimestamp(msg)
			continue
		}
		trimmed := bytes.TrimSpace(msg)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			continue
		}
		var cat map[string]any
		if err := json.Unmarshal(trimmed, &cat); err != nil {
			continue
		}
		out.Categories[name] = cat
	}
	*p = out
	return nil
}

// MarshalJSON writes the same shape UnmarshalJSON reads, with an RFC3339 timestamp.
func (p DataPoint) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Categories)+1)
	for name, cat := range p.Categories {
		m[name] = cat
	}
	if !p.Timestamp.IsZero() {
		m[timestampField] = p.Timestamp.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(m)
}

// parseTimestamp accepts unix milliseconds (number or numeric string) or RFC3339.
func parseTimestamp(msg json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		s = strings.TrimSpace(s)
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t
		}
		if ms, err := strconv.ParseFloat(s, 64); err == nil {
			return time.UnixMilli(int64(ms))
		}
		return time.Time{}
	}
	var ms float64
	if err := json.Unmarshal(msg, &ms); err == nil {
		return time.UnixMilli(int64(ms))
	}
	return time.Time{}
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
