package metrics

import "time"

// Summary describes what a data file contains, for inspection tools.
type Summary struct {
	Records int
	First   time.Time
	Last    time.Time
	// Keys lists metric keys per category, sorted.
	Keys map[string][]string
	// Booleans counts boolean samples per "category.key".
	Booleans map[string]int
}

// Summarize walks the points once and collects categories, keys and time span.
func Summarize(points []DataPoint) Summary {
	s := Summary{Records: len(points), Keys: map[string][]string{}, Booleans: map[string]int{}}
	keys := map[string]map[string]struct{}{}
	for _, p := range points {
		if !p.Timestamp.IsZero() {
			if s.First.IsZero() || p.Timestamp.Before(s.First) {
				s.First = p.Timestamp
			}
			if p.Timestamp.After(s.Last) {
				s.Last = p.Timestamp
			}
		}
		for cat, values := range p.Categories {
			set, ok := keys[cat]
			if !ok {
				set = map[string]struct{}{}
				keys[cat] = set
			}
			for k, v := range values {
				set[k] = struct{}{}
				if _, isBool := v.(bool); isBool {
					s.Booleans[cat+"."+k]++
				}
			}
		}
	}
	for cat, set := range keys {
		s.Keys[cat] = sortedKeys(set)
	}
	return s
}
