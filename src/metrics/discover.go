package metrics

import "strings"

// Palette is cycled through when descriptors are derived from data.
var Palette = []string{
	"#22c55e", "#3b82f6", "#f97316", "#ef4444",
	"#a855f7", "#eab308", "#06b6d4", "#ec4899",
}

// Discover derives one descriptor per category/key found in points, in
// category first-seen order and key order within a category.
func Discover(points []DataPoint) []Descriptor {
	s := Summarize(points)
	var out []Descriptor
	for _, cat := range Categories(points) {
		for _, key := range s.Keys[cat] {
			out = append(out, Descriptor{
				Key:      key,
				Category: cat,
				Label:    key,
				Color:    Palette[len(out)%len(Palette)],
			})
		}
	}
	return out
}

// Find looks a descriptor up by "category.key", then by key, then by label
// (case-insensitive).
func Find(ds []Descriptor, name string) (Descriptor, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Descriptor{}, false
	}
	for _, d := range ds {
		if d.Category+"."+d.Key == name {
			return d, true
		}
	}
	for _, d := range ds {
		if d.Key == name {
			return d, true
		}
	}
	for _, d := range ds {
		if strings.EqualFold(d.Label, name) {
			return d, true
		}
	}
	return Descriptor{}, false
}
