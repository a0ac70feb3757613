// Package tone holds the catalog of skin tone identifiers returned by the
// classifier and their human-readable display names.
package tone

import "slices"

// labels maps machine-readable identifiers to display names.
var labels = map[string]string{
	"bronze_brown": "Bronze Brown",
	"caramel":      "Caramel",
	"chestnut":     "Chestnut",
	"deep_cocoa":   "Deep Cocoa",
	"ebony":        "Ebony",
	"golden_tan":   "Golden Tan",
	"honey_tan":    "Honey Tan",
	"ivory":        "Ivory",
	"light_beige":  "Light Beige",
	"mocha_brown":  "Mocha Brown",
	"porcelain":    "Porcelain",
	"warm_beige":   "Warm Beige",
}

// Label pairs an identifier with its display name.
type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DisplayName returns the display name for identifier. Unknown identifiers,
// including strings that are already display names, are returned unchanged.
func DisplayName(identifier string) string {
	if name, ok := labels[identifier]; ok {
		return name
	}
	return identifier
}

// Lookup reports the display name for identifier and whether it is known.
func Lookup(identifier string) (string, bool) {
	name, ok := labels[identifier]
	return name, ok
}

// Identifiers returns all known identifiers in sorted order.
func Identifiers() []string {
	ids := make([]string, 0, len(labels))
	for id := range labels {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// All returns every catalog entry sorted by identifier.
func All() []Label {
	ids := Identifiers()
	out := make([]Label, len(ids))
	for i, id := range ids {
		out[i] = Label{ID: id, Name: labels[id]}
	}
	return out
}
