package ledger

import "strings"

// NormalizeCategory derives the grouping key for a category label:
// lowercase, trimmed, internal whitespace runs collapsed to one space.
// "Food" and " food " share a key; "Fast Food" and "fastfood" do not.
func NormalizeCategory(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}

// GroupLabels resolves display labels for category groups. The label of
// the first record ever observed for a key becomes the group's display
// label, and first-seen insertion order is preserved.
type GroupLabels struct {
	order []string
	byKey map[string]string
}

// NewGroupLabels returns an empty label resolver.
func NewGroupLabels() *GroupLabels {
	return &GroupLabels{byKey: make(map[string]string)}
}

// Observe records a label and returns its grouping key and the display
// label the group has settled on.
func (g *GroupLabels) Observe(label string) (key, display string) {
	key = NormalizeCategory(label)
	if existing, ok := g.byKey[key]; ok {
		return key, existing
	}
	display = strings.TrimSpace(label)
	g.byKey[key] = display
	g.order = append(g.order, key)
	return key, display
}

// Label returns the display label for a key, or the key itself when the
// key has never been observed.
func (g *GroupLabels) Label(key string) string {
	if display, ok := g.byKey[key]; ok {
		return display
	}
	return key
}

// Keys returns the grouping keys in first-seen order.
func (g *GroupLabels) Keys() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}
