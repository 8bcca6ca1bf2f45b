package ranking

import "dealboard/internal/models"

// Categories derives the distinct category names present in deals, prefixed
// with the AllCategories sentinel, in first-seen order. Drives category
// filter UIs; an empty collection yields just the sentinel.
func Categories(deals []models.Deal) []string {
	out := []string{AllCategories}
	seen := map[string]struct{}{}
	for _, d := range deals {
		name := d.Category.Name
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
