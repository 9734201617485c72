package product

import "strings"

// Filter returns the products whose category matches the selector (or the
// selector is CategoryAll or empty) and whose name or description contains
// the query as a case-insensitive substring. An empty query matches all.
// The input slice is never modified; order is preserved.
func Filter(products []Product, category Category, query string) []Product {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !matchCategory(p.Category, category) {
			continue
		}
		if query != "" && !matchQuery(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchCategory(have, want Category) bool {
	return want == "" || want == CategoryAll || have == want
}

func matchQuery(p Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query)
}
