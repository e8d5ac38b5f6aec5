package search

import "strings"

const collectionPrefix = "ds_"

// CollectionName maps a logical data-source identifier to its physical
// collection name. The mapping is pure and deterministic: the same
// identifier always yields the same name, so indexing and querying
// agree without shared state.
//
// The identifier is lowercased, runs of characters outside [a-z0-9]
// collapse to a single underscore, and the result is prefixed so the
// name always starts with a letter regardless of input.
func CollectionName(sourceID string) string {
	var b strings.Builder
	b.Grow(len(collectionPrefix) + len(sourceID))
	b.WriteString(collectionPrefix)

	pendingSep := false
	wrote := false
	for _, r := range strings.ToLower(sourceID) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && wrote {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			pendingSep = false
			wrote = true
		default:
			pendingSep = true
		}
	}
	if !wrote {
		b.WriteString("default")
	}
	return b.String()
}
