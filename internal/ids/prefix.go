package ids

import "strings"

// NormalizeUniqueIDs lowercases IDs and drops empties and duplicates,
// preserving order.
func NormalizeUniqueIDs(ids []string) []string {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool)
	for _, id := range ids {
		idLower := strings.ToLower(id)
		if idLower == "" || seen[idLower] {
			continue
		}
		seen[idLower] = true
		unique = append(unique, idLower)
	}
	return unique
}

// MatchPrefix finds the ID with the given prefix, case-insensitively.
// It reports whether a match was found and whether the prefix was ambiguous.
func MatchPrefix(normalizedIDs []string, prefix string) (match string, found, ambiguous bool) {
	prefix = strings.ToLower(prefix)

	// An exact match wins even when the prefix is shared.
	for _, id := range normalizedIDs {
		if id == prefix {
			return id, true, false
		}
	}

	for _, id := range normalizedIDs {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if found {
			return "", true, true
		}
		match = id
		found = true
	}
	return match, found, false
}

// UniquePrefixLengths returns the shortest unique prefix length for each ID.
// IDs must already be normalized via NormalizeUniqueIDs.
func UniquePrefixLengths(normalizedIDs []string) map[string]int {
	lengths := make(map[string]int, len(normalizedIDs))
	for _, id := range normalizedIDs {
		lengths[id] = uniquePrefixLength(id, normalizedIDs)
	}
	return lengths
}

func uniquePrefixLength(id string, ids []string) int {
	for length := 1; length <= len(id); length++ {
		prefix := id[:length]
		unique := true
		for _, other := range ids {
			if other == id {
				continue
			}
			if strings.HasPrefix(other, prefix) {
				unique = false
				break
			}
		}
		if unique {
			return length
		}
	}

	return len(id)
}
