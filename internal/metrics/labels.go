package metrics

import "strconv"

// levelLabel caps label cardinality for very large level sets.
func levelLabel(level int) string {
	if level >= 99 {
		return "100+"
	}
	return strconv.Itoa(level + 1)
}
