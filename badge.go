package sitrans

import "regexp"

// badgePattern matches numeric badges: enrollment counters, ratings and
// similar tokens like "50M", "4,180", "1.5K" or "1200+". One or more
// digits, an optional single comma/period group, and an optional unit
// suffix. Bare integers match too; a number alone is never prose.
var badgePattern = regexp.MustCompile(`^\d+(?:[,.]\d+)?[MKBP+]?$`)

// IsNumericBadge reports whether the (already trimmed) text is a numeric
// badge and must be left untouched by translation.
func IsNumericBadge(text string) bool {
	return badgePattern.MatchString(text)
}
