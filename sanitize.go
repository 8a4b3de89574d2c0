package sitrans

import "regexp"

// commentPattern matches every minimal comment-delimited range,
// including ranges spanning multiple lines.
var commentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)

// StripComments removes HTML comments from raw markup before parsing.
// Comments are invisible noise to a translation backend and some
// backends mangle them when fed a whole document.
func StripComments(raw string) string {
	if raw == "" {
		return ""
	}
	return commentPattern.ReplaceAllString(raw, "")
}
