// Package processor selects translatable fragments from parsed HTML,
// applies translations back by node identity, and post-processes the
// result into its committed form.
package processor

import "github.com/ZaguanLabs/sitrans"

// TextNode is an alias to the main package type.
type TextNode = sitrans.TextNode

// Detector is an alias to the main package interface.
type Detector = sitrans.Detector
