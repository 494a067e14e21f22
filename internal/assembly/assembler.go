// Package assembly merges the three layers of a content version into one
// renderable HTML document. It is pure: no clock, no I/O, no state.
package assembly

import (
	"strings"

	"github.com/anuranjan87/7wink/internal/model"
)

const (
	// DataMarker is the inclusion point for the payload layer inside
	// the shell.
	DataMarker = "<!-- 7wink:data -->"
	// BehaviorMarker is the inclusion point for the behavior layer
	// inside the shell.
	BehaviorMarker = "<!-- 7wink:behavior -->"
)

// Assemble builds the renderable document for a version. The payload
// layer replaces the first data marker, wrapped as an embedded JSON
// block; the behavior layer replaces the first behavior marker, wrapped
// as a script block. A missing marker silently drops that layer: the
// layer is not appended anywhere else. Same version in, byte-identical
// document out.
func Assemble(version *model.ContentVersion) string {
	document := version.Shell

	if version.Payload != "" {
		block := `<script type="application/json" id="site-data">` + version.Payload + `</script>`
		document = strings.Replace(document, DataMarker, block, 1)
	}

	if version.Behavior != "" {
		block := `<script>` + version.Behavior + `</script>`
		document = strings.Replace(document, BehaviorMarker, block, 1)
	}

	return document
}
