package assembly

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anuranjan87/7wink/internal/model"
)

func TestAssemble_BothLayers(t *testing.T) {
	version := &model.ContentVersion{
		Shell:    "<html><body>" + DataMarker + "\n" + BehaviorMarker + "</body></html>",
		Behavior: "console.log('hi');",
		Payload:  `{"sections":[]}`,
	}

	document := Assemble(version)

	assert.Contains(t, document, `<script type="application/json" id="site-data">{"sections":[]}</script>`)
	assert.Contains(t, document, "<script>console.log('hi');</script>")
	assert.NotContains(t, document, DataMarker)
	assert.NotContains(t, document, BehaviorMarker)
}

func TestAssemble_EmptyLayersLeaveMarkers(t *testing.T) {
	version := &model.ContentVersion{
		Shell: "<html>" + DataMarker + BehaviorMarker + "</html>",
	}

	document := Assemble(version)

	// Empty layers are skipped entirely, markers stay in place
	assert.Equal(t, version.Shell, document)
}

func TestAssemble_MissingMarkerDropsLayer(t *testing.T) {
	version := &model.ContentVersion{
		Shell:    "<html><body>no markers here</body></html>",
		Behavior: "alert(1);",
		Payload:  `{"x":1}`,
	}

	document := Assemble(version)

	// Layers without an inclusion point are dropped, not appended
	assert.Equal(t, version.Shell, document)
	assert.NotContains(t, document, "alert(1);")
	assert.NotContains(t, document, `{"x":1}`)
}

func TestAssemble_FirstOccurrenceOnly(t *testing.T) {
	version := &model.ContentVersion{
		Shell:   DataMarker + " middle " + DataMarker,
		Payload: "data",
	}

	document := Assemble(version)

	assert.Equal(t,
		`<script type="application/json" id="site-data">data</script> middle `+DataMarker,
		document)
}

func TestAssemble_Deterministic(t *testing.T) {
	version := &model.ContentVersion{
		Shell:    "<html>" + DataMarker + BehaviorMarker + "</html>",
		Behavior: "let x = 7;",
		Payload:  `{"n":7}`,
	}

	first := Assemble(version)
	second := Assemble(version)

	assert.Equal(t, first, second)
}
