package formats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "name": "Sample",
  "platforms": [
    { "id": 0, "position": { "x": 0, "y": 3980 }, "width": 600, "height": 20 },
    { "id": 66, "position": { "x": 280, "y": 1360 }, "width": 150, "height": 20,
      "movement": { "path": [{ "x": 280, "y": 1360 }, { "x": -70, "y": 1090 }], "speed": 5000 } }
  ],
  "checkpoints": [
    { "id": 2, "position": { "x": 10, "y": 3930 }, "width": 40, "height": 40 }
  ],
  "traps": [
    { "id": 9, "type": "spikes", "position": { "x": 270, "y": 3940 }, "width": 10, "height": 20, "platformId": 0 },
    { "id": 10, "type": "spikes", "position": { "x": 20, "y": 3960 }, "width": 10, "height": 20, "platformId": null }
  ],
  "signs": []
}`

func TestParseJSONOriginalShape(t *testing.T) {
	doc, err := ParseJSON([]byte(sampleJSON))
	require.NoError(t, err)

	assert.Equal(t, "Sample", doc.Name)
	require.Len(t, doc.Platforms, 2)
	assert.Nil(t, doc.Platforms[0].Movement)
	require.NotNil(t, doc.Platforms[1].Movement)
	assert.Equal(t, 5000.0, doc.Platforms[1].Movement.Speed)
	assert.Equal(t, -70.0, doc.Platforms[1].Movement.Path[1].X)

	require.Len(t, doc.Traps, 2)
	require.NotNil(t, doc.Traps[0].PlatformID)
	assert.Equal(t, 0, *doc.Traps[0].PlatformID)
	assert.Nil(t, doc.Traps[1].PlatformID)
	assert.Equal(t, 3940.0, doc.Traps[0].Position.Y)
}

func TestParseYAMLInlineObjects(t *testing.T) {
	src := `
name: Inline
platforms:
  - {id: 1, position: {x: 10, y: 20}, width: 100, height: 20}
checkpoints:
  - {id: 2, position: {x: 15, y: -20}, width: 40, height: 40}
traps:
  - {id: 3, type: spikes, position: {x: 30, y: 0}, width: 10, height: 20, platformId: 1}
`
	doc, err := ParseYAML([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Platforms[0].ID)
	assert.Equal(t, 100.0, doc.Platforms[0].Width)
	assert.Equal(t, -20.0, doc.Checkpoints[0].Position.Y)
	require.NotNil(t, doc.Traps[0].PlatformID)
	assert.Equal(t, 1, *doc.Traps[0].PlatformID)
}

func TestEncodeJSONKeepsNullPlatformID(t *testing.T) {
	doc, err := ParseJSON([]byte(sampleJSON))
	require.NoError(t, err)

	out, err := EncodeJSON(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"platformId": null`)

	again, err := ParseJSON(out)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestEncodeYAMLReparses(t *testing.T) {
	doc, err := ParseJSON([]byte(sampleJSON))
	require.NoError(t, err)

	out, err := Encode(doc, ".yml")
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(out), "objectdoc"), "embedded fields must be inlined")

	again, err := Parse(out, ".YAML")
	require.NoError(t, err)
	assert.Equal(t, doc.Platforms, again.Platforms)
	assert.Equal(t, doc.Traps, again.Traps)
}

func TestParseUnsupportedExtension(t *testing.T) {
	_, err := Parse([]byte("{}"), ".toml")
	assert.Error(t, err)
	assert.False(t, IsSupported(".toml"))
	assert.True(t, IsSupported(".JSON"))
}
