package level

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/tui-ascent/internal/core"
)

func sampleLevel() Level {
	return Level{
		Name: "Sample",
		Platforms: []Platform{
			{ID: 0, Box: core.NewBox(0, 980, 600, 20)},
			{ID: 3, Box: core.NewBox(100, 800, 150, 20), Movement: &Movement{
				Path:  [2]core.Vec2{core.V(100, 800), core.V(300, 800)},
				Speed: 50,
			}},
		},
		Checkpoints: []Checkpoint{
			{ID: 10, Box: core.NewBox(20, 900, 40, 40)},
			{ID: 11, Box: core.NewBox(200, 100, 40, 40)},
			{ID: 12, Box: core.NewBox(400, 100, 40, 40)},
		},
		Traps: []Trap{
			{ID: 20, Box: core.NewBox(150, 780, 10, 20), Kind: TrapSpikes, PlatformID: 3},
		},
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := sampleLevel()
	c := orig.Clone()

	c.Platforms[1].Movement.Path[0] = core.V(-1, -1)
	c.Platforms[1].Position.X = 999
	c.Traps[0].Position.Y = 0
	c.Checkpoints = c.Checkpoints[:1]

	assert.Equal(t, core.V(100, 800), orig.Platforms[1].Movement.Path[0])
	assert.Equal(t, 100.0, orig.Platforms[1].Position.X)
	assert.Equal(t, 780.0, orig.Traps[0].Position.Y)
	assert.Len(t, orig.Checkpoints, 3)
}

func TestVictoryAndSpawnCheckpoints(t *testing.T) {
	l := sampleLevel()

	victory, ok := l.VictoryCheckpoint()
	require.True(t, ok)
	assert.Equal(t, ID(11), victory.ID, "ties on y go to the first in level order")

	spawn, ok := l.SpawnCheckpoint()
	require.True(t, ok)
	assert.Equal(t, ID(10), spawn.ID)

	l.Checkpoints = nil
	_, ok = l.VictoryCheckpoint()
	assert.False(t, ok)
	_, ok = l.SpawnCheckpoint()
	assert.False(t, ok)
}

func TestNextID(t *testing.T) {
	assert.Equal(t, ID(21), sampleLevel().NextID())
	assert.Equal(t, ID(0), Level{}.NextID())
}

func TestPlatformIndex(t *testing.T) {
	l := sampleLevel()
	i, ok := l.PlatformIndex(3)
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = l.PlatformIndex(NoID)
	assert.False(t, ok)
	_, ok = l.PlatformIndex(42)
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Level)
		wantErr bool
	}{
		{"valid", func(*Level) {}, false},
		{"dangling trap platform is fine", func(l *Level) { l.Traps[0].PlatformID = 77 }, false},
		{"zero length path is fine", func(l *Level) {
			l.Platforms[1].Movement.Path[1] = l.Platforms[1].Movement.Path[0]
		}, false},
		{"empty name", func(l *Level) { l.Name = " " }, true},
		{"duplicate platform id", func(l *Level) { l.Platforms[1].ID = 0 }, true},
		{"zero width", func(l *Level) { l.Checkpoints[0].Width = 0 }, true},
		{"negative speed", func(l *Level) { l.Platforms[1].Movement.Speed = -1 }, true},
		{"negative id", func(l *Level) { l.Traps[0].ID = -4 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := sampleLevel()
			tt.mutate(&l)
			err := l.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidLevel))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSlugAndMatches(t *testing.T) {
	assert.Equal(t, "kirbys-ascent", Slug("Kirby's Ascent"))
	assert.Equal(t, "roccos-impossible-level", Slug("  Rocco's Impossible Level!"))

	l := Level{Name: "Kirby's Ascent"}
	assert.True(t, l.Matches("kirby's ascent"))
	assert.True(t, l.Matches("kirbys-ascent"))
	assert.False(t, l.Matches("kirby"))
}

func TestDocumentConversion(t *testing.T) {
	l := sampleLevel()
	l.Traps = append(l.Traps, Trap{ID: 21, Box: core.NewBox(0, 960, 10, 20), Kind: TrapSpikes, PlatformID: NoID})
	l.Signs = []Sign{{ID: 30, Box: core.NewBox(10, 10, 60, 40), Variant: SignHard}}

	doc := ToDocument(l)
	require.Len(t, doc.Traps, 2)
	require.NotNil(t, doc.Traps[0].PlatformID)
	assert.Nil(t, doc.Traps[1].PlatformID)

	back := FromDocument(doc)
	assert.Equal(t, l, back)
}
