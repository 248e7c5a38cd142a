package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"playground/internal/shape"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, "#009999", s.SolidColor.String())
	assert.Equal(t, "#909090", s.Background.String())
	require.Len(t, s.Objects, 1)
	assert.True(t, s.Objects[0].Selected)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0xff, G: 0x80, A: 0xff}, c)

	c, err = ParseColor("0x11223344")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, c)
	assert.Equal(t, "#11223344", c.String())

	for _, bad := range []string{"", "#fff", "#gg0000", "red"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
	assert.Equal(t, Hex(0xff0000).RGBA(), Color{R: 0xff, A: 0xff}.RGBA())
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playground.yaml")
	src := `
window:
  width: 1280
background: "#202020"
show_fps: true
objects:
  - type: sphere
    size: [0.75]
    position: [1, 0, 0]
    color: "#ff0000"
  - type: cube
    selected: true
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1280, s.Window.Width)
	assert.Equal(t, 600, s.Window.Height, "unset fields keep defaults")
	assert.Equal(t, Hex(0x202020), s.Background)
	assert.True(t, s.ShowFPS)
	require.Len(t, s.Objects, 2)
	assert.Equal(t, "sphere", s.Objects[0].Type)
	assert.Equal(t, float32(0.75), s.Objects[0].Size[0])
	assert.Equal(t, [3]float32{1, 0, 0}, s.Objects[0].Position)
	require.NotNil(t, s.Objects[0].Color)
	assert.Equal(t, Hex(0xff0000), *s.Objects[0].Color)
	assert.Nil(t, s.Objects[0].Wire)
	assert.True(t, s.Objects[1].Selected)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	for name, src := range map[string]string{
		"syntax":  "window: [",
		"color":   `background: "blue"`,
		"size":    "window: {width: 0}",
		"level":   "log_level: loud",
		"object":  "objects: [{type: torus}]",
		"clip":    "camera: {near: 10, far: 1}",
		"divides": "grid: {divisions: -1}",
	} {
		path := filepath.Join(dir, name+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(src), 0644))
		s, err := Load(path)
		assert.Error(t, err, name)
		assert.Equal(t, Default(), s, name)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "playground.yaml")
	s := Default()
	s.ShowFPS = true
	s.Grid.Visible = false
	wire := Hex(0x00ff00)
	s.Objects = append(s.Objects, Object{
		Def:      shape.Def{Type: "cylinder", Size: [3]float32{0.5, 2}},
		Position: [3]float32{0, 1, -2},
		Wire:     &wire,
	})
	require.NoError(t, Save(path, s))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	var raw map[string]any
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Equal(t, "#009999", raw["solid_color"])
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLogLevel: "DEBUG",
		EnvWidth:    "1024",
		EnvHeight:   " 768 ",
		EnvShowFPS:  "true",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }
	s := Default()
	require.NoError(t, ApplyEnv(&s, lookup))
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 1024, s.Window.Width)
	assert.Equal(t, 768, s.Window.Height)
	assert.True(t, s.ShowFPS)

	for k, v := range map[string]string{EnvWidth: "-5", EnvHeight: "tall", EnvShowFPS: "maybe", EnvLogLevel: "loud"} {
		s := Default()
		err := ApplyEnv(&s, func(key string) (string, bool) {
			if key == k {
				return v, true
			}
			return "", false
		})
		assert.Error(t, err, k)
	}
}

func TestWatchReportsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playground.yaml")
	require.NoError(t, Save(path, Default()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan Settings, 8)
	require.NoError(t, Watch(ctx, path, func(s Settings, err error) {
		if err != nil {
			return
		}
		select {
		case got <- s:
		default:
		}
	}))

	s := Default()
	s.ShowFPS = true
	require.NoError(t, Save(path, s))

	// A save can surface as several events, the first of which may see a truncated file.
	timeout := time.After(5 * time.Second)
	for {
		select {
		case reloaded := <-got:
			if reloaded.ShowFPS {
				return
			}
		case <-timeout:
			t.Fatal("no reload after write")
		}
	}
}
