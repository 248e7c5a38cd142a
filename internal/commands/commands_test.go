package commands

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playground/internal/config"
	"playground/internal/gizmo"
	"playground/internal/scene"
	"playground/internal/shape"
)

func TestParse(t *testing.T) {
	args, err := Parse(`cmd spawn box --name "big box" 1 2 3`)
	require.NoError(t, err)
	assert.Equal(t, []string{"spawn", "box", "--name", "big box", "1", "2", "3"}, args)

	args, err = Parse("  list ")
	require.NoError(t, err)
	assert.Equal(t, []string{"list"}, args)

	args, err = Parse("")
	require.NoError(t, err)
	assert.Empty(t, args)

	_, err = Parse(`select "0`)
	assert.Error(t, err)
}

func TestExecuteResetsFlags(t *testing.T) {
	r := NewRegistry()
	fs := pflag.NewFlagSet("echo", pflag.ContinueOnError)
	loud := fs.Bool("loud", false, "")
	var seen []bool
	var gotArgs [][]string
	r.Register("echo", "", fs, func(args []string) error {
		seen = append(seen, *loud)
		gotArgs = append(gotArgs, args)
		return nil
	})

	require.NoError(t, r.Execute([]string{"echo", "--loud", "a"}))
	require.NoError(t, r.Execute([]string{"echo", "b"}))
	assert.Equal(t, []bool{true, false}, seen)
	assert.Equal(t, [][]string{{"a"}, {"b"}}, gotArgs)

	assert.ErrorIs(t, r.Execute(nil), ErrMissingCommand)
	assert.ErrorIs(t, r.Execute([]string{"nope"}), ErrUnknownCommand)
	assert.Error(t, r.Execute([]string{"echo", "--quiet"}))
	assert.NoError(t, r.ExecuteLine("   "))
	assert.Equal(t, []string{"echo"}, r.Names())
	assert.Contains(t, r.Help(), "echo   [--loud]")
}

type harness struct {
	r        *Registry
	env      *Env
	out      []string
	changes  int
	fps      bool
	settings config.Settings
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{r: NewRegistry(), settings: config.Default()}
	h.env = &Env{
		Scene:            scene.New(scene.Options{}),
		Widget:           gizmo.New(),
		Settings:         &h.settings,
		SettingsPath:     filepath.Join(t.TempDir(), "playground.yaml"),
		Print:            func(s string) { h.out = append(h.out, s) },
		SelectionChanged: func() { h.changes++ },
		SetShowFPS:       func(v bool) { h.fps = v },
	}
	RegisterPlayground(h.r, h.env)
	return h
}

func (h *harness) run(t *testing.T, line string) {
	t.Helper()
	require.NoError(t, h.r.ExecuteLine(line), line)
}

func TestSpawn(t *testing.T) {
	h := newHarness(t)
	scn := h.env.Scene

	h.run(t, "spawn box 1 2 3")
	require.Equal(t, 1, scn.Len())
	obj, _ := scn.Object(0)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, obj.Root().Position)
	assert.Equal(t, h.settings.SolidColor.RGBA(), obj.Solid().Mesh.Color)

	h.run(t, `spawn sphere --color "#ff0000" --size 0.25 --name ball --select -- -1 0 0`)
	ball, _ := scn.Object(1)
	assert.Equal(t, "ball", ball.Name())
	assert.Equal(t, config.Hex(0xff0000).RGBA(), ball.Solid().Mesh.Color)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, ball.Geometry().Extent)
	assert.Equal(t, []*scene.Object{ball}, scn.Selection().Objects())
	assert.Equal(t, 1, h.changes)

	h.run(t, "spawn cylinder -n 5 --spacing 3")
	assert.Equal(t, 7, scn.Len())
	last, _ := scn.Object(6)
	// Five objects make a 3 wide grid; the fifth sits in row 1, column 1.
	assert.Equal(t, mgl32.Vec3{3, 0, 3}, last.Root().Position)

	assert.Error(t, h.r.ExecuteLine("spawn torus"))
	assert.Error(t, h.r.ExecuteLine("spawn box 1 2"))
	assert.Error(t, h.r.ExecuteLine("spawn box --color blue"))
	assert.Equal(t, 7, scn.Len())
}

func TestSelectAndDelete(t *testing.T) {
	h := newHarness(t)
	scn := h.env.Scene
	h.run(t, "spawn box -n 3 --pattern line")
	a, _ := scn.Object(0)
	b, _ := scn.Object(1)
	c, _ := scn.Object(2)
	sel := scn.Selection()

	h.run(t, "select 0 2")
	assert.Equal(t, []*scene.Object{a, c}, sel.Objects())
	assert.InDelta(t, 2, sel.Pivot().X(), 1e-5)

	h.run(t, "select 1")
	assert.Equal(t, []*scene.Object{b}, sel.Objects())

	h.run(t, "select --add 0")
	assert.Equal(t, []*scene.Object{b, a}, sel.Objects())

	h.run(t, "select --toggle 0 2")
	assert.Equal(t, []*scene.Object{b, c}, sel.Objects())

	assert.Error(t, h.r.ExecuteLine("select 9"))
	assert.Error(t, h.r.ExecuteLine("select x"))
	assert.Error(t, h.r.ExecuteLine("select"))

	h.out = nil
	h.run(t, "list")
	assert.Equal(t, []string{
		"0: box (0.00, 0.00, 0.00)",
		"1: box (2.00, 0.00, 0.00) *",
		"2: box (4.00, 0.00, 0.00) *",
	}, h.out)

	h.run(t, "delete")
	assert.Equal(t, []*scene.Object{a}, scn.Objects())
	assert.True(t, sel.Empty())

	h.run(t, "select 0")
	h.run(t, "deselect")
	assert.True(t, sel.Empty())

	h.run(t, "delete --all")
	assert.Equal(t, 0, scn.Len())
	h.out = nil
	h.run(t, "list")
	assert.Equal(t, []string{"scene is empty"}, h.out)
}

func TestToggles(t *testing.T) {
	h := newHarness(t)
	scn := h.env.Scene

	h.run(t, "grid --hide")
	assert.False(t, scn.GridVisible())
	assert.False(t, h.settings.Grid.Visible)
	h.run(t, "grid")
	assert.True(t, scn.GridVisible())
	assert.Error(t, h.r.ExecuteLine("grid --show --hide"))

	h.run(t, "fps --show")
	assert.True(t, h.fps)
	assert.True(t, h.settings.ShowFPS)
	h.run(t, "fps")
	assert.False(t, h.fps)

	h.run(t, "gizmo rotate")
	assert.Equal(t, gizmo.Rotate, h.env.Widget.Mode())
	assert.Error(t, h.r.ExecuteLine("gizmo shear"))
	assert.Error(t, h.r.ExecuteLine("gizmo"))

	h.run(t, "background #101010")
	assert.Equal(t, config.Hex(0x101010).RGBA(), scn.Background())
}

func TestPrefsSave(t *testing.T) {
	h := newHarness(t)
	h.run(t, "fps --show")
	h.run(t, "prefs save")

	saved, err := config.Load(h.env.SettingsPath)
	require.NoError(t, err)
	assert.True(t, saved.ShowFPS)
	assert.Error(t, h.r.ExecuteLine("prefs load"))
}

func TestPopulate(t *testing.T) {
	h := newHarness(t)
	red := config.Hex(0xff0000)
	objs := []config.Object{
		{Def: shape.Def{Type: "box"}, Name: "a", Position: [3]float32{-1, 0, 0}, Selected: true},
		{Def: shape.Def{Type: "sphere", Size: [3]float32{2}}, Color: &red, Position: [3]float32{3, 0, 0}, Selected: true},
		{Def: shape.Def{Type: "plane"}},
	}
	require.NoError(t, h.env.Populate(objs))

	scn := h.env.Scene
	require.Equal(t, 3, scn.Len())
	a, _ := scn.Object(0)
	ball, _ := scn.Object(1)
	assert.Equal(t, "a", a.Name())
	assert.Equal(t, red.RGBA(), ball.Solid().Mesh.Color)
	assert.Equal(t, h.settings.WireColor.RGBA(), ball.Wire().Mesh.Color)
	assert.Equal(t, []*scene.Object{a, ball}, scn.Selection().Objects())
	assert.InDelta(t, 1, scn.Selection().Pivot().X(), 1e-5)
	assert.Equal(t, 1, h.changes)

	err := h.env.Populate([]config.Object{{Def: shape.Def{Type: "torus"}}})
	assert.Error(t, err)
	assert.Equal(t, 3, scn.Len())
}

func TestHelpListsCommands(t *testing.T) {
	h := newHarness(t)
	h.run(t, "help")
	require.NotEmpty(t, h.out)
	assert.Contains(t, h.out[0], "background")
}
