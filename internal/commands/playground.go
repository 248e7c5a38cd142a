package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/pflag"

	"playground/internal/config"
	"playground/internal/gizmo"
	"playground/internal/scene"
	"playground/internal/shape"
)

const maxSpawn = 500

// Env is what the playground commands act on.
type Env struct {
	Scene  *scene.Scene
	Widget *gizmo.Widget
	// Settings supplies default colors and is what "prefs save" writes to SettingsPath.
	Settings     *config.Settings
	SettingsPath string
	// Print shows a line of command output.
	Print func(string)
	// SelectionChanged runs after any command that changes the selection.
	SelectionChanged func()
	// SetShowFPS toggles the FPS overlay.
	SetShowFPS func(bool)
}

func (e *Env) print(format string, args ...any) {
	if e.Print != nil {
		e.Print(fmt.Sprintf(format, args...))
	}
}

func (e *Env) selectionChanged() {
	if e.SelectionChanged != nil {
		e.SelectionChanged()
	}
}

// RegisterPlayground registers the scene editing commands on r.
func RegisterPlayground(r *Registry, e *Env) {
	registerSpawn(r, e)
	registerSelect(r, e)

	r.Register("deselect", "", nil, func([]string) error {
		e.Scene.Selection().Clear()
		e.selectionChanged()
		return nil
	})

	del := pflag.NewFlagSet("delete", pflag.ContinueOnError)
	all := del.Bool("all", false, "delete every object, not just the selection")
	r.Register("delete", "", del, func([]string) error {
		targets := e.Scene.Selection().Objects()
		if *all {
			targets = e.Scene.Objects()
		}
		for _, o := range targets {
			e.Scene.Remove(o)
		}
		e.selectionChanged()
		e.print("deleted %d object(s)", len(targets))
		return nil
	})

	r.Register("list", "", nil, func([]string) error {
		if e.Scene.Len() == 0 {
			e.print("scene is empty")
		}
		sel := e.Scene.Selection()
		for i, o := range e.Scene.Objects() {
			p := o.Root().WorldPosition()
			mark := ""
			if sel.Contains(o) {
				mark = " *"
			}
			e.print("%d: %s (%.2f, %.2f, %.2f)%s", i, o.Name(), tidy(p.X()), tidy(p.Y()), tidy(p.Z()), mark)
		}
		return nil
	})

	grid, gridShow, gridHide := toggleFlags("grid")
	r.Register("grid", "", grid, func([]string) error {
		v, err := toggleValue(*gridShow, *gridHide, e.Scene.GridVisible())
		if err != nil {
			return err
		}
		e.Scene.SetGridVisible(v)
		if e.Settings != nil {
			e.Settings.Grid.Visible = v
		}
		return nil
	})

	fps, fpsShow, fpsHide := toggleFlags("fps")
	r.Register("fps", "", fps, func([]string) error {
		cur := e.Settings != nil && e.Settings.ShowFPS
		v, err := toggleValue(*fpsShow, *fpsHide, cur)
		if err != nil {
			return err
		}
		if e.Settings != nil {
			e.Settings.ShowFPS = v
		}
		if e.SetShowFPS != nil {
			e.SetShowFPS(v)
		}
		return nil
	})

	r.Register("gizmo", "<translate|rotate|scale>", nil, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("gizmo: want one mode, got %d arguments", len(args))
		}
		m, err := gizmo.ParseMode(args[0])
		if err != nil {
			return err
		}
		e.Widget.SetMode(m)
		return nil
	})

	r.Register("background", "<#rrggbb>", nil, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("background: want one color")
		}
		c, err := config.ParseColor(args[0])
		if err != nil {
			return err
		}
		e.Scene.SetBackground(c.RGBA())
		if e.Settings != nil {
			e.Settings.Background = c
		}
		return nil
	})

	r.Register("prefs", "save", nil, func(args []string) error {
		if len(args) != 1 || args[0] != "save" {
			return fmt.Errorf("prefs: usage: prefs save")
		}
		if e.Settings == nil || e.SettingsPath == "" {
			return fmt.Errorf("prefs: no settings file")
		}
		if err := config.Save(e.SettingsPath, *e.Settings); err != nil {
			return fmt.Errorf("prefs: %w", err)
		}
		e.print("saved %s", e.SettingsPath)
		return nil
	})

	r.Register("help", "", nil, func([]string) error {
		for _, line := range strings.Split(r.Help(), "\n") {
			e.print("%s", line)
		}
		return nil
	})
}

func registerSpawn(r *Registry, e *Env) {
	fs := pflag.NewFlagSet("spawn", pflag.ContinueOnError)
	colorHex := fs.StringP("color", "c", "", "solid color, #rrggbb")
	wireHex := fs.StringP("wire", "w", "", "wireframe color, #rrggbb")
	size := fs.StringP("size", "s", "", "comma separated size (box w,h,d; sphere r; cylinder r,h; plane w,d)")
	name := fs.String("name", "", "object name")
	count := fs.IntP("count", "n", 1, "number of objects")
	spacing := fs.Float32("spacing", 2, "distance between objects when count > 1")
	pattern := fs.String("pattern", "grid", "layout when count > 1: grid or line")
	sel := fs.Bool("select", false, "select the new objects")

	r.Register("spawn", "<box|sphere|cylinder|plane> [x y z] (use -- before negative numbers)", fs, func(args []string) error {
		if len(args) != 1 && len(args) != 4 {
			return fmt.Errorf("spawn: want a type and an optional x y z")
		}
		def := shape.Def{Type: args[0]}
		if *size != "" {
			v, err := parseFloats(*size, 1, 3)
			if err != nil {
				return fmt.Errorf("spawn: --size: %w", err)
			}
			copy(def.Size[:], v)
		}
		var origin mgl32.Vec3
		if len(args) == 4 {
			v, err := parseFloats(strings.Join(args[1:], ","), 3, 3)
			if err != nil {
				return fmt.Errorf("spawn: position: %w", err)
			}
			origin = mgl32.Vec3{v[0], v[1], v[2]}
		}
		opts, err := e.colorOptions(*colorHex, *wireHex)
		if err != nil {
			return fmt.Errorf("spawn: %w", err)
		}
		if *name != "" {
			opts = append(opts, scene.WithName(*name))
		}
		n := min(max(*count, 1), maxSpawn)
		if *sel {
			e.Scene.Selection().Clear()
		}
		for i := 0; i < n; i++ {
			geom, err := shape.Build(def)
			if err != nil {
				return fmt.Errorf("spawn: %w", err)
			}
			obj, err := scene.NewObject(geom, opts...)
			if err != nil {
				return fmt.Errorf("spawn: %w", err)
			}
			obj.Root().Position = origin.Add(layout(*pattern, i, n, *spacing))
			e.Scene.Add(obj)
			if *sel {
				e.Scene.Selection().Add(obj)
			}
		}
		if *sel {
			e.selectionChanged()
		}
		e.print("spawned %d %s", n, args[0])
		return nil
	})
}

// Populate adds the startup objects from the settings file. Objects marked selected join
// the selection. An invalid entry stops the load; objects added before it stay.
func (e *Env) Populate(objs []config.Object) error {
	selected := false
	for i, o := range objs {
		geom, err := shape.Build(o.Def)
		if err != nil {
			return fmt.Errorf("objects[%d]: %w", i, err)
		}
		opts, err := e.colorOptions("", "")
		if err != nil {
			return err
		}
		if o.Color != nil {
			opts = append(opts, scene.WithSolidColor(o.Color.RGBA()))
		}
		if o.Wire != nil {
			opts = append(opts, scene.WithWireColor(o.Wire.RGBA()))
		}
		if o.Name != "" {
			opts = append(opts, scene.WithName(o.Name))
		}
		obj, err := scene.NewObject(geom, opts...)
		if err != nil {
			return fmt.Errorf("objects[%d]: %w", i, err)
		}
		obj.Root().Position = mgl32.Vec3(o.Position)
		e.Scene.Add(obj)
		if o.Selected {
			e.Scene.Selection().Add(obj)
			selected = true
		}
	}
	if selected {
		e.selectionChanged()
	}
	return nil
}

// tidy drops float noise so printed coordinates never read "-0.00".
func tidy(v float32) float32 {
	if v > -0.005 && v < 0.005 {
		return 0
	}
	return v
}

// layout places object i of n on a square grid in the XZ plane or along +X.
func layout(pattern string, i, n int, spacing float32) mgl32.Vec3 {
	if pattern == "line" {
		return mgl32.Vec3{float32(i) * spacing, 0, 0}
	}
	cols := 1
	for cols*cols < n {
		cols++
	}
	row, col := i/cols, i%cols
	return mgl32.Vec3{float32(col) * spacing, 0, float32(row) * spacing}
}

func registerSelect(r *Registry, e *Env) {
	fs := pflag.NewFlagSet("select", pflag.ContinueOnError)
	toggle := fs.BoolP("toggle", "t", false, "toggle the given objects")
	add := fs.BoolP("add", "a", false, "add to the current selection")

	r.Register("select", "<index>...", fs, func(args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("select: want at least one object index (see list)")
		}
		objs := make([]*scene.Object, 0, len(args))
		for _, a := range args {
			i, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("select: %q is not an index", a)
			}
			o, ok := e.Scene.Object(i)
			if !ok {
				return fmt.Errorf("select: no object %d", i)
			}
			objs = append(objs, o)
		}
		sel := e.Scene.Selection()
		switch {
		case *toggle:
			for _, o := range objs {
				sel.Toggle(o)
			}
		case *add:
			for _, o := range objs {
				sel.Add(o)
			}
		default:
			sel.Clear()
			for _, o := range objs {
				sel.Add(o)
			}
		}
		e.selectionChanged()
		return nil
	})
}

func (e *Env) colorOptions(solid, wire string) ([]scene.Option, error) {
	var opts []scene.Option
	if e.Settings != nil {
		opts = append(opts,
			scene.WithSolidColor(e.Settings.SolidColor.RGBA()),
			scene.WithWireColor(e.Settings.WireColor.RGBA()))
	}
	if solid != "" {
		c, err := config.ParseColor(solid)
		if err != nil {
			return nil, err
		}
		opts = append(opts, scene.WithSolidColor(c.RGBA()))
	}
	if wire != "" {
		c, err := config.ParseColor(wire)
		if err != nil {
			return nil, err
		}
		opts = append(opts, scene.WithWireColor(c.RGBA()))
	}
	return opts, nil
}

func toggleFlags(name string) (fs *pflag.FlagSet, show, hide *bool) {
	fs = pflag.NewFlagSet(name, pflag.ContinueOnError)
	show = fs.Bool("show", false, "show the "+name)
	hide = fs.Bool("hide", false, "hide the "+name)
	return fs, show, hide
}

// toggleValue resolves --show/--hide; with neither flag the current value flips.
func toggleValue(show, hide, cur bool) (bool, error) {
	switch {
	case show && hide:
		return false, fmt.Errorf("--show and --hide are exclusive")
	case show:
		return true, nil
	case hide:
		return false, nil
	}
	return !cur, nil
}

func parseFloats(s string, minN, maxN int) ([]float32, error) {
	parts := strings.Split(s, ",")
	if len(parts) < minN || len(parts) > maxN {
		return nil, fmt.Errorf("want %d to %d numbers, got %q", minN, maxN, s)
	}
	out := make([]float32, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", p)
		}
		out[i] = float32(v)
	}
	return out, nil
}
