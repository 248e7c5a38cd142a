// Package app runs the playground window: it opens raylib, builds the scene, viewport and
// render pipeline from the settings, feeds window input to the viewport and console, and
// applies settings file changes while running.
package app

import (
	"context"
	"fmt"

	"cogentcore.org/core/base/errors"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"playground/internal/commands"
	"playground/internal/config"
	"playground/internal/gizmo"
	"playground/internal/logger"
	"playground/internal/render"
	"playground/internal/scene"
	"playground/internal/terminal"
	"playground/internal/viewport"
)

// Options configures an App.
type Options struct {
	Settings     config.Settings
	SettingsPath string
	// Watch reloads settings when the file at SettingsPath changes.
	Watch  bool
	Logger *logger.Logger
}

// App is the running playground. Create it with New and start it with Run; everything but
// the settings watcher runs on the calling goroutine, which must be the main thread.
type App struct {
	settings config.Settings
	path     string
	watch    bool
	log      *logger.Logger

	scene    *scene.Scene
	view     *viewport.Viewport
	pipeline *render.Pipeline
	registry *commands.Registry
	term     *terminal.Terminal
	overlay  *render.Overlay
	reload   chan config.Settings
}

// New returns an App for opts. Nothing touches the GPU until Run.
func New(opts Options) *App {
	return &App{
		settings: opts.Settings,
		path:     opts.SettingsPath,
		watch:    opts.Watch,
		log:      opts.Logger,
		reload:   make(chan config.Settings, 1),
	}
}

// Run opens the window and runs the frame loop until the window is closed or ctx is done.
func (a *App) Run(ctx context.Context) error {
	s := &a.settings
	flags := uint32(rl.FlagMsaa4xHint)
	if s.Window.Resizable {
		flags |= rl.FlagWindowResizable
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(s.Window.Width), int32(s.Window.Height), s.Window.Title)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return fmt.Errorf("open window %dx%d", s.Window.Width, s.Window.Height)
	}
	rl.SetExitKey(rl.KeyNull) // ESC toggles the console, not quit; close via window button
	rl.SetTargetFPS(int32(s.Window.TargetFPS))

	if err := a.build(); err != nil {
		return err
	}
	defer a.pipeline.Unload()

	if a.watch {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		errors.Log(config.Watch(watchCtx, a.path, a.onSettingsChanged))
	}

	a.log.Slog().Info("playground started", "width", s.Window.Width, "height", s.Window.Height, "objects", a.scene.Len())
	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}
		a.update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		a.view.Animate()
		a.overlay.Draw(a.scene, a.view.Widget())
		a.term.Draw()
		rl.EndDrawing()
	}
	a.log.Slog().Info("playground closed")
	return nil
}

// build creates the scene, pipeline, viewport and console from the settings.
func (a *App) build() error {
	s := &a.settings
	a.scene = scene.New(scene.Options{
		GridSize:      s.Grid.Size,
		GridDivisions: s.Grid.Divisions,
		Background:    s.Background.RGBA(),
		Logger:        a.log.Slog(),
	})
	a.scene.SetGridVisible(s.Grid.Visible)

	a.pipeline = render.NewPipeline(s.Outline)
	a.view = viewport.New(a.scene, a.pipeline.Viewport(), viewport.Options{
		Fov:            s.Camera.Fov,
		Near:           s.Camera.Near,
		Far:            s.Camera.Far,
		CameraPosition: mgl32.Vec3(s.Camera.Position),
		CameraTarget:   mgl32.Vec3(s.Camera.Target),
		Logger:         a.log.Slog(),
	})
	a.view.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())

	a.overlay = render.NewOverlay()
	a.overlay.ShowFPS = s.ShowFPS

	a.registry = commands.NewRegistry()
	env := &commands.Env{
		Scene:            a.scene,
		Widget:           a.view.Widget(),
		Settings:         s,
		SettingsPath:     a.path,
		Print:            a.log.Log,
		SelectionChanged: a.view.UpdateTransformWidget,
		SetShowFPS:       func(v bool) { a.overlay.ShowFPS = v },
	}
	commands.RegisterPlayground(a.registry, env)
	a.term = terminal.New(a.log, a.registry)

	if err := env.Populate(s.Objects); err != nil {
		return fmt.Errorf("startup objects: %w", err)
	}
	return nil
}

// onSettingsChanged runs on the watcher goroutine. The newest valid settings replace any
// that the frame loop has not picked up yet.
func (a *App) onSettingsChanged(s config.Settings, err error) {
	if errors.Log(err) != nil {
		return
	}
	select {
	case <-a.reload:
	default:
	}
	a.reload <- s
}

// applySettings takes over the live-tunable parts of s. Window size and the startup object
// list only apply on the next start.
func (a *App) applySettings(s config.Settings) {
	s.Window = a.settings.Window
	s.Objects = a.settings.Objects
	a.settings = s
	a.scene.SetBackground(s.Background.RGBA())
	a.scene.SetGridVisible(s.Grid.Visible)
	a.pipeline.Outline.Style = s.Outline
	a.overlay.ShowFPS = s.ShowFPS
	if lvl, err := logger.ParseLevel(s.LogLevel); err == nil {
		a.log.SetLevel(lvl)
	}
	a.log.Slog().Info("settings reloaded", "path", a.path)
}

func (a *App) update() {
	select {
	case s := <-a.reload:
		a.applySettings(s)
	default:
	}
	if rl.IsWindowResized() {
		a.view.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}

	a.term.Update()
	if a.term.IsOpen() {
		return
	}
	a.pointer()
	a.keys()
}

var buttons = []struct {
	button rl.MouseButton
	vp viewport.Button
}{
	{rl.MouseButtonLeft, viewport.ButtonLeft},
	{rl.MouseButtonRight, viewport.ButtonRight},
	{rl.MouseButtonMiddle, viewport.ButtonMiddle},
}

// pointer forwards mouse state to the viewport in the order press, move, release.
func (a *App) pointer() {
	pos := rl.GetMousePosition()
	for _, b := range buttons {
		if rl.IsMouseButtonPressed(b.button) {
			a.view.PointerDown(pos.X, pos.Y, b.vp)
		}
	}
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		a.view.PointerMove(pos.X, pos.Y)
	}
	for _, b := range buttons {
		if rl.IsMouseButtonReleased(b.button) {
			a.view.PointerUp(pos.X, pos.Y, b.vp)
		}
	}
	if w := rl.GetMouseWheelMove(); w != 0 {
		a.view.Wheel(w)
	}
}

func (a *App) keys() {
	w := a.view.Widget()
	switch {
	case rl.IsKeyPressed(rl.KeyW):
		w.SetMode(gizmo.Translate)
	case rl.IsKeyPressed(rl.KeyE):
		w.SetMode(gizmo.Rotate)
	case rl.IsKeyPressed(rl.KeyR):
		w.SetMode(gizmo.Scale)
	case rl.IsKeyPressed(rl.KeyDelete):
		a.deleteSelected()
	}
}

func (a *App) deleteSelected() {
	objs := a.scene.Selection().Objects()
	for _, o := range objs {
		a.scene.Remove(o)
	}
	a.view.UpdateTransformWidget()
	if len(objs) > 0 {
		a.log.Slog().Info("deleted selection", "count", len(objs))
	}
}
