// Package config holds the playground's editor preferences: window, camera, grid, outline
// and color settings plus the objects placed at startup. Settings live in a YAML file that
// is optional, can be overridden from the environment and is watched for changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"playground/internal/logger"
	"playground/internal/shape"
)

// DefaultPath is the settings file, relative to the working directory.
const DefaultPath = "config/playground.yaml"

// Environment variables that override file settings.
const (
	EnvLogLevel = "PLAYGROUND_LOG_LEVEL"
	EnvWidth    = "PLAYGROUND_WIDTH"
	EnvHeight   = "PLAYGROUND_HEIGHT"
	EnvShowFPS  = "PLAYGROUND_SHOW_FPS"
)

type Window struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int    `yaml:"target_fps"`
	Resizable bool   `yaml:"resizable"`
}

type Grid struct {
	Visible   bool    `yaml:"visible"`
	Size      float32 `yaml:"size"`
	Divisions int     `yaml:"divisions"`
}

type Camera struct {
	Fov      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
}

// Outline styles the selection outline.
type Outline struct {
	VisibleEdgeColor Color   `yaml:"visible_edge_color"`
	HiddenEdgeColor  Color   `yaml:"hidden_edge_color"`
	EdgeThickness    float32 `yaml:"edge_thickness"`
	EdgeStrength     float32 `yaml:"edge_strength"`
}

// Object is a shape placed in the scene at startup. Nil colors take the scene defaults.
type Object struct {
	shape.Def `yaml:",inline"`
	Name      string     `yaml:"name,omitempty"`
	Position  [3]float32 `yaml:"position"`
	Color     *Color     `yaml:"color,omitempty"`
	Wire      *Color     `yaml:"wire,omitempty"`
	Selected  bool       `yaml:"selected,omitempty"`
}

// Settings is the whole preferences file.
type Settings struct {
	Window     Window   `yaml:"window"`
	Background Color    `yaml:"background"`
	Grid       Grid     `yaml:"grid"`
	Camera     Camera   `yaml:"camera"`
	Outline    Outline  `yaml:"outline"`
	SolidColor Color    `yaml:"solid_color"`
	WireColor  Color    `yaml:"wire_color"`
	ShowFPS    bool     `yaml:"show_fps"`
	LogLevel   string   `yaml:"log_level"`
	Objects    []Object `yaml:"objects"`
}

// Default returns the settings used when no file exists: an 800x600 window, a grey
// background, a 5 unit grid and one selected cube at the origin.
func Default() Settings {
	return Settings{
		Window: Window{
			Width:     800,
			Height:    600,
			Title:     "playground",
			TargetFPS: 60,
			Resizable: true,
		},
		Background: Hex(0x909090),
		Grid:       Grid{Visible: true, Size: 5, Divisions: 10},
		Camera: Camera{
			Fov:      75,
			Near:     0.1,
			Far:      1000,
			Position: [3]float32{0, 0, 5},
		},
		Outline: Outline{
			VisibleEdgeColor: Hex(0xff0000),
			HiddenEdgeColor:  Hex(0xff0000),
			EdgeThickness:    2,
			EdgeStrength:     10,
		},
		SolidColor: Hex(0x009999),
		WireColor:  Hex(0x000000),
		LogLevel:   "info",
		Objects: []Object{
			{Def: shape.Def{Type: string(shape.KindBox)}, Name: "cube", Selected: true},
		},
	}
}

// Load reads settings from path on top of Default. A missing file yields Default.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path as YAML, creating the directory if needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting that cannot be used.
func (s Settings) Validate() error {
	switch {
	case s.Window.Width <= 0 || s.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", s.Window.Width, s.Window.Height)
	case s.Camera.Fov <= 0 || s.Camera.Fov >= 180:
		return fmt.Errorf("camera fov %v must be in (0, 180)", s.Camera.Fov)
	case s.Camera.Near <= 0 || s.Camera.Far <= s.Camera.Near:
		return fmt.Errorf("camera clip range [%v, %v] is empty", s.Camera.Near, s.Camera.Far)
	case s.Grid.Size <= 0 || s.Grid.Divisions <= 0:
		return fmt.Errorf("grid size %v and divisions %d must be positive", s.Grid.Size, s.Grid.Divisions)
	case s.Outline.EdgeThickness < 0 || s.Outline.EdgeStrength < 0:
		return errors.New("outline thickness and strength must not be negative")
	}
	if _, err := logger.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	for i, o := range s.Objects {
		if _, err := shape.ParseKind(o.Type); err != nil {
			return fmt.Errorf("objects[%d]: %w", i, err)
		}
	}
	return nil
}

// ApplyEnv overrides s from environment variables found by lookup (os.LookupEnv in
// production).
func ApplyEnv(s *Settings, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok {
		if _, err := logger.ParseLevel(v); err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		s.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	for _, e := range []struct {
		name string
		dst  *int
	}{{EnvWidth, &s.Window.Width}, {EnvHeight, &s.Window.Height}} {
		v, ok := lookup(e.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return fmt.Errorf("%s: want a positive integer, got %q", e.name, v)
		}
		*e.dst = n
	}
	if v, ok := lookup(EnvShowFPS); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvShowFPS, err)
		}
		s.ShowFPS = b
	}
	return nil
}
