package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/papercut"
	"github.com/gogpu/papercut/world"
)

// sceneFile is the YAML scene description.
//
//	width: 800
//	height: 600
//	clear: "#ffffff"
//	shapes:
//	  - kind: rectangle
//	    size: [200, 200]
//	    position: [200, 200]
//	    pivot: [100, 100]
//	    rotation: 30
//	    fill: "hsl(210, 80%, 60%)"
//	    outline: black
//	    thickness: 1
//	    spin: 45
//	    pulse: "#ff8800"
//	    period: 2
//
// Colors are hex strings, SVG color names or hsl(h, s, l).
type sceneFile struct {
	Width     int          `yaml:"width,omitempty"`
	Height    int          `yaml:"height,omitempty"`
	Clear     string       `yaml:"clear,omitempty"`
	Tolerance float64      `yaml:"tolerance,omitempty"`
	Shapes    []shapeEntry `yaml:"shapes"`
}

// shapeEntry describes one entity. Which size fields apply depends on Kind.
type shapeEntry struct {
	Kind string `yaml:"kind"`

	Position [2]float64  `yaml:"position,omitempty"`
	Rotation float64     `yaml:"rotation,omitempty"`
	Scale    *[2]float64 `yaml:"scale,omitempty"`
	Pivot    [2]float64  `yaml:"pivot,omitempty"`

	// Spin rotates the entity by this many degrees per second.
	Spin float64 `yaml:"spin,omitempty"`

	// Pulse fades the fill color to this color and back every Period
	// seconds. Lines have no fill and ignore it.
	Pulse  string  `yaml:"pulse,omitempty"`
	Period float64 `yaml:"period,omitempty"`

	Radius float64    `yaml:"radius,omitempty"`
	Size   [2]float64 `yaml:"size,omitempty"`
	Points int        `yaml:"points,omitempty"`
	Length float64    `yaml:"length,omitempty"`
	Angle  float64    `yaml:"angle,omitempty"`

	Fill      string  `yaml:"fill,omitempty"`
	Outline   string  `yaml:"outline,omitempty"`
	Thickness float64 `yaml:"thickness,omitempty"`
	Z         float64 `yaml:"z,omitempty"`
}

var errUnknownKind = errors.New("unknown shape kind")

// loadScene reads a scene file.
func loadScene(path string) (*sceneFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return parseScene(data)
}

func parseScene(data []byte) (*sceneFile, error) {
	var s sceneFile
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &s, nil
}

// clearColor returns the scene's clear color, white if unset.
func (s *sceneFile) clearColor() (papercut.Color, error) {
	if s.Clear == "" {
		return papercut.White, nil
	}
	return papercut.ParseColor(s.Clear)
}

// animations holds the per-entity motion of a scene.
type animations struct {
	spins  map[world.Entity]float64
	pulses map[world.Entity]pulse
}

// pulse fades a fill color between two colors.
type pulse struct {
	from, to papercut.Color
	period   float64
}

// at returns the color t seconds into the pulse.
func (p pulse) at(t float64) papercut.Color {
	if p.period <= 0 {
		return p.from
	}
	return p.from.Lerp(p.to, (1-math.Cos(2*math.Pi*t/p.period))/2)
}

// populate spawns the scene's shapes into w and returns their animations.
func (s *sceneFile) populate(w *world.World) (animations, error) {
	anim := animations{
		spins:  make(map[world.Entity]float64),
		pulses: make(map[world.Entity]pulse),
	}
	for i, entry := range s.Shapes {
		d, err := entry.drawable()
		if err != nil {
			return anim, fmt.Errorf("shape %d: %w", i, err)
		}
		e := w.Spawn(entry.transform(), d)
		if entry.Spin != 0 {
			anim.spins[e] = entry.Spin
		}
		if entry.Pulse != "" {
			p, err := entry.pulse()
			if err != nil {
				return anim, fmt.Errorf("shape %d: pulse: %w", i, err)
			}
			anim.pulses[e] = p
		}
	}
	return anim, nil
}

func (entry shapeEntry) pulse() (pulse, error) {
	st, err := entry.style()
	if err != nil {
		return pulse{}, err
	}
	to, err := papercut.ParseColor(entry.Pulse)
	if err != nil {
		return pulse{}, err
	}
	period := entry.Period
	if period <= 0 {
		period = 1
	}
	return pulse{from: st.FillColor, to: to, period: period}, nil
}

// setFill changes the fill color of closed shapes. It reports false for
// lines.
func setFill(d papercut.Drawable, c papercut.Color) bool {
	switch s := d.(type) {
	case *papercut.Circle:
		s.FillColor = c
	case *papercut.Rectangle:
		s.FillColor = c
	case *papercut.Polygon:
		s.FillColor = c
	default:
		return false
	}
	return true
}

func (entry shapeEntry) transform() papercut.Transform {
	tr := papercut.FromPosition(entry.Position[0], entry.Position[1])
	tr.Rotation = entry.Rotation
	tr.Pivot = papercut.V2(entry.Pivot[0], entry.Pivot[1])
	if entry.Scale != nil {
		tr.Scale = papercut.V2(entry.Scale[0], entry.Scale[1])
	}
	return tr
}

func (entry shapeEntry) style() (papercut.Style, error) {
	st := papercut.DefaultStyle()
	st.OutlineThickness = entry.Thickness
	st.ZIndex = entry.Z
	if entry.Fill != "" {
		c, err := papercut.ParseColor(entry.Fill)
		if err != nil {
			return st, err
		}
		st.FillColor = c
	}
	if entry.Outline != "" {
		c, err := papercut.ParseColor(entry.Outline)
		if err != nil {
			return st, err
		}
		st.OutlineColor = c
	}
	return st, nil
}

func (entry shapeEntry) drawable() (papercut.Drawable, error) {
	st, err := entry.style()
	if err != nil {
		return nil, err
	}
	switch entry.Kind {
	case "circle":
		c := papercut.NewCircle(entry.Radius)
		c.Style = st
		return c, nil
	case "rectangle", "rect":
		r := papercut.NewRectangle(entry.Size[0], entry.Size[1])
		r.Style = st
		return r, nil
	case "polygon":
		p := papercut.NewPolygon(entry.Radius, entry.Points)
		p.Style = st
		return p, nil
	case "line":
		l := papercut.NewLine(entry.Length, entry.Angle)
		if entry.Thickness > 0 {
			l.OutlineThickness = entry.Thickness
		}
		if entry.Outline != "" {
			l.OutlineColor = st.OutlineColor
		}
		l.ZIndex = st.ZIndex
		return l, nil
	default:
		return nil, fmt.Errorf("%w %q", errUnknownKind, entry.Kind)
	}
}

// defaultScene lays out every shape kind: a plain and a rotated square
// sharing a pivot, a framed black box with marker dots at its corners, a
// circle, a hexagon and a fan of lines.
func defaultScene() *sceneFile {
	s := &sceneFile{Width: 800, Height: 600}
	s.Shapes = append(s.Shapes,
		shapeEntry{Kind: "rectangle", Size: [2]float64{200, 200}, Position: [2]float64{200, 200},
			Pivot: [2]float64{100, 100}, Fill: "#ffffff", Outline: "#000000", Thickness: 1},
		shapeEntry{Kind: "rectangle", Size: [2]float64{200, 200}, Position: [2]float64{200, 200},
			Pivot: [2]float64{100, 100}, Rotation: 30, Fill: "#ffffff", Outline: "#000000", Thickness: 1, Spin: 20},
		shapeEntry{Kind: "rectangle", Size: [2]float64{300, 150}, Position: [2]float64{400, 400},
			Fill: "#000000", Outline: "#ffffff", Thickness: 5},
	)
	for _, corner := range [][2]float64{{400, 400}, {400, 545}, {695, 400}, {695, 545}} {
		s.Shapes = append(s.Shapes, shapeEntry{
			Kind: "rectangle", Size: [2]float64{5, 5}, Position: corner, Fill: "#ff0000",
		})
	}
	s.Shapes = append(s.Shapes,
		shapeEntry{Kind: "circle", Radius: 60, Position: [2]float64{520, 150},
			Fill: "hsl(225, 100%, 60%)", Outline: "black", Thickness: 3, Pulse: "hsl(45, 100%, 55%)", Period: 3},
		shapeEntry{Kind: "polygon", Radius: 50, Points: 6, Position: [2]float64{80, 420},
			Pivot: [2]float64{50, 50}, Fill: "#33cc66", Outline: "#000000", Thickness: 2, Spin: -45},
	)
	for i := 0; i < 6; i++ {
		s.Shapes = append(s.Shapes, shapeEntry{
			Kind: "line", Length: 80, Angle: float64(i) * 30, Position: [2]float64{700, 200},
			Outline: "#cc3333", Thickness: 2,
		})
	}
	return s
}
