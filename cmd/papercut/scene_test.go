package main

import (
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/papercut"
	"github.com/gogpu/papercut/render"
	"github.com/gogpu/papercut/world"
)

const testScene = `
width: 320
height: 240
clear: "#102030"
tolerance: 0.05
shapes:
  - kind: rectangle
    size: [100, 50]
    position: [10, 20]
    pivot: [50, 25]
    rotation: 30
    scale: [2, 1]
    fill: "#ff0000"
    outline: "#00ff00"
    thickness: 2
    z: 3
    spin: 90
  - kind: circle
    radius: 10
    fill: "hsl(0, 0%, 0%)"
    outline: navy
    pulse: white
    period: 2
  - kind: polygon
    radius: 20
    points: 5
  - kind: line
    length: 40
    angle: 45
    thickness: 3
`

func TestParseScene(t *testing.T) {
	s, err := parseScene([]byte(testScene))
	if err != nil {
		t.Fatalf("parseScene: %v", err)
	}
	if s.Width != 320 || s.Height != 240 || s.Tolerance != 0.05 {
		t.Errorf("header = %dx%d tol %g", s.Width, s.Height, s.Tolerance)
	}
	if len(s.Shapes) != 4 {
		t.Fatalf("len(Shapes) = %d, want 4", len(s.Shapes))
	}

	w := world.New()
	anim, err := s.populate(w)
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	if w.Len() != 4 {
		t.Errorf("world has %d entities, want 4", w.Len())
	}
	if len(anim.spins) != 1 || len(anim.pulses) != 1 {
		t.Errorf("spinning entities = %d, pulsing = %d, want 1 and 1", len(anim.spins), len(anim.pulses))
	}

	var first *papercut.Transform
	var rect *papercut.Rectangle
	var circle *papercut.Circle
	var line *papercut.Line
	for tr, d := range w.All() {
		switch v := d.(type) {
		case *papercut.Rectangle:
			first, rect = tr, v
		case *papercut.Circle:
			circle = v
		case *papercut.Line:
			line = v
		}
	}
	if circle == nil || circle.FillColor != papercut.Black || circle.OutlineColor != papercut.RGB(0, 0, 128.0/255) {
		t.Errorf("circle = %+v", circle)
	}
	if rect == nil || first == nil {
		t.Fatal("rectangle not spawned")
	}
	if first.Translation != papercut.V2(10, 20) || first.Rotation != 30 ||
		first.Scale != papercut.V2(2, 1) || first.Pivot != papercut.V2(50, 25) {
		t.Errorf("transform = %+v", *first)
	}
	if rect.FillColor != papercut.Red || rect.OutlineColor != papercut.Green ||
		rect.OutlineThickness != 2 || rect.ZIndex != 3 {
		t.Errorf("style = %+v", rect.Style)
	}
	if line == nil || line.OutlineThickness != 3 || line.Angle != 45 {
		t.Errorf("line = %+v", line)
	}
}

func TestSceneErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown kind", "shapes:\n  - kind: star\n"},
		{"bad fill", "shapes:\n  - kind: circle\n    radius: 1\n    fill: \"#zz\"\n"},
		{"bad hsl", "shapes:\n  - kind: circle\n    radius: 1\n    fill: \"hsl(0, 200%, 50%)\"\n"},
		{"bad pulse", "shapes:\n  - kind: circle\n    radius: 1\n    pulse: nocolor\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := parseScene([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("parseScene: %v", err)
			}
			if _, err := s.populate(world.New()); err == nil {
				t.Error("populate should fail")
			}
		})
	}

	s, _ := parseScene([]byte("shapes:\n  - kind: star\n"))
	if _, err := s.populate(world.New()); !errors.Is(err, errUnknownKind) {
		t.Errorf("err = %v, want errUnknownKind", err)
	}
	if _, err := parseScene([]byte("shapes: [")); err == nil {
		t.Error("malformed YAML should fail")
	}
	if _, err := parseScene([]byte("shapes:\n  - kind: rectangle\n    size: [1, 2, 3]\n")); err == nil {
		t.Error("size with three elements should fail")
	}
}

func TestViewportSize(t *testing.T) {
	tests := []struct {
		name         string
		scene        sceneFile
		flagW, flagH int
		wantW, wantH int
	}{
		{"defaults", sceneFile{}, 0, 0, 800, 600},
		{"scene", sceneFile{Width: 320, Height: 200}, 0, 0, 320, 200},
		{"flags win", sceneFile{Width: 320, Height: 200}, 640, 480, 640, 480},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := viewportSize(&tt.scene, tt.flagW, tt.flagH)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("viewportSize = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDefaultSceneSnapshot(t *testing.T) {
	scene := defaultScene()
	game, err := newSceneGame(scene)
	if err != nil {
		t.Fatalf("newSceneGame: %v", err)
	}
	opts, err := engineOptions(scene)
	if err != nil {
		t.Fatalf("engineOptions: %v", err)
	}

	path := filepath.Join(t.TempDir(), "snapshot.png")
	if err := renderSnapshot(path, 200, 150, 3, game, opts...); err != nil {
		t.Fatalf("renderSnapshot: %v", err)
	}
	if game.steps != 3 {
		t.Errorf("fixed updates = %d, want 3", game.steps)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 150 {
		t.Errorf("snapshot size = %v, want 200x150", b)
	}
}

func TestSpinAdvancesRotation(t *testing.T) {
	s := &sceneFile{Shapes: []shapeEntry{{Kind: "circle", Radius: 5, Spin: 60}}}
	game, err := newSceneGame(s)
	if err != nil {
		t.Fatal(err)
	}
	game.maxSteps = 2
	if !game.FixedUpdate(nil, 500*1e6) {
		t.Error("first update should continue")
	}
	if game.FixedUpdate(nil, 500*1e6) {
		t.Error("update reaching maxSteps should stop")
	}
	for tr := range game.world.All() {
		if tr.Rotation != 60 {
			t.Errorf("Rotation = %g, want 60 after one second", tr.Rotation)
		}
	}
}

func TestPulseFadesFill(t *testing.T) {
	p := pulse{from: papercut.Black, to: papercut.White, period: 2}
	tests := []struct {
		at   float64
		want papercut.Color
	}{
		{0, papercut.Black},
		{0.5, papercut.RGB(0.5, 0.5, 0.5)},
		{1, papercut.White},
		{2, papercut.Black},
	}
	for _, tt := range tests {
		got := p.at(tt.at)
		if math.Abs(got.R-tt.want.R) > 1e-9 || math.Abs(got.A-tt.want.A) > 1e-9 {
			t.Errorf("at(%g) = %v, want %v", tt.at, got, tt.want)
		}
	}

	s := &sceneFile{Shapes: []shapeEntry{
		{Kind: "rectangle", Size: [2]float64{4, 4}, Fill: "black", Pulse: "white", Period: 2},
		{Kind: "line", Length: 4, Pulse: "white"},
	}}
	game, err := newSceneGame(s)
	if err != nil {
		t.Fatal(err)
	}
	eng, err := papercut.NewEngine(game, render.NewSoftwareRenderer(nil), papercut.WithViewport(8, 8))
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.Init(); err != nil {
		t.Fatal(err)
	}
	game.FixedUpdate(eng, time.Second)

	for _, d := range game.world.All() {
		rect, ok := d.(*papercut.Rectangle)
		if !ok {
			continue
		}
		if rect.FillColor != papercut.White {
			t.Errorf("fill after half a period = %v, want white", rect.FillColor)
		}
		if rect.Stale() {
			t.Error("pulsing shape should be re-tessellated")
		}
		if got := rect.Geometry().Vertices[0].Color; got != papercut.White {
			t.Errorf("vertex color = %v, want white", got)
		}
	}
}
