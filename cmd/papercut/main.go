// Command papercut shows a scene of shapes in a window, or renders one
// frame of it to a PNG file.
//
// Usage:
//
//	papercut [-scene scene.yaml] [-width 800] [-height 600] [-snapshot out.png] [-v]
//
// Without -scene a built-in scene with every shape kind is used. Space
// pauses and resumes the animation.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/papercut"
	"github.com/gogpu/papercut/render"
)

func main() {
	var (
		scenePath = flag.String("scene", "", "YAML scene file (default: built-in scene)")
		width     = flag.Int("width", 0, "viewport width (default: scene width or 800)")
		height    = flag.Int("height", 0, "viewport height (default: scene height or 600)")
		snapshot  = flag.String("snapshot", "", "render one frame to this PNG file and exit")
		steps     = flag.Int("steps", 0, "fixed updates to run before the snapshot")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		papercut.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	scene := defaultScene()
	if *scenePath != "" {
		s, err := loadScene(*scenePath)
		if err != nil {
			log.Fatal(err)
		}
		scene = s
	}
	w, h := viewportSize(scene, *width, *height)

	opts, err := engineOptions(scene)
	if err != nil {
		log.Fatal(err)
	}
	game, err := newSceneGame(scene)
	if err != nil {
		log.Fatal(err)
	}

	if *snapshot != "" {
		if err := renderSnapshot(*snapshot, w, h, *steps, game, opts...); err != nil {
			log.Fatal(err)
		}
		log.Printf("Snapshot saved to %s (%dx%d)", *snapshot, w, h)
		return
	}

	if err := runWindow("papercut", w, h, game, opts...); err != nil {
		log.Fatal(err)
	}
}

// viewportSize picks the flag size, then the scene size, then 800×600.
func viewportSize(s *sceneFile, width, height int) (int, int) {
	def := papercut.DefaultConfig()
	if width <= 0 {
		width = s.Width
	}
	if width <= 0 {
		width = def.Width
	}
	if height <= 0 {
		height = s.Height
	}
	if height <= 0 {
		height = def.Height
	}
	return width, height
}

func engineOptions(s *sceneFile) ([]papercut.Option, error) {
	bg, err := s.clearColor()
	if err != nil {
		return nil, fmt.Errorf("scene clear color: %w", err)
	}
	opts := []papercut.Option{papercut.WithClearColor(bg)}
	if s.Tolerance > 0 {
		opts = append(opts, papercut.WithTolerance(s.Tolerance))
	}
	return opts, nil
}

// renderSnapshot runs steps fixed updates on a simulated clock, renders
// one frame on the CPU and writes it to path.
func renderSnapshot(path string, width, height, steps int, game *sceneGame, opts ...papercut.Option) error {
	r := render.NewSoftwareRenderer(nil)
	opts = append(opts, papercut.WithViewport(width, height))
	eng, err := papercut.NewEngine(game, r, opts...)
	if err != nil {
		return err
	}

	now := time.Unix(0, 0)
	if _, err := eng.Frame(now); err != nil {
		return err
	}
	step := eng.Clock().Step()
	for i := 0; i < steps; i++ {
		now = now.Add(step)
		if _, err := eng.Frame(now); err != nil {
			return err
		}
	}
	return r.Target().SavePNG(path)
}
