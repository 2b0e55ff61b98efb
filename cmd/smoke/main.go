// Command smoke is a reference shell for driving the engine headlessly:
// load an HTML file, run one layout pass, optionally capture and dump a
// rendered frame to disk, and report a single JSON status line. It is
// meant for CI smoke tests, not interactive browsing.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gockobrowser/css"
	"gockobrowser/dom"
	"gockobrowser/gocko"
	"gockobrowser/gocko/box"
	"gockobrowser/gocko/readback"

	"github.com/hajimehoshi/ebiten/v2"
)

// result is the smoke harness's single line of machine-readable output.
type result struct {
	Status      string `json:"status"`
	ElapsedMs   int64  `json:"elapsed_ms"`
	FinalLayout string `json:"final_layout"`
	FrameDumped bool   `json:"frame_dumped"`
}

func main() {
	log, _ := zap.NewDevelopment()
	defer log.Sync()

	app := &cli.Command{
		Name:  "smoke",
		Usage: "headless engine smoke test: load an HTML file, layout, optionally dump a frame",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "html-file", Required: true, Usage: "path to the HTML document to load"},
			&cli.IntFlag{Name: "duration-ms", Value: 1000, Usage: "how long to keep the engine running before reporting"},
			&cli.StringFlag{Name: "dump-frame", Usage: "if set, write a captured frame to this PPM path"},
			&cli.IntFlag{Name: "width", Value: 1024, Usage: "viewport width in pixels"},
			&cli.IntFlag{Name: "height", Value: 768, Usage: "viewport height in pixels"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, log)
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Error("smoke run failed", zap.Error(err))
		enc := json.NewEncoder(os.Stdout)
		enc.Encode(result{Status: "fail", FinalLayout: err.Error()})
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command, log *zap.Logger) error {
	start := time.Now()

	htmlPath := cmd.String("html-file")
	durationMs := cmd.Int("duration-ms")
	dumpFrame := cmd.String("dump-frame")
	width := cmd.Int("width")
	height := cmd.Int("height")

	content, err := os.ReadFile(htmlPath)
	if err != nil {
		return fmt.Errorf("smoke: reading html file: %w", err)
	}

	domRoot := dom.ParseHTML(string(content))
	stylesheets := css.ExtractStylesheets(domRoot)
	css.ApplyStylesToTree(domRoot, stylesheets)

	engine := gocko.New()
	engine.SetDocument(domRoot, stylesheets)
	engine.ViewportWidth = float64(width)
	engine.ViewportHeight = float64(height)
	engine.Layout()

	log.Info("layout complete",
		zap.String("html_file", htmlPath),
		zap.Int("width", width), zap.Int("height", height),
	)

	var frameDumped bool
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case <-time.After(time.Duration(durationMs) * time.Millisecond):
			return nil
		case <-gctx.Done():
			return gctx.Err()
		}
	})

	if dumpFrame != "" {
		g.Go(func() error {
			if err := captureAndSave(engine, width, height, dumpFrame, log); err != nil {
				return err
			}
			frameDumped = true
			return nil
		})
	}

	var finalErr error
	if err := g.Wait(); err != nil {
		finalErr = multierr.Append(finalErr, err)
	}

	status := "pass"
	if finalErr != nil {
		status = "fail"
	}

	res := result{
		Status:      status,
		ElapsedMs:   time.Since(start).Milliseconds(),
		FinalLayout: describeLayout(engine),
		FrameDumped: frameDumped,
	}

	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(res); err != nil {
		finalErr = multierr.Append(finalErr, fmt.Errorf("smoke: encoding result: %w", err))
		return finalErr
	}
	if finalErr != nil {
		// The status line above already reports the failure; exit here
		// so main does not print a second line.
		log.Error("smoke run failed", zap.Error(finalErr))
		_ = log.Sync()
		os.Exit(1)
	}
	return nil
}

// captureAndSave paints the engine's current layout tree to an offscreen
// surface, reads it back through the GPU readback path, and writes it to
// disk as a PPM image.
func captureAndSave(engine *gocko.Engine, width, height int, path string, log *zap.Logger) error {
	surface := ebiten.NewImage(width, height)
	engine.Paint(surface, 0, 0)

	frame, err := readback.CaptureFrame(surface, readback.Metadata{
		Adapter:   "smoke-offscreen",
		Format:    "rgba8",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, log)
	if err != nil {
		return fmt.Errorf("smoke: capturing frame: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("smoke: creating dump file: %w", err)
	}
	defer out.Close()

	if err := readback.SaveRGBAAsPPM(out, frame.Width, frame.Height, frame.RGBA); err != nil {
		return fmt.Errorf("smoke: writing PPM: %w", err)
	}
	return nil
}

// describeLayout summarizes the resulting layout tree for the status
// line: total box count and root content dimensions.
func describeLayout(engine *gocko.Engine) string {
	if engine.LayoutTree == nil {
		return "no layout produced"
	}
	count := countBoxes(engine.LayoutTree)
	return fmt.Sprintf("%d boxes, root %.0fx%.0f", count, engine.LayoutTree.Width, engine.LayoutTree.Height)
}

func countBoxes(b *box.Box) int {
	if b == nil {
		return 0
	}
	count := 1
	for _, child := range b.Children {
		count += countBoxes(child)
	}
	return count
}
