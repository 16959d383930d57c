package main

import (
	"flag"
	"fmt"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// PNG export geometry. Each panel pixel becomes a square dot with a one
// pixel gap, echoing the OLED dot grid.
const (
	snapshotScale    = 4
	snapshotMargin   = 12
	snapshotCaptionH = 24
)

// renderFramePNG writes f to path as a scaled-up PNG with a caption under
// the panel area.
func renderFramePNG(f *Frame, caption, path string) error {
	w := displayWidth*snapshotScale + 2*snapshotMargin
	h := displayHeight*snapshotScale + 2*snapshotMargin + snapshotCaptionH

	dc := gg.NewContext(w, h)
	dc.SetColor(color.Black)
	dc.Clear()

	// Pale blue, close to how the physical panel reads.
	dc.SetColor(color.RGBA{R: 0x9f, G: 0xd8, B: 0xff, A: 0xff})
	for y := 0; y < displayHeight; y++ {
		for x := 0; x < displayWidth; x++ {
			if !f.Pixel(x, y) {
				continue
			}
			px := float64(snapshotMargin + x*snapshotScale)
			py := float64(snapshotMargin + y*snapshotScale)
			dc.DrawRectangle(px, py, snapshotScale-1, snapshotScale-1)
		}
	}
	dc.Fill()

	if caption != "" {
		ttf, err := truetype.Parse(gomono.TTF)
		if err != nil {
			return fmt.Errorf("parse caption font: %w", err)
		}
		face := truetype.NewFace(ttf, &truetype.Options{
			Size:    14,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		dc.SetFontFace(face)
		dc.SetColor(color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff})
		dc.DrawString(caption, snapshotMargin, float64(h-snapshotMargin))
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}

// runScreenshot renders a synthetic device state to a PNG without any
// hardware. Handy for eyeballing layout changes.
func runScreenshot(args []string) error {
	fs := flag.NewFlagSet("screenshot", flag.ContinueOnError)
	out := fs.String("o", "clickbrainz.png", "output PNG path")
	count := fs.Int64("count", 42, "counter value to render")
	high := fs.Int64("high-score", 1337, "high score value")
	message := fs.String("message", "", "transient message to show")
	stats := fs.Bool("stats", false, "render the stats screen instead of the counter")
	egg := fs.Int64("egg", 0, "render the easter egg animation for this value")
	eggFrame := fs.Int("egg-frame", 2, "animation frame for -egg")
	explosion := fs.Bool("explosion", false, "render a mid-flight score explosion")
	confetti := fs.Bool("confetti", false, "scatter confetti over the counter")
	seed := fs.Int64("seed", 1, "random seed for particle placement")
	if err := fs.Parse(args); err != nil {
		return err
	}

	now := time.Now()
	s := NewDeviceState(*high, *seed, now)
	s.Counter.Count = *count

	if *message != "" {
		s.Message.Show(*message, time.Minute, time.Second, now)
	}
	if *stats {
		s.ShowingStats = true
	}
	if *confetti {
		s.Confetti.Spawn(s.Rng, now)
		// Let the particles fall into view.
		t := now
		for i := 0; i < 8; i++ {
			t = t.Add(confettiStepMS * time.Millisecond)
			s.Confetti.Step(t)
		}
	}
	if *egg != 0 {
		e, ok := easterEggs[*egg]
		if !ok {
			return fmt.Errorf("no easter egg at %d", *egg)
		}
		s.Spectacle.StartEgg(e.Pattern, e.Score, s.Rng, now)
		steps := min(*eggFrame, e.Pattern.frameCount()-1)
		for i := 0; i <= steps; i++ {
			s.Spectacle.Egg.advanceFrame(s.Rng)
		}
	}
	if *explosion {
		s.Spectacle.StartExplosion(*high, s.Rng, now)
		for i := 0; i < 6; i++ {
			s.Spectacle.Explosion.advanceFrame(s.Rng)
		}
	}

	var f Frame
	composeFrame(&f, s)

	caption := fmt.Sprintf("clickbrainz %s", version)
	if err := renderFramePNG(&f, caption, *out); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", *out)
	return nil
}
