package main

// ============================================================================
// Compositor
// ============================================================================
// composeFrame turns the device state into one finished frame. It reads state
// and writes pixels, nothing else: all motion lives in the reducer's tick
// handling, so rendering the same state twice yields identical frames.
// ============================================================================

// composeFrame renders the screen for the current state into f.
func composeFrame(f *Frame, s *DeviceState) {
	f.Clear()
	switch {
	case s.Spectacle.Kind == SpectacleEgg:
		renderEggFrame(f, &s.Spectacle.Egg)
	case s.Spectacle.Kind == SpectacleExplosion:
		renderExplosionFrame(f, &s.Spectacle.Explosion)
	case s.ShowingStats:
		renderStatsScreen(f, s.Counter.HighScore)
	default:
		renderMainScreen(f, s)
	}
}

func drawHeader(f *Frame, title string, x int) {
	f.DrawText(x, headerTitleY, title)
	f.HLine(0, headerLineY, displayWidth)
}

func renderMainScreen(f *Frame, s *DeviceState) {
	drawHeader(f, "CLICK COUNTER", 10)
	f.DrawLargeNumber(s.Counter.Count, scoreY)

	for _, p := range s.Confetti.Particles {
		if p.X >= 0 && p.X < displayWidth && p.Y >= 0 && p.Y < displayHeight {
			f.FillRect(p.X, p.Y, 3, 2)
		}
	}

	if !s.Message.Active {
		return
	}
	f.HLine(0, messageLineY, displayWidth)
	if s.Message.Line1 != "" {
		x1 := (displayWidth - len(s.Message.Line1)*fontWidth) / 2
		f.DrawText(max(0, x1), messageRow1Y, s.Message.Line1)
	}
	if s.Message.Line2 != "" {
		if len(s.Message.Line2) <= messageCols {
			x2 := (displayWidth - len(s.Message.Line2)*fontWidth) / 2
			f.DrawText(max(0, x2), messageRow2Y, s.Message.Line2)
		} else {
			// Over-wide second line scrolls through a full-width window.
			f.DrawText(0, messageRow2Y, s.Message.VisibleLine2())
		}
	}
}

func renderStatsScreen(f *Frame, highScore int64) {
	drawHeader(f, "HIGH SCORE", 24)
	f.DrawLargeNumber(highScore, statsY)
}

func renderEggFrame(f *Frame, e *EggAnimation) {
	drawHeader(f, "CLICK COUNTER", 10)
	f.DrawLargeNumber(e.Number, scoreY)

	// Frame is -1 between spawn and the first tick; no motif yet.
	if e.Frame < 0 {
		return
	}

	switch e.Pattern {
	case EggWink:
		if e.Frame%2 == 0 {
			f.DrawText(56, 48, ";)")
		} else {
			f.DrawText(56, 48, ":)")
		}

	case EggFlames:
		for side, baseX := range [2]int{8, 108} {
			baseY := 45 - e.Frame%5
			for i := 0; i < 3; i++ {
				y := baseY - i*4 + e.FlameJitter[side][i]
				w := 12 - i*3
				x := baseX - w/2 + 6
				if y > headerLineY && y < displayHeight {
					f.FillRect(x, y, w, 3)
				}
			}
		}

	case EggHorns:
		if e.Frame%2 == 0 {
			for i := 0; i < 8; i++ {
				f.SetPixel(20+i, 48-i)
				f.SetPixel(21+i, 48-i)
				f.SetPixel(107-i, 48-i)
				f.SetPixel(106-i, 48-i)
			}
		}
		f.DrawText(20, 52, `\m/    \m/`)

	case EggMatrix:
		for i, col := range e.MatrixCols {
			y := (col+e.Frame*3)%50 + headerLineY
			f.drawGlyph(i*fontWidth, y, e.MatrixGlyphs[i])
		}

	case EggEyeroll:
		eyeX := 48 + e.Frame%4 - 2
		f.DrawText(40, 50, "(")
		f.DrawText(eyeX, 50, "-")
		f.DrawText(60, 50, "_")
		f.DrawText(eyeX+24, 50, "-")
		f.DrawText(80, 50, ")")
	}
}

func renderExplosionFrame(f *Frame, e *ExplosionAnimation) {
	drawHeader(f, "CLICK COUNTER", 10)

	if e.Boom {
		f.DrawText(44, 35, "BOOM!")
		return
	}

	// Before the first advance the particles still sit in their spawn
	// positions, so this renders the intact value.
	for _, p := range e.Particles {
		if p.X >= -20 && p.X <= 140 && p.Y >= -20 && p.Y <= 80 {
			f.DrawLargeDigit(p.Digit, int(p.X), int(p.Y), max(1, int(p.Scale)))
		}
	}
	for _, spark := range e.Sparks {
		f.SetPixel(spark.X, spark.Y)
	}
}
