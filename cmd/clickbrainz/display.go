package main

// ============================================================================
// Frame buffer and display contract
// ============================================================================
// The compositor draws a full frame into a Frame, then the daemon hands the
// finished frame to whichever Display backend is configured. Backends never
// see partial draws, which keeps slow transports (I2C) off the event loop's
// critical path and makes frames directly comparable in tests.
// ============================================================================

// Display is a render sink for finished frames.
type Display interface {
	// Render pushes a complete frame to the device.
	Render(f *Frame) error

	// SetBrightness adjusts panel brightness, 0 to 255. The panel stays
	// readable at 1, which is what the idle dimmer uses.
	SetBrightness(level byte) error

	Close() error
}

// Frame is a 1-bit frame buffer matching the panel geometry, one bit per
// pixel, row major, bit 7 leftmost within each byte. (0,0) is top left.
// Draws outside the bounds are clipped, not errors, so animation code can
// let particles fly off the edges.
type Frame struct {
	pix [displayHeight][displayWidth / 8]byte
}

func (f *Frame) Clear() {
	f.pix = [displayHeight][displayWidth / 8]byte{}
}

func (f *Frame) SetPixel(x, y int) {
	if x < 0 || x >= displayWidth || y < 0 || y >= displayHeight {
		return
	}
	f.pix[y][x>>3] |= 0x80 >> (x & 7)
}

func (f *Frame) Pixel(x, y int) bool {
	if x < 0 || x >= displayWidth || y < 0 || y >= displayHeight {
		return false
	}
	return f.pix[y][x>>3]&(0x80>>(x&7)) != 0
}

func (f *Frame) FillRect(x, y, w, h int) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			f.SetPixel(px, py)
		}
	}
}

func (f *Frame) HLine(x, y, w int) {
	for px := x; px < x+w; px++ {
		f.SetPixel(px, y)
	}
}

// DrawText renders s in the 8x8 cell font with the cell's top left corner at
// (x, y). Multi-byte runes are outside the panel's character set and render
// as their individual bytes, same as any other unknown input.
func (f *Frame) DrawText(x, y int, s string) {
	for i := 0; i < len(s); i++ {
		f.drawGlyph(x+i*fontWidth, y, s[i])
	}
}

func (f *Frame) drawGlyph(x, y int, c byte) {
	glyph := glyphFor(c)
	for row, bits := range glyph {
		if bits == 0 {
			continue
		}
		for col := 0; col < fontWidth; col++ {
			if bits&(0x80>>col) != 0 {
				f.SetPixel(x+col, y+row)
			}
		}
	}
}

// Equal reports whether two frames hold identical pixels.
func (f *Frame) Equal(other *Frame) bool {
	return f.pix == other.pix
}

// nullDisplay discards frames. Used for headless runs where only the IPC and
// monitor surfaces matter.
type nullDisplay struct{}

func (nullDisplay) Render(*Frame) error      { return nil }
func (nullDisplay) SetBrightness(byte) error { return nil }
func (nullDisplay) Close() error             { return nil }
