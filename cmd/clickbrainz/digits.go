package main

import "strconv"

// digitPatterns holds 3x5 bitmaps for the big score digits. Each row byte
// uses its low three bits, most significant bit leftmost. At the default
// scale of 3 a digit covers 9x15 pixels.
var digitPatterns = map[byte][5]byte{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b001, 0b001},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
}

// DrawLargeDigit renders a single digit scaled up, each pattern bit becoming
// a scale x scale block. Returns the horizontal advance to the next digit.
func (f *Frame) DrawLargeDigit(digit byte, x, y, scale int) int {
	pattern, ok := digitPatterns[digit]
	if !ok {
		return 0
	}
	for rowIdx, row := range pattern {
		for col := 0; col < 3; col++ {
			if row&(1<<(2-col)) != 0 {
				f.FillRect(x+col*scale, y+rowIdx*scale, scale, scale)
			}
		}
	}
	return 3*scale + 2
}

// DrawLargeNumber renders num at the default scale, centered horizontally,
// with the top of the digits at y.
func (f *Frame) DrawLargeNumber(num int64, y int) {
	s := strconv.FormatInt(num, 10)
	total := len(s)*digitAdvance - 2
	x := (displayWidth - total) / 2
	for i := 0; i < len(s); i++ {
		x += f.DrawLargeDigit(s[i], x, y, digitScale)
	}
}
