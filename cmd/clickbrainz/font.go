package main

// 8x8 cell font for the panel text rows. Each glyph is eight row bytes, top
// to bottom, bit 7 leftmost. Glyphs sit in the left five columns of the cell
// so sixteen characters fill a 128 pixel row, which is the grid every text
// coordinate in the compositor assumes.
var font8x8 = [95][8]byte{
	' ' - ' ':  {0, 0, 0, 0, 0, 0, 0, 0},
	'!' - ' ':  {0b00100000, 0b00100000, 0b00100000, 0b00100000, 0, 0, 0b00100000, 0},
	'"' - ' ':  {0b01010000, 0b01010000, 0b01010000, 0, 0, 0, 0, 0},
	'#' - ' ':  {0b01010000, 0b01010000, 0b11111000, 0b01010000, 0b11111000, 0b01010000, 0b01010000, 0},
	'$' - ' ':  {0b00100000, 0b01111000, 0b10100000, 0b01110000, 0b00101000, 0b11110000, 0b00100000, 0},
	'%' - ' ':  {0b11000000, 0b11001000, 0b00010000, 0b00100000, 0b01000000, 0b10011000, 0b00011000, 0},
	'&' - ' ':  {0b01100000, 0b10010000, 0b10100000, 0b01000000, 0b10101000, 0b10010000, 0b01101000, 0},
	'\'' - ' ': {0b01100000, 0b00100000, 0b01000000, 0, 0, 0, 0, 0},
	'(' - ' ':  {0b00010000, 0b00100000, 0b01000000, 0b01000000, 0b01000000, 0b00100000, 0b00010000, 0},
	')' - ' ':  {0b01000000, 0b00100000, 0b00010000, 0b00010000, 0b00010000, 0b00100000, 0b01000000, 0},
	'*' - ' ':  {0, 0b00100000, 0b10101000, 0b01110000, 0b10101000, 0b00100000, 0, 0},
	'+' - ' ':  {0, 0b00100000, 0b00100000, 0b11111000, 0b00100000, 0b00100000, 0, 0},
	',' - ' ':  {0, 0, 0, 0, 0b01100000, 0b00100000, 0b01000000, 0},
	'-' - ' ':  {0, 0, 0, 0b11111000, 0, 0, 0, 0},
	'.' - ' ':  {0, 0, 0, 0, 0, 0b01100000, 0b01100000, 0},
	'/' - ' ':  {0, 0b00001000, 0b00010000, 0b00100000, 0b01000000, 0b10000000, 0, 0},
	'0' - ' ':  {0b01110000, 0b10001000, 0b10011000, 0b10101000, 0b11001000, 0b10001000, 0b01110000, 0},
	'1' - ' ':  {0b00100000, 0b01100000, 0b00100000, 0b00100000, 0b00100000, 0b00100000, 0b01110000, 0},
	'2' - ' ':  {0b01110000, 0b10001000, 0b00001000, 0b00010000, 0b00100000, 0b01000000, 0b11111000, 0},
	'3' - ' ':  {0b11111000, 0b00010000, 0b00100000, 0b00010000, 0b00001000, 0b10001000, 0b01110000, 0},
	'4' - ' ':  {0b00010000, 0b00110000, 0b01010000, 0b10010000, 0b11111000, 0b00010000, 0b00010000, 0},
	'5' - ' ':  {0b11111000, 0b10000000, 0b11110000, 0b00001000, 0b00001000, 0b10001000, 0b01110000, 0},
	'6' - ' ':  {0b00110000, 0b01000000, 0b10000000, 0b11110000, 0b10001000, 0b10001000, 0b01110000, 0},
	'7' - ' ':  {0b11111000, 0b00001000, 0b00010000, 0b00100000, 0b01000000, 0b01000000, 0b01000000, 0},
	'8' - ' ':  {0b01110000, 0b10001000, 0b10001000, 0b01110000, 0b10001000, 0b10001000, 0b01110000, 0},
	'9' - ' ':  {0b01110000, 0b10001000, 0b10001000, 0b01111000, 0b00001000, 0b00010000, 0b01100000, 0},
	':' - ' ':  {0, 0b01100000, 0b01100000, 0, 0b01100000, 0b01100000, 0, 0},
	';' - ' ':  {0, 0b01100000, 0b01100000, 0, 0b01100000, 0b00100000, 0b01000000, 0},
	'<' - ' ':  {0b00010000, 0b00100000, 0b01000000, 0b10000000, 0b01000000, 0b00100000, 0b00010000, 0},
	'=' - ' ':  {0, 0, 0b11111000, 0, 0b11111000, 0, 0, 0},
	'>' - ' ':  {0b01000000, 0b00100000, 0b00010000, 0b00001000, 0b00010000, 0b00100000, 0b01000000, 0},
	'?' - ' ':  {0b01110000, 0b10001000, 0b00001000, 0b00010000, 0b00100000, 0, 0b00100000, 0},
	'@' - ' ':  {0b01110000, 0b10001000, 0b00001000, 0b01101000, 0b10101000, 0b10101000, 0b01110000, 0},
	'A' - ' ':  {0b01110000, 0b10001000, 0b10001000, 0b10001000, 0b11111000, 0b10001000, 0b10001000, 0},
	'B' - ' ':  {0b11110000, 0b10001000, 0b10001000, 0b11110000, 0b10001000, 0b10001000, 0b11110000, 0},
	'C' - ' ':  {0b01110000, 0b10001000, 0b10000000, 0b10000000, 0b10000000, 0b10001000, 0b01110000, 0},
	'D' - ' ':  {0b11100000, 0b10010000, 0b10001000, 0b10001000, 0b10001000, 0b10010000, 0b11100000, 0},
	'E' - ' ':  {0b11111000, 0b10000000, 0b10000000, 0b11110000, 0b10000000, 0b10000000, 0b11111000, 0},
	'F' - ' ':  {0b11111000, 0b10000000, 0b10000000, 0b11110000, 0b10000000, 0b10000000, 0b10000000, 0},
	'G' - ' ':  {0b01110000, 0b10001000, 0b10000000, 0b10111000, 0b10001000, 0b10001000, 0b01111000, 0},
	'H' - ' ':  {0b10001000, 0b10001000, 0b10001000, 0b11111000, 0b10001000, 0b10001000, 0b10001000, 0},
	'I' - ' ':  {0b01110000, 0b00100000, 0b00100000, 0b00100000, 0b00100000, 0b00100000, 0b01110000, 0},
	'J' - ' ':  {0b00111000, 0b00010000, 0b00010000, 0b00010000, 0b00010000, 0b10010000, 0b01100000, 0},
	'K' - ' ':  {0b10001000, 0b10010000, 0b10100000, 0b11000000, 0b10100000, 0b10010000, 0b10001000, 0},
	'L' - ' ':  {0b10000000, 0b10000000, 0b10000000, 0b10000000, 0b10000000, 0b10000000, 0b11111000, 0},
	'M' - ' ':  {0b10001000, 0b11011000, 0b10101000, 0b10101000, 0b10001000, 0b10001000, 0b10001000, 0},
	'N' - ' ':  {0b10001000, 0b10001000, 0b11001000, 0b10101000, 0b10011000, 0b10001000, 0b10001000, 0},
	'O' - ' ':  {0b01110000, 0b10001000, 0b10001000, 0b10001000, 0b10001000, 0b10001000, 0b01110000, 0},
	'P' - ' ':  {0b11110000, 0b10001000, 0b10001000, 0b11110000, 0b10000000, 0b10000000, 0b10000000, 0},
	'Q' - ' ':  {0b01110000, 0b10001000, 0b10001000, 0b10001000, 0b10101000, 0b10010000, 0b01101000, 0},
	'R' - ' ':  {0b11110000, 0b10001000, 0b10001000, 0b11110000, 0b10100000, 0b10010000, 0b10001000, 0},
	'S' - ' ':  {0b01111000, 0b10000000, 0b10000000, 0b01110000, 0b00001000, 0b00001000, 0b11110000, 0},
	'T' - ' ':  {0b11111000, 0b00100000, 0b00100000, 0b00100000, 0b00100000, 0b00100000, 0b00100000, 0},
	'U' - ' ':  {0b10001000, 0b10001000, 0b10001000, 0b10001000, 0b10001000, 0b10001000, 0b01110000, 0},
	'V' - ' ':  {0b10001000, 0b10001000, 0b10001000, 0b10001000, 0b10001000, 0b01010000, 0b00100000, 0},
	'W' - ' ':  {0b10001000, 0b10001000, 0b10001000, 0b10101000, 0b10101000, 0b10101000, 0b01010000, 0},
	'X' - ' ':  {0b10001000, 0b10001000, 0b01010000, 0b00100000, 0b01010000, 0b10001000, 0b10001000, 0},
	'Y' - ' ':  {0b10001000, 0b10001000, 0b10001000, 0b01010000, 0b00100000, 0b00100000, 0b00100000, 0},
	'Z' - ' ':  {0b11111000, 0b00001000, 0b00010000, 0b00100000, 0b01000000, 0b10000000, 0b11111000, 0},
	'[' - ' ':  {0b01110000, 0b01000000, 0b01000000, 0b01000000, 0b01000000, 0b01000000, 0b01110000, 0},
	'\\' - ' ': {0, 0b10000000, 0b01000000, 0b00100000, 0b00010000, 0b00001000, 0, 0},
	']' - ' ':  {0b01110000, 0b00010000, 0b00010000, 0b00010000, 0b00010000, 0b00010000, 0b01110000, 0},
	'^' - ' ':  {0b00100000, 0b01010000, 0b10001000, 0, 0, 0, 0, 0},
	'_' - ' ':  {0, 0, 0, 0, 0, 0, 0b11111000, 0},
	'`' - ' ':  {0b01000000, 0b00100000, 0b00010000, 0, 0, 0, 0, 0},
	'a' - ' ':  {0, 0, 0b01110000, 0b00001000, 0b01111000, 0b10001000, 0b01111000, 0},
	'b' - ' ':  {0b10000000, 0b10000000, 0b11110000, 0b10001000, 0b10001000, 0b10001000, 0b11110000, 0},
	'c' - ' ':  {0, 0, 0b01110000, 0b10000000, 0b10000000, 0b10001000, 0b01110000, 0},
	'd' - ' ':  {0b00001000, 0b00001000, 0b01111000, 0b10001000, 0b10001000, 0b10001000, 0b01111000, 0},
	'e' - ' ':  {0, 0, 0b01110000, 0b10001000, 0b11111000, 0b10000000, 0b01110000, 0},
	'f' - ' ':  {0b00110000, 0b01001000, 0b01000000, 0b11100000, 0b01000000, 0b01000000, 0b01000000, 0},
	'g' - ' ':  {0, 0b01111000, 0b10001000, 0b10001000, 0b01111000, 0b00001000, 0b01110000, 0},
	'h' - ' ':  {0b10000000, 0b10000000, 0b10110000, 0b11001000, 0b10001000, 0b10001000, 0b10001000, 0},
	'i' - ' ':  {0b00100000, 0, 0b01100000, 0b00100000, 0b00100000, 0b00100000, 0b01110000, 0},
	'j' - ' ':  {0b00010000, 0, 0b00110000, 0b00010000, 0b00010000, 0b10010000, 0b01100000, 0},
	'k' - ' ':  {0b10000000, 0b10000000, 0b10010000, 0b10100000, 0b11000000, 0b10100000, 0b10010000, 0},
	'l' - ' ':  {0b01100000, 0b00100000, 0b00100000, 0b00100000, 0b00100000, 0b00100000, 0b01110000, 0},
	'm' - ' ':  {0, 0, 0b11010000, 0b10101000, 0b10101000, 0b10001000, 0b10001000, 0},
	'n' - ' ':  {0, 0, 0b10110000, 0b11001000, 0b10001000, 0b10001000, 0b10001000, 0},
	'o' - ' ':  {0, 0, 0b01110000, 0b10001000, 0b10001000, 0b10001000, 0b01110000, 0},
	'p' - ' ':  {0, 0, 0b11110000, 0b10001000, 0b11110000, 0b10000000, 0b10000000, 0},
	'q' - ' ':  {0, 0, 0b01101000, 0b10011000, 0b01111000, 0b00001000, 0b00001000, 0},
	'r' - ' ':  {0, 0, 0b10110000, 0b11001000, 0b10000000, 0b10000000, 0b10000000, 0},
	's' - ' ':  {0, 0, 0b01110000, 0b10000000, 0b01110000, 0b00001000, 0b11110000, 0},
	't' - ' ':  {0b01000000, 0b01000000, 0b11100000, 0b01000000, 0b01000000, 0b01001000, 0b00110000, 0},
	'u' - ' ':  {0, 0, 0b10001000, 0b10001000, 0b10001000, 0b10011000, 0b01101000, 0},
	'v' - ' ':  {0, 0, 0b10001000, 0b10001000, 0b10001000, 0b01010000, 0b00100000, 0},
	'w' - ' ':  {0, 0, 0b10001000, 0b10001000, 0b10101000, 0b10101000, 0b01010000, 0},
	'x' - ' ':  {0, 0, 0b10001000, 0b01010000, 0b00100000, 0b01010000, 0b10001000, 0},
	'y' - ' ':  {0, 0, 0b10001000, 0b10001000, 0b01111000, 0b00001000, 0b01110000, 0},
	'z' - ' ':  {0, 0, 0b11111000, 0b00010000, 0b00100000, 0b01000000, 0b11111000, 0},
	'{' - ' ':  {0b00010000, 0b00100000, 0b00100000, 0b01000000, 0b00100000, 0b00100000, 0b00010000, 0},
	'|' - ' ':  {0b00100000, 0b00100000, 0b00100000, 0b00100000, 0b00100000, 0b00100000, 0b00100000, 0},
	'}' - ' ':  {0b01000000, 0b00100000, 0b00100000, 0b00010000, 0b00100000, 0b00100000, 0b01000000, 0},
	'~' - ' ':  {0, 0, 0b01000000, 0b10101000, 0b00010000, 0, 0, 0},
}

// glyphFor returns the bitmap for c, substituting '?' for anything outside
// printable ASCII.
func glyphFor(c byte) [8]byte {
	if c < ' ' || c > '~' {
		c = '?'
	}
	return font8x8[c-' ']
}
