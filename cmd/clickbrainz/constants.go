package main

// Linux input event types and codes (from <linux/input.h>)
const (
	EV_KEY = 0x01

	KEY_BACKSPACE = 14
	KEY_ENTER     = 28
	KEY_SPACE     = 57
	KEY_KPPLUS    = 78
)

// Input event value constants
const (
	evValueRelease = 0
	evValuePress   = 1
	evValueRepeat  = 2
)

// Display geometry. The panel is a 128x64 1-bit OLED; the terminal and
// screenshot backends render the same logical frame.
const (
	displayWidth  = 128
	displayHeight = 64

	// 3x5 digit patterns scaled up for the big score readout.
	digitScale   = 3
	digitAdvance = digitScale*3 + 2 // glyph width + gap

	scoreY = 24 // top of the big score on the main screen
	statsY = 28 // top of the big score on the stats screen

	headerTitleY = 2  // top of the title row
	headerLineY  = 14 // horizontal rule under the title
	messageLineY = 44 // horizontal rule above the message area
	messageRow1Y = 48
	messageRow2Y = 56

	fontWidth  = 8 // monospace cell width of the 8x8 text font
	fontHeight = 8

	// Longest run of characters that fits one display row.
	messageCols = displayWidth / fontWidth
)

// Input classification defaults (ms unless noted).
const (
	defaultDebounceMS   = 200
	defaultHoldMS       = 1000
	defaultComboHoldMS  = 3000
	defaultDimTimeoutMS = 30000

	defaultTickHz = 100
)

// Message and animation pacing.
const (
	defaultMessageDurationMS = 4000
	defaultScrollStepMS      = 200

	confettiStepMS   = 50
	confettiCount    = 15
	confettiPruneY   = 70
	explosionFrameMS = 50
	explosionFrames  = 20
	boomHoldMS       = 500
)

// Taunt scheduling defaults.
const (
	defaultTauntMinClicks   = 20
	defaultTauntChanceOneIn = 40
	defaultRemoteEvery      = 4
	defaultRemoteBatch      = 10
	defaultTauntMaxLen      = 32

	milestoneEvery = 100
)

// Panel contrast levels for the idle dimmer.
const (
	brightnessFull byte = 255
	brightnessDim  byte = 1
)
