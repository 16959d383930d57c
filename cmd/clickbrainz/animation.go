package main

import (
	"math/rand"
	"strconv"
	"time"
)

// ============================================================================
// Animations
// ============================================================================
// All animation state is advanced by the reducer on ticks and rendered by the
// compositor. Nothing here blocks: a spectacle is a frame counter plus the
// current frame's randomness, regenerated on each advance so the renderer
// stays a pure function of state.
//
// The earlier firmware drove these pixel loops synchronously and froze input
// for their duration. Rendering is now tick-driven, but button events are
// still ignored while an exclusive spectacle runs so the outcome of a press
// sequence is unchanged.
// ============================================================================

// SpectacleKind selects the exclusive animation slot.
type SpectacleKind int

const (
	SpectacleNone SpectacleKind = iota
	SpectacleEgg
	SpectacleExplosion
)

// EggPattern identifies a bespoke easter-egg motif.
type EggPattern int

const (
	EggWink EggPattern = iota + 1
	EggFlames
	EggHorns
	EggMatrix
	EggEyeroll
)

func (p EggPattern) String() string {
	switch p {
	case EggWink:
		return "egg_wink"
	case EggFlames:
		return "egg_flames"
	case EggHorns:
		return "egg_horns"
	case EggMatrix:
		return "egg_matrix"
	case EggEyeroll:
		return "egg_eyeroll"
	default:
		return "egg_unknown"
	}
}

// frameCount is the fixed number of frames the motif plays.
func (p EggPattern) frameCount() int {
	switch p {
	case EggFlames, EggMatrix:
		return 8
	default:
		return 6
	}
}

// frameInterval is the per-frame hold time.
func (p EggPattern) frameInterval() time.Duration {
	switch p {
	case EggFlames, EggMatrix:
		return 75 * time.Millisecond
	default:
		return 100 * time.Millisecond
	}
}

// ==============================
// Confetti
// ==============================

// ConfettiParticle falls from above the canvas and drifts sideways.
type ConfettiParticle struct {
	X, Y  int
	Speed int
	Drift int
}

// ConfettiState is the non-exclusive particle overlay. It runs to depletion:
// particles are pruned once they fall past the canvas and the burst is over
// when none remain.
type ConfettiState struct {
	Particles  []ConfettiParticle
	NextStepAt time.Time
}

func (c *ConfettiState) Active() bool { return len(c.Particles) > 0 }

// Spawn replaces any running burst with a fresh one.
func (c *ConfettiState) Spawn(rng *rand.Rand, now time.Time) {
	c.Particles = c.Particles[:0]
	for i := 0; i < confettiCount; i++ {
		c.Particles = append(c.Particles, ConfettiParticle{
			X:     rng.Intn(displayWidth),
			Y:     -30 + rng.Intn(31),
			Speed: 3 + rng.Intn(4),
			Drift: -1 + rng.Intn(3),
		})
	}
	c.NextStepAt = now.Add(confettiStepMS * time.Millisecond)
}

// Step advances particles if a step is due and prunes fallen ones.
// Returns true if positions changed.
func (c *ConfettiState) Step(now time.Time) bool {
	if len(c.Particles) == 0 {
		return false
	}
	if now.Before(c.NextStepAt) {
		return false
	}
	c.NextStepAt = now.Add(confettiStepMS * time.Millisecond)

	active := c.Particles[:0]
	for _, p := range c.Particles {
		p.Y += p.Speed
		p.X += p.Drift
		if p.Y < confettiPruneY {
			active = append(active, p)
		}
	}
	c.Particles = active
	return true
}

// ==============================
// Easter egg motifs
// ==============================

// EggAnimation is the running state of one easter-egg motif. The per-frame
// random fields hold the CURRENT frame's values only; advanceFrame
// regenerates them.
type EggAnimation struct {
	Pattern EggPattern

	// Number is the count rendered big while the motif plays.
	Number int64

	// Frame is the currently displayed frame, -1 before the first advance.
	Frame int

	// FlameJitter is the vertical wobble for each flame tongue, indexed
	// [side][tongue]. Used by EggFlames.
	FlameJitter [2][3]int

	// MatrixCols are per-column phase offsets fixed at spawn; MatrixGlyphs
	// are this frame's random digits. Used by EggMatrix.
	MatrixCols   [16]int
	MatrixGlyphs [16]byte
}

func (e *EggAnimation) advanceFrame(rng *rand.Rand) {
	e.Frame++
	switch e.Pattern {
	case EggFlames:
		for side := 0; side < 2; side++ {
			for i := 0; i < 3; i++ {
				e.FlameJitter[side][i] = -2 + rng.Intn(5)
			}
		}
	case EggMatrix:
		for i := range e.MatrixGlyphs {
			e.MatrixGlyphs[i] = byte('0' + rng.Intn(10))
		}
	}
}

// ==============================
// Digit explosion
// ==============================

// ExplosionParticle is one flying digit of the destroyed value.
type ExplosionParticle struct {
	Digit  byte
	X, Y   float64
	VX, VY float64
	Scale  float64
}

// Pixel is a single lit point.
type Pixel struct {
	X, Y int
}

// ExplosionAnimation blows apart the digits of the wiped high score, then
// holds a BOOM card briefly. The reducer applies the actual zeroing when the
// whole sequence reports done.
type ExplosionAnimation struct {
	Particles []ExplosionParticle

	// Sparks are this frame's random flash pixels, present only during the
	// opening frames.
	Sparks []Pixel

	// Frame is the currently displayed frame, -1 before the first advance.
	Frame int

	Boom      bool
	BoomUntil time.Time

	// Destroyed is the value being wiped, kept for broadcasts.
	Destroyed int64
}

func (e *ExplosionAnimation) advanceFrame(rng *rand.Rand) {
	e.Frame++

	for i := range e.Particles {
		p := &e.Particles[i]
		p.VY += 0.8
		p.X += p.VX
		p.Y += p.VY
		if e.Frame > 10 {
			p.Scale -= 0.3
			if p.Scale < 1 {
				p.Scale = 1
			}
		}
	}

	e.Sparks = e.Sparks[:0]
	if e.Frame < 8 {
		for i := 0; i < 5; i++ {
			sx := 64 + (-30 + rng.Intn(61))
			sy := 30 + (-15 + rng.Intn(31))
			if sx >= 0 && sx < displayWidth && sy >= 0 && sy < displayHeight {
				e.Sparks = append(e.Sparks, Pixel{X: sx, Y: sy})
			}
		}
	}
}

// ==============================
// Spectacle slot
// ==============================

// SpectacleState holds the exclusive animation, if any. Button events are
// not applied while one is active.
type SpectacleState struct {
	Kind        SpectacleKind
	Egg         EggAnimation
	Explosion   ExplosionAnimation
	NextFrameAt time.Time
}

func (sp *SpectacleState) Active() bool { return sp.Kind != SpectacleNone }

// StartEgg begins an easter-egg motif over the given count value.
func (sp *SpectacleState) StartEgg(pattern EggPattern, number int64, rng *rand.Rand, now time.Time) {
	sp.Kind = SpectacleEgg
	sp.Egg = EggAnimation{
		Pattern: pattern,
		Number:  number,
		Frame:   -1,
	}
	if pattern == EggMatrix {
		for i := range sp.Egg.MatrixCols {
			sp.Egg.MatrixCols[i] = rng.Intn(16)
		}
	}
	sp.NextFrameAt = now
}

// StartExplosion begins the digit explosion over the given value.
func (sp *SpectacleState) StartExplosion(value int64, rng *rand.Rand, now time.Time) {
	digits := strconv.FormatInt(value, 10)
	total := len(digits)*digitAdvance - 2
	startX := float64((displayWidth - total) / 2)

	particles := make([]ExplosionParticle, 0, len(digits))
	for i := 0; i < len(digits); i++ {
		speed := float64(4 + rng.Intn(5))
		dir := 1.0
		if rng.Intn(2) == 0 {
			dir = -1.0
		}
		particles = append(particles, ExplosionParticle{
			Digit: digits[i],
			X:     startX + float64(i*digitAdvance),
			Y:     float64(scoreY),
			VX:    speed * dir * rng.Float64(),
			VY:    -speed + float64(-2+rng.Intn(5)),
			Scale: 3,
		})
	}

	sp.Kind = SpectacleExplosion
	sp.Explosion = ExplosionAnimation{
		Particles: particles,
		Frame:     -1,
		Destroyed: value,
	}
	sp.NextFrameAt = now
}

// Step advances the active spectacle if a frame is due.
//
// done is true exactly once, when the sequence (including the explosion's
// BOOM hold) has finished; the caller applies any completion effects.
// changed is true whenever the visible frame moved.
func (sp *SpectacleState) Step(rng *rand.Rand, now time.Time) (done, changed bool) {
	switch sp.Kind {
	case SpectacleEgg:
		if now.Before(sp.NextFrameAt) {
			return false, false
		}
		if sp.Egg.Frame+1 >= sp.Egg.Pattern.frameCount() {
			sp.Kind = SpectacleNone
			return true, true
		}
		sp.Egg.advanceFrame(rng)
		sp.NextFrameAt = now.Add(sp.Egg.Pattern.frameInterval())
		return false, true

	case SpectacleExplosion:
		if sp.Explosion.Boom {
			if now.Before(sp.Explosion.BoomUntil) {
				return false, false
			}
			sp.Kind = SpectacleNone
			return true, true
		}
		if now.Before(sp.NextFrameAt) {
			return false, false
		}
		if sp.Explosion.Frame+1 >= explosionFrames {
			sp.Explosion.Boom = true
			sp.Explosion.BoomUntil = now.Add(boomHoldMS * time.Millisecond)
			return false, true
		}
		sp.Explosion.advanceFrame(rng)
		sp.NextFrameAt = now.Add(explosionFrameMS * time.Millisecond)
		return false, true
	}

	return false, false
}
