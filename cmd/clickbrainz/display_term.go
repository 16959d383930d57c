package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// terminalDisplay renders the panel into a tcell screen for development
// without hardware, two panel rows per terminal row using half blocks. It
// doubles as the terminal input source: terminals deliver key presses but no
// releases, so instead of feeding the level classifier it emits the
// classified events directly.
type terminalDisplay struct {
	screen tcell.Screen
	logger *slog.Logger

	// mu guards the screen and the repaint state. Render runs on the daemon
	// goroutine while SetBrightness arrives from the command executor.
	mu       sync.Mutex
	last     Frame
	haveLast bool
	dimmed   bool

	// statsHeld tracks the 'h' toggle standing in for a held reset button.
	statsHeld bool
}

func newTerminalDisplay(logger *slog.Logger) (*terminalDisplay, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal screen: %w", err)
	}
	screen.Clear()
	screen.HideCursor()
	return &terminalDisplay{screen: screen, logger: logger}, nil
}

func (d *terminalDisplay) Render(f *Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = *f
	d.haveLast = true
	d.paintLocked()
	return nil
}

// SetBrightness maps the panel contrast range onto two terminal styles.
func (d *terminalDisplay) SetBrightness(level byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	dimmed := level < 128
	if dimmed == d.dimmed {
		return nil
	}
	d.dimmed = dimmed
	if d.haveLast {
		d.paintLocked()
	}
	return nil
}

func (d *terminalDisplay) Close() error {
	d.screen.Fini()
	return nil
}

func (d *terminalDisplay) paintLocked() {
	on := tcell.ColorWhite
	if d.dimmed {
		on = tcell.ColorGray
	}
	off := tcell.ColorBlack

	for y := 0; y < displayHeight; y += 2 {
		for x := 0; x < displayWidth; x++ {
			top, bottom := off, off
			if d.last.Pixel(x, y) {
				top = on
			}
			if d.last.Pixel(x, y+1) {
				bottom = on
			}
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			d.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}

	help := "c/enter: count   r: reset   h: hold   s: secret   q: quit"
	helpStyle := tcell.StyleDefault.Dim(true)
	for i, r := range help {
		d.screen.SetContent(i, displayHeight/2+1, r, nil, helpStyle)
	}

	d.screen.Show()
}

// Run feeds key presses into the event channel until ctx is cancelled or the
// user quits, in which case stop is invoked. Call this only when the terminal
// input backend is selected.
func (d *terminalDisplay) Run(ctx context.Context, events chan<- Event, stop context.CancelFunc) error {
	tcellEvents := make(chan tcell.Event, 10)
	go func() {
		for {
			// Fini unblocks PollEvent with nil during shutdown.
			ev := d.screen.PollEvent()
			if ev == nil {
				close(tcellEvents)
				return
			}
			tcellEvents <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case tev, ok := <-tcellEvents:
			if !ok {
				return nil
			}
			switch tev := tev.(type) {
			case *tcell.EventResize:
				d.mu.Lock()
				d.screen.Sync()
				if d.haveLast {
					d.paintLocked()
				}
				d.mu.Unlock()
			case *tcell.EventKey:
				for _, ev := range d.mapKey(tev) {
					select {
					case events <- ev:
					case <-ctx.Done():
						return nil
					}
				}
				if isQuitKey(tev) {
					d.logger.Info("quit requested from terminal")
					stop()
					return nil
				}
			}
		}
	}
}

// mapKey translates a key press into classified button events.
func (d *terminalDisplay) mapKey(ev *tcell.EventKey) []Event {
	switch ev.Key() {
	case tcell.KeyEnter:
		return []Event{CountTap{}}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'c', ' ':
			return []Event{CountTap{}}
		case 'r':
			return []Event{ResetTap{}}
		case 'h':
			// Toggle: terminals cannot hold a key, so one press enters the
			// stats view and the next leaves it.
			if d.statsHeld {
				d.statsHeld = false
				return []Event{ResetHoldEnd{}}
			}
			d.statsHeld = true
			return []Event{ResetHoldStart{}, ResetHoldActive{}}
		case 's':
			return []Event{SecretCombo{}}
		}
	}
	return nil
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}
