package main

import (
	"errors"
	"flag"
	"fmt"
)

// ============================================================================
// inject subcommand
// ============================================================================
// Sends a single event to a running daemon over the IPC socket. Handy for
// scripts (pin a message when the build breaks) and for exercising a unit
// without touching its buttons.
//
// Usage: clickbrainz inject [OPTIONS] EVENT_TYPE
// ============================================================================

func printInjectUsage() {
	fmt.Printf("clickbrainz inject v%s\n", version)
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  clickbrainz inject [OPTIONS] EVENT_TYPE")
	fmt.Println()
	fmt.Println("EVENT TYPES:")
	fmt.Println("  count_tap          One debounced press of the count button")
	fmt.Println("  reset_tap          Short press of the reset button (resets the count)")
	fmt.Println("  reset_hold_start   Press edge of the reset button")
	fmt.Println("  reset_hold_active  Reset hold threshold crossed (shows stats view)")
	fmt.Println("  reset_hold_end     Reset hold released (hides stats view)")
	fmt.Println("  secret_combo       Both-buttons combo (wipes the high score)")
	fmt.Println("  show_message       Pin a transient message (requires -text)")
	fmt.Println("  fetch_taunts       Force a remote taunt refill")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -ipc-socket string")
	fmt.Println("        Unix domain socket path for IPC (default \"/tmp/clickbrainz.sock\")")
	fmt.Println()
	fmt.Println("  -text string")
	fmt.Println("        Message text (show_message only)")
	fmt.Println()
	fmt.Println("  -duration-ms int")
	fmt.Println("        Message duration override in milliseconds (show_message only;")
	fmt.Println("        0 uses the daemon's configured default)")
	fmt.Println()
	fmt.Println("  -count int")
	fmt.Println("        Batch size override (fetch_taunts only; 0 uses the configured size)")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  clickbrainz inject count_tap")
	fmt.Println("  clickbrainz inject show_message -text \"BUILD BROKE\" -duration-ms 8000")
	fmt.Println("  clickbrainz inject fetch_taunts -count 10")
	fmt.Println()
}

// runInject parses the subcommand flags, builds the event and delivers it.
func runInject(args []string) error {
	fs := flag.NewFlagSet("inject", flag.ContinueOnError)
	fs.Usage = printInjectUsage

	socketPath := fs.String("ipc-socket", "/tmp/clickbrainz.sock", "Unix domain socket path for IPC")
	text := fs.String("text", "", "Message text (show_message only)")
	durationMS := fs.Int("duration-ms", 0, "Message duration override in ms (show_message only)")
	count := fs.Int("count", 0, "Batch size override (fetch_taunts only)")
	showHelp := fs.Bool("help", false, "Print help message")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showHelp {
		printInjectUsage()
		return nil
	}
	if fs.NArg() != 1 {
		printInjectUsage()
		return errors.New("expected exactly one event type")
	}

	ev, err := buildInjectEvent(fs.Arg(0), *text, *durationMS, *count)
	if err != nil {
		return err
	}

	return SendIPCEvent(*socketPath, ev)
}

// buildInjectEvent maps the CLI event name plus modifiers to a concrete Event.
// The names match the IPC wire protocol (see UnmarshalEvent).
func buildInjectEvent(name, text string, durationMS, count int) (Event, error) {
	switch name {
	case "count_tap":
		return CountTap{}, nil
	case "reset_tap":
		return ResetTap{}, nil
	case "reset_hold_start":
		return ResetHoldStart{}, nil
	case "reset_hold_active":
		return ResetHoldActive{}, nil
	case "reset_hold_end":
		return ResetHoldEnd{}, nil
	case "secret_combo":
		return SecretCombo{}, nil
	case "show_message":
		if text == "" {
			return nil, errors.New("show_message requires -text")
		}
		if durationMS < 0 {
			return nil, errors.New("-duration-ms must be >= 0")
		}
		return ShowMessage{Text: text, DurationMS: durationMS}, nil
	case "fetch_taunts":
		if count < 0 {
			return nil, errors.New("-count must be >= 0")
		}
		return RefillTaunts{Count: count}, nil
	default:
		return nil, fmt.Errorf("unknown event type: %q", name)
	}
}
