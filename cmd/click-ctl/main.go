package main

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
)

// ============================================================================
// click-ctl - Command-line IPC Client
// ============================================================================
// This tool sends events to the clickbrainz daemon via IPC. Unlike
// `clickbrainz inject` it builds without the daemon's hardware dependencies,
// so it can live on a laptop that only ever talks to the unit over the wire.
//
// Usage:
//   click-ctl tap
//   click-ctl reset
//   click-ctl combo
//   click-ctl message "BUILD BROKE" 8000
//   click-ctl refill 10
//
// Options:
//   -socket PATH    Unix domain socket path (default: /tmp/clickbrainz.sock)
// ============================================================================

// Event types (duplicated from the daemon package for a standalone binary)
type Event interface{}

type CountTap struct{}

type ResetTap struct{}

type ResetHoldStart struct{}

type ResetHoldActive struct{}

type ResetHoldEnd struct{}

type SecretCombo struct{}

type ShowMessage struct {
	Text       string `json:"text"`
	DurationMS int    `json:"duration_ms,omitempty"`
}

type RefillTaunts struct {
	Count int `json:"count,omitempty"`
}

// EventEnvelope wraps events for JSON
type EventEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// IPCResponse represents the daemon's response
type IPCResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func main() {
	socketPath := "/tmp/clickbrainz.sock"

	// Parse arguments
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	// Check for -socket flag
	if args[0] == "-socket" || args[0] == "--socket" {
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "error: -socket requires an argument\n")
			os.Exit(1)
		}
		socketPath = args[1]
		args = args[2:]
	}

	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	// Parse command
	var event Event

	switch args[0] {
	case "tap", "count-tap", "click":
		event = CountTap{}

	case "reset", "reset-tap":
		event = ResetTap{}

	case "hold-start":
		event = ResetHoldStart{}

	case "hold-active":
		event = ResetHoldActive{}

	case "hold-end":
		event = ResetHoldEnd{}

	case "combo", "secret-combo":
		event = SecretCombo{}

	case "message", "show-message":
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "error: message requires text\n")
			os.Exit(1)
		}
		msg := ShowMessage{Text: args[1]}
		if len(args) >= 3 {
			ms, err := strconv.Atoi(args[2])
			if err != nil || ms < 0 {
				fmt.Fprintf(os.Stderr, "error: invalid duration: %s\n", args[2])
				os.Exit(1)
			}
			msg.DurationMS = ms
		}
		event = msg

	case "refill", "fetch-taunts":
		refill := RefillTaunts{}
		if len(args) >= 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 0 {
				fmt.Fprintf(os.Stderr, "error: invalid count: %s\n", args[1])
				os.Exit(1)
			}
			refill.Count = n
		}
		event = refill

	case "help", "-h", "--help":
		printUsage()
		os.Exit(0)

	default:
		fmt.Fprintf(os.Stderr, "error: unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}

	// Send event
	if err := sendEvent(socketPath, event); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("ok")
}

func sendEvent(socketPath string, event Event) error {
	// Connect to socket
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", socketPath, err)
	}
	defer conn.Close()

	// Marshal event
	data, err := marshalEvent(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	// Send event (line-delimited JSON)
	if _, err := fmt.Fprintf(conn, "%s\n", data); err != nil {
		return fmt.Errorf("send event: %w", err)
	}

	// Read response
	var response IPCResponse
	decoder := json.NewDecoder(conn)
	if err := decoder.Decode(&response); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	// Check response status
	if response.Status == "error" {
		return fmt.Errorf("daemon error: %s", response.Error)
	}

	return nil
}

func marshalEvent(event Event) ([]byte, error) {
	var env EventEnvelope

	switch e := event.(type) {
	case CountTap:
		env.Type = "count_tap"

	case ResetTap:
		env.Type = "reset_tap"

	case ResetHoldStart:
		env.Type = "reset_hold_start"

	case ResetHoldActive:
		env.Type = "reset_hold_active"

	case ResetHoldEnd:
		env.Type = "reset_hold_end"

	case SecretCombo:
		env.Type = "secret_combo"

	case ShowMessage:
		env.Type = "show_message"
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal ShowMessage: %w", err)
		}
		env.Data = data

	case RefillTaunts:
		env.Type = "fetch_taunts"
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal RefillTaunts: %w", err)
		}
		env.Data = data

	default:
		return nil, fmt.Errorf("unknown event type: %T", event)
	}

	return json.Marshal(env)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `click-ctl - Control a clickbrainz daemon via IPC

Usage:
  click-ctl [options] <command> [args]

Options:
  -socket PATH    Unix domain socket path (default: /tmp/clickbrainz.sock)

Commands:
  tap, count-tap, click     Simulate one debounced count button press
  reset, reset-tap          Simulate a short reset button press
  hold-start                Simulate the reset press edge
  hold-active               Simulate the hold threshold crossing (stats view)
  hold-end                  Simulate the reset release
  combo, secret-combo       Simulate the both-buttons combo (wipes high score)
  message <text> [ms]       Show a transient message, optional duration
  refill, fetch-taunts [n]  Force a remote taunt refill, optional batch size
  help, -h, --help          Show this help message

Examples:
  click-ctl tap
  click-ctl message "BUILD BROKE" 8000
  click-ctl -socket /var/run/clickbrainz.sock reset
`)
}
