package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

// ws_listen connects to a clickbrainz daemon's monitor WebSocket and prints
// state events as they arrive. Useful for watching a unit across the room and
// for debugging scoring behavior without standing at the buttons.

func main() {
	var (
		wsURL     = flag.String("ws", "ws://127.0.0.1:3006/ws/state", "clickbrainz monitor websocket URL")
		once      = flag.Bool("once", false, "Print the initial state snapshot and exit")
		reconnect = flag.Bool("reconnect", true, "Reconnect with backoff when the connection drops")
	)
	flag.Parse()

	u, err := url.Parse(*wsURL)
	if err != nil {
		log.Fatalf("invalid websocket URL: %v", err)
	}

	// Handle shutdown
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	backoff := time.Second
	for {
		connected, exit, err := listenOnce(u.String(), *once, sigc)
		if exit {
			return
		}
		if err != nil {
			log.Printf("connection error: %v", err)
		}
		if connected {
			backoff = time.Second
		}

		if !*reconnect {
			if err != nil {
				os.Exit(1)
			}
			return
		}

		log.Printf("reconnecting in %s", backoff)
		select {
		case <-sigc:
			return
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

// listenOnce runs a single connection until it drops, the user interrupts, or
// (-once) the initial snapshot has been printed.
func listenOnce(wsURL string, once bool, sigc <-chan os.Signal) (connected, exit bool, err error) {
	d := websocket.Dialer{
		HandshakeTimeout: 5 * time.Second,
	}

	log.Printf("connecting to %s...", wsURL)
	conn, _, err := d.Dial(wsURL, nil)
	if err != nil {
		return false, false, fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	log.Printf("connected (press Ctrl+C to exit)")

	// Mutex to protect concurrent writes to the websocket
	var writeMu sync.Mutex

	// Ping/pong keepalive so a silent daemon doesn't look like a dead link
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()

	go func() {
		for range pingTicker.C {
			writeMu.Lock()
			err := conn.WriteMessage(websocket.PingMessage, nil)
			writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}()

	type result struct {
		exit bool
		err  error
	}

	done := make(chan result, 1)
	go func() {
		for {
			messageType, message, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					done <- result{err: err}
				} else {
					done <- result{}
				}
				return
			}
			if messageType != websocket.TextMessage {
				continue
			}
			if printMonitorMessage(message) && once {
				done <- result{exit: true}
				return
			}
		}
	}()

	closeConn := func() {
		writeMu.Lock()
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		writeMu.Unlock()
	}

	select {
	case <-sigc:
		log.Printf("shutting down...")
		closeConn()
		return true, true, nil

	case r := <-done:
		if r.exit {
			closeConn()
		}
		return true, r.exit, r.err
	}
}

// envelope matches the daemon's monitor wire format.
type envelope struct {
	Type string          `json:"type"`
	Ts   *time.Time      `json:"ts,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// printMonitorMessage renders one wire message to the console. It reports
// whether the message was the initial state snapshot.
func printMonitorMessage(message []byte) bool {
	var env envelope
	if err := json.Unmarshal(message, &env); err != nil {
		fmt.Printf("[TEXT] %s\n", string(message))
		return false
	}

	switch env.Type {
	case "state_init":
		var snap struct {
			Count          int64  `json:"count"`
			HighScore      int64  `json:"high_score"`
			MessageText    string `json:"message_text"`
			MessageVisible bool   `json:"message_visible"`
			ShowingStats   bool   `json:"showing_stats"`
			Dimmed         bool   `json:"dimmed"`
			CachedTaunts   int    `json:"cached_taunts"`
		}
		if err := json.Unmarshal(env.Data, &snap); err != nil {
			printRaw(env.Type, env.Data)
			return true
		}
		fmt.Printf("[STATE] count=%d high_score=%d dimmed=%v cached_taunts=%d\n",
			snap.Count, snap.HighScore, snap.Dimmed, snap.CachedTaunts)
		if snap.MessageVisible {
			fmt.Printf("[MESSAGE] %q\n", snap.MessageText)
		}
		return true

	case "count_changed":
		var d struct {
			Count     int64 `json:"count"`
			HighScore int64 `json:"high_score"`
		}
		if err := json.Unmarshal(env.Data, &d); err == nil {
			fmt.Printf("[COUNT] %d (record %d)\n", d.Count, d.HighScore)
			return false
		}

	case "high_score_changed":
		var d struct {
			HighScore int64 `json:"high_score"`
		}
		if err := json.Unmarshal(env.Data, &d); err == nil {
			fmt.Printf("[RECORD] %d\n", d.HighScore)
			return false
		}

	case "message_shown":
		var d struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(env.Data, &d); err == nil {
			fmt.Printf("[MESSAGE] %q\n", d.Text)
			return false
		}

	case "message_cleared":
		fmt.Printf("[MESSAGE] cleared\n")
		return false

	case "spectacle_started":
		var d struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal(env.Data, &d); err == nil {
			fmt.Printf("[SPECTACLE] %s\n", d.Kind)
			return false
		}

	case "dim_changed":
		var d struct {
			Dimmed bool `json:"dimmed"`
		}
		if err := json.Unmarshal(env.Data, &d); err == nil {
			if d.Dimmed {
				fmt.Printf("[DIM] display dimmed\n")
			} else {
				fmt.Printf("[DIM] display awake\n")
			}
			return false
		}
	}

	printRaw(env.Type, env.Data)
	return false
}

// printRaw pretty-prints messages this tool doesn't know a compact form for.
func printRaw(typ string, data json.RawMessage) {
	if len(data) == 0 {
		fmt.Printf("[%s]\n", strings.ToUpper(typ))
		return
	}
	var jsonData map[string]any
	if err := json.Unmarshal(data, &jsonData); err == nil {
		pretty, _ := json.MarshalIndent(jsonData, "", "  ")
		fmt.Printf("[%s]\n%s\n", strings.ToUpper(typ), string(pretty))
		return
	}
	fmt.Printf("[%s] %s\n", strings.ToUpper(typ), string(data))
}
