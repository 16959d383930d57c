package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"periph.io/x/host/v3"
)

const version = "1.1.0"

func printVersion() {
	fmt.Printf("clickbrainz v%s\n", version)
	fmt.Println("Two-button click counter with OLED display and unsolicited commentary")
}

func printUsage() {
	printVersion()
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  clickbrainz [OPTIONS]")
	fmt.Println("  clickbrainz inject [OPTIONS] EVENT_TYPE")
	fmt.Println("  clickbrainz screenshot [OPTIONS]")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Daemon that drives the two-button desk counter: classifies button")
	fmt.Println("  presses (tap / hold / secret combo), keeps the score and the persistent")
	fmt.Println("  high score, renders to a 128x64 OLED, and occasionally taunts the")
	fmt.Println("  operator. Configuration comes from a YAML file; flags and environment")
	fmt.Println("  variables override individual settings.")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -config string")
	fmt.Println("        Path to YAML config file (optional; defaults apply without one)")
	fmt.Println()
	fmt.Println("  -input string")
	fmt.Println("        Input backend: gpio, evdev or terminal (default \"gpio\")")
	fmt.Println()
	fmt.Println("  -display string")
	fmt.Println("        Display backend: ssd1306, terminal or none (default \"ssd1306\")")
	fmt.Println()
	fmt.Println("  -count-pin string")
	fmt.Println("        GPIO pin name for the count button (default \"GPIO14\")")
	fmt.Println()
	fmt.Println("  -reset-pin string")
	fmt.Println("        GPIO pin name for the reset button (default \"GPIO15\")")
	fmt.Println()
	fmt.Println("  -evdev-device string")
	fmt.Println("        Linux input event device for the evdev backend (default \"/dev/input/event0\")")
	fmt.Println()
	fmt.Println("  -i2c-bus string")
	fmt.Println("        I2C bus name for the OLED; empty picks the first available bus")
	fmt.Println()
	fmt.Println("  -score-path string")
	fmt.Println("        High score file path (default \"~/.clickbrainz/highscore.json\")")
	fmt.Println()
	fmt.Println("  -ipc-socket string")
	fmt.Println("        Unix domain socket path for IPC (default \"/tmp/clickbrainz.sock\")")
	fmt.Println()
	fmt.Println("  -monitor-listen string")
	fmt.Println("        host:port for the monitor WebSocket server; empty disables it")
	fmt.Println("        (default \"127.0.0.1:3006\")")
	fmt.Println()
	fmt.Println("  -api-key-file string")
	fmt.Println("        Path to a file containing the Anthropic API key for remote taunts.")
	fmt.Println("        Without a key the daemon runs with local taunts only.")
	fmt.Println()
	fmt.Println("  -seed int")
	fmt.Println("        Random seed for taunt rolls and animations (0 seeds from the clock)")
	fmt.Println()
	fmt.Println("  -log-level string")
	fmt.Println("        Log level: error, warn, info, debug (default \"info\")")
	fmt.Println()
	fmt.Println("  -log-file string")
	fmt.Println("        Log file path; required in practice with -display terminal")
	fmt.Println()
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println()
	fmt.Println("  -help")
	fmt.Println("        Print this help message")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  CLICKBRAINZ_API_KEY          Anthropic API key (preferred over config/file)")
	fmt.Println("  CLICKBRAINZ_API_KEY_FILE     Path to a file containing the API key")
	fmt.Println("  CLICKBRAINZ_SCORE_PATH       High score file path")
	fmt.Println("  CLICKBRAINZ_IPC_SOCKET       IPC socket path")
	fmt.Println("  CLICKBRAINZ_MONITOR_LISTEN   Monitor WebSocket listen address")
	fmt.Println("  CLICKBRAINZ_INPUT_BACKEND    Input backend")
	fmt.Println("  CLICKBRAINZ_DISPLAY_BACKEND  Display backend")
	fmt.Println("  CLICKBRAINZ_LOG_LEVEL        Log level")
	fmt.Println()
	fmt.Println("SUBCOMMANDS:")
	fmt.Println("  inject")
	fmt.Println("        Send an event to a running daemon over the IPC socket")
	fmt.Println("        (count_tap, reset_tap, secret_combo, show_message, fetch_taunts, ...)")
	fmt.Println()
	fmt.Println("  screenshot")
	fmt.Println("        Render a frame to a PNG without any hardware attached")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Run on the appliance with defaults (GPIO buttons, I2C OLED)")
	fmt.Println("  clickbrainz")
	fmt.Println()
	fmt.Println("  # Developer mode: everything in the terminal, no hardware")
	fmt.Println("  clickbrainz -input terminal -display terminal -log-file /tmp/clickbrainz.log")
	fmt.Println()
	fmt.Println("  # Use a keyboard as the buttons")
	fmt.Println("  clickbrainz -input evdev -evdev-device /dev/input/event3")
	fmt.Println()
	fmt.Println("  # Pin a message on the desk display from a script")
	fmt.Println("  clickbrainz inject show_message -text \"BUILD BROKE\"")
	fmt.Println()
	fmt.Println("NOTES:")
	fmt.Println("  - GPIO buttons wire to ground; pins are configured as pull-up inputs")
	fmt.Println("  - evdev requires read access to the input device (root or 'input' group)")
	fmt.Println("  - The monitor WebSocket serves state at ws://<listen>/ws/state")
	fmt.Println()
}

func main() {
	// Subcommand dispatch before flag parsing: both subcommands own their
	// flag sets.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "inject":
			if err := runInject(os.Args[2:]); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				os.Exit(1)
			}
			return
		case "screenshot":
			if err := runScreenshot(os.Args[2:]); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				os.Exit(1)
			}
			return
		}
	}

	// Check for version/help flags early
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" {
			printVersion()
			return
		}
		if arg == "-help" || arg == "--help" || arg == "-h" {
			printUsage()
			return
		}
	}

	// Parse command-line flags
	var (
		configPath = flag.String("config", "", "Path to YAML config file")

		inputBackend = flag.String("input", "", "Input backend: gpio, evdev or terminal")
		countPin     = flag.String("count-pin", "", "GPIO pin name for the count button")
		resetPin     = flag.String("reset-pin", "", "GPIO pin name for the reset button")
		evdevDevice  = flag.String("evdev-device", "", "Linux input event device for the evdev backend")

		displayBackend = flag.String("display", "", "Display backend: ssd1306, terminal or none")
		i2cBus         = flag.String("i2c-bus", "", "I2C bus name for the OLED")

		scorePath     = flag.String("score-path", "", "High score file path")
		ipcSocketPath = flag.String("ipc-socket", "", "Unix domain socket path for IPC")
		monitorListen = flag.String("monitor-listen", "", "host:port for the monitor WebSocket server")
		apiKeyFile    = flag.String("api-key-file", "", "Path to a file containing the Anthropic API key")

		seed = flag.Int64("seed", 0, "Random seed for taunt rolls and animations (0 seeds from the clock)")

		logLevelStr = flag.String("log-level", "", "Log level: error, warn, info, debug")
		logFile     = flag.String("log-file", "", "Log file path")

		showVersion = flag.Bool("version", false, "Print version and exit")
		showHelp    = flag.Bool("help", false, "Print help message")
	)

	flag.Usage = printUsage
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}
	if *showVersion {
		printVersion()
		return
	}

	// Load config: defaults, then file, then environment, then flags.
	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfigFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	envOverrides, err := LoadEnvOverrides()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	envOverrides.Apply(&cfg)

	// Only flags the user actually set count as overrides.
	var overrides FlagOverrides
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			overrides.InputBackend = inputBackend
		case "count-pin":
			overrides.GPIOCountPin = countPin
		case "reset-pin":
			overrides.GPIOResetPin = resetPin
		case "evdev-device":
			overrides.EvdevDevice = evdevDevice
		case "display":
			overrides.DisplayBackend = displayBackend
		case "i2c-bus":
			overrides.I2CBus = i2cBus
		case "score-path":
			overrides.ScorePath = scorePath
		case "ipc-socket":
			overrides.IPCSocketPath = ipcSocketPath
		case "monitor-listen":
			overrides.MonitorListen = monitorListen
		case "api-key-file":
			overrides.APIKeyFile = apiKeyFile
		case "log-level":
			overrides.LogLevel = logLevelStr
		case "log-file":
			overrides.LogFile = logFile
		}
	})
	overrides.Apply(&cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	logLevel, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	// The terminal display owns the screen, so logs must go elsewhere.
	var logWriter io.Writer = os.Stdout
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(ExpandPath(cfg.Logging.File), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error: open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
		logWriter = f
	} else if cfg.Display.Backend == DisplayBackendTerminal {
		logWriter = io.Discard
	}

	logger := setupLogger(logLevel, logWriter)

	// Engine config and initial state.
	engineCfg := cfg.ToEngineConfig()

	seedVal := *seed
	if seedVal == 0 {
		seedVal = time.Now().UnixNano()
	}

	store := NewScoreStore(cfg.Score.Path, logger)
	state := NewDeviceState(store.Load(), seedVal, time.Now())
	logger.Info("high score loaded", "high_score", state.Counter.HighScore, "path", cfg.Score.Path)

	// Remote taunts are enabled only when a key is configured.
	var fetcher TauntFetcher
	apiKey, err := LoadAPIKey(cfg.Taunts)
	if err != nil {
		logger.Warn("api key unavailable, remote taunts disabled", "error", err)
	} else if apiKey != "" {
		checker := NewConnChecker(cfg.Taunts.ProbeAddr, connProbeTimeout, logger)
		fetcher = NewAnthropicClient(cfg.Taunts, apiKey, checker, logger)
		engineCfg.RemoteEnabled = true
		logger.Info("remote taunts enabled", "model", cfg.Taunts.Model)
	} else {
		logger.Info("remote taunts disabled (no API key configured)")
	}

	// periph host drivers back both the GPIO buttons and the I2C panel.
	if cfg.Input.Backend == InputBackendGPIO || cfg.Display.Backend == DisplayBackendSSD1306 {
		if _, err := host.Init(); err != nil {
			logger.Error("periph host init failed", "error", err)
			os.Exit(1)
		}
	}

	// Display backend.
	var display Display
	var term *terminalDisplay
	switch cfg.Display.Backend {
	case DisplayBackendSSD1306:
		d, err := openSSD1306(cfg.Display)
		if err != nil {
			logger.Error("failed to open ssd1306 display", "error", err)
			os.Exit(1)
		}
		display = d
	case DisplayBackendTerminal:
		t, err := newTerminalDisplay(logger)
		if err != nil {
			logger.Error("failed to open terminal display", "error", err)
			os.Exit(1)
		}
		term = t
		display = t
	default:
		display = nullDisplay{}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Central event bus into the daemon loop.
	events := make(chan Event, 64)

	effects := &Effects{
		store:   store,
		fetcher: fetcher,
		display: display,
		events:  events,
		logger:  logger,
	}

	g, gctx := errgroup.WithContext(ctx)

	// Monitor WebSocket server (optional).
	var broadcasts chan StateBroadcast
	if cfg.Monitor.Listen != "" {
		broadcasts = make(chan StateBroadcast, 256)

		wsServer := NewServer(logger, events, ServerConfig{})
		mux := http.NewServeMux()
		wsServer.Register(mux, "/ws/state")

		httpSrv := &http.Server{Addr: cfg.Monitor.Listen, Handler: mux}

		g.Go(func() error {
			wsServer.Hub().Run(gctx)
			return nil
		})
		g.Go(func() error {
			RunBroadcaster(gctx, wsServer.Hub(), broadcasts, logger)
			return nil
		})
		g.Go(func() error {
			logger.Info("monitor listening", "addr", cfg.Monitor.Listen, "path", "/ws/state")
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("monitor server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := httpSrv.Shutdown(shutCtx); err != nil {
				logger.Warn("monitor server shutdown", "error", err)
			}
			return nil
		})
	}

	// IPC server.
	g.Go(func() error {
		return runIPCServer(gctx, cfg.IPC.SocketPath, events, logger)
	})

	// Input backend. The classifier turns raw levels into classified events;
	// it is polled at the daemon tick rate so hold/combo thresholds resolve
	// between presses.
	classifier := NewButtonClassifier(engineCfg.Debounce, engineCfg.HoldThreshold, engineCfg.ComboThreshold)
	pollInterval := time.Second / time.Duration(cfg.Timing.TickHz)

	switch cfg.Input.Backend {
	case InputBackendGPIO:
		g.Go(func() error {
			return runGPIOButtons(gctx, cfg.Input.GPIO, classifier, pollInterval, events, logger)
		})
	case InputBackendEvdev:
		g.Go(func() error {
			return runEvdevButtons(gctx, cfg.Input.Evdev, classifier, pollInterval, events, logger)
		})
	case InputBackendTerminal:
		g.Go(func() error {
			return term.Run(gctx, events, stop)
		})
	}

	// Daemon brain.
	g.Go(func() error {
		runDaemon(gctx, events, effects, display, broadcasts, engineCfg, state, cfg.Timing.TickHz, logger)
		return nil
	})

	logger.Debug("starting clickbrainz", "version", version)
	logger.Debug("configuration",
		"input_backend", cfg.Input.Backend,
		"display_backend", cfg.Display.Backend,
		"debounce_ms", cfg.Timing.DebounceMS,
		"hold_ms", cfg.Timing.HoldMS,
		"combo_ms", cfg.Timing.ComboMS,
		"dim_timeout_ms", cfg.Timing.DimTimeoutMS,
		"tick_hz", cfg.Timing.TickHz,
		"message_duration_ms", cfg.Message.DurationMS,
		"scroll_step_ms", cfg.Message.ScrollStepMS,
		"taunt_min_clicks", cfg.Taunts.MinClicks,
		"taunt_chance_one_in", cfg.Taunts.ChanceOneIn,
		"taunt_remote_every", cfg.Taunts.RemoteEvery,
		"taunt_batch_size", cfg.Taunts.BatchSize,
		"score_path", cfg.Score.Path,
		"ipc_socket", cfg.IPC.SocketPath,
		"monitor_listen", cfg.Monitor.Listen,
		"seed", seedVal)
	logger.Info("ready",
		"input", cfg.Input.Backend,
		"display", cfg.Display.Backend,
		"ipc", cfg.IPC.SocketPath,
		"monitor", cfg.Monitor.Listen,
		"remote_taunts", engineCfg.RemoteEnabled)

	waitErr := g.Wait()
	stop()

	// Always restore the panel/terminal, even on an error path.
	if err := display.Close(); err != nil {
		logger.Warn("display close failed", "error", err)
	}

	if waitErr != nil && !errors.Is(waitErr, context.Canceled) {
		logger.Error("exiting after error", "error", waitErr)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
