//go:build linux

package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// inputEvent mirrors struct input_event from <linux/input.h> on 64-bit
// platforms.
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// runEvdevButtons monitors Linux input devices for the two configured key
// codes and feeds the classifier. Key events update levels; a ticker advances
// the time-based outcomes (hold, combo) between events.
func runEvdevButtons(ctx context.Context, cfg EvdevInputConfig, classifier *ButtonClassifier, pollInterval time.Duration, events chan<- Event, logger *slog.Logger) error {
	files := make([]*os.File, 0, len(cfg.Devices))
	for _, dev := range cfg.Devices {
		f, err := os.Open(dev)
		if err != nil {
			for _, open := range files {
				_ = open.Close()
			}
			return fmt.Errorf("open input device %s: %w", dev, err)
		}
		files = append(files, f)
	}
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()

	raw := make(chan inputEvent, 64)
	readErr := make(chan error, 1)
	go readButtonEventsEpoll(files, raw, readErr)

	logger.Info("evdev buttons ready", "devices", cfg.Devices, "count_key", cfg.CountKey, "reset_key", cfg.ResetKey)

	var countDown, resetDown bool

	emit := func(evs []Event) bool {
		for _, ev := range evs {
			select {
			case events <- ev:
			case <-ctx.Done():
				return false
			}
		}
		return true
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("evdev input stopping (context canceled)")
			return nil

		case err := <-readErr:
			return fmt.Errorf("evdev read: %w", err)

		case rev := <-raw:
			if rev.Type != EV_KEY {
				continue
			}
			switch int(rev.Code) {
			case cfg.CountKey:
				countDown = rev.Value != evValueRelease
			case cfg.ResetKey:
				resetDown = rev.Value != evValueRelease
			default:
				continue
			}
			if !emit(classifier.Sample(countDown, resetDown, time.Now())) {
				return nil
			}

		case now := <-ticker.C:
			if !emit(classifier.Sample(countDown, resetDown, now)) {
				return nil
			}
		}
	}
}

// readButtonEventsEpoll reads raw events from multiple input devices with a
// single epoll instance and goroutine. Any device error is fatal for the
// whole input backend.
func readButtonEventsEpoll(files []*os.File, events chan<- inputEvent, readErr chan<- error) {
	if len(files) == 0 {
		readErr <- fmt.Errorf("no input devices provided")
		return
	}

	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		readErr <- fmt.Errorf("epoll_create1: %w", err)
		return
	}
	defer unix.Close(epfd)

	fdToFile := make(map[int]*os.File)
	for _, f := range files {
		fd := int(f.Fd())
		fdToFile[fd] = f

		event := unix.EpollEvent{
			Events: unix.EPOLLIN,
			Fd:     int32(fd),
		}
		if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, fd, &event); err != nil {
			readErr <- fmt.Errorf("epoll_ctl_add fd=%d: %w", fd, err)
			return
		}
	}

	const maxEvents = 32
	epollEvents := make([]unix.EpollEvent, maxEvents)
	evSize := binary.Size(inputEvent{})
	buf := make([]byte, evSize)
	reader := bytes.NewReader(buf)

	for {
		n, err := unix.EpollWait(epfd, epollEvents, -1)
		if err != nil {
			if err == syscall.EINTR {
				continue
			}
			readErr <- fmt.Errorf("epoll_wait: %w", err)
			return
		}

		for i := 0; i < n; i++ {
			fd := int(epollEvents[i].Fd)
			f := fdToFile[fd]

			if epollEvents[i].Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
				readErr <- fmt.Errorf("device error/hangup: %s (fd=%d)", f.Name(), fd)
				return
			}

			if _, err := f.Read(buf); err != nil {
				readErr <- fmt.Errorf("read from %s: %w", f.Name(), err)
				return
			}

			reader.Reset(buf)
			var ev inputEvent
			if err := binary.Read(reader, binary.LittleEndian, &ev); err != nil {
				// Skip malformed events
				continue
			}

			events <- ev
		}
	}
}
