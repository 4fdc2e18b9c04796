// Package launch starts applications from their exec templates without
// blocking the caller.
package launch

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"sync"

	"github.com/charmbracelet/log"

	"quicklaunch/internal/desktopentry"
	"quicklaunch/internal/eventbus"
)

// ErrClosed is returned by Launch after Close
var ErrClosed = errors.New("launch dispatcher closed")

// Spawner starts program as a detached process and returns its pid
type Spawner func(program string, args []string) (int, error)

// Dispatcher runs each launch as a one-shot background job. Spawn failures
// are logged and published, never returned to the caller.
type Dispatcher struct {
	spawn  Spawner
	bus    eventbus.EventBus
	logger *log.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher. bus and logger may be nil; a nil
// spawn uses Spawn.
func NewDispatcher(bus eventbus.EventBus, logger *log.Logger, spawn Spawner) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if spawn == nil {
		spawn = Spawn
	}
	return &Dispatcher{
		spawn:  spawn,
		bus:    bus,
		logger: logger,
	}
}

// Launch strips the field codes from template, splits it on whitespace and
// starts the first token with the rest as arguments. No shell is involved.
// An empty command is a no-op. Launch returns before the spawn happens.
func (d *Dispatcher) Launch(template string) error {
	fields := desktopentry.Fields(template)
	if len(fields) == 0 {
		d.logger.Debug("empty command, nothing to launch", "template", template)
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}

	program, args := fields[0], fields[1:]
	d.wg.Add(1)
	go d.run(program, args)

	return nil
}

// Close stops accepting launches and waits until the submitted spawns have
// been attempted. The launched programs themselves are not waited for.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) run(program string, args []string) {
	defer d.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			d.fail(program, fmt.Errorf("spawn panic: %v", r))
			d.logger.Debug("spawn panic stack", "stack", string(debug.Stack()))
		}
	}()

	pid, err := d.spawn(program, args)
	if err != nil {
		d.fail(program, err)
		return
	}

	d.logger.Info("launched", "program", program, "args", args, "pid", pid)
	if d.bus != nil {
		d.bus.Publish(eventbus.AppLaunchedEvent{Program: program, Args: args, PID: pid})
	}
}

func (d *Dispatcher) fail(program string, err error) {
	d.logger.Error("failed to launch", "program", program, "err", err)
	if d.bus != nil {
		d.bus.Publish(eventbus.LaunchFailedEvent{Program: program, Err: err})
	}
}
