package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"lotuslab/internal/domain"
	"lotuslab/internal/httputil"
)

// ErrUnknownCommand is returned by Dispatch for a name no command is
// registered under.
var ErrUnknownCommand = errors.New("unknown command")

// HandlerFunc runs a command on its raw JSON arguments.
type HandlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Command is one named operation of the RPC surface.
type Command struct {
	Name string
	// Write commands run exclusively; reads share the lock.
	Write  bool
	Handle HandlerFunc
}

// Dispatcher routes command names to handlers. A write command never runs
// concurrently with any other command, so the services' check-then-act
// sequences see a stable store.
type Dispatcher struct {
	mu       sync.RWMutex
	commands map[string]Command
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher serving commands
func NewDispatcher(logger *slog.Logger, commands ...Command) *Dispatcher {
	d := &Dispatcher{
		commands: make(map[string]Command, len(commands)),
		logger:   logger,
	}
	for _, cmd := range commands {
		if _, dup := d.commands[cmd.Name]; dup {
			panic(fmt.Sprintf("handler: command %q registered twice", cmd.Name))
		}
		d.commands[cmd.Name] = cmd
	}
	return d
}

// Names lists the registered commands in order.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the named command with args.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args json.RawMessage) (any, error) {
	cmd, ok := d.commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	if cmd.Write {
		d.mu.Lock()
		defer d.mu.Unlock()
	} else {
		d.mu.RLock()
		defer d.mu.RUnlock()
	}

	d.logger.Debug("dispatching command", "command", name, "write", cmd.Write)
	return cmd.Handle(ctx, args)
}

// Handle adapts a typed function into a HandlerFunc. Arguments are decoded
// strictly and validated when A implements validation.Validatable.
func Handle[A, R any](fn func(context.Context, A) (R, error)) HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		args, err := decodeArgs[A](raw)
		if err != nil {
			return nil, err
		}
		return fn(ctx, args)
	}
}

// Exec adapts a function with no result. The command answers with null.
func Exec[A any](fn func(context.Context, A) error) HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		args, err := decodeArgs[A](raw)
		if err != nil {
			return nil, err
		}
		return nil, fn(ctx, args)
	}
}

func decodeArgs[A any](raw json.RawMessage) (A, error) {
	var args A
	if err := httputil.DecodeStrict(raw, &args); err != nil {
		// Errors from the ID decoders already carry ErrInvalidInput.
		if errors.Is(err, domain.ErrInvalidInput) {
			return args, err
		}
		return args, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if v, ok := any(&args).(validation.Validatable); ok {
		if err := v.Validate(); err != nil {
			return args, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}
	return args, nil
}
