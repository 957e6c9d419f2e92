// Package bridge executes browse actions against a browser backend and returns
// typed observations.
package bridge

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"browsebridge/action"
	"browsebridge/dispatch"
	"browsebridge/observation"
)

type Bridge struct {
	logger     *zap.Logger
	dispatcher *dispatch.Dispatcher
	getwd      func() (string, error)
}

type Options struct {
	Logger     *zap.Logger
	Dispatcher *dispatch.Dispatcher
	// Getwd resolves relative navigation targets; defaults to os.Getwd.
	Getwd func() (string, error)
}

func New(options *Options) *Bridge {
	b := &Bridge{
		logger:     zap.NewNop(),
		dispatcher: dispatch.New(nil),
		getwd:      os.Getwd,
	}
	if options != nil {
		if options.Logger != nil {
			b.logger = options.Logger
		}
		if options.Dispatcher != nil {
			b.dispatcher = options.Dispatcher
		}
		if options.Getwd != nil {
			b.getwd = options.Getwd
		}
	}
	b.logger = b.logger.Named("bridge")
	return b
}

// Execute runs act on backend. Only ErrBackendUnavailable and ErrInvalidAction
// are returned as errors; every failure after that is reported through an
// observation with Error set.
func (b *Bridge) Execute(ctx context.Context, act action.Action, backend Backend) (*observation.Observation, error) {
	if backend == nil {
		return nil, ErrBackendUnavailable
	}
	cwd, wdErr := b.getwd()
	cmd, err := buildCommand(act, cwd)
	if err != nil {
		return nil, err
	}
	if wdErr != nil && cmd.relative {
		return b.failed(act, cmd, fmt.Errorf("error resolving working directory: %w", wdErr)), nil
	}
	b.logger.Debug("Dispatching browser command.",
		zap.String("trigger", string(act.Type())),
		zap.String("command", cmd.command),
	)
	obs, err := dispatch.Do(ctx, b.dispatcher, func() (*observation.Observation, error) {
		raw, err := backend.Step(cmd.command)
		if err != nil {
			return nil, err
		}
		return observation.Normalize(raw, act.Type()), nil
	})
	if err != nil {
		return b.failed(act, cmd, err), nil
	}
	if obs.Error {
		b.logger.Debug("Browser reported an action error.", zap.String("error", obs.LastBrowserActionError))
	}
	return obs, nil
}

func (b *Bridge) failed(act action.Action, cmd *commandBuilder, err error) *observation.Observation {
	execErr := &ExecutionError{Command: cmd.command, Err: err}
	b.logger.Warn("Browser step failed.", zap.String("command", execErr.Command), zap.Error(execErr))
	url := ""
	if act.Type() == action.TypeBrowse {
		url = cmd.requestedURL
	}
	return observation.NewError(execErr.Error(), url, act.Type())
}

