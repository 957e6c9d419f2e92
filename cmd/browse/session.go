package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"browsebridge/action"
	"browsebridge/bridge"
	"browsebridge/observation"
	"browsebridge/trajectory"
)

type session struct {
	bridge     *bridge.Bridge
	backend    backend
	logger     *zap.Logger
	trajectory *trajectory.Trajectory
}

func newSession(b *bridge.Bridge, be backend, logger *zap.Logger) *session {
	return &session{
		bridge:     b,
		backend:    be,
		logger:     logger.Named("session"),
		trajectory: &trajectory.Trajectory{},
	}
}

// step runs act and records it along with its outcome.
func (s *session) step(ctx context.Context, act action.Action) (*observation.Observation, error) {
	if item, err := trajectory.NewActionItem(act); err == nil {
		s.trajectory.AddItem(item)
	}
	obs, err := s.bridge.Execute(ctx, act, s.backend)
	if err != nil {
		s.trajectory.AddItem(trajectory.NewStepError(err))
		return nil, err
	}
	s.trajectory.AddItem(trajectory.NewObservationItem(obs))
	return obs, nil
}

func (s *session) close() {
	if err := s.backend.Close(); err != nil {
		s.logger.Warn("Failed to close browser.", zap.Error(err))
	}
}

// writeObservation prints obs as indented json. Screenshots are dropped unless
// full is set.
func writeObservation(w io.Writer, obs *observation.Observation, full bool) error {
	printed := *obs
	if !full {
		printed.Screenshot = nil
		printed.SetOfMarks = nil
	}
	data, err := json.MarshalIndent(&printed, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding observation: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
