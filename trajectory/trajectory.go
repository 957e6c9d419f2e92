// Package trajectory records the actions a session issued and the
// observations they produced.
package trajectory

import (
	"fmt"
	"strings"

	"browsebridge/utils/io"
	"browsebridge/utils/slicesx"
)

type Trajectory struct {
	Items []TrajectoryItem
}

func (t *Trajectory) GetText() string {
	if len(t.Items) == 0 {
		return ""
	}
	itemTexts := slicesx.Map(t.Items, func(item TrajectoryItem) string {
		return item.GetAbbreviatedText()
	})
	return strings.Join(itemTexts, "\n")
}

func (t *Trajectory) AddItem(item TrajectoryItem) {
	t.Items = append(t.Items, item)
}

func (t *Trajectory) AddItems(items []TrajectoryItem) {
	t.Items = append(t.Items, items...)
}

// Log writes the trajectory to path in its json envelope form.
func (t *Trajectory) Log(path string) error {
	data, err := MarshalTrajectory(t)
	if err != nil {
		return fmt.Errorf("error marshalling trajectory: %w", err)
	}
	if err := io.WriteBytesToFile(path, data); err != nil {
		return fmt.Errorf("error writing trajectory to %s: %w", path, err)
	}
	return nil
}

// Load reads a trajectory written by Log.
func Load(path string) (*Trajectory, error) {
	data, err := io.ReadFile(path)
	if err != nil {
		return nil, err
	}
	traj, err := UnmarshalTrajectory(data)
	if err != nil {
		return nil, fmt.Errorf("error decoding trajectory %s: %w", path, err)
	}
	return traj, nil
}

type TrajectoryItem interface {
	GetAbbreviatedText() string
	GetText() string
	ShouldRender() bool
}

type Render struct{}
type DontRender struct{}

func (r Render) ShouldRender() bool {
	return true
}

func (d DontRender) ShouldRender() bool {
	return false
}
