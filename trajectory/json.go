package trajectory

import (
	"encoding/json"
	"fmt"
)

type TrajectoryItemJSON struct {
	Type TrajectoryItemType `json:"type"`
	Data json.RawMessage    `json:"data"`
}

type TrajectoryItemType string

const (
	TrajectoryItemTypeAction      TrajectoryItemType = "action"
	TrajectoryItemTypeObservation TrajectoryItemType = "observation"
	TrajectoryItemTypeStepError   TrajectoryItemType = "step_error"
)

func MarshalTrajectory(traj *Trajectory) ([]byte, error) {
	trajJSON := []*TrajectoryItemJSON{}
	for _, item := range traj.Items {
		itemJSON, err := TrajectoryItemToJSON(item)
		if err != nil {
			return nil, err
		}
		trajJSON = append(trajJSON, itemJSON)
	}
	return json.Marshal(trajJSON)
}

func UnmarshalTrajectory(data []byte) (*Trajectory, error) {
	var trajJSON []*TrajectoryItemJSON
	if err := json.Unmarshal(data, &trajJSON); err != nil {
		return nil, err
	}
	traj := &Trajectory{Items: []TrajectoryItem{}}
	for _, itemJSON := range trajJSON {
		item, err := JSONToTrajectoryItem(itemJSON)
		if err != nil {
			return nil, err
		}
		traj.Items = append(traj.Items, item)
	}
	return traj, nil
}

func TrajectoryItemToJSON(item TrajectoryItem) (*TrajectoryItemJSON, error) {
	var typ TrajectoryItemType
	switch item.(type) {
	case *ActionItem:
		typ = TrajectoryItemTypeAction
	case *ObservationItem:
		typ = TrajectoryItemTypeObservation
	case *StepError:
		typ = TrajectoryItemTypeStepError
	default:
		return nil, fmt.Errorf("unknown trajectory item type: %T", item)
	}
	data, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	return &TrajectoryItemJSON{
		Type: typ,
		Data: data,
	}, nil
}

func JSONToTrajectoryItem(item *TrajectoryItemJSON) (TrajectoryItem, error) {
	if item == nil {
		return nil, fmt.Errorf("empty trajectory item")
	}
	var trajItem TrajectoryItem
	switch item.Type {
	case TrajectoryItemTypeAction:
		trajItem = &ActionItem{}
	case TrajectoryItemTypeObservation:
		trajItem = &ObservationItem{}
	case TrajectoryItemTypeStepError:
		trajItem = &StepError{}
	default:
		return nil, fmt.Errorf("unknown trajectory item type: %s", item.Type)
	}
	if err := json.Unmarshal(item.Data, trajItem); err != nil {
		return nil, err
	}
	return trajItem, nil
}
