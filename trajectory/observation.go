package trajectory

import (
	"github.com/google/uuid"

	"browsebridge/observation"
)

type ObservationItem struct {
	Render
	ID          string                   `json:"id"`
	Observation *observation.Observation `json:"observation"`
}

func NewObservationItem(obs *observation.Observation) *ObservationItem {
	return &ObservationItem{ID: uuid.NewString(), Observation: obs}
}

func (o *ObservationItem) GetText() string {
	return o.Observation.GetText()
}

func (o *ObservationItem) GetAbbreviatedText() string {
	return o.Observation.GetAbbreviatedText()
}
