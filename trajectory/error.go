package trajectory

import "fmt"

// StepError records a step the bridge refused to run.
type StepError struct {
	Render
	Message string `json:"message"`
}

func NewStepError(err error) *StepError {
	return &StepError{Message: err.Error()}
}

func (e *StepError) GetText() string {
	return fmt.Sprintf("error: %s", e.Message)
}

func (e *StepError) GetAbbreviatedText() string {
	return e.GetText()
}
