package bridge

import "browsebridge/observation"

// Backend executes one command of the automation engine's DSL and reports the
// resulting page state. Step blocks for the duration of the browser work.
type Backend interface {
	Step(command string) (observation.Raw, error)
}

// StepFunc adapts an ordinary function to a Backend.
type StepFunc func(command string) (observation.Raw, error)

func (f StepFunc) Step(command string) (observation.Raw, error) {
	return f(command)
}
