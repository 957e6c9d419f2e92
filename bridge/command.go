package bridge

import (
	"fmt"
	"strings"

	"browsebridge/action"
)

// commandBuilder turns an action into the command string sent to the backend.
type commandBuilder struct {
	cwd     string
	command string
	// url the caller asked for; reported back on navigation failures
	requestedURL string
	// relative is set when the url was resolved against cwd
	relative bool
}

func (b *commandBuilder) VisitNavigate(a *action.Navigate) error {
	u := a.URL
	if !strings.HasPrefix(u, "http") {
		u = b.cwd + u
		b.relative = true
	}
	b.requestedURL = u
	b.command = fmt.Sprintf(`goto("%s")`, u)
	return nil
}

func (b *commandBuilder) VisitInteractive(a *action.Interactive) error {
	b.command = a.BrowserActions
	return nil
}

// Command returns the backend command for act. Navigation targets not starting
// with "http" are appended to cwd, which must be absolute.
func Command(act action.Action, cwd string) (string, error) {
	b, err := buildCommand(act, cwd)
	if err != nil {
		return "", err
	}
	return b.command, nil
}

func buildCommand(act action.Action, cwd string) (*commandBuilder, error) {
	if action.IsNil(act) {
		return nil, invalidAction("nil action")
	}
	b := &commandBuilder{cwd: cwd}
	if err := act.Accept(b); err != nil {
		return nil, err
	}
	return b, nil
}
