package trajectory

import (
	"fmt"

	"github.com/google/uuid"

	"browsebridge/action"
)

type ActionItem struct {
	Render
	ID             string      `json:"id"`
	Type           action.Type `json:"type"`
	URL            string      `json:"url,omitempty"`
	BrowserActions string      `json:"browser_actions,omitempty"`
}

// NewActionItem records act. It returns an error only for a nil action.
func NewActionItem(act action.Action) (*ActionItem, error) {
	if action.IsNil(act) {
		return nil, fmt.Errorf("cannot record nil action")
	}
	item := &ActionItem{ID: uuid.NewString(), Type: act.Type()}
	if err := act.Accept(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (a *ActionItem) VisitNavigate(act *action.Navigate) error {
	a.URL = act.URL
	return nil
}

func (a *ActionItem) VisitInteractive(act *action.Interactive) error {
	a.BrowserActions = act.BrowserActions
	return nil
}

// Action rebuilds the recorded action.
func (a *ActionItem) Action() (action.Action, error) {
	switch a.Type {
	case action.TypeBrowse:
		return action.NewNavigate(a.URL), nil
	case action.TypeBrowseInteractive:
		return action.NewInteractive(a.BrowserActions), nil
	default:
		return nil, fmt.Errorf("unknown action type: %s", a.Type)
	}
}

func (a *ActionItem) GetText() string {
	if a.Type == action.TypeBrowse {
		return fmt.Sprintf("action: %s(url=%q)", a.Type, a.URL)
	}
	return fmt.Sprintf("action: %s(browser_actions=%q)", a.Type, a.BrowserActions)
}

func (a *ActionItem) GetAbbreviatedText() string {
	return a.GetText()
}
