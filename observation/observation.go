package observation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"browsebridge/action"
)

// Raw is the untyped response of one backend step.
type Raw map[string]any

// Observation is the typed result of one browse step. Error is true iff
// LastBrowserActionError is non-empty, except on the failure path where it is
// always true.
type Observation struct {
	Content                string         `json:"content"`
	URL                    string         `json:"url"`
	Screenshot             any            `json:"screenshot"`
	SetOfMarks             any            `json:"set_of_marks"`
	GoalImageURLs          []any          `json:"goal_image_urls"`
	OpenPagesURLs          []any          `json:"open_pages_urls"`
	ActivePageIndex        int            `json:"active_page_index"`
	DOMObject              map[string]any `json:"dom_object"`
	AXTreeObject           map[string]any `json:"axtree_object"`
	ExtraElementProperties map[string]any `json:"extra_element_properties"`
	FocusedElementBID      any            `json:"focused_element_bid"`
	LastBrowserAction      string         `json:"last_browser_action"`
	LastBrowserActionError string         `json:"last_browser_action_error"`
	Error                  bool           `json:"error"`
	TriggerByAction        action.Type    `json:"trigger_by_action"`
}

func empty(trigger action.Type) *Observation {
	return &Observation{
		GoalImageURLs:          []any{},
		OpenPagesURLs:          []any{},
		ActivePageIndex:        -1,
		DOMObject:              map[string]any{},
		AXTreeObject:           map[string]any{},
		ExtraElementProperties: map[string]any{},
		TriggerByAction:        trigger,
	}
}

// NewError builds the observation reported when a step could not complete.
func NewError(message string, url string, trigger action.Type) *Observation {
	o := empty(trigger)
	o.Content = message
	o.URL = url
	o.Screenshot = ""
	o.Error = true
	o.LastBrowserActionError = message
	return o
}

func (o *Observation) GetText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "observation(url=%q, trigger=%s", o.URL, o.TriggerByAction)
	if o.LastBrowserAction != "" {
		fmt.Fprintf(&b, ", last_action=%q", o.LastBrowserAction)
	}
	if o.Error {
		fmt.Fprintf(&b, ", error=%q", o.LastBrowserActionError)
	}
	b.WriteString(")\n")
	b.WriteString(o.Content)
	return b.String()
}

const DefaultAbbreviationLength = 100

func (o *Observation) GetAbbreviatedText() string {
	text := o.GetText()
	if len(text) > DefaultAbbreviationLength {
		cut := DefaultAbbreviationLength
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
	}
	return text
}
