package action

// Type is the kind tag an action carries into its observation.
type Type string

const (
	TypeBrowse            Type = "browse"
	TypeBrowseInteractive Type = "browse_interactive"
)

// Action is one of Navigate or Interactive. The set is closed: Accept forces every
// Visitor to handle both variants.
type Action interface {
	Type() Type
	Accept(v Visitor) error
	isAction()
}

type Visitor interface {
	VisitNavigate(a *Navigate) error
	VisitInteractive(a *Interactive) error
}

// Navigate is the legacy url navigation action.
type Navigate struct {
	URL string `json:"url"`
}

func NewNavigate(url string) *Navigate {
	return &Navigate{URL: url}
}

func (a *Navigate) Type() Type {
	return TypeBrowse
}

func (a *Navigate) Accept(v Visitor) error {
	return v.VisitNavigate(a)
}

func (*Navigate) isAction() {}

// Interactive carries a backend command string that is forwarded untouched.
type Interactive struct {
	BrowserActions string `json:"browser_actions"`
}

func NewInteractive(browserActions string) *Interactive {
	return &Interactive{BrowserActions: browserActions}
}

func (a *Interactive) Type() Type {
	return TypeBrowseInteractive
}

func (a *Interactive) Accept(v Visitor) error {
	return v.VisitInteractive(a)
}

func (*Interactive) isAction() {}

// IsNil reports whether a is nil or a typed nil variant.
func IsNil(a Action) bool {
	switch v := a.(type) {
	case nil:
		return true
	case *Navigate:
		return v == nil
	case *Interactive:
		return v == nil
	}
	return false
}
