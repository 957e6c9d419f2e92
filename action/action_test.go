package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingVisitor struct {
	visited []string
}

func (r *recordingVisitor) VisitNavigate(a *Navigate) error {
	r.visited = append(r.visited, "navigate:"+a.URL)
	return nil
}

func (r *recordingVisitor) VisitInteractive(a *Interactive) error {
	r.visited = append(r.visited, "interactive:"+a.BrowserActions)
	return nil
}

func TestAccept(t *testing.T) {
	v := &recordingVisitor{}
	require.NoError(t, NewNavigate("https://example.com").Accept(v))
	require.NoError(t, NewInteractive(`click("12")`).Accept(v))
	assert.Equal(t, []string{"navigate:https://example.com", `interactive:click("12")`}, v.visited)
}

func TestType(t *testing.T) {
	assert.Equal(t, TypeBrowse, NewNavigate("x").Type())
	assert.Equal(t, TypeBrowseInteractive, NewInteractive("x").Type())
}

func TestIsNil(t *testing.T) {
	var nav *Navigate
	var inter *Interactive
	tests := []struct {
		name string
		act  Action
		want bool
	}{
		{"untyped nil", nil, true},
		{"typed nil navigate", nav, true},
		{"typed nil interactive", inter, true},
		{"navigate", NewNavigate(""), false},
		{"interactive", NewInteractive(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNil(tt.act))
		})
	}
}
