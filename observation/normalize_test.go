package observation

import (
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browsebridge/action"
)

func TestNormalizeEmpty(t *testing.T) {
	o := Normalize(Raw{}, action.TypeBrowseInteractive)
	require.NotNil(t, o)
	assert.Equal(t, "", o.Content)
	assert.Equal(t, "", o.URL)
	assert.Nil(t, o.Screenshot)
	assert.Nil(t, o.SetOfMarks)
	assert.Nil(t, o.FocusedElementBID)
	assert.Equal(t, []any{}, o.GoalImageURLs)
	assert.Equal(t, []any{}, o.OpenPagesURLs)
	assert.Equal(t, -1, o.ActivePageIndex)
	assert.Equal(t, map[string]any{}, o.DOMObject)
	assert.Equal(t, map[string]any{}, o.AXTreeObject)
	assert.Equal(t, map[string]any{}, o.ExtraElementProperties)
	assert.False(t, o.Error)
	assert.Equal(t, action.TypeBrowseInteractive, o.TriggerByAction)
}

func TestNormalizeNilRaw(t *testing.T) {
	o := Normalize(nil, action.TypeBrowse)
	assert.Equal(t, -1, o.ActivePageIndex)
	assert.False(t, o.Error)
}

func TestNormalizeWellFormed(t *testing.T) {
	raw := Raw{
		"text_content":             "hello",
		"url":                      "https://example.com/",
		"screenshot":               "iVBORw0KGgo=",
		"set_of_marks":             []byte{1, 2},
		"image_content":            []any{"a.png"},
		"open_pages_urls":          []any{"https://example.com/", "about:blank"},
		"active_page_index":        1,
		"dom_object":               map[string]any{"html": "<html></html>"},
		"axtree_object":            map[string]any{"nodes": []any{}},
		"extra_element_properties": map[string]any{"12": map[string]any{"visible": true}},
		"focused_element_bid":      "12",
		"last_action":              `click("12")`,
		"last_action_error":        "",
	}
	o := Normalize(raw, action.TypeBrowseInteractive)
	assert.Equal(t, "hello", o.Content)
	assert.Equal(t, "https://example.com/", o.URL)
	assert.Equal(t, "iVBORw0KGgo=", o.Screenshot)
	assert.Equal(t, []byte{1, 2}, o.SetOfMarks)
	assert.Equal(t, []any{"a.png"}, o.GoalImageURLs)
	assert.Equal(t, []any{"https://example.com/", "about:blank"}, o.OpenPagesURLs)
	assert.Equal(t, 1, o.ActivePageIndex)
	assert.Equal(t, "<html></html>", o.DOMObject["html"])
	assert.Contains(t, o.AXTreeObject, "nodes")
	assert.Contains(t, o.ExtraElementProperties, "12")
	assert.Equal(t, "12", o.FocusedElementBID)
	assert.Equal(t, `click("12")`, o.LastBrowserAction)
	assert.False(t, o.Error)
}

func TestNormalizeLastActionError(t *testing.T) {
	o := Normalize(Raw{"last_action_error": "element not found"}, action.TypeBrowseInteractive)
	assert.True(t, o.Error)
	assert.Equal(t, "element not found", o.LastBrowserActionError)

	o = Normalize(Raw{"last_action_error": 404}, action.TypeBrowseInteractive)
	assert.True(t, o.Error)
	assert.Equal(t, "404", o.LastBrowserActionError)
}

func TestNormalizeMalformedFieldsDegrade(t *testing.T) {
	raw := Raw{
		"text_content":             42,
		"url":                      true,
		"image_content":            "not a list",
		"open_pages_urls":          map[string]any{"a": 1},
		"active_page_index":        "abc",
		"dom_object":               []any{1, 2},
		"axtree_object":            "{}",
		"extra_element_properties": 7,
	}
	o := Normalize(raw, action.TypeBrowse)
	assert.Equal(t, "42", o.Content)
	assert.Equal(t, "true", o.URL)
	assert.Equal(t, []any{}, o.GoalImageURLs)
	assert.Equal(t, []any{}, o.OpenPagesURLs)
	assert.Equal(t, -1, o.ActivePageIndex)
	assert.Equal(t, map[string]any{}, o.DOMObject)
	assert.Equal(t, map[string]any{}, o.AXTreeObject)
	assert.Equal(t, map[string]any{}, o.ExtraElementProperties)
	assert.False(t, o.Error)
}

func TestToIndex(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"int", 3, 3},
		{"int64", int64(4), 4},
		{"float truncates", 2.9, 2},
		{"numeric string", "5", 5},
		{"padded string", " 6 ", 6},
		{"negative string", "-1", -1},
		{"non numeric", "abc", -1},
		{"empty string", "", -1},
		{"leading zero is decimal", "010", 10},
		{"leading zero eight", "08", 8},
		{"hex prefix", "0x10", -1},
		{"decimal point", "3.0", -1},
		{"plus sign", "+2", 2},
		{"digit separator", "1_0", 10},
		{"leading separator", "_1", -1},
		{"double separator", "1__0", -1},
		{"double sign", "--1", -1},
		{"sign only", "-", -1},
		{"nil", nil, -1},
		{"nan", math.NaN(), -1},
		{"inf", math.Inf(1), -1},
		{"slice", []any{1}, -1},
		{"map", map[string]any{}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToIndex(tt.in))
		})
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	present := Normalize(Raw{"url": nil, "last_action_error": nil}, action.TypeBrowse)
	assert.Equal(t, "", present.URL)
	assert.False(t, present.Error)
	assert.Equal(t, "x", ToString("x"))
	assert.Equal(t, "1.5", ToString(1.5))
	assert.Equal(t, "boom", ToString(errors.New("boom")))
	assert.Equal(t, `{"a":1}`, ToString(map[string]any{"a": 1}))
}

func TestToList(t *testing.T) {
	assert.Equal(t, []any{}, ToList(nil))
	assert.Equal(t, []any{}, ToList("abc"))
	assert.Equal(t, []any{}, ToList([]byte("abc")))
	assert.Equal(t, []any{}, ToList(12))
	assert.Equal(t, []any{1, "b"}, ToList([]any{1, "b"}))
	assert.Equal(t, []any{"a", "b"}, ToList([]string{"a", "b"}))
	assert.Equal(t, []any{1, 2}, ToList([2]int{1, 2}))
}

func TestToMap(t *testing.T) {
	assert.Equal(t, map[string]any{}, ToMap(nil))
	assert.Equal(t, map[string]any{}, ToMap(`{"a":1}`))
	assert.Equal(t, map[string]any{"a": 1}, ToMap(map[string]any{"a": 1}))
	assert.Equal(t, map[string]any{"a": 1}, ToMap(Raw{"a": 1}))
	assert.Equal(t, map[string]any{"a": 1}, ToMap(map[any]any{"a": 1}))
	assert.Equal(t, map[string]any{}, ToMap([]any{}))
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Len(t, keys, 13)
	assert.Contains(t, keys, "active_page_index")
	assert.Contains(t, keys, "last_action_error")
}

func TestNewError(t *testing.T) {
	o := NewError("boom", "https://example.com", action.TypeBrowse)
	assert.True(t, o.Error)
	assert.Equal(t, "boom", o.Content)
	assert.Equal(t, "boom", o.LastBrowserActionError)
	assert.Equal(t, "", o.Screenshot)
	assert.Equal(t, "https://example.com", o.URL)
	assert.Equal(t, action.TypeBrowse, o.TriggerByAction)
	assert.Equal(t, -1, o.ActivePageIndex)
}

func TestAbbreviatedText(t *testing.T) {
	o := &Observation{Content: string(make([]byte, 300)), TriggerByAction: action.TypeBrowse}
	assert.Len(t, o.GetAbbreviatedText(), DefaultAbbreviationLength+3)
	short := &Observation{Content: "hi", TriggerByAction: action.TypeBrowse}
	assert.Equal(t, short.GetText(), short.GetAbbreviatedText())
}

func TestAbbreviatedTextKeepsRunesWhole(t *testing.T) {
	// one of the two paddings puts the cut inside a two byte rune
	for _, pad := range []string{"", "x"} {
		o := &Observation{Content: pad + strings.Repeat("é", 100), TriggerByAction: action.TypeBrowse}
		got := o.GetAbbreviatedText()
		assert.True(t, utf8.ValidString(got), "pad %q", pad)
		assert.True(t, strings.HasSuffix(got, "..."))
		assert.LessOrEqual(t, len(got), DefaultAbbreviationLength+3)
		assert.GreaterOrEqual(t, len(got), DefaultAbbreviationLength+2)
	}
}
