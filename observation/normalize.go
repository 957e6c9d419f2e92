package observation

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"browsebridge/action"
)

// field binds one key of a Raw response to the Observation field it fills.
// assign receives nil when the key is absent or null and must apply its default.
type field struct {
	key    string
	assign func(o *Observation, v any)
}

func text(set func(o *Observation, s string)) func(*Observation, any) {
	return func(o *Observation, v any) { set(o, ToString(v)) }
}

func list(set func(o *Observation, l []any)) func(*Observation, any) {
	return func(o *Observation, v any) { set(o, ToList(v)) }
}

func mapping(set func(o *Observation, m map[string]any)) func(*Observation, any) {
	return func(o *Observation, v any) { set(o, ToMap(v)) }
}

func index(set func(o *Observation, i int)) func(*Observation, any) {
	return func(o *Observation, v any) { set(o, ToIndex(v)) }
}

func passthrough(set func(o *Observation, v any)) func(*Observation, any) {
	return set
}

var fields = []field{
	{"text_content", text(func(o *Observation, s string) { o.Content = s })},
	{"url", text(func(o *Observation, s string) { o.URL = s })},
	{"screenshot", passthrough(func(o *Observation, v any) { o.Screenshot = v })},
	{"set_of_marks", passthrough(func(o *Observation, v any) { o.SetOfMarks = v })},
	{"image_content", list(func(o *Observation, l []any) { o.GoalImageURLs = l })},
	{"open_pages_urls", list(func(o *Observation, l []any) { o.OpenPagesURLs = l })},
	{"active_page_index", index(func(o *Observation, i int) { o.ActivePageIndex = i })},
	{"dom_object", mapping(func(o *Observation, m map[string]any) { o.DOMObject = m })},
	{"axtree_object", mapping(func(o *Observation, m map[string]any) { o.AXTreeObject = m })},
	{"extra_element_properties", mapping(func(o *Observation, m map[string]any) { o.ExtraElementProperties = m })},
	{"focused_element_bid", passthrough(func(o *Observation, v any) { o.FocusedElementBID = v })},
	{"last_action", text(func(o *Observation, s string) { o.LastBrowserAction = s })},
	{"last_action_error", text(func(o *Observation, s string) { o.LastBrowserActionError = s })},
}

// Keys lists the response keys Normalize reads, in table order.
func Keys() []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.key
	}
	return keys
}

// Normalize coerces raw into an Observation. A malformed field falls back to its
// default; normalization itself never fails.
func Normalize(raw Raw, trigger action.Type) *Observation {
	o := empty(trigger)
	for _, f := range fields {
		f.assign(o, raw[f.key])
	}
	o.Error = o.LastBrowserActionError != ""
	return o
}

// ToString returns strings unchanged and renders anything else in its string
// form. nil is treated like an absent key and becomes "".
func ToString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprint(v)
}

// ToList returns v as []any when it is a slice or array, else an empty list.
// Elements are not coerced.
func ToList(v any) []any {
	switch l := v.(type) {
	case nil, string, []byte:
		return []any{}
	case []any:
		return l
	}
	if l, err := cast.ToSliceE(v); err == nil {
		return l
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{}
	}
	l := make([]any, rv.Len())
	for i := range l {
		l[i] = rv.Index(i).Interface()
	}
	return l
}

// ToMap returns v when it is a string keyed map, else an empty map.
func ToMap(v any) map[string]any {
	switch m := v.(type) {
	case nil, string, []byte:
		return map[string]any{}
	case map[string]any:
		return m
	case Raw:
		return map[string]any(m)
	}
	if m, err := cast.ToStringMapE(v); err == nil {
		return m
	}
	return map[string]any{}
}

// ToIndex returns v as an int. Strings are parsed as base 10 integers, floats
// truncated; anything unparseable yields -1.
func ToIndex(v any) int {
	switch n := v.(type) {
	case nil:
		return -1
	case int:
		return n
	case string:
		return parseIndex(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return -1
		}
	case float32:
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return -1
		}
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return -1
	}
	return i
}

// parseIndex accepts optionally signed decimal digits, with single underscores
// allowed between digits. "010" is 10; "0x10" and "3.0" are rejected.
func parseIndex(s string) int {
	s = strings.TrimSpace(s)
	digits := strings.TrimLeft(s, "+-")
	if digits == "" || len(s)-len(digits) > 1 ||
		strings.HasPrefix(digits, "_") || strings.HasSuffix(digits, "_") || strings.Contains(digits, "__") {
		return -1
	}
	i, err := strconv.ParseInt(strings.ReplaceAll(s, "_", ""), 10, 0)
	if err != nil {
		return -1
	}
	return int(i)
}
