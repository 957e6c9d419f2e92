package stringsx

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// newlineRuns caches the pattern for each limit passed to ReduceNewlines.
var newlineRuns sync.Map

// ReduceNewlines collapses every run of more than maxNewlines line breaks,
// including blank lines holding only spaces or tabs, to exactly maxNewlines.
func ReduceNewlines(s string, maxNewlines int) string {
	if maxNewlines < 1 {
		return s
	}
	pattern, ok := newlineRuns.Load(maxNewlines)
	if !ok {
		pattern, _ = newlineRuns.LoadOrStore(maxNewlines, regexp.MustCompile(fmt.Sprintf(`(\n[ \t]*){%d,}`, maxNewlines+1)))
	}
	return pattern.(*regexp.Regexp).ReplaceAllString(s, strings.Repeat("\n", maxNewlines))
}
