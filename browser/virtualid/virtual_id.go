package virtualid

import (
	"fmt"
	"strconv"
	"strings"
)

const VirtualIDPrefix = "vid-"
const VirtualIDDataAttr = "data-vid"

// InteractiveSelector matches the elements that receive a virtual id.
const InteractiveSelector = `a, button, input, select, textarea, [role="button"], [onclick], [contenteditable="true"]`

// AssignScript tags every interactive element lacking a virtual id, continuing
// after the highest id already on the page so existing ids stay stable.
// It evaluates to the number of tagged elements.
var AssignScript = fmt.Sprintf(`(() => {
	const attr = %q;
	const prefix = %q;
	let next = 0;
	document.querySelectorAll('[' + attr + ']').forEach(el => {
		const n = parseInt(el.getAttribute(attr).slice(prefix.length), 10);
		if (!isNaN(n) && n >= next) {
			next = n + 1;
		}
	});
	let tagged = 0;
	document.querySelectorAll(%q).forEach(el => {
		if (!el.hasAttribute(attr)) {
			el.setAttribute(attr, prefix + next);
			next++;
			tagged++;
		}
	});
	return tagged;
})()`, VirtualIDDataAttr, VirtualIDPrefix, InteractiveSelector)

// IsValidVirtualID reports whether id has the form vid-<n>.
func IsValidVirtualID(id string) bool {
	if !IsValidBaseVirtualID(id) {
		return false
	}
	n := strings.TrimPrefix(id, VirtualIDPrefix)
	if _, err := strconv.Atoi(n); err != nil {
		return false
	}
	return true
}

func IsValidBaseVirtualID(id string) bool {
	return strings.HasPrefix(id, VirtualIDPrefix) && len(id) > len(VirtualIDPrefix)
}

func VirtualIDElementQuery(id string) string {
	return fmt.Sprintf(`[%s="%s"]`, VirtualIDDataAttr, id)
}
