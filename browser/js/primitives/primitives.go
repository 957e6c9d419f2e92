package primitives

import (
	"encoding/json"
	"fmt"

	"github.com/chromedp/chromedp"
)

// jsString renders s as a JavaScript string literal.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

const findElement = `function findElement(query) {
	const element = document.querySelector(query);
	if (!element) {
		throw new Error("element not found: " + query);
	}
	return element;
}`

const clickableSelector = `a[href], button, input[type="submit"], input[type="button"], input[type="image"], input[type="reset"], [role="button"], [onclick]`

func ClickByQuerySelector(query string) chromedp.Action {
	js := fmt.Sprintf(`(() => {
	%s
	const element = findElement(%s);
	element.scrollIntoView({block: "center"});
	element.click();
	return true;
})()`, findElement, jsString(query))
	return chromedp.Evaluate(js, nil)
}

func SendTextByQuerySelector(query string, text string) chromedp.Action {
	js := fmt.Sprintf(`(() => {
	%s
	const element = findElement(%s);
	const text = %s;
	element.focus();
	if (element.tagName === 'INPUT' || element.tagName === 'TEXTAREA' || element.tagName === 'SELECT') {
		element.value = text;
	} else if (element.isContentEditable) {
		element.textContent = text;
	} else {
		throw new Error('element cannot receive text');
	}
	element.dispatchEvent(new Event('input', {bubbles: true}));
	element.dispatchEvent(new Event('change', {bubbles: true}));
	return true;
})()`, findElement, jsString(query), jsString(text))
	return chromedp.Evaluate(js, nil)
}

func HoverByQuerySelector(query string) chromedp.Action {
	js := fmt.Sprintf(`(() => {
	%s
	const element = findElement(%s);
	element.scrollIntoView({block: "center"});
	for (const type of ['mouseover', 'mouseenter', 'mousemove']) {
		element.dispatchEvent(new MouseEvent(type, {bubbles: true}));
	}
	return true;
})()`, findElement, jsString(query))
	return chromedp.Evaluate(js, nil)
}

func FocusByQuerySelector(query string) chromedp.Action {
	js := fmt.Sprintf(`(() => {
	%s
	findElement(%s).focus();
	return true;
})()`, findElement, jsString(query))
	return chromedp.Evaluate(js, nil)
}

func ScrollBy(dx float64, dy float64) chromedp.Action {
	return chromedp.Evaluate(fmt.Sprintf(`window.scrollBy(%g, %g); true`, dx, dy), nil)
}

// FocusedVirtualID evaluates to the data attribute value of the focused element,
// or "" when nothing tagged has focus.
func FocusedVirtualID(attr string, res *string) chromedp.Action {
	js := fmt.Sprintf(`(() => {
	const element = document.activeElement;
	return (element && element.getAttribute(%s)) || "";
})()`, jsString(attr))
	return chromedp.Evaluate(js, res)
}

// ElementProperties maps each element carrying attr to its tag, visibility,
// clickability and bounding box.
func ElementProperties(attr string, res *map[string]any) chromedp.Action {
	js := fmt.Sprintf(`(() => {
	const attr = %s;
	const props = {};
	document.querySelectorAll('[' + attr + ']').forEach(element => {
		const rect = element.getBoundingClientRect();
		const style = window.getComputedStyle(element);
		props[element.getAttribute(attr)] = {
			tag: element.tagName.toLowerCase(),
			visible: rect.width > 0 && rect.height > 0 && style.visibility !== 'hidden' && style.display !== 'none',
			clickable: element.matches(%s),
			bbox: [rect.x, rect.y, rect.width, rect.height],
		};
	});
	return props;
})()`, jsString(attr), jsString(clickableSelector))
	return chromedp.Evaluate(js, res)
}
