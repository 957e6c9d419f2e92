package browser

import (
	"fmt"
	"strconv"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"browsebridge/browser/command"
	"browsebridge/browser/js/primitives"
	"browsebridge/browser/virtualid"
)

const DefaultNoopWait = 1 * time.Second

var namedKeys = map[string]string{
	"Enter":      kb.Enter,
	"Tab":        kb.Tab,
	"Escape":     kb.Escape,
	"Backspace":  kb.Backspace,
	"Delete":     kb.Delete,
	"ArrowUp":    kb.ArrowUp,
	"ArrowDown":  kb.ArrowDown,
	"ArrowLeft":  kb.ArrowLeft,
	"ArrowRight": kb.ArrowRight,
	"Home":       kb.Home,
	"End":        kb.End,
	"PageUp":     kb.PageUp,
	"PageDown":   kb.PageDown,
}

func checkArity(call command.Call, min int, max int) error {
	if n := len(call.Args); n < min || n > max {
		if min == max {
			return fmt.Errorf("%s expects %d arguments, got %d", call.Name, min, n)
		}
		return fmt.Errorf("%s expects %d to %d arguments, got %d", call.Name, min, max, n)
	}
	return nil
}

// elementQuery resolves argument i to a selector. Bare numbers are accepted as
// shorthand for vid-<n>.
func elementQuery(call command.Call, i int) (string, error) {
	bid, err := call.Text(i)
	if err != nil {
		return "", err
	}
	if _, err := strconv.Atoi(bid); err == nil {
		bid = virtualid.VirtualIDPrefix + bid
	}
	if !virtualid.IsValidVirtualID(bid) {
		return "", fmt.Errorf("invalid element id: %q", bid)
	}
	return virtualid.VirtualIDElementQuery(bid), nil
}

func toAction(call command.Call) (chromedp.Action, error) {
	switch call.Name {
	case "goto":
		if err := checkArity(call, 1, 1); err != nil {
			return nil, err
		}
		u, _ := call.Text(0)
		u = GetCanonicalURL(u)
		if valid, err := IsValidURL(u); !valid {
			return nil, fmt.Errorf("invalid url %s: %w", u, err)
		}
		return chromedp.Navigate(u), nil
	case "go_back":
		if err := checkArity(call, 0, 0); err != nil {
			return nil, err
		}
		return chromedp.NavigateBack(), nil
	case "go_forward":
		if err := checkArity(call, 0, 0); err != nil {
			return nil, err
		}
		return chromedp.NavigateForward(), nil
	case "noop":
		if err := checkArity(call, 0, 1); err != nil {
			return nil, err
		}
		wait := DefaultNoopWait
		if len(call.Args) == 1 {
			ms, err := call.Float(0)
			if err != nil {
				return nil, err
			}
			wait = time.Duration(ms * float64(time.Millisecond))
		}
		return chromedp.Sleep(wait), nil
	case "scroll":
		if err := checkArity(call, 2, 2); err != nil {
			return nil, err
		}
		dx, err := call.Float(0)
		if err != nil {
			return nil, err
		}
		dy, err := call.Float(1)
		if err != nil {
			return nil, err
		}
		return primitives.ScrollBy(dx, dy), nil
	case "click", "hover", "focus", "clear":
		if err := checkArity(call, 1, 1); err != nil {
			return nil, err
		}
		query, err := elementQuery(call, 0)
		if err != nil {
			return nil, err
		}
		switch call.Name {
		case "click":
			return primitives.ClickByQuerySelector(query), nil
		case "hover":
			return primitives.HoverByQuerySelector(query), nil
		case "focus":
			return primitives.FocusByQuerySelector(query), nil
		default:
			return primitives.SendTextByQuerySelector(query, ""), nil
		}
	case "fill":
		if err := checkArity(call, 2, 2); err != nil {
			return nil, err
		}
		query, err := elementQuery(call, 0)
		if err != nil {
			return nil, err
		}
		text, _ := call.Text(1)
		return primitives.SendTextByQuerySelector(query, text), nil
	case "press":
		if err := checkArity(call, 2, 2); err != nil {
			return nil, err
		}
		query, err := elementQuery(call, 0)
		if err != nil {
			return nil, err
		}
		key, _ := call.Text(1)
		if named, ok := namedKeys[key]; ok {
			key = named
		}
		return chromedp.Tasks{primitives.FocusByQuerySelector(query), chromedp.KeyEvent(key)}, nil
	default:
		return nil, fmt.Errorf("unsupported action: %s", call.Name)
	}
}
