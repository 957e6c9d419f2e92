package html2md

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"browsebridge/utils/slicesx"
	"browsebridge/utils/stringsx"
)

var (
	nonWordRe       = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
	whitespaceRunRe = regexp.MustCompile(`[ \t]{2,}`)
)

var hiddenStyles = []string{"opacity: 0", "font-size: 0", "width: 0", "height: 0", "display: none", "visibility: hidden"}

func parseInnerText(childTexts []string) string {
	s := nonWordRe.ReplaceAllString(strings.Join(childTexts, ""), "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

func buildAttrMapFromNode(n *html.Node) map[string]string {
	attrMap := make(map[string]string)
	for _, attr := range n.Attr {
		attrMap[attr.Key] = attr.Val
	}
	return attrMap
}

func nonEmpty(content []string) []string {
	return slicesx.Filter(content, func(s string) bool {
		return strings.TrimSpace(s) != ""
	})
}

func shouldVisitNode(n *html.Node) bool {
	if n == nil {
		return false
	}
	if n.Type != html.ElementNode {
		return true
	}
	if n.Data == "input" || n.Data == "textarea" {
		for _, attr := range n.Attr {
			if attr.Key == "type" && attr.Val == "hidden" {
				return false
			}
		}
	}
	for _, attr := range n.Attr {
		if attr.Key == "aria-hidden" && attr.Val == "true" {
			return false
		}
		if attr.Key == "hidden" {
			return false
		}
		if attr.Key == "style" {
			for _, style := range hiddenStyles {
				if strings.Contains(attr.Val, style) {
					return false
				}
			}
		}
	}
	return true
}

func renderSelectable(typ SelectableType, virtualID string, primaryContent string, secondaryContent string) string {
	var suffix string
	if secondaryContent != "" {
		suffix = ", " + secondaryContent
	}
	return fmt.Sprintf("[%s%s, type=%s](%s)", primaryContent, suffix, typ, virtualID)
}

var buttonInputTypes = []string{"submit", "button", "image", "reset"}

func isClickable(n *html.Node, attrMap map[string]string) bool {
	switch n.Data {
	case "a":
		return attrMap["href"] != ""
	case "button":
		return true
	case "input":
		return slices.Contains(buttonInputTypes, attrMap["type"])
	}
	return attrMap["role"] == "button" || attrMap["onclick"] != ""
}

func isInputable(n *html.Node, attrMap map[string]string) bool {
	if n.Data != "input" && n.Data != "textarea" && n.Data != "select" {
		return false
	} else if typ := attrMap["type"]; typ == "hidden" || typ == "submit" || typ == "button" {
		return false
	} else if n.Data == "select" {
		return true
	} else if attrMap["placeholder"] != "" || attrMap["aria-label"] != "" || attrMap["value"] != "" {
		return true
	} else if autocapitalize := attrMap["autocapitalize"]; autocapitalize == "on" || autocapitalize == "sentences" || autocapitalize == "words" || autocapitalize == "characters" {
		return true
	} else if autocomplete, ok := attrMap["autocomplete"]; ok && autocomplete != "off" {
		return true
	} else if attrMap["spellcheck"] == "true" {
		return true
	}

	if n.Data == "input" {
		return attrMap["role"] == "combobox" || attrMap["name"] != ""
	}
	if rows, err := strconv.Atoi(attrMap["rows"]); err == nil && rows > 0 {
		return true
	}
	return false
}

func getLabelForInputable(n *html.Node, attrMap map[string]string) (label string, isInputable bool) {
	if n.Data != "input" && n.Data != "textarea" && n.Data != "select" {
		return "", false
	} else if placeholder := attrMap["placeholder"]; placeholder != "" {
		return placeholder, true
	} else if ariaLabel := attrMap["aria-label"]; ariaLabel != "" {
		return ariaLabel, true
	} else if name := attrMap["name"]; name != "" {
		return name, true
	} else if autocompleteType := attrMap["autocomplete"]; autocompleteType != "" && autocompleteType != "off" {
		return autocompleteType, true
	}
	return "", false
}

func cleanup(mdText string) string {
	// collapse runs of blank lines
	s := stringsx.ReduceNewlines(mdText, 2)

	s = whitespaceRunRe.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	s = strings.Join(slicesx.Map(lines, func(str string) string {
		return strings.TrimSpace(str)
	}), "\n")

	return strings.TrimSpace(s)
}

func trimURL(inputURL string) string {
	u, err := url.Parse(inputURL)
	if err != nil {
		return inputURL
	}
	u.Scheme = ""
	u.RawQuery = ""
	u.User = nil
	if u.Opaque != "" {
		return u.Opaque
	}
	return u.Host + u.Path
}
