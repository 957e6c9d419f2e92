package html2md

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"browsebridge/browser/virtualid"
	"browsebridge/translators"
)

const DefaultMaxListDisplaySize = 5

type SelectableType string

const (
	SelectableTypeClickable SelectableType = "clickable"
	SelectableTypeInput     SelectableType = "input"
)

// HTML2MDTranslator renders a page as markdown. Elements carrying a browser id
// are rendered as [label, type=...](id) so an agent can address them.
type HTML2MDTranslator struct {
	maxListDisplaySize int
	logger             *zap.Logger
}

type Options struct {
	MaxListDisplaySize int
	Logger             *zap.Logger
}

func NewHTML2MDTranslator(options *Options) translators.Translator {
	maxListDisplaySize := DefaultMaxListDisplaySize
	logger := zap.NewNop()
	if options != nil {
		if options.MaxListDisplaySize > 0 {
			maxListDisplaySize = options.MaxListDisplaySize
		}
		if options.Logger != nil {
			logger = options.Logger
		}
	}
	return &HTML2MDTranslator{
		maxListDisplaySize: maxListDisplaySize,
		logger:             logger.Named("html2md"),
	}
}

func (t *HTML2MDTranslator) Translate(text string) (string, error) {
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return "", fmt.Errorf("error parsing html: %w", err)
	}
	return cleanup(t.Visit(doc)), nil
}

func (t *HTML2MDTranslator) Visit(n *html.Node) string {
	if !shouldVisitNode(n) {
		return ""
	}
	switch n.Type {
	case html.TextNode:
		return n.Data
	case html.ElementNode:
		attrMap := buildAttrMapFromNode(n)
		content := t.visitChildren(n)
		if vid := attrMap[virtualid.VirtualIDDataAttr]; virtualid.IsValidBaseVirtualID(vid) {
			if isClickable(n, attrMap) {
				label := parseInnerText(content)
				for _, fallback := range []string{"aria-label", "value", "title"} {
					if label != "" {
						break
					}
					label = attrMap[fallback]
				}
				if label == "" {
					return ""
				}
				return renderSelectable(SelectableTypeClickable, vid, label, "")
			} else if label, ok := getLabelForInputable(n, attrMap); ok || isInputable(n, attrMap) {
				return renderSelectable(SelectableTypeInput, vid, label, attrMap["value"])
			}
		}
		switch n.Data {
		case "b", "strong":
			return "**" + strings.Join(content, "") + "**"
		case "i", "em":
			return "_" + strings.Join(content, "") + "_"
		case "h1":
			return "\n\n## " + strings.Join(content, "")
		case "h2":
			return "\n\n### " + strings.Join(content, "")
		case "h3":
			return "\n\n#### " + strings.Join(content, "")
		case "h4":
			return "\n\n##### " + strings.Join(content, "")
		case "h5", "h6":
			return "\n\n###### " + strings.Join(content, "")
		case "title":
			return "# " + strings.Join(content, "")
		case "img":
			alt := strings.TrimSpace(attrMap["alt"])
			if alt == "" {
				return ""
			}
			return fmt.Sprintf("![%s](<img>)", alt)
		case "a":
			text := strings.Join(content, "")
			if href := attrMap["href"]; href != "" {
				return fmt.Sprintf("[%s](%s)", text, trimURL(href))
			}
			return text
		case "li":
			text := strings.Join(content, "")
			if strings.TrimSpace(text) == "" {
				return ""
			}
			return "- " + text
		case "code":
			return "`" + strings.Join(content, "") + "`"
		case "pre":
			return "```" + strings.Join(content, "") + "```"
		case "br":
			return "\n"
		case "hr":
			return "---"
		case "del":
			return "~~" + strings.Join(content, "") + "~~"
		case "ul", "ol":
			items := nonEmpty(content)
			if len(items) > t.maxListDisplaySize {
				return strings.Join(items[:t.maxListDisplaySize], "\n") + fmt.Sprintf("\n(%d more items)", len(items)-t.maxListDisplaySize)
			}
			return strings.Join(items, "\n")
		case "div", "section", "body", "header", "form", "dialog", "nav", "article", "aside", "table", "tbody", "thead", "tr":
			return strings.Join(content, "\n")
		case "p", "span", "g", "figure", "desc", "footer", "html", "main", "legend", "fieldset", "center", "td", "th", "label", "small", "u", "button", "option", "select":
			return strings.Join(content, "")
		case "head", "script", "style", "iframe", "svg", "path", "noscript", "link", "meta", "circle", "rect", "image", "template", "input", "textarea":
			return ""
		default:
			t.logger.Debug("Unknown element.", zap.String("tag", n.Data))
			return strings.Join(content, "\n")
		}
	case html.CommentNode, html.DoctypeNode:
		return ""
	case html.DocumentNode:
		return strings.Join(t.visitChildren(n), "\n")
	default:
		t.logger.Debug("Unknown node type.", zap.String("data", n.Data))
		return ""
	}
}

func (t *HTML2MDTranslator) visitChildren(n *html.Node) []string {
	content := []string{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		content = append(content, t.Visit(c))
	}
	return content
}
