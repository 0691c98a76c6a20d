package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText collapses inner whitespace and strips non-printable runes,
// which directory listing pages are full of.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.Trim(s, " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}

// Anchor is one link in a listing page, carrying the text that immediately
// precedes it in the document. Directory indexes render file metadata
// (timestamps, sizes) as bare text in front of each link, so the preceding
// text is where a file's displayed size lives.
type Anchor struct {
	Href          string
	Text          string
	PrecedingText string
}

// Anchors collects every anchor in sel along with its cleaned text and
// preceding-text run. Anchors without an href are skipped.
func Anchors(sel *goquery.Selection) []Anchor {
	var anchors []Anchor
	for _, n := range sel.Nodes {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}
		if href == "" {
			continue
		}

		anchors = append(anchors, Anchor{
			Href:          href,
			Text:          CleanText(GetText(n)),
			PrecedingText: CleanText(precedingText(n)),
		})
	}
	return anchors
}

// precedingText walks backwards from node, gathering text until it hits
// another anchor or runs out of siblings (ascending through parents that
// have none, e.g. when each row wraps its link in a <td>).
func precedingText(node *html.Node) string {
	var parts []string
	current := node
	for current != nil {
		sibling := current.PrevSibling
		for sibling != nil {
			if sibling.Type == html.ElementNode && sibling.Data == "a" {
				return joinReversed(parts)
			}
			parts = append(parts, GetText(sibling))
			sibling = sibling.PrevSibling
		}
		current = current.Parent
	}
	return joinReversed(parts)
}

func joinReversed(parts []string) string {
	var buffer bytes.Buffer
	for i := len(parts) - 1; i >= 0; i-- {
		buffer.WriteString(parts[i])
	}
	return buffer.String()
}
