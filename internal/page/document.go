package page

import (
	"io"
	"strings"

	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
	"github.com/thomas-vilte/branchmate/internal/models"
	"golang.org/x/net/html"
)

// Element ids and classes of the issue view.
const (
	IDKey           = "key-val"
	IDSummary       = "summary-val"
	IDType          = "type-val"
	IDHeader        = "header"
	ClassIssueBody  = "issue-body-content"
	AttrIssueKey    = "data-issue-key"
	selectorKey     = "#" + IDKey
	selectorSummary = "#" + IDSummary
	selectorType    = "#" + IDType
	selectorHeader  = "#" + IDHeader
	selectorBody    = "." + ClassIssueBody
)

// Document is a parsed issue page.
type Document struct {
	root *html.Node
}

// Parse reads an HTML issue page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, domainErrors.ErrParsePage.WithError(err)
	}
	return &Document{root: root}, nil
}

// Ready reports whether the key element exists and belongs to the ticket in
// location. An empty location only checks that the key element exists.
func (d *Document) Ready(location string) bool {
	keyEl := d.byID(IDKey)
	if keyEl == nil {
		return false
	}
	if location == "" {
		return true
	}
	issueKey := attr(keyEl, AttrIssueKey)
	return issueKey != "" && strings.Contains(location, issueKey)
}

// Ticket extracts the ticket fields. Every element the panel depends on must
// be present, otherwise ErrMissingPrecondition lists what is missing.
func (d *Document) Ticket() (*models.Ticket, error) {
	keyEl := d.byID(IDKey)
	summaryEl := d.byID(IDSummary)
	typeEl := d.byID(IDType)

	var missing []string
	if keyEl == nil {
		missing = append(missing, selectorKey)
	}
	if summaryEl == nil {
		missing = append(missing, selectorSummary)
	}
	if typeEl == nil {
		missing = append(missing, selectorType)
	}
	if !d.hasClass(ClassIssueBody) {
		missing = append(missing, selectorBody)
	}
	if d.byID(IDHeader) == nil {
		missing = append(missing, selectorHeader)
	}
	if len(missing) > 0 {
		return nil, domainErrors.ErrMissingPrecondition.WithContext("missing", strings.Join(missing, ", "))
	}

	return &models.Ticket{
		Key:     strings.TrimSpace(textContent(keyEl)),
		Type:    strings.TrimSpace(textContent(typeEl)),
		Summary: textContent(summaryEl),
	}, nil
}

func (d *Document) byID(id string) *html.Node {
	return find(d.root, func(n *html.Node) bool {
		return attr(n, "id") == id
	})
}

func (d *Document) hasClass(class string) bool {
	return find(d.root, func(n *html.Node) bool {
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}) != nil
}

// find walks the tree depth first and returns the first matching element.
func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
