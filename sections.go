package main

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

func leafText(node ast.Node) string {
	var buf bytes.Buffer
	if l := node.AsLeaf(); l != nil {
		buf.Write(l.Literal)
	}
	for _, c := range node.GetChildren() {
		buf.WriteString(leafText(c))
	}
	return buf.String()
}

// sectionsOf lists the headings of a markdown document in document order.
func sectionsOf(b []byte) []heading {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := markdown.Parse(b, p)

	var hs []heading
	f := func(node ast.Node, entering bool) ast.WalkStatus {
		h, ok := node.(*ast.Heading)
		if !ok || !entering {
			return ast.GoToNext
		}
		hs = append(hs, heading{Level: h.Level, Text: strings.TrimSpace(leafText(h))})
		return ast.SkipChildren
	}
	ast.Walk(doc, ast.NodeVisitorFunc(f))
	return hs
}

// checkEntry reports the day an entry is dated, or an error naming the
// first heading it is missing. Sections must appear in template order;
// extra headings in between are allowed.
func checkEntry(b []byte) (time.Time, error) {
	hs := sectionsOf(b)
	if len(hs) == 0 || hs[0].Level != 2 || !strings.HasPrefix(hs[0].Text, datePrefix) {
		return time.Time{}, fmt.Errorf("missing date heading %q", "## "+datePrefix+"YYYY-MM-DD")
	}
	day, err := parseDay(strings.TrimSpace(strings.TrimPrefix(hs[0].Text, datePrefix)))
	if err != nil {
		return time.Time{}, err
	}

	rest := hs[1:]
	for _, want := range sections {
		found := false
		for i, h := range rest {
			if h.Level == 3 && h.Text == want {
				rest, found = rest[i+1:], true
				break
			}
		}
		if !found {
			return time.Time{}, fmt.Errorf("missing section %q", want)
		}
	}
	return day, nil
}
