package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/laher/markdownfmt/markdown"
	"github.com/russross/blackfriday/v2"
)

type heading struct {
	Level int
	Text  string
}

func (h heading) String() string {
	return strings.Repeat("#", h.Level) + " " + h.Text
}

// nodeText concatenates the literals of all text under node.
func nodeText(node *blackfriday.Node) string {
	var sb strings.Builder
	node.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if entering && (n.Type == blackfriday.Text || n.Type == blackfriday.Code) {
			sb.Write(n.Literal)
		}
		return blackfriday.GoToNext
	})
	return strings.TrimSpace(sb.String())
}

func (e entry) Headings() []heading {
	var hs []heading
	e.node.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if entering && node.Type == blackfriday.Heading {
			hs = append(hs, heading{Level: node.Level, Text: nodeText(node)})
			return blackfriday.SkipChildren
		}
		return blackfriday.GoToNext
	})
	return hs
}

func printHeadings(w io.Writer, e entry) {
	for _, h := range e.Headings() {
		fmt.Fprintln(w, h)
	}
}

func printAST(w io.Writer, node *blackfriday.Node) {
	node.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if entering {
			fmt.Fprint(w, "\n")
			for p := node.Parent; p != nil; p = p.Parent {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%v%d: [%v]", node.Type, node.Level, string(node.Literal))
		}
		return blackfriday.GoToNext
	})
	fmt.Fprintln(w)
}

// renderMarkdown writes the entry back out as normalised markdown. The
// renderer spaces blocks by inspecting what it has written so far, so it
// renders into a buffer rather than straight to w.
func renderMarkdown(w io.Writer, e entry) error {
	var buf bytes.Buffer
	r := markdown.NewRenderer(&markdown.Options{Terminal: false})
	render(r, &buf, e.node)
	_, err := buf.WriteTo(w)
	return err
}

func render(r blackfriday.Renderer, w io.Writer, ast *blackfriday.Node) {
	r.RenderHeader(w, ast)
	ast.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		return r.RenderNode(w, node, entering)
	})
	r.RenderFooter(w, ast)
}
