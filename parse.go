package main

import (
	"os"

	"github.com/russross/blackfriday/v2"
)

type entry struct {
	node *blackfriday.Node
}

func parseFile(file string) (entry, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return entry{}, err
	}
	return parse(b), nil
}

func parse(b []byte) entry {
	md := blackfriday.New(blackfriday.WithExtensions(blackfriday.CommonExtensions))
	return entry{node: md.Parse(b)}
}
