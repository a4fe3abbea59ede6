package site

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// CheckNav parses the built pages and returns, in first-seen order, the
// sidebar hrefs that point at local pages missing from dir
func CheckNav(dir string, pages []string) ([]string, error) {
	seen := make(map[string]bool)
	var dangling []string

	for _, page := range pages {
		f, err := os.Open(filepath.Join(dir, page))
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", page, err)
		}
		doc, err := html.Parse(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}

		for _, href := range navLinks(doc) {
			if seen[href] {
				continue
			}
			seen[href] = true
			target, ok := localTarget(href)
			if !ok {
				continue
			}
			if _, err := os.Stat(filepath.Join(dir, target)); err != nil {
				dangling = append(dangling, href)
			}
		}
	}
	return dangling, nil
}

// navLinks returns the hrefs of anchors inside the element with id "nav"
func navLinks(n *html.Node) []string {
	var links []string
	var walk func(n *html.Node, inNav bool)
	walk = func(n *html.Node, inNav bool) {
		if n.Type == html.ElementNode {
			if attr(n, "id") == "nav" {
				inNav = true
			}
			if inNav && n.Data == "a" {
				if href := attr(n, "href"); href != "" {
					links = append(links, href)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inNav)
		}
	}
	walk(n, false)
	return links
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// localTarget resolves href to a path relative to the site, rejecting
// absolute URLs and fragment-only links
func localTarget(href string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	return filepath.FromSlash(strings.TrimPrefix(u.Path, "/")), true
}
