package site

import (
	"fmt"
	"os"
	"strings"

	"github.com/temoto/robotstxt"
)

const robotsFile = "robots.txt"

// RobotsContent returns a robots.txt that allows every crawler everywhere
// except under the disallowed path prefixes
func RobotsContent(disallow []string) string {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")
	if len(disallow) == 0 {
		sb.WriteString("Disallow:\n")
	}
	for _, prefix := range disallow {
		sb.WriteString("Disallow: " + prefix + "\n")
	}
	return sb.String()
}

// VerifyRobots parses content and checks that the site root stays
// crawlable while every disallowed prefix is blocked
func VerifyRobots(content string, disallow []string) error {
	data, err := robotstxt.FromString(content)
	if err != nil {
		return fmt.Errorf("parse robots.txt: %w", err)
	}
	if !data.TestAgent("/index.html", "*") {
		return fmt.Errorf("robots.txt blocks the site root")
	}
	for _, prefix := range disallow {
		probe := strings.TrimSuffix(prefix, "/") + "/index.html"
		if data.TestAgent(probe, "*") {
			return fmt.Errorf("robots.txt does not block %s", prefix)
		}
	}
	return nil
}

// WriteRobots writes a verified robots.txt to path
func WriteRobots(path string, disallow []string) error {
	content := RobotsContent(disallow)
	if err := VerifyRobots(content, disallow); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write robots.txt: %w", err)
	}
	return nil
}
