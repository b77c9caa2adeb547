package main

import "strings"

// ParseURLList extracts URLs from batch file content: one URL per line,
// blank lines and # comments skipped. A trailing inline comment after the
// URL is dropped.
func ParseURLList(content string) []string {
	var urls []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.Index(line, " #"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		urls = append(urls, line)
	}
	return urls
}
