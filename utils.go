package main

import (
	"fmt"
	"strings"
	"time"
)

func getTimeStamp() int64 {
	return time.Now().UTC().UnixNano()
}

func containsInt(rg []int, item int) bool {
	for _, i := range rg {
		if i == item {
			return true
		}
	}
	return false
}

// indexedList numbers items from 1, one per line.
func indexedList(items []string) string {
	if len(items) == 0 {
		return "<i>None</i>"
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	return strings.Join(lines, "\n")
}

// splitLines returns the trimmed, non-empty lines of text.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
