// Package normalize rewrites loosely phrased sentences into canonical
// commands. It is a fixed set of patterns, first match wins; anything that
// does not match is returned unchanged for the dispatcher to reject.
package normalize

import (
	"regexp"
	"strings"
)

var (
	reSold   = regexp.MustCompile(`(?i)^sold (\S+) (.+?) for (\S+)(?: (\S+))?$`)
	reSpent  = regexp.MustCompile(`(?i)^spent (\S+)(?: (\S+))? on (.+)$`)
	reAdd    = regexp.MustCompile(`(?i)^add stock (.+) (\S+)$`)
	reRemove = regexp.MustCompile(`(?i)^remove stock (.+) (\S+)$`)
)

// Collapse trims s and squeezes internal whitespace to single spaces.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Normalize returns the canonical command for a message.
func Normalize(text string) string {
	s := Collapse(text)
	lower := strings.ToLower(s)

	if strings.HasPrefix(lower, "summary") || strings.HasPrefix(lower, "advice") {
		return s
	}
	if lower == "help" {
		return "help"
	}
	if m := reSold.FindStringSubmatch(s); m != nil {
		return join("sale", underscore(m[2]), m[1], m[3], m[4])
	}
	if m := reSpent.FindStringSubmatch(s); m != nil {
		return join("expense", underscore(m[3]), m[1], m[2])
	}
	if m := reAdd.FindStringSubmatch(s); m != nil {
		return join("stockadd", underscore(m[1]), m[2])
	}
	if m := reRemove.FindStringSubmatch(s); m != nil {
		return join("stockremove", underscore(m[1]), m[2])
	}
	return s
}

func underscore(phrase string) string {
	return strings.ReplaceAll(phrase, " ", "_")
}

func join(parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
