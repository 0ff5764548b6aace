package rules

import "strings"

// Rule maps a fixed source phrase to its replacement.
type Rule struct {
	From string
	To   string
}

// Table is the ordered substitution table applied to forwarded posts. Rules
// run top to bottom, each as a global case-sensitive replacement of every
// non-overlapping occurrence.
var Table = []Rule{
	{From: "发布新推文", To: "Posted a New Tweet"},
	{From: "转发了推文", To: "RT a Tweet"},
	{From: "引用了推文", To: "Quoted a Tweet"},
}

// Apply runs every rule in table order against body. Apply is pure but not
// idempotent: running it again can double-replace if a target phrase
// contains another rule's source phrase.
func Apply(body string) string {
	for _, r := range Table {
		body = strings.ReplaceAll(body, r.From, r.To)
	}

	return body
}
