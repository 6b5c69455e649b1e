package normalize

import (
	"regexp"
	"strings"
)

// titleSynonyms expands abbreviations. Rules apply in order and a later rule
// sees the output of the earlier ones.
var titleSynonyms = []synonym{
	{"swe", "software engineer"}, {"software eng", "software engineer"}, {"sw eng", "software engineer"},
	{"frontend", "front end"}, {"front-end", "front end"}, {"backend", "back end"}, {"back-end", "back end"},
	{"fullstack", "full stack"}, {"full-stack", "full stack"},
	{"pm", "product manager"}, {"prod mgr", "product manager"}, {"product owner", "product manager"},
	{"ds", "data scientist"}, {"ml", "machine learning"}, {"mle", "machine learning engineer"},
	{"sre", "site reliability engineer"}, {"devops", "devops"}, {"sec eng", "security engineer"}, {"infosec", "security"},
}

var (
	titleJunkRe  = regexp.MustCompile(`[^\p{L}\p{N}_\s\-/]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Title lowercases a job title, expands known abbreviations and strips
// punctuation other than hyphens and slashes.
func Title(input string) string {
	if input == "" {
		return ""
	}
	s := strings.ToLower(input)
	for _, syn := range titleSynonyms {
		s = strings.ReplaceAll(s, syn.token, syn.value)
	}
	s = titleJunkRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
