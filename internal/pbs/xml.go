package pbs

import (
	"regexp"
	"sync"
)

// Scheduler XML blobs are treated as opaque text: qstat/pbsnodes emit
// fragments that are not reliably well-formed documents, so tag lookup is a
// non-greedy text match rather than a strict decode. A missing tag is not an
// error; it reads as the empty string and renders as a placeholder downstream.

var (
	tagRegexMu    sync.Mutex
	tagRegexCache = map[string]*regexp.Regexp{}
)

func tagRegex(tag string) *regexp.Regexp {
	tagRegexMu.Lock()
	defer tagRegexMu.Unlock()

	if re, ok := tagRegexCache[tag]; ok {
		return re
	}
	re := regexp.MustCompile(`(?s)<` + regexp.QuoteMeta(tag) + `>(.*?)</` + regexp.QuoteMeta(tag) + `>`)
	tagRegexCache[tag] = re
	return re
}

// ExtractTag returns the text content of the first occurrence of tag in blob,
// or the empty string if the tag does not occur.
func ExtractTag(blob, tag string) string {
	m := tagRegex(tag).FindStringSubmatch(blob)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractTags returns the text content of every occurrence of tag in blob,
// in document order. Returns nil if the tag does not occur.
func ExtractTags(blob, tag string) []string {
	matches := tagRegex(tag).FindAllStringSubmatch(blob, -1)
	if matches == nil {
		return nil
	}
	contents := make([]string, 0, len(matches))
	for _, m := range matches {
		contents = append(contents, m[1])
	}
	return contents
}
