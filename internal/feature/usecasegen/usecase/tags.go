package usecase

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

var (
	tagPatterns sync.Map // map[string]*regexp.Regexp
	firstInt    = regexp.MustCompile(`\d+`)
)

// tagPattern returns a case-insensitive, dot-all matcher for <tag>...</tag>.
func tagPattern(tag string) *regexp.Regexp {
	if re, ok := tagPatterns.Load(tag); ok {
		return re.(*regexp.Regexp)
	}
	q := regexp.QuoteMeta(tag)
	re := regexp.MustCompile(`(?is)<` + q + `>(.*?)</` + q + `>`)
	tagPatterns.Store(tag, re)
	return re
}

// tagBlocks returns the inner text of every <tag> block.
func tagBlocks(tag, s string) []string {
	matches := tagPattern(tag).FindAllStringSubmatch(s, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// tagText returns the trimmed content of the first <tag> or def when absent or empty.
func tagText(tag, s, def string) string {
	if m := tagPattern(tag).FindStringSubmatch(s); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			return v
		}
	}
	return def
}

// tagList splits the tag content on commas.
func tagList(tag, s string, def []string) []string {
	raw := tagText(tag, s, "")
	if raw == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// tagInt returns the first integer inside the tag.
func tagInt(tag, s string, def int) int {
	raw := tagText(tag, s, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(firstInt.FindString(raw))
	if err != nil {
		return def
	}
	return n
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func capList(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// oneOf returns the canonical spelling of v from allowed, or def.
func oneOf(v string, allowed []string, def string) string {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	return def
}
