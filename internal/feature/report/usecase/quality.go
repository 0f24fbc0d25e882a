package usecase

import "strings"

const (
	minReportChars    = 1000
	minUniqueLineRate = 0.7
	truncationWindow  = 1000
)

// IsIncomplete reports whether generated report text looks truncated or repetitive.
func IsIncomplete(xml string) bool {
	xml = strings.TrimSpace(xml)
	if len(xml) < minReportChars {
		return true
	}

	lines := strings.Split(xml, "\n")
	unique := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		unique[l] = struct{}{}
	}
	if float64(len(unique))/float64(len(lines)) < minUniqueLineRate {
		return true
	}

	if !strings.HasSuffix(xml, "</paragraph>") && !strings.HasSuffix(xml, "</content>") {
		return true
	}

	tail := xml
	if len(tail) > truncationWindow {
		tail = tail[len(tail)-truncationWindow:]
	}
	return strings.Contains(tail, "...")
}
