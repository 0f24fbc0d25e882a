package usecase

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func paragraphs(n int) string {
	lines := make([]string, n)
	for i := range n {
		lines[i] = fmt.Sprintf("<paragraph>Paragraph %d describes a distinct part of the transformation plan.</paragraph>", i)
	}
	return strings.Join(lines, "\n")
}

func TestIsIncomplete(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		xml      string
		expected bool
	}{
		{name: "complete", xml: paragraphs(20), expected: false},
		{name: "too short", xml: paragraphs(3), expected: true},
		{name: "repetitive", xml: strings.Repeat("<paragraph>same same same same same same same same same</paragraph>\n", 40), expected: true},
		{name: "unclosed ending", xml: paragraphs(20) + "\n<list>", expected: true},
		{name: "trailing ellipsis", xml: paragraphs(20) + "\n<content>and then...</content>", expected: true},
		{name: "ends with content", xml: paragraphs(20) + "\n<content>Final words.</content>", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, IsIncomplete(tc.xml))
		})
	}
}
