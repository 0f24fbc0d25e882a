package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestExtractPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		page        string
		maxChars    int
		wantTitle   string
		wantContent string
	}{
		{
			name: "main element wins over body",
			page: `<html><head><title> Acme  Corp </title><script>var x=1</script></head>
<body><nav>Menu</nav><main><h1>About</h1><p>We build
   rockets.</p></main><footer>(c) Acme</footer></body></html>`,
			maxChars:    5000,
			wantTitle:   "Acme Corp",
			wantContent: "About We build rockets.",
		},
		{
			name:        "class selector",
			page:        `<html><body><div class="sidebar">x</div><div class="wrap post-content">Post body</div></body></html>`,
			maxChars:    5000,
			wantTitle:   "example.com",
			wantContent: "Post body",
		},
		{
			name:        "id selector before later classes",
			page:        `<html><body><div class="entry">entry</div><section id="content">main text</section></body></html>`,
			maxChars:    5000,
			wantTitle:   "example.com",
			wantContent: "main text",
		},
		{
			name:        "body fallback strips header and aside",
			page:        `<html><body><header>Top</header><p>Plain page</p><aside>ads</aside><style>p{}</style></body></html>`,
			maxChars:    5000,
			wantTitle:   "example.com",
			wantContent: "Plain page",
		},
		{
			name:        "truncated",
			page:        `<html><body><main>abcdefghij</main></body></html>`,
			maxChars:    4,
			wantTitle:   "example.com",
			wantContent: "abcd...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			title, content := ExtractPage(parse(t, tt.page), "https://example.com/about", tt.maxChars)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantContent, content)
		})
	}
}
