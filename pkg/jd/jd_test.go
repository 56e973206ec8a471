package jd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name      string
		page      string
		wantTitle string
		wantDesc  string
	}{
		{
			name:      "og tags win",
			page:      `<html><head><title>Jobs | Acme</title><meta property="og:title" content="Senior Go Engineer"><meta property="og:description" content="Build  services"><meta name="description" content="ignored"></head><body>body</body></html>`,
			wantTitle: "Senior Go Engineer",
			wantDesc:  "Build services",
		},
		{
			name:      "meta description",
			page:      `<html><head><title> Backend Dev </title><meta name="Description" content="Postgres and Go"></head><body>x</body></html>`,
			wantTitle: "Backend Dev",
			wantDesc:  "Postgres and Go",
		},
		{
			name:      "main text without scripts",
			page:      `<html><head><title>T</title></head><body><nav>Menu</nav><main><h1>Role</h1><p>Write Go.</p><script>var x=1</script></main><footer>c</footer></body></html>`,
			wantTitle: "T",
			wantDesc:  "Role Write Go.",
		},
		{
			name:      "article fallback",
			page:      `<html><body><article>Kubernetes operators</article></body></html>`,
			wantTitle: "",
			wantDesc:  "Kubernetes operators",
		},
		{
			name:      "body fallback",
			page:      `<html><body><div>Plain page</div></body></html>`,
			wantTitle: "",
			wantDesc:  "Plain page",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Extract(strings.NewReader(tc.page))
			require.NoError(t, err)
			assert.Equal(t, tc.wantTitle, p.Title)
			assert.Equal(t, tc.wantDesc, p.Description)
		})
	}
}

func TestExtract_Truncates(t *testing.T) {
	page := "<html><body><main>" + strings.Repeat("a ", MaxDescription) + "</main></body></html>"
	p, err := Extract(strings.NewReader(page))
	require.NoError(t, err)
	assert.LessOrEqual(t, len([]rune(p.Description)), MaxDescription)
}

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<title>Platform Engineer</title><meta name="description" content="Terraform, Go">`))
	}))
	defer srv.Close()

	f := NewFetcher()
	p, err := f.Fetch(context.Background(), srv.URL+"/job")
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer", p.Title)
	assert.Equal(t, "Terraform, Go", p.Description)

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	assert.Error(t, err)

	for _, bad := range []string{"", "ftp://x/y", "/relative", "http://"} {
		_, err = f.Fetch(context.Background(), bad)
		assert.ErrorIs(t, err, ErrInvalidURL, bad)
	}
}
