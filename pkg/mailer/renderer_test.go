package mailer

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`<html><body>{{.Content}}</body></html>`),
		},
		"notify.md": &fstest.MapFile{
			Data: []byte(`---
Subject: Delivery update
---
Your delivery **{{.ID}}** is queued.
`),
		},
	}

	r := NewRendererWithConfig(fs, RendererConfig{LayoutDir: "layouts"})
	result, err := r.Render("base.html", "notify.md", map[string]string{"ID": "d-42"})

	require.NoError(t, err)
	require.Contains(t, result.HTML, "<strong>d-42</strong>")
	require.Contains(t, result.HTML, "<html><body>")
	require.Contains(t, result.Text, "**d-42**")
	require.Equal(t, "Delivery update", result.Metadata["Subject"])
}

func TestRenderer_SanitizesScriptInjection(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{.Content}}`),
		},
		"raw.md": &fstest.MapFile{
			Data: []byte("Hello {{.Name}}\n"),
		},
	}

	r := NewRendererWithConfig(fs, RendererConfig{LayoutDir: "layouts"})
	result, err := r.Render("base.html", "raw.md", map[string]string{
		"Name": `<script>alert("x")</script>`,
	})

	require.NoError(t, err)
	require.NotContains(t, result.HTML, "<script>")
}

func TestRenderer_MissingLayout(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		"notify.md": &fstest.MapFile{Data: []byte("body\n")},
	}

	r := NewRenderer(fs)
	_, err := r.Render("nope.html", "notify.md", nil)
	require.ErrorIs(t, err, ErrLayoutNotFound)
}

func TestRenderer_NoFrontmatter(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{Data: []byte(`{{.Content}}`)},
		"plain.md":          &fstest.MapFile{Data: []byte("Just *text*.\n")},
	}

	r := NewRendererWithConfig(fs, RendererConfig{LayoutDir: "layouts"})
	result, err := r.Render("base.html", "plain.md", nil)

	require.NoError(t, err)
	require.Contains(t, result.HTML, "<em>text</em>")
	require.Empty(t, result.Metadata)
}
