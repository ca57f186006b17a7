package cleaner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gistworks/skim/cleaner"
)

func TestExtractMetadata(t *testing.T) {
	t.Parallel()

	const pageURL = "https://example.com/post"

	t.Run("title and description from standard tags", func(t *testing.T) {
		t.Parallel()

		doc, err := cleaner.Parse(`<html><head>
			<title>  My   Article </title>
			<meta name="description" content="A fine piece of writing.">
		</head><body><h1>Heading</h1></body></html>`)
		require.NoError(t, err)

		meta := cleaner.ExtractMetadata(doc, pageURL)
		assert.Equal(t, "My Article", meta.Title)
		assert.Equal(t, "A fine piece of writing.", meta.Description)
		assert.Equal(t, pageURL, meta.URL)
	})

	t.Run("heading fallback when title is empty", func(t *testing.T) {
		t.Parallel()

		doc, err := cleaner.Parse(`<html><head><title></title></head>
			<body><h1>Fallback Heading</h1></body></html>`)
		require.NoError(t, err)

		meta := cleaner.ExtractMetadata(doc, pageURL)
		assert.Equal(t, "Fallback Heading", meta.Title)
	})

	t.Run("open graph description fallback", func(t *testing.T) {
		t.Parallel()

		doc, err := cleaner.Parse(`<html><head>
			<meta property="og:description" content="From Open Graph.">
		</head><body></body></html>`)
		require.NoError(t, err)

		meta := cleaner.ExtractMetadata(doc, pageURL)
		assert.Equal(t, "From Open Graph.", meta.Description)
	})

	t.Run("bare document still echoes URL", func(t *testing.T) {
		t.Parallel()

		doc, err := cleaner.Parse(`<html><body></body></html>`)
		require.NoError(t, err)

		meta := cleaner.ExtractMetadata(doc, pageURL)
		assert.Empty(t, meta.Title)
		assert.Empty(t, meta.Description)
		assert.Equal(t, pageURL, meta.URL)
	})
}
