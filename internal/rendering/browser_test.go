package rendering

import (
	"context"
	"os"
	"os/exec"
	"testing"

	"github.com/jonathan/resume-composer/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chromePath(t *testing.T) string {
	t.Helper()
	if p := os.Getenv("CHROME_PATH"); p != "" {
		return p
	}
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	t.Skip("Chrome not available, skipping browser export test")
	return ""
}

func TestBrowserExporter_Export(t *testing.T) {
	path := chromePath(t)
	layout, pages := compose(t, longResume(12, 4), "modern-professional")

	exporter := NewBrowserExporter()
	exporter.ChromePath = path
	data, err := exporter.Export(context.Background(), layout, pages)
	require.NoError(t, err)
	assert.Equal(t, len(pages), validation.CountPages(data))
}

func TestBrowserExporter_Canceled(t *testing.T) {
	layout, pages := compose(t, sampleResume(), "classic-executive")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data, err := NewBrowserExporter().Export(ctx, layout, pages)
	assert.Nil(t, data)
	assert.True(t, IsExportError(err))
	assert.ErrorIs(t, err, context.Canceled)
}
