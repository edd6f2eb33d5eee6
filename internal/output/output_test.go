package output

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/simonhull/create-my-stack/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput redirects the package writer during f
func captureOutput(t *testing.T, f func()) string {
	t.Helper()

	var buf bytes.Buffer
	prev := SetWriter(&buf)
	defer SetWriter(prev)

	f()
	return buf.String()
}

func TestSuccess(t *testing.T) {
	got := captureOutput(t, func() { Success("Project directory created") })

	assert.Contains(t, got, "✓")
	assert.Contains(t, got, "Project directory created")
}

func TestError(t *testing.T) {
	got := captureOutput(t, func() { Error("Failed at step 3: boom") })

	assert.Contains(t, got, "✗")
	assert.Contains(t, got, "Failed at step 3: boom")
}

func TestProgress(t *testing.T) {
	got := captureOutput(t, func() { Progress(2, 7, "Generating root configuration...") })

	assert.Contains(t, got, "[2/7]")
	assert.Contains(t, got, "Generating root configuration...")
}

func TestVerbose(t *testing.T) {
	defer SetVerbose(false)

	SetVerbose(false)
	assert.Empty(t, captureOutput(t, func() { Verbose("hidden") }))

	SetVerbose(true)
	assert.Contains(t, captureOutput(t, func() { Verbose("shown") }), "shown")
}

func TestSummaryMarkdown(t *testing.T) {
	cfg := config.Default()
	md := SummaryMarkdown(&cfg)

	assert.Contains(t, md, "my-fullstack-app")
	assert.Contains(t, md, "| Framework | express |")
	assert.Contains(t, md, "## 🎨 Frontend")
	assert.Contains(t, md, "| Docker | Yes |")

	cfg.Frontend.Framework = config.NoFrontend
	cfg.Docker = false
	md = SummaryMarkdown(&cfg)
	assert.NotContains(t, md, "Frontend")
	assert.Contains(t, md, "| Docker | No |")
}

func TestMarkdown_PlainWhenCaptured(t *testing.T) {
	got := captureOutput(t, func() { Markdown("# Title\n\nbody") })
	assert.Contains(t, got, "# Title")
}

func TestComplete(t *testing.T) {
	got := captureOutput(t, func() { Complete("shop", config.NPM) })

	assert.Contains(t, got, "Project created successfully!")
	assert.Contains(t, got, "cd shop")
	assert.Contains(t, got, "npm install")
	assert.Contains(t, got, "npm run dev")
}

// assertANSI fails unless c is an ANSI 256 colour index. lipgloss ignores
// names like "green".
func assertANSI(t *testing.T, c lipgloss.TerminalColor) {
	t.Helper()
	color, ok := c.(lipgloss.Color)
	require.True(t, ok, "unexpected colour type %T", c)
	n, err := strconv.Atoi(string(color))
	require.NoError(t, err, "colour %q is not an ANSI index", color)
	assert.True(t, n >= 0 && n <= 255, "colour %d out of range", n)
}

func TestStyles_UseANSIColours(t *testing.T) {
	for _, s := range []lipgloss.Style{successStyle, errorStyle, warnStyle, infoStyle, headingStyle, stepStyle, bannerStyle} {
		assertANSI(t, s.GetForeground())
	}
	assertANSI(t, bannerStyle.GetBorderTopForeground())
}
