package logger

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture redirects output to a buffer for the duration of the test.
func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name    string
		log     func(string, ...any)
		verbose string
		quiet   string
	}{
		{"debug", Debug, "[DEBUG] q=react\n", ""},
		{"info", Info, "[INFO] q=react\n", ""},
		{"warn", Warn, "[WARN] q=react\n", ""},
		{"error", Error, "[ERROR] q=react\n", "[ERROR] q=react\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name+" verbose", func(t *testing.T) {
			buf := capture(t, true)
			tt.log("q=%s", "react")
			assert.Equal(t, tt.verbose, buf.String())
		})
		t.Run(tt.name+" quiet", func(t *testing.T) {
			buf := capture(t, false)
			tt.log("q=%s", "react")
			assert.Equal(t, tt.quiet, buf.String())
		})
	}
}

func TestSection(t *testing.T) {
	buf := capture(t, true)
	Section("Session")
	assert.Equal(t, "\n=== Session ===\n", buf.String())

	buf.Reset()
	SetVerbose(false)
	Section("Session")
	assert.Empty(t, buf.String())
}

func TestScope(t *testing.T) {
	buf := capture(t, true)
	log := For("session 1a2b3c4d")

	log.Debug("commit %q", "react")
	log.Info("settled")
	log.Warn("slow")
	log.Error("boom")

	assert.Equal(t,
		"[DEBUG] session 1a2b3c4d: commit \"react\"\n"+
			"[INFO] session 1a2b3c4d: settled\n"+
			"[WARN] session 1a2b3c4d: slow\n"+
			"[ERROR] session 1a2b3c4d: boom\n",
		buf.String())
}

func TestScope_QuietOnlyPrintsErrors(t *testing.T) {
	buf := capture(t, false)
	log := For("http")

	log.Debug("ignored")
	log.Error("listen failed")

	assert.Equal(t, "[ERROR] http: listen failed\n", buf.String())
}

func TestConcurrentWritesKeepLinesWhole(t *testing.T) {
	buf := capture(t, true)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			For("worker").Info("line %d", n)
			_ = IsVerbose()
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "[INFO] worker: line "), line)
	}
}
