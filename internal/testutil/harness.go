// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteFiles creates a temporary directory holding the given files and
// returns its path. Names are relative and may include subdirectories.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// DumpLogsOnFailure prints the captured log output when the test fails or
// when STAGEGRID_TEST_LOGS=true.
func DumpLogsOnFailure(t *testing.T, logs *SafeBuffer) {
	t.Helper()
	t.Cleanup(func() {
		if t.Failed() || os.Getenv("STAGEGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
}

// ReleaseHCL is a small diagram used by several packages' tests: two wide
// stages that need a junction between them, followed by a single-item stage.
const ReleaseHCL = `
diagram "release" {
  id_scheme = "sequence"

  stage "build" {
    item "compile" {
      label = "Compile"
      meta  = { owner = "ci" }
    }
    item "lint" {}
  }

  stage "test" {
    item "unit" {}
    item "e2e" {}
  }

  stage "ship" {
    item "deploy" {
      label = "Deploy"
    }
  }
}
`

// ReleaseYAML is ReleaseHCL in YAML form.
const ReleaseYAML = `
name: release
id_scheme: sequence
stages:
  - name: build
    items:
      - id: compile
        label: Compile
        meta: {owner: ci}
      - id: lint
  - name: test
    items:
      - id: unit
      - id: e2e
  - name: ship
    items:
      - id: deploy
        label: Deploy
`
