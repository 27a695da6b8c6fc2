// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full
// stack: command parsing -> importer/exporter -> store layer -> SQLite.
//
// Some internal packages lean on these tests rather than carrying their
// own: internal/format and internal/version are covered here through the
// commands that render with them. If underlying functionality breaks,
// the CLI tests fail - proving the stack works.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the chatarc binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		// Build to a temp location
		tmpDir, err := os.MkdirTemp("", "chatarc-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "chatarc"
		if os.PathSeparator == '\\' {
			binaryName = "chatarc.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state. Each env gets its own HOME so
// config, audit log, and the default archive never touch the real user
// directories, plus its own archive database via CHATARC_DB.
type testEnv struct {
	t      *testing.T
	dir    string
	binary string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	return &testEnv{
		t:      t,
		dir:    t.TempDir(),
		binary: buildBinary(t),
	}
}

// run executes chatarc with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("chatarc %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes chatarc and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		"HOME="+e.dir,
		"CHATARC_DB="+filepath.Join(e.dir, "archive.db"),
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// runStdin executes chatarc with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		"HOME="+e.dir,
		"CHATARC_DB="+filepath.Join(e.dir, "archive.db"),
	)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	if err != nil {
		e.t.Fatalf("chatarc %v failed: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// writeFile writes a fixture into the env directory and returns its path.
func (e *testEnv) writeFile(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatal(err)
	}
	return path
}

// importClaude writes the Claude fixture and imports it.
func (e *testEnv) importClaude() {
	e.t.Helper()
	path := e.writeFile("conversations.json", claudeExportFixture)
	e.run("import", "claude", path)
}

// importGemini writes the Gemini fixture and imports it.
func (e *testEnv) importGemini() {
	e.t.Helper()
	path := e.writeFile("MyActivity.html", geminiExportFixture)
	e.run("import", "gemini", path, "--prefix", "Pokyn:")
}

// claudeExportFixture is a minimal conversations.json with two
// conversations, one of them with diacritics to exercise folded search.
const claudeExportFixture = `[
  {
    "uuid": "conv-1",
    "name": "Deploying",
    "chat_messages": [
      {"uuid": "m1", "sender": "human", "text": "How do I deploy kubernetes?", "created_at": "2026-01-05T10:00:00.000000Z"},
      {"uuid": "m2", "sender": "assistant", "text": "Use a managed cluster.", "created_at": "2026-01-05T10:00:05.000000Z"}
    ]
  },
  {
    "uuid": "conv-2",
    "name": "Praha",
    "chat_messages": [
      {"uuid": "m3", "sender": "human", "text": "Možná otázka o Praze", "created_at": "2026-01-06T10:00:00.000000Z"},
      {"uuid": "m4", "sender": "assistant", "text": "Praha je hlavní město.", "created_at": "2026-01-06T10:00:05.000000Z"}
    ]
  }
]`

// geminiExportFixture is a minimal Takeout MyActivity.html with one
// complete question/answer block.
const geminiExportFixture = `<html><body>
<div class="outer-cell mdl-cell mdl-cell--12-col mdl-shadow--2dp"><div class="mdl-grid">
<div class="header-cell mdl-cell mdl-cell--12-col"><p class="mdl-typography--title">Gemini</p></div>
<div class="content-cell mdl-cell mdl-cell--6-col mdl-typography--body-1">Pokyn:&nbsp;Jak&aacute; je mo&#382;n&aacute; cesta?<br>12. 1. 2026 19:01:56 SE&#268;<br><p>Prvn&iacute; odpov&#283;&#271;</p></div>
</div></div>
</body></html>`
