package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const TEST_COMMAND_TIMEOUT = 30 * time.Second

// buildCLI returns the aura binary to drive, building it from the repository
// root unless AURA_BIN_DIR points at a prebuilt one.
func buildCLI(t *testing.T) string {
	t.Helper()

	if dir := os.Getenv("AURA_BIN_DIR"); dir != "" {
		cliPath, _ := filepath.Abs(filepath.Join(dir, "aura"))
		if _, err := os.Stat(cliPath); os.IsNotExist(err) {
			t.Fatalf("CLI binary not found at %s. Please build it first.", cliPath)
		}
		return cliPath
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get cwd: %v", err)
	}
	root := filepath.Join(cwd, "..", "..")
	cliPath := filepath.Join(t.TempDir(), "aura")

	build := exec.Command("go", "build", "-o", cliPath, "./cmd/aura")
	build.Dir = root
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build CLI: %v\nOutput: %s", err, out)
	}
	return cliPath
}

// isolatedEnv strips anything that could point aura at a real profile.
func isolatedEnv(home string) []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "XDG_CONFIG_HOME=") || strings.HasPrefix(e, "AURA_") {
			continue
		}
		env = append(env, e)
	}
	return append(env,
		fmt.Sprintf("HOME=%s", home),
		fmt.Sprintf("XDG_CONFIG_HOME=%s", filepath.Join(home, ".config")),
		fmt.Sprintf("AURA_CONFIG=%s", filepath.Join(home, "aura", "aura.db")),
		"AURA_TIMEZONE=UTC",
	)
}

func TestEndToEndWorkflow(t *testing.T) {
	cliPath := buildCLI(t)
	tempDir := t.TempDir()
	env := isolatedEnv(tempDir)
	t.Logf("Running test in temp dir: %s", tempDir)

	out := runCmd(t, cliPath, env, "init")
	assertContains(t, out, "Initialized aura storage")

	runCmd(t, cliPath, env, "steps", "goal", "1000")
	out = runCmd(t, cliPath, env, "steps", "add", "1200")
	assertContains(t, out, "Steps goal reached!")

	out = runCmd(t, cliPath, env, "steps", "add", "100")
	if strings.Contains(out, "goal reached") {
		t.Errorf("goal celebrated twice:\n%s", out)
	}

	runCmd(t, cliPath, env, "water", "add", "3")
	out = runCmd(t, cliPath, env, "water")
	assertContains(t, out, "3 / 8 glasses")

	runCmd(t, cliPath, env, "habit", "add", "Read", "-d", "Ten pages")
	out = runCmd(t, cliPath, env, "habit", "done", "read")
	assertContains(t, out, "Read")

	out = runCmd(t, cliPath, env, "habit", "done", "Meditate")
	assertContains(t, out, "Nothing changed")

	runCmd(t, cliPath, env, "mood", "log", "happy", "-n", "sunny walk")

	out = runCmd(t, cliPath, env, "status")
	assertContains(t, out, "1300 / 1000 steps")
	assertContains(t, out, "Habits: 1 / 1 done today")

	runCmd(t, cliPath, env, "backup", "create")
	out = runCmd(t, cliPath, env, "backup", "list")
	assertContains(t, out, ".db")

	runCmd(t, cliPath, env, "clear", "--yes")
	out = runCmd(t, cliPath, env, "steps")
	assertContains(t, out, "0 / 10000 steps")

	out = runCmd(t, cliPath, env, "doctor")
	assertContains(t, out, "Storage")
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env

	done := make(chan struct{})
	timer := time.AfterFunc(TEST_COMMAND_TIMEOUT, func() {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		close(done)
	})
	defer timer.Stop()

	out, err := cmd.CombinedOutput()
	select {
	case <-done:
		t.Fatalf("Command %v timed out after %s", args, TEST_COMMAND_TIMEOUT)
	default:
	}
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}

func assertContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Errorf("output missing %q:\n%s", want, out)
	}
}
