//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedMillpulsePath holds the path to a shared millpulse binary built once for all tests.
	sharedMillpulsePath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getMillpulseBinary returns the path to the millpulse binary, building it once if needed.
func getMillpulseBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "millpulse-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		millpulsePath := filepath.Join(tempDir, "millpulse")
		buildCmd := exec.Command("go", "build", "-o", millpulsePath, "./cmd/millpulse")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build millpulse: %v", err))
		}

		sharedMillpulsePath = millpulsePath
	})

	return sharedMillpulsePath
}

// runMillpulseCommand runs the shared binary from the project root.
func runMillpulseCommand(t *testing.T, args ...string) error {
	millpulsePath := getMillpulseBinary()
	cmd := exec.Command(millpulsePath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
