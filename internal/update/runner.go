package update

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// completionTimeout bounds how long a check-only run may take before the
// process is killed and partial output is used.
const completionTimeout = 60 * time.Second

// ExecRunner launches the real updater binary from the application directory.
type ExecRunner struct {
	appDir      string
	dataDir     string
	updaterName string // platform-specific file name, see UpdaterBinaryName
	logger      *slog.Logger
}

// NewExecRunner creates a runner for the updater binary living in appDir,
// operating on the installation under dataDir.
func NewExecRunner(appDir, dataDir, updaterName string, logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{
		appDir:      appDir,
		dataDir:     dataDir,
		updaterName: updaterName,
		logger:      logger,
	}
}

// updaterPath returns the absolute path of the updater binary.
func (r *ExecRunner) updaterPath() string {
	return filepath.Join(r.appDir, r.updaterName)
}

// RunCheck runs `<updater> --check-only --dir <dataDir> --debug
// [--pre-release]` and waits up to 60 seconds for it to finish. On timeout the
// process is killed and whatever output was captured so far is returned along
// with the error, so the caller can still inspect partial results.
func (r *ExecRunner) RunCheck(ctx context.Context, allowBeta bool) (ProcessResult, error) {
	args := []string{"--check-only", "--dir", r.dataDir, "--debug"}
	if allowBeta {
		args = append(args, "--pre-release")
	}

	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.updaterPath(), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("running update check", "path", r.updaterPath(), "args", args)

	if err := cmd.Start(); err != nil {
		return ProcessResult{ExitCode: -1}, fmt.Errorf("failed to start updater: %w", err)
	}

	err := cmd.Wait()
	res := ProcessResult{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
	}

	if ctx.Err() == context.DeadlineExceeded {
		r.logger.Warn("updater did not finish within timeout, using partial output",
			"timeout", completionTimeout)
		return res, fmt.Errorf("updater timed out after %s", completionTimeout)
	}
	if err != nil {
		// Non-zero exit codes are part of the check protocol, not failures.
		if _, ok := err.(*exec.ExitError); ok {
			return res, nil
		}
		return res, fmt.Errorf("updater wait failed: %w", err)
	}
	return res, nil
}

// RunInstall launches `<updater> --dir <dataDir> --install-version <tag>
// [--pre-release]` detached and returns once the process is confirmed running.
// The updater owns the installation from that point; the caller is expected to
// exit so files can be replaced.
func (r *ExecRunner) RunInstall(versionTag string, allowBeta bool) error {
	args := []string{"--dir", r.dataDir, "--install-version", versionTag}
	if allowBeta {
		args = append(args, "--pre-release")
	}

	cmd := exec.Command(r.updaterPath(), args...)

	r.logger.Debug("dispatching updater install", "path", r.updaterPath(), "args", args)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start updater: %w", err)
	}
	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("failed to detach updater: %w", err)
	}

	// Confirm the detached updater actually came up before the host exits.
	if proc, err := process.NewProcess(int32(pid)); err == nil {
		if running, err := proc.IsRunning(); err == nil && !running {
			return fmt.Errorf("updater process %d exited immediately after dispatch", pid)
		}
	}

	r.logger.Info("updater dispatched", "pid", pid, "version", versionTag)
	return nil
}
