package execution

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"time"

	"wptr/internal/config"
	"wptr/internal/domain"
)

// TimeoutStatus is the distinguished exit status reported when a test
// exceeds its timeout.
const TimeoutStatus = 124

// Runner executes one test file by spawning the runtime under test on
// the harness entry script. The script prints one JSON record per line:
// a record per finished case and a final harness-status record.
type Runner struct {
	config *config.Config
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg}
}

// harnessRecord is one line of the runner protocol on stdout.
type harnessRecord struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

// RunSingleTest runs the runtime on one test URL and collects the
// harness protocol. Timeouts and crashes come back as normal results
// with a non-zero status.
func (r *Runner) RunSingleTest(test domain.TestToRun, progress ProgressFunc, timeouts Timeouts) domain.TestResult {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.For(test))
	defer cancel()

	cmd := exec.CommandContext(ctx, r.config.RuntimeBin, r.config.GetHarnessScript(), test.URL)
	cmd.Dir = r.config.WptRoot
	cmd.Env = os.Environ()

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	result := domain.TestResult{}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return failedToStart(err, start)
	}
	if err := cmd.Start(); err != nil {
		return failedToStart(err, start)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] != '{' {
			continue
		}
		var rec harnessRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		switch rec.Kind {
		case "case":
			c := domain.TestCaseResult{
				Name:    rec.Name,
				Passed:  rec.Passed,
				Status:  rec.Status,
				Message: rec.Message,
				Stack:   rec.Stack,
			}
			result.Cases = append(result.Cases, c)
			if progress != nil {
				progress(c)
			}
		case "harness":
			result.HarnessStatus = &domain.HarnessStatus{
				Status:  rec.Status,
				Message: rec.Message,
			}
		}
	}

	waitErr := cmd.Wait()
	result.Duration = time.Since(start)
	result.Stderr = stderr.String()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.Status = TimeoutStatus
		result.HarnessStatus = nil
		return result
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			result.Status = exitErr.ExitCode()
		} else {
			result.Status = 1
			if result.Stderr == "" {
				result.Stderr = waitErr.Error()
			}
		}
	}
	return result
}

func failedToStart(err error, start time.Time) domain.TestResult {
	return domain.TestResult{
		Status:   1,
		Stderr:   err.Error(),
		Duration: time.Since(start),
	}
}
