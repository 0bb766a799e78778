package kubectl

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Executor shells out to kubectl. The command can be a multi-word
// invocation such as 'minikube kubectl --'.
type Executor struct {
	argv    []string
	envVars []string

	// Stdout and Stderr receive the output of streaming commands.
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecutor creates an executor for the given kubectl command.
func NewExecutor(command string, envVars []string) (*Executor, error) {
	argv, err := shellwords.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parsing the kubectl command failed: %w", err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("the kubectl command can't be empty")
	}

	return &Executor{
		argv:    argv,
		envVars: envVars,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}, nil
}

// Found verifies that the kubectl binary is resolvable on the PATH.
func (e *Executor) Found() error {
	if _, err := exec.LookPath(e.argv[0]); err != nil {
		return fmt.Errorf("%s not found on PATH", e.argv[0])
	}
	return nil
}

// Exec runs kubectl with the specified args, streaming its output.
func (e *Executor) Exec(ctx context.Context, args ...string) error {
	cmd := e.buildCmd(ctx, args)
	if len(e.envVars) > 0 {
		cmd.Env = e.envVars
	}
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	return cmd.Run()
}

// Get runs kubectl with the specified args and returns the output as string.
// On failure the error carries the combined output of the command.
func (e *Executor) Get(ctx context.Context, args ...string) (string, error) {
	cmd := e.buildCmd(ctx, args)
	if len(e.envVars) > 0 {
		cmd.Env = e.envVars
	}
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%s", string(output))
	} else {
		return strings.TrimSuffix(string(output), "\n"), nil
	}
}

// Pipe runs kubectl with the specified args, feeding the yaml arg on stdin.
func (e *Executor) Pipe(ctx context.Context, yaml string, args ...string) (string, error) {
	cmd := e.buildCmd(ctx, args)
	if len(e.envVars) > 0 {
		cmd.Env = e.envVars
	}
	cmd.Stdin = strings.NewReader(yaml)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%s", string(output))
	} else {
		return strings.TrimSuffix(string(output), "\n"), nil
	}
}

// Start launches a long-running kubectl command, e.g. port-forward,
// and returns the process handle without waiting for it to exit.
func (e *Executor) Start(ctx context.Context, args ...string) (*exec.Cmd, error) {
	cmd := e.buildCmd(ctx, args)
	if len(e.envVars) > 0 {
		cmd.Env = e.envVars
	}
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (e *Executor) buildCmd(ctx context.Context, args []string) *exec.Cmd {
	s := append(append([]string{}, e.argv...), args...)
	return exec.CommandContext(ctx, s[0], s[1:]...)
}
