package deployer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/prompt2page/p2pdeploy/pkg/config"
	"github.com/prompt2page/p2pdeploy/pkg/kubectl"
)

// Deployer sequences the kubectl calls that ship the prompt2page
// stack: ordered manifest applies, rollout waits, resource listing
// and teardown. Every cluster interaction goes through the external
// kubectl binary.
type Deployer struct {
	kubectl *kubectl.Executor
	cfg     *config.Config
	timeout time.Duration
}

// Step is a single manifest apply or delete.
type Step struct {
	// Name identifies the step in progress and error messages.
	Name string

	// Path is the manifest file path.
	Path string

	// Namespaced scopes the kubectl call to the target namespace.
	Namespaced bool
}

func New(executor *kubectl.Executor, cfg *config.Config, timeout time.Duration) *Deployer {
	return &Deployer{
		kubectl: executor,
		cfg:     cfg,
		timeout: timeout,
	}
}

// Preflight verifies that kubectl is resolvable and, if a minimum
// version is configured, that the client version satisfies it.
// It must pass before any apply is attempted.
func (d *Deployer) Preflight(ctx context.Context) error {
	if err := d.kubectl.Found(); err != nil {
		return err
	}

	if d.cfg.Kubectl.MinVersion != "" {
		if err := d.kubectl.CheckVersion(ctx, d.cfg.Kubectl.MinVersion); err != nil {
			return err
		}
	}

	return nil
}

// Steps returns the manifest apply steps in deployment order.
// The namespace manifest comes first and is not namespace-scoped.
func (d *Deployer) Steps() []Step {
	m := d.cfg.Manifests
	return []Step{
		{Name: "namespace", Path: filepath.Join(d.cfg.ManifestDir, m.Namespace)},
		{Name: "secrets", Path: filepath.Join(d.cfg.ManifestDir, m.Secrets), Namespaced: true},
		{Name: "backend", Path: filepath.Join(d.cfg.ManifestDir, m.Backend), Namespaced: true},
		{Name: "frontend", Path: filepath.Join(d.cfg.ManifestDir, m.Frontend), Namespaced: true},
	}
}

// Apply runs 'kubectl apply' for the given step and returns the
// command output. A failing apply halts the caller's sequence.
func (d *Deployer) Apply(ctx context.Context, step Step, dryRun bool) (string, error) {
	args := []string{"apply", "-f", step.Path}
	if step.Namespaced {
		args = append(args, "-n", d.cfg.Namespace)
	}
	if dryRun {
		args = append(args, "--dry-run=client")
	}

	output, err := d.kubectl.Get(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("applying the %s manifest failed: %w", step.Name, err)
	}
	return output, nil
}

// WaitForRollout blocks until the named deployment reports a
// completed rollout or the timeout expires. The polling itself is
// owned by kubectl.
func (d *Deployer) WaitForRollout(ctx context.Context, name string) error {
	err := d.kubectl.Exec(ctx, "rollout", "status",
		fmt.Sprintf("deployment/%s", name),
		"-n", d.cfg.Namespace,
		fmt.Sprintf("--timeout=%s", d.timeout.String()))
	if err != nil {
		return fmt.Errorf("rollout of deployment/%s failed: %w", name, err)
	}
	return nil
}

// ListAll returns the raw 'kubectl get all' listing for the
// target namespace.
func (d *Deployer) ListAll(ctx context.Context) (string, error) {
	output, err := d.kubectl.Get(ctx, "get", "all", "-n", d.cfg.Namespace)
	if err != nil {
		return "", fmt.Errorf("listing resources in %s failed: %w", d.cfg.Namespace, err)
	}
	return output, nil
}

// Delete runs 'kubectl delete' for the given step, tolerating
// resources that are already gone.
func (d *Deployer) Delete(ctx context.Context, step Step, wait bool) (string, error) {
	args := []string{"delete", "-f", step.Path, "--ignore-not-found"}
	if step.Namespaced {
		args = append(args, "-n", d.cfg.Namespace)
	}
	args = append(args, fmt.Sprintf("--wait=%t", wait))

	output, err := d.kubectl.Get(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("deleting the %s manifest failed: %w", step.Name, err)
	}
	return output, nil
}

// TeardownSteps returns the apply steps in reverse order, so that
// workloads go away before their secrets and namespace.
func (d *Deployer) TeardownSteps() []Step {
	steps := d.Steps()
	reversed := make([]Step, 0, len(steps))
	for i := len(steps) - 1; i >= 0; i-- {
		reversed = append(reversed, steps[i])
	}
	return reversed
}

// Rollouts returns the deployment names to wait on after apply.
func (d *Deployer) Rollouts() []string {
	return d.cfg.Rollouts
}

// PortForwardHint returns the kubectl command that exposes the
// frontend service locally.
func (d *Deployer) PortForwardHint() string {
	pf := d.cfg.PortForward
	return strings.Join([]string{
		"kubectl", "port-forward",
		fmt.Sprintf("svc/%s", pf.Service),
		pf.Mapping,
		"-n", d.cfg.Namespace,
	}, " ")
}
