package deployer

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	"k8s.io/apimachinery/pkg/util/duration"
	"sigs.k8s.io/yaml"
)

// DeploymentStatus summarizes the rollout state of one deployment.
type DeploymentStatus struct {
	Name      string
	Ready     string
	UpToDate  string
	Available string
	Age       string
}

// Status returns the rollout state of all deployments in the
// target namespace, decoded from kubectl's JSON output.
func (d *Deployer) Status(ctx context.Context) ([]DeploymentStatus, error) {
	output, err := d.kubectl.Get(ctx, "get", "deployments", "-n", d.cfg.Namespace, "-o", "json")
	if err != nil {
		return nil, fmt.Errorf("reading deployments in %s failed: %w", d.cfg.Namespace, err)
	}

	list := &appsv1.DeploymentList{}
	if err := yaml.Unmarshal([]byte(output), list); err != nil {
		return nil, fmt.Errorf("parsing the deployment list failed: %w", err)
	}

	var statuses []DeploymentStatus
	for _, item := range list.Items {
		statuses = append(statuses, DeploymentStatus{
			Name:      item.GetName(),
			Ready:     fmt.Sprintf("%d/%d", item.Status.ReadyReplicas, item.Status.Replicas),
			UpToDate:  fmt.Sprintf("%d", item.Status.UpdatedReplicas),
			Available: fmt.Sprintf("%d", item.Status.AvailableReplicas),
			Age:       duration.HumanDuration(time.Since(item.GetCreationTimestamp().Time)),
		})
	}

	return statuses, nil
}
