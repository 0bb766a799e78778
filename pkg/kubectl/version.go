package kubectl

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

type versionInfo struct {
	ClientVersion struct {
		GitVersion string `json:"gitVersion"`
	} `json:"clientVersion"`
}

// ClientVersion returns the semantic version of the kubectl binary.
func (e *Executor) ClientVersion(ctx context.Context) (*semver.Version, error) {
	output, err := e.Get(ctx, "version", "--client", "--output", "json")
	if err != nil {
		return nil, fmt.Errorf("reading the kubectl version failed: %w", err)
	}

	info := &versionInfo{}
	if err := json.Unmarshal([]byte(output), info); err != nil {
		return nil, fmt.Errorf("parsing the kubectl version failed: %w", err)
	}

	v, err := semver.NewVersion(info.ClientVersion.GitVersion)
	if err != nil {
		return nil, fmt.Errorf("parsing the kubectl version %q failed: %w", info.ClientVersion.GitVersion, err)
	}

	return v, nil
}

// CheckVersion verifies that the kubectl client version
// satisfies the given semver constraint.
func (e *Executor) CheckVersion(ctx context.Context, constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing the version constraint %q failed: %w", constraint, err)
	}

	v, err := e.ClientVersion(ctx)
	if err != nil {
		return err
	}

	if !c.Check(v) {
		return fmt.Errorf("kubectl version %s does not satisfy %s", v.String(), constraint)
	}

	return nil
}
