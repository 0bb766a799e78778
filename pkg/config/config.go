package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"
)

const (
	ConfigKind       = "Config"
	ConfigApiVersion = "p2pdeploy.prompt2page.dev/v1"

	DefaultNamespace   = "prompt2page"
	DefaultManifestDir = "k8s"
	DefaultKubectl     = "kubectl"
)

type Config struct {
	metav1.TypeMeta `json:",inline"`

	// Namespace is the target namespace for all namespaced
	// resources and for the rollout waits.
	Namespace string `json:"namespace,omitempty"`

	// ManifestDir is the directory holding the deployment manifests.
	ManifestDir string `json:"manifestDir,omitempty"`

	// Manifests holds the manifest file names, applied in the order:
	// namespace, secrets, backend, frontend.
	Manifests *Manifests `json:"manifests,omitempty"`

	// Rollouts holds the deployment names to wait on after apply.
	Rollouts []string `json:"rollouts,omitempty"`

	// Kubectl configures the external kubectl invocation.
	Kubectl *Kubectl `json:"kubectl,omitempty"`

	// PortForward describes the frontend access hint printed
	// after a successful deploy.
	PortForward *PortForward `json:"portForward,omitempty"`

	// HealthCheck describes the backend health probe used by verify.
	HealthCheck *HealthCheck `json:"healthCheck,omitempty"`
}

// Manifests holds the manifest file names relative to ManifestDir.
// The namespace manifest is applied without a namespace scope,
// the others are applied inside Config.Namespace.
type Manifests struct {
	Namespace string `json:"namespace"`
	Secrets   string `json:"secrets"`
	Backend   string `json:"backend"`
	Frontend  string `json:"frontend"`
}

type Kubectl struct {
	// Command is the kubectl invocation, e.g. 'kubectl' or
	// 'minikube kubectl --'.
	Command string `json:"command"`

	// MinVersion is an optional semver constraint checked against
	// the kubectl client version during preflight, e.g. '>=1.20.0'.
	MinVersion string `json:"minVersion,omitempty"`
}

type PortForward struct {
	// Service is the service name to forward to.
	Service string `json:"service"`

	// Mapping is the local:remote port pair, e.g. '8080:80'.
	Mapping string `json:"mapping"`
}

type HealthCheck struct {
	// Service is the backend service name to forward to.
	Service string `json:"service"`

	// Port is the backend service port.
	Port int `json:"port"`

	// Path is the HTTP path probed for a 200 response.
	Path string `json:"path"`
}

// NewConfig returns a config with the default deployment layout.
func NewConfig() *Config {
	return &Config{
		TypeMeta: metav1.TypeMeta{
			Kind:       ConfigKind,
			APIVersion: ConfigApiVersion,
		},
		Namespace:   DefaultNamespace,
		ManifestDir: DefaultManifestDir,
		Manifests:   defaultManifests(),
		Rollouts:    defaultRollouts(),
		Kubectl:     defaultKubectl(),
		PortForward: defaultPortForward(),
		HealthCheck: defaultHealthCheck(),
	}
}

func defaultManifests() *Manifests {
	return &Manifests{
		Namespace: "namespace.yaml",
		Secrets:   "secrets.yaml",
		Backend:   "backend-deployment.yaml",
		Frontend:  "frontend-deployment.yaml",
	}
}

func defaultRollouts() []string {
	return []string{"backend", "frontend"}
}

func defaultKubectl() *Kubectl {
	return &Kubectl{Command: DefaultKubectl}
}

func defaultPortForward() *PortForward {
	return &PortForward{Service: "frontend", Mapping: "8080:80"}
}

func defaultHealthCheck() *HealthCheck {
	return &HealthCheck{Service: "backend", Port: 8000, Path: "/health"}
}

// DefaultConfigPath returns '$HOME/.p2pdeploy/config'
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".p2pdeploy/config"), nil
}

// Read loads the config from the specified path,
// if the config file is not found, a default is returned.
func Read(configPath string) (*Config, error) {
	if configPath == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("$HOME dir can't be determined, error: %w", err)
		}
		configPath = p
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return NewConfig(), nil
	}

	cfgData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(cfgData, cfg); err != nil {
		return nil, err
	}

	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}

	if cfg.ManifestDir == "" {
		cfg.ManifestDir = DefaultManifestDir
	}

	if cfg.Manifests == nil {
		cfg.Manifests = defaultManifests()
	}

	if len(cfg.Rollouts) == 0 {
		cfg.Rollouts = defaultRollouts()
	}

	if cfg.Kubectl == nil {
		cfg.Kubectl = defaultKubectl()
	}

	if cfg.Kubectl.Command == "" {
		return nil, fmt.Errorf("the kubectl command can't be empty")
	}

	if cfg.PortForward == nil {
		cfg.PortForward = defaultPortForward()
	}

	if cfg.HealthCheck == nil {
		cfg.HealthCheck = defaultHealthCheck()
	}

	return cfg, nil
}

// Write saves the config at the given path, if no path is specified
// it will create or override '$HOME/.p2pdeploy/config'.
func (c *Config) Write(configPath string) error {
	if configPath == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		configPath = p
	}

	if err := os.MkdirAll(filepath.Dir(configPath), os.FileMode(0755)); err != nil {
		return err
	}

	cfgData, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, cfgData, os.FileMode(0666)); err != nil {
		return err
	}

	return nil
}
