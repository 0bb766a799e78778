package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
)

func TestRead(t *testing.T) {
	g := NewWithT(t)

	t.Run("returns defaults when the file is missing", func(t *testing.T) {
		cfg, err := Read(filepath.Join(t.TempDir(), "missing"))
		g.Expect(err).NotTo(HaveOccurred())

		g.Expect(cfg.Namespace).To(Equal("prompt2page"))
		g.Expect(cfg.ManifestDir).To(Equal("k8s"))
		g.Expect(cfg.Manifests.Namespace).To(Equal("namespace.yaml"))
		g.Expect(cfg.Rollouts).To(Equal([]string{"backend", "frontend"}))
		g.Expect(cfg.Kubectl.Command).To(Equal("kubectl"))
		g.Expect(cfg.PortForward.Mapping).To(Equal("8080:80"))
		g.Expect(cfg.HealthCheck.Path).To(Equal("/health"))
	})

	t.Run("fills the gaps of a partial file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config")
		err := os.WriteFile(path, []byte(`
apiVersion: p2pdeploy.prompt2page.dev/v1
kind: Config
namespace: staging
`), 0644)
		g.Expect(err).NotTo(HaveOccurred())

		cfg, err := Read(path)
		g.Expect(err).NotTo(HaveOccurred())

		g.Expect(cfg.Namespace).To(Equal("staging"))
		g.Expect(cfg.ManifestDir).To(Equal("k8s"))
		g.Expect(cfg.Manifests.Backend).To(Equal("backend-deployment.yaml"))
		g.Expect(cfg.Kubectl.Command).To(Equal("kubectl"))
	})

	t.Run("rejects an empty kubectl command", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config")
		err := os.WriteFile(path, []byte(`
kubectl:
  command: ""
  minVersion: ">=1.20.0"
`), 0644)
		g.Expect(err).NotTo(HaveOccurred())

		_, err = Read(path)
		g.Expect(err).To(HaveOccurred())
		g.Expect(err.Error()).To(ContainSubstring("can't be empty"))
	})

	t.Run("fails on malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config")
		err := os.WriteFile(path, []byte("namespace: [broken"), 0644)
		g.Expect(err).NotTo(HaveOccurred())

		_, err = Read(path)
		g.Expect(err).To(HaveOccurred())
	})
}

func TestWrite(t *testing.T) {
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "nested", "config")
	err := NewConfig().Write(path)
	g.Expect(err).NotTo(HaveOccurred())

	cfg, err := Read(path)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(cfg.Kind).To(Equal(ConfigKind))
	g.Expect(cfg.APIVersion).To(Equal(ConfigApiVersion))
	g.Expect(cfg.Namespace).To(Equal(DefaultNamespace))
	g.Expect(cfg.Manifests.Frontend).To(Equal("frontend-deployment.yaml"))
}
