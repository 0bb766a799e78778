package deployer

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"github.com/prompt2page/p2pdeploy/pkg/config"
	"github.com/prompt2page/p2pdeploy/pkg/kubectl"
)

func newTestDeployer(t *testing.T, script string) *Deployer {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fakectl")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	executor, err := kubectl.NewExecutor(path, nil)
	if err != nil {
		t.Fatal(err)
	}

	return New(executor, config.NewConfig(), time.Minute)
}

func TestSteps(t *testing.T) {
	g := NewWithT(t)

	d := newTestDeployer(t, "#!/bin/sh\n")

	steps := d.Steps()
	g.Expect(steps).To(HaveLen(4))

	g.Expect(steps[0].Name).To(Equal("namespace"))
	g.Expect(steps[0].Path).To(Equal("k8s/namespace.yaml"))
	g.Expect(steps[0].Namespaced).To(BeFalse())

	g.Expect(steps[1].Name).To(Equal("secrets"))
	g.Expect(steps[2].Name).To(Equal("backend"))
	g.Expect(steps[3].Name).To(Equal("frontend"))
	for _, step := range steps[1:] {
		g.Expect(step.Namespaced).To(BeTrue())
	}
}

func TestTeardownSteps(t *testing.T) {
	g := NewWithT(t)

	d := newTestDeployer(t, "#!/bin/sh\n")

	steps := d.TeardownSteps()
	g.Expect(steps).To(HaveLen(4))
	g.Expect(steps[0].Name).To(Equal("frontend"))
	g.Expect(steps[1].Name).To(Equal("backend"))
	g.Expect(steps[2].Name).To(Equal("secrets"))
	g.Expect(steps[3].Name).To(Equal("namespace"))
}

func TestPortForwardHint(t *testing.T) {
	g := NewWithT(t)

	d := newTestDeployer(t, "#!/bin/sh\n")
	g.Expect(d.PortForwardHint()).To(Equal("kubectl port-forward svc/frontend 8080:80 -n prompt2page"))
}

func TestApplyFailure(t *testing.T) {
	g := NewWithT(t)

	d := newTestDeployer(t, `#!/bin/sh
echo "The Secret is invalid" >&2
exit 1
`)

	_, err := d.Apply(context.Background(), d.Steps()[1], false)
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("applying the secrets manifest failed"))
	g.Expect(err.Error()).To(ContainSubstring("The Secret is invalid"))
}

func TestStatusDecoding(t *testing.T) {
	g := NewWithT(t)

	d := newTestDeployer(t, `#!/bin/sh
cat <<'EOF'
{
  "apiVersion": "apps/v1",
  "kind": "DeploymentList",
  "items": [
    {
      "metadata": {"name": "backend", "creationTimestamp": "2025-01-01T00:00:00Z"},
      "status": {"replicas": 1, "readyReplicas": 1, "updatedReplicas": 1, "availableReplicas": 1}
    }
  ]
}
EOF
`)

	statuses, err := d.Status(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(statuses).To(HaveLen(1))
	g.Expect(statuses[0].Name).To(Equal("backend"))
	g.Expect(statuses[0].Ready).To(Equal("1/1"))
	g.Expect(statuses[0].UpToDate).To(Equal("1"))
	g.Expect(statuses[0].Available).To(Equal("1"))
	g.Expect(statuses[0].Age).NotTo(BeEmpty())
}

func TestVerify(t *testing.T) {
	g := NewWithT(t)

	// stands in for 'kubectl port-forward', the test serves the
	// backend endpoint directly on the local port
	d := newTestDeployer(t, "#!/bin/sh\nsleep 30\n")

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	g.Expect(err).NotTo(HaveOccurred())
	port := listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"healthy"}`)
	})
	server := &http.Server{Handler: mux}
	go server.Serve(listener)
	defer server.Close()

	t.Run("reports a healthy backend", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		g.Expect(d.Verify(ctx, port)).To(Succeed())
	})

	t.Run("times out on an unreachable backend", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		freePort := port + 1
		err := d.Verify(ctx, freePort)
		g.Expect(err).To(HaveOccurred())
		g.Expect(err.Error()).To(ContainSubstring("timed out"))
	})
}
