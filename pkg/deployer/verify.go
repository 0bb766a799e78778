package deployer

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Verify port-forwards the backend service and probes its health
// endpoint until it responds with 200 or the context expires.
func (d *Deployer) Verify(ctx context.Context, localPort int) error {
	hc := d.cfg.HealthCheck

	forwarder, err := d.kubectl.Start(ctx, "port-forward",
		fmt.Sprintf("svc/%s", hc.Service),
		fmt.Sprintf("%d:%d", localPort, hc.Port),
		"-n", d.cfg.Namespace)
	if err != nil {
		return fmt.Errorf("port-forward to svc/%s failed: %w", hc.Service, err)
	}
	defer func() {
		forwarder.Process.Kill()
		forwarder.Wait()
	}()

	url := fmt.Sprintf("http://127.0.0.1:%d%s", localPort, hc.Path)
	client := &http.Client{Timeout: 2 * time.Second}

	var lastErr error
	for {
		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("health check at %s timed out, last error: %w", url, lastErr)
			}
			return fmt.Errorf("health check at %s timed out", url)
		case <-time.After(500 * time.Millisecond):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			return nil
		}
		lastErr = fmt.Errorf("unexpected status %s", resp.Status)
	}
}
