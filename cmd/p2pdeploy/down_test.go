/*
Copyright 2025 The prompt2page authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestDown(t *testing.T) {
	g := NewWithT(t)

	t.Run("deletes in reverse order", func(t *testing.T) {
		resetInvocations()

		output, err := executeCommand("down")
		g.Expect(err).NotTo(HaveOccurred())
		t.Logf("\n%s", output)

		calls := invocations()
		g.Expect(calls).To(HaveLen(4))
		g.Expect(calls[0]).To(Equal("delete -f k8s/frontend-deployment.yaml --ignore-not-found -n prompt2page --wait=false"))
		g.Expect(calls[1]).To(Equal("delete -f k8s/backend-deployment.yaml --ignore-not-found -n prompt2page --wait=false"))
		g.Expect(calls[2]).To(Equal("delete -f k8s/secrets.yaml --ignore-not-found -n prompt2page --wait=false"))
		g.Expect(calls[3]).To(Equal("delete -f k8s/namespace.yaml --ignore-not-found --wait=false"))
	})

	t.Run("waits for termination", func(t *testing.T) {
		resetInvocations()

		_, err := executeCommand("down --wait")
		g.Expect(err).NotTo(HaveOccurred())

		for _, call := range invocations() {
			g.Expect(call).To(HaveSuffix("--wait=true"))
		}
	})
}
