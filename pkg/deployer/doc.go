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

// Package deployer sequences the kubectl calls that ship the
// prompt2page stack to a cluster.
//
// The Deployer:
// - verifies that kubectl is resolvable before touching the cluster
// - applies the namespace, secrets, backend and frontend manifests in order
// - halts on the first failing step, reporting kubectl's own output
// - waits for the backend and frontend rollouts to complete
// - lists the deployed resources and summarizes the rollout state
// - tears the stack down in reverse order
// - probes the backend health endpoint through a port-forward
package deployer
