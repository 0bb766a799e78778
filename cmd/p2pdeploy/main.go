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
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/prompt2page/p2pdeploy/pkg/config"
)

var VERSION = "1.0.0-dev.0"

const PROJECT = "p2pdeploy"

var rootCmd = &cobra.Command{
	Use:           PROJECT,
	Version:       VERSION,
	SilenceUsage:  true,
	SilenceErrors: true,
	Short:         "A command line utility to deploy the prompt2page stack to Kubernetes.",
	Long: `p2pdeploy drives kubectl to ship the prompt2page application.

Deploy and tear down the stack:

- p2pdeploy deploy [--dry-run] [--no-wait]
- p2pdeploy down [--wait]

Inspect the deployed resources:

- p2pdeploy status
- p2pdeploy verify [--local-port <port>]

Manage the deployment configuration:

- p2pdeploy config init
- p2pdeploy config view
`,
}

type rootFlags struct {
	timeout     time.Duration
	namespace   string
	manifestDir string
	kubectl     string
}

var (
	rootArgs = rootFlags{}
	logger   = stderrLogger{stderr: os.Stderr}
	cfg      = config.NewConfig()
)

func init() {
	rootCmd.PersistentFlags().DurationVar(&rootArgs.timeout, "timeout", 5*time.Minute,
		"The length of time to wait before giving up on the current operation.")
	rootCmd.PersistentFlags().StringVarP(&rootArgs.namespace, "namespace", "n", "",
		"The target namespace, overrides the configured one.")
	rootCmd.PersistentFlags().StringVar(&rootArgs.manifestDir, "manifest-dir", "",
		"The directory holding the deployment manifests, overrides the configured one.")
	rootCmd.PersistentFlags().StringVar(&rootArgs.kubectl, "kubectl", "",
		"The kubectl command, overrides the configured one, e.g. 'minikube kubectl --'.")

	rootCmd.DisableAutoGenTag = true
	rootCmd.SetOut(os.Stdout)
}

func main() {
	loadConfig()
	if err := rootCmd.Execute(); err != nil {
		logger.Println(`✗`, err)
		os.Exit(1)
	}
}

func loadConfig() {
	if c, err := config.Read(""); err != nil {
		logger.Println(`✗`, fmt.Errorf("loading the config failed, error: %w", err))
	} else {
		cfg = c
	}
}
