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
	"context"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify port-forwards the backend service and probes its health endpoint.",
	RunE:  runVerifyCmd,
}

type verifyFlags struct {
	localPort int
}

var verifyArgs verifyFlags

func init() {
	verifyCmd.Flags().IntVar(&verifyArgs.localPort, "local-port", 18000,
		"The local port used for the health check port-forward.")

	rootCmd.AddCommand(verifyCmd)
}

func runVerifyCmd(cmd *cobra.Command, args []string) error {
	d, err := newDeployer(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), rootArgs.timeout)
	defer cancel()

	if err := d.Preflight(ctx); err != nil {
		return err
	}

	logger.Println(`►`, "probing the backend health endpoint...")
	if err := d.Verify(ctx, verifyArgs.localPort); err != nil {
		return err
	}

	logger.Println(`✔`, "backend is healthy")
	return nil
}
