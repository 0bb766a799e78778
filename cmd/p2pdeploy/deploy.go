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
	"fmt"

	"github.com/spf13/cobra"
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy applies the namespace, secrets, backend and frontend manifests in order and waits for the rollouts.",
	RunE:  runDeployCmd,
}

type deployFlags struct {
	dryRun bool
	noWait bool
}

var deployArgs deployFlags

func init() {
	deployCmd.Flags().BoolVar(&deployArgs.dryRun, "dry-run", false,
		"Validate the manifests with a client-side dry-run apply without touching the cluster.")
	deployCmd.Flags().BoolVar(&deployArgs.noWait, "no-wait", false,
		"Skip waiting for the deployments to roll out.")

	rootCmd.AddCommand(deployCmd)
}

func runDeployCmd(cmd *cobra.Command, args []string) error {
	d, err := newDeployer(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), rootArgs.timeout)
	defer cancel()

	if err := d.Preflight(ctx); err != nil {
		return err
	}

	for _, step := range d.Steps() {
		logger.Println(`►`, fmt.Sprintf("applying the %s manifest...", step.Name))
		output, err := d.Apply(ctx, step, deployArgs.dryRun)
		if err != nil {
			return err
		}
		cmd.Println(output)
	}

	if deployArgs.dryRun {
		logger.Println(`✔`, "dry-run finished")
		return nil
	}

	if !deployArgs.noWait {
		for _, name := range d.Rollouts() {
			logger.Println(`►`, fmt.Sprintf("waiting for deployment/%s to roll out...", name))
			if err := d.WaitForRollout(ctx, name); err != nil {
				return err
			}
		}
	}

	listing, err := d.ListAll(ctx)
	if err != nil {
		return err
	}
	cmd.Println(listing)

	logger.Println(`✔`, "deployment finished")
	cmd.Println("Access the frontend with:")
	cmd.Println(" ", d.PortForwardHint())

	return nil
}
