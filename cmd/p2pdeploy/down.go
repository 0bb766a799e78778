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

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Down deletes the deployed resources in reverse order, the namespace last.",
	RunE:  runDownCmd,
}

type downFlags struct {
	wait bool
}

var downArgs downFlags

func init() {
	downCmd.Flags().BoolVar(&downArgs.wait, "wait", false,
		"Wait for the deleted resources to be terminated.")

	rootCmd.AddCommand(downCmd)
}

func runDownCmd(cmd *cobra.Command, args []string) error {
	d, err := newDeployer(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), rootArgs.timeout)
	defer cancel()

	if err := d.Preflight(ctx); err != nil {
		return err
	}

	for _, step := range d.TeardownSteps() {
		logger.Println(`►`, fmt.Sprintf("deleting the %s manifest...", step.Name))
		output, err := d.Delete(ctx, step, downArgs.wait)
		if err != nil {
			return err
		}
		if output != "" {
			cmd.Println(output)
		}
	}

	logger.Println(`✔`, "teardown finished")
	return nil
}
