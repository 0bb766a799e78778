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

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Status prints the rollout state of the deployments and the resources in the target namespace.",
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	d, err := newDeployer(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), rootArgs.timeout)
	defer cancel()

	if err := d.Preflight(ctx); err != nil {
		return err
	}

	statuses, err := d.Status(ctx)
	if err != nil {
		return err
	}

	var rows [][]string
	for _, s := range statuses {
		rows = append(rows, []string{s.Name, s.Ready, s.UpToDate, s.Available, s.Age})
	}
	printTable(cmd.OutOrStdout(), []string{"name", "ready", "up-to-date", "available", "age"}, rows)

	listing, err := d.ListAll(ctx)
	if err != nil {
		return err
	}
	cmd.Println(listing)

	return nil
}
