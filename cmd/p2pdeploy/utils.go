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
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/prompt2page/p2pdeploy/pkg/deployer"
	"github.com/prompt2page/p2pdeploy/pkg/kubectl"
)

// newDeployer builds a deployer from the loaded config with the
// root flag overrides applied.
func newDeployer(cmd *cobra.Command) (*deployer.Deployer, error) {
	c := *cfg
	if rootArgs.namespace != "" {
		c.Namespace = rootArgs.namespace
	}
	if rootArgs.manifestDir != "" {
		c.ManifestDir = rootArgs.manifestDir
	}

	command := c.Kubectl.Command
	if rootArgs.kubectl != "" {
		command = rootArgs.kubectl
	}

	executor, err := kubectl.NewExecutor(command, nil)
	if err != nil {
		return nil, err
	}
	executor.Stdout = cmd.OutOrStdout()
	executor.Stderr = cmd.ErrOrStderr()

	return deployer.New(executor, &c, rootArgs.timeout), nil
}

func printTable(writer io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(writer)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows)
	table.Render()
}
