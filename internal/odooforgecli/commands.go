/*
 * Copyright (c) 2026. AXIOM STUDIO AI Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package odooforgecli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// initSubcommands registers the headless subcommands on the root command.
// They skip the PID lock; only the TUI needs to be a singleton.
func initSubcommands(root *cobra.Command) {
	root.AddCommand(reposCmd())
	root.AddCommand(doctorCmd())
}

// loadComponents initialises config, logger, lister and runner the way the
// TUI does, minus the lock.
func loadComponents(cfgPath string) (*Config, *RepoLister, *ScriptRunner, *Logger, error) {
	if cfgPath == "" {
		cfgPath = ConfigPath()
	}
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger := NewLogger()
	lister := NewRepoLister(cfg, logger)
	runner := NewScriptRunner(cfg, logger)
	return cfg, lister, runner, logger, nil
}

// --- repos ---

func reposCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repos",
		Short: "List the repositories offered by the picker",
		Long: `Lists the GitHub repositories the TUI's repository picker offers:
your own plus the configured organization's, merged and deduplicated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			_, lister, _, logger, err := loadComponents(cfgPath)
			if err != nil {
				return err
			}
			defer logger.Close()

			repos, err := lister.FetchAll()
			if err != nil {
				return err
			}
			for _, r := range repos {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.NameWithOwner, r.URL)
			}
			return nil
		},
	}
}

// --- doctor ---

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the external tools and paths odooforge depends on",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, lister, runner, logger, err := loadComponents(cfgPath)
			if err != nil {
				return err
			}
			defer logger.Close()

			results := NewDoctor(cfg, lister, runner, logger).Run()
			for _, r := range results {
				mark := "✓"
				switch r.Status {
				case CheckWarn:
					mark = "!"
				case CheckFail:
					mark = "✗"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-12s %s\n", mark, r.Name, r.Detail)
			}
			if !Healthy(results) {
				return fmt.Errorf("environment is not ready")
			}
			return nil
		},
	}
}
