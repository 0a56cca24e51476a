// Copyright 2025 IncidentHQ, Inc.
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/incidenthq/sentry-relay/internal/config"
	relayerrors "github.com/incidenthq/sentry-relay/internal/errors"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	var noBrowser bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively configure credentials",
		Long: `Set up sentry-relay credentials. Opens the tracker's token creation
page in a browser, prompts for the token and organization slug, and writes
them to ` + "`~/.sentry-relay/config.yaml`" + ` with owner-only permissions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.InOrStdin(), cmd.OutOrStdout(), noBrowser, config.DefaultPath())
		},
	}

	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Print the token URL instead of opening a browser")

	return cmd
}

// runInit walks the user through credential setup and writes the config file.
func runInit(stdin io.Reader, stdout io.Writer, noBrowser bool, path string) error {
	cfg := config.DefaultConfig()

	if noBrowser {
		fmt.Fprintf(stdout, "Create an auth token at:\n  %s\n\n", cfg.API.TokenURL)
	} else {
		fmt.Fprintf(stdout, "Opening %s in your browser...\n\n", cfg.API.TokenURL)
		if err := browser.OpenURL(cfg.API.TokenURL); err != nil {
			fmt.Fprintf(stdout, "Could not open a browser. Create an auth token at:\n  %s\n\n", cfg.API.TokenURL)
		}
	}

	scanner := bufio.NewScanner(stdin)

	token, err := promptLine(scanner, stdout, "Auth token: ")
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("auth token cannot be empty: %w", relayerrors.ErrInvalidInput)
	}

	org, err := promptLine(scanner, stdout, "Organization slug: ")
	if err != nil {
		return err
	}
	if org == "" {
		return fmt.Errorf("organization slug cannot be empty: %w", relayerrors.ErrInvalidInput)
	}

	cfg.AuthToken = token
	cfg.OrgSlug = org

	if err := cfg.Save(path); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\nConfiguration written to %s\n", path)
	return nil
}

// promptLine prints a prompt and reads one trimmed line of input.
func promptLine(scanner *bufio.Scanner, stdout io.Writer, prompt string) (string, error) {
	fmt.Fprint(stdout, prompt)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", fmt.Errorf("no input provided: %w", relayerrors.ErrInvalidInput)
	}
	return strings.TrimSpace(scanner.Text()), nil
}
