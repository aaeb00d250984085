package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"release-notes-plugin/internal/domain"
)

func newCredentialsCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage credentials available to the step",
	}

	cmd.AddCommand(
		newCredentialsListCommand(opts),
		newCredentialsAddCommand(opts),
	)

	return cmd
}

func newCredentialsListCommand(opts *options) *cobra.Command {
	var item string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List credentials selectable for a job",
		Long: `Lists the username/password credentials a job can select for its git and
Jira credential fields, as the configuration screen shows them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plugin, err := opts.loadPlugin(cmd)
			if err != nil {
				return err
			}

			sc := domain.SecurityContext{
				ItemPath:    item,
				Permissions: []domain.Permission{domain.PermissionConfigure},
			}
			items, err := plugin.Descriptor.FillGitCredentialsItems(context.Background(), sc)
			if err != nil {
				return err
			}

			rows := [][]string{}
			for _, o := range items {
				if o.Value == "" {
					continue
				}
				rows = append(rows, []string{o.Value, o.Name})
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
				Headers("ID", "Description").
				Rows(rows...)

			fmt.Fprintln(cmd.OutOrStdout(), t)
			return nil
		},
	}

	cmd.Flags().StringVar(&item, "item", "", "Full name of the job whose scope is listed")

	return cmd
}

func newCredentialsAddCommand(opts *options) *cobra.Command {
	var credential domain.Credential
	var kind string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a credential to the credentials file",
		Long: `Adds a credential to the credentials file. The secret (password, or secret
material for other kinds) is read from the first line of stdin. When --id is
omitted a random id is generated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plugin, err := opts.loadPlugin(cmd)
			if err != nil {
				return err
			}

			secret, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && secret == "" {
				return fmt.Errorf("failed to read secret from stdin: %w", err)
			}
			secret = strings.TrimRight(secret, "\r\n")

			credential.Kind = domain.CredentialKind(kind)
			if credential.Kind == domain.KindUsernamePassword {
				credential.Password = secret
			} else {
				credential.Secret = secret
			}

			stored, err := plugin.Credentials.Add(credential)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), stored.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&credential.ID, "id", "", "Credential id (generated when empty)")
	cmd.Flags().StringVar(&credential.Description, "description", "", "Human-readable description")
	cmd.Flags().StringVar(&kind, "kind", string(domain.KindUsernamePassword), "Credential kind: username_password, secret_text, certificate or ssh_key")
	cmd.Flags().StringVar(&credential.Scope, "scope", "", "Folder the credential is visible to (global when empty)")
	cmd.Flags().StringVar(&credential.Username, "username", "", "Username for username_password credentials")

	return cmd
}
