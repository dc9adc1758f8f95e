package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"video-censor/infrastructure/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration entries",
	Long: `Manage email recipients and inspect the effective configuration.

Examples:
  video-censor config show
  video-censor config list recipients
  video-censor config add recipient --key maria --name "Maria Lopez" --email "maria@example.com" --default
  video-censor config remove recipient maria`,
}

func init() {
	rootCmd.AddCommand(configCmd)

	// Add subcommands
	configCmd.AddCommand(configAddCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configRemoveCmd)
	configCmd.AddCommand(configShowCmd)
}

// --- ADD command ---

var (
	addKey     string
	addName    string
	addEmail   string
	addDefault bool
)

var configAddCmd = &cobra.Command{
	Use:   "add recipient",
	Short: "Add a new config entry",
	Long: `Add an email recipient to the configuration. With --default the
recipient is also emailed when --notify is used without --to.

Example:
  video-censor config add recipient --key maria --name "Maria Lopez" --email "maria@example.com"`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigAdd,
}

func init() {
	configAddCmd.Flags().StringVar(&addKey, "key", "", "Unique key for the entry (required)")
	configAddCmd.Flags().StringVar(&addName, "name", "", "Display name (required)")
	configAddCmd.Flags().StringVar(&addEmail, "email", "", "Email address (required)")
	configAddCmd.Flags().BoolVar(&addDefault, "default", false, "Add the recipient to email.default_to")
	configAddCmd.MarkFlagRequired("key")
	configAddCmd.MarkFlagRequired("name")
	configAddCmd.MarkFlagRequired("email")
}

func runConfigAdd(cmd *cobra.Command, args []string) error {
	c, err := GetConfig()
	if err != nil {
		return err
	}

	return RunConfigAddWithDependencies(c, cfgFile, args[0], addKey, addName, addEmail, addDefault, DefaultOutput)
}

// RunConfigAddWithDependencies runs the add command with injected dependencies
func RunConfigAddWithDependencies(c *config.Config, configPath, entityType, key, name, email string, isDefault bool, out io.Writer) error {
	if entityType != "recipient" {
		return fmt.Errorf("unknown entity type %q. Use recipient", entityType)
	}

	key = strings.ToLower(strings.TrimSpace(key))
	previous := c.Email.DefaultTo
	if isDefault && !containsString(previous, key) {
		c.Email.DefaultTo = append(append([]string(nil), previous...), key)
	}

	lookup := config.NewRecipientLookup(c, configPath)
	if err := lookup.AddRecipient(key, name, email); err != nil {
		c.Email.DefaultTo = previous
		return err
	}
	fmt.Fprintf(out, "Added recipient %q: %s <%s>\n", key, name, email)

	return nil
}

// --- LIST command ---

var configListCmd = &cobra.Command{
	Use:   "list recipients",
	Short: "List config entries",
	Long: `List all configured email recipients. Defaults are marked with *.

Example:
  video-censor config list recipients`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigList,
}

func runConfigList(cmd *cobra.Command, args []string) error {
	c, err := GetConfig()
	if err != nil {
		return err
	}

	return RunConfigListWithDependencies(c, cfgFile, args[0], DefaultOutput)
}

// RunConfigListWithDependencies runs the list command with injected dependencies
func RunConfigListWithDependencies(c *config.Config, configPath, entityType string, out io.Writer) error {
	if entityType != "recipients" {
		return fmt.Errorf("unknown entity type %q. Use recipients", entityType)
	}

	recipients := config.NewRecipientLookup(c, configPath).ListRecipients()
	if len(recipients) == 0 {
		fmt.Fprintln(out, "No recipients configured.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tEMAIL\tDEFAULT")
	for _, r := range recipients {
		isDefault := ""
		if containsString(c.Email.DefaultTo, r.Key) {
			isDefault = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Key, r.Name, r.Address, isDefault)
	}

	return w.Flush()
}

// --- REMOVE command ---

var configRemoveCmd = &cobra.Command{
	Use:   "remove recipient <key>",
	Short: "Remove a config entry",
	Long: `Remove an email recipient from the configuration, including its
default_to entry.

Example:
  video-censor config remove recipient maria`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigRemove,
}

func runConfigRemove(cmd *cobra.Command, args []string) error {
	c, err := GetConfig()
	if err != nil {
		return err
	}

	return RunConfigRemoveWithDependencies(c, cfgFile, args[0], args[1], DefaultOutput)
}

// RunConfigRemoveWithDependencies runs the remove command with injected dependencies
func RunConfigRemoveWithDependencies(c *config.Config, configPath, entityType, key string, out io.Writer) error {
	if entityType != "recipient" {
		return fmt.Errorf("unknown entity type %q. Use recipient", entityType)
	}

	key = strings.ToLower(strings.TrimSpace(key))
	if _, ok := c.Email.Recipients[key]; ok {
		kept := c.Email.DefaultTo[:0]
		for _, k := range c.Email.DefaultTo {
			if k != key {
				kept = append(kept, k)
			}
		}
		c.Email.DefaultTo = kept
	}

	if err := config.NewRecipientLookup(c, configPath).RemoveRecipient(key); err != nil {
		return err
	}
	fmt.Fprintf(out, "Removed recipient %q\n", key)

	return nil
}

// --- SHOW command ---

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration in YAML form with every default filled in.

Example:
  video-censor config show`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	c, err := GetConfig()
	if err != nil {
		return err
	}

	return RunConfigShowWithDependencies(c, DefaultOutput)
}

// RunConfigShowWithDependencies runs the show command with injected dependencies
func RunConfigShowWithDependencies(c *config.Config, out io.Writer) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
