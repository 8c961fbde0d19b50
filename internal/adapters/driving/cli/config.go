package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jordyarms/everyday/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change settings stored in the configuration file.

Keys use dot notation, for example http.timeout_seconds or qr.recovery.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configResetCmd = &cobra.Command{
	Use:   "reset <key>",
	Short: "Restore the default of one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigReset,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configResetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings := currentSettings(cmd)
	overridden := make(map[string]bool)
	for _, key := range settingsService.Overridden() {
		overridden[key] = true
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	width := 0
	for _, def := range domain.SettingDefs {
		width = max(width, len(def.Key))
	}

	section := ""
	for _, def := range domain.SettingDefs {
		if s, _, _ := strings.Cut(def.Key, "."); s != section {
			if section != "" {
				cmd.Println()
			}
			section = s
			cmd.Printf("[%s]\n", section)
		}

		marker := " "
		if overridden[def.Key] {
			marker = "*"
		}
		cmd.Printf("%s %-*s = %v  # %s\n", marker, width, def.Key, settings.Value(def.Key), def.Description)
	}

	cmd.Println()
	cmd.Println("* set in the config file")
	cmd.Printf("Config file: %s\n", settingsService.ConfigPath())
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	if _, ok := domain.LookupSetting(key); !ok {
		return fmt.Errorf("failed to get %s: %w", key, domain.ErrUnknownSetting)
	}

	cmd.Printf("%v\n", currentSettings(cmd).Value(key))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s = %v\n", key, currentSettings(cmd).Value(key))
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	if err := settingsService.Reset(key); err != nil {
		return fmt.Errorf("failed to reset %s: %w", key, err)
	}

	cmd.Printf("%s = %v (default)\n", key, settingsService.Defaults().Value(key))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println(settingsService.ConfigPath())
	return nil
}

// currentSettings returns the effective settings. An invalid config file
// is reported and the defaults are used instead.
func currentSettings(cmd *cobra.Command) *domain.AppSettings {
	settings, err := settingsService.Get()
	if err != nil {
		cmd.PrintErrf("Warning: %v (using defaults)\n", err)
		return settingsService.Defaults()
	}
	return settings
}
