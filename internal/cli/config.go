package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify scanner111 settings",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the Settings-scope configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := settingsFilePath()
		if err != nil {
			return internalError("%v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Println("(no settings file yet)")
			return nil
		}
		fmt.Print(string(data))
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one dotted settings key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := settingsFilePath()
		if err != nil {
			return internalError("%v", err)
		}
		v := viper.New()
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return userError("no settings file at %s", path)
		}
		if !v.IsSet(args[0]) {
			return userError("key %q is not set", args[0])
		}
		fmt.Println(v.Get(args[0]))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one dotted settings key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := settingsFilePath()
		if err != nil {
			return internalError("%v", err)
		}
		v := viper.New()
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		_ = v.ReadInConfig() // a missing file is fine; WriteConfigAs creates it

		v.Set(args[0], args[1])
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return internalError("creating settings dir: %v", err)
		}
		if err := v.WriteConfigAs(path); err != nil {
			return internalError("writing settings: %v", err)
		}
		fmt.Printf("%s = %s\n", args[0], args[1])
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the Settings-scope configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := settingsFilePath()
		if err != nil {
			return internalError("%v", err)
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return internalError("removing settings file: %v", err)
		}
		fmt.Println("settings reset")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd, configResetCmd)
	rootCmd.AddCommand(configCmd)
}

func settingsFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".scanner111", "settings.yaml"), nil
}
