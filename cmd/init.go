package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gnolang/lessp/check"
	"github.com/spf13/cobra"
)

var forceInit bool

// initCmd: lessp init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfigurationFile(cfgFile, forceInit); err != nil {
			return fmt.Errorf("error initializing config file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", cfgFile)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing configuration file")
}

func initConfigurationFile(configurationPath string, force bool) error {
	if configurationPath == "" {
		configurationPath = check.DefaultConfigFile
	}

	if !force {
		if _, err := os.Stat(configurationPath); err == nil {
			return fmt.Errorf("%s already exists", configurationPath)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	config := check.DefaultConfig()
	config.Version = ">= " + check.Version
	return check.WriteConfig(configurationPath, config)
}
