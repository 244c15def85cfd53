package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cfgpkg "github.com/sartorproj/goframe/internal/config"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or set goframe configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeYAML(cmd.OutOrStdout(), a.cfg)
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value and save to disk",
		Long:  fmt.Sprintf("Set a config value and save to disk.\n\nKeys: %v", cfgpkg.Keys),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfgpkg.Save(a.cfg, a.cfgFile); err != nil {
				return err
			}
			a.log.Debug("config saved", "key", args[0], "file", a.cfgFile)
			fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
			return nil
		},
	}

	cmd.AddCommand(show, set)
	return cmd
}
