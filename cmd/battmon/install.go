package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/battmon/pkg/config"
	daemonutils "github.com/charlie0129/battmon/pkg/utils/daemon"
)

var gInstallation = "Installation:"

func init() {
	commandGroups = append(commandGroups, gInstallation)
}

// NewInstallCommand .
func NewInstallCommand() *cobra.Command {
	allowNonRootAccess := false

	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Install battmon (system-wide)",
		GroupID: gInstallation,
		Long: `Install battmon daemon as a systemd service (system-wide).

This makes battmon run in the background and automatically start on boot. You must run this command as root.

By default, only root user is allowed to access the battmon daemon. Use --allow-non-root-access so that
'battmon status' and 'battmon watch' work without sudo.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Refuse to install a daemon that would fail on a bad config.
			if _, err := config.NewFile(configPath); err != nil {
				return err
			}

			args := []string{"--config", configPath, "--daemon-socket", unixSocketPath}
			if allowNonRootAccess {
				logrus.Info("non-root users are allowed to access the battmon daemon.")
				args = append(args, "--always-allow-non-root-access")
			} else {
				logrus.Info("only root user is allowed to access the battmon daemon.")
			}

			err := daemonutils.NewInstaller().Install(args...)
			if err != nil {
				// check if current user is root
				if os.Geteuid() != 0 {
					logrus.Errorf("you must run this command as root")
				}
				return fmt.Errorf("failed to install daemon: %v. Are you root?", err)
			}

			logrus.Infof("installation succeeded")

			exePath, _ := os.Executable()

			cmd.Printf("systemd will use the current binary (%s) at startup so please make sure you do not move this binary. Once this binary is moved or deleted, you will need to run `battmon install' again.\n", exePath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&allowNonRootAccess, "allow-non-root-access", false, "Allow non-root users to access battmon daemon.")

	return cmd
}

// NewUninstallCommand .
func NewUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall",
		Short:   "Uninstall battmon (system-wide)",
		GroupID: gInstallation,
		Long: `Uninstall battmon daemon from systemd (system-wide).

You must run this command as root.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := daemonutils.NewInstaller().Uninstall()
			if err != nil {
				// check if current user is root
				if os.Geteuid() != 0 {
					logrus.Errorf("you must run this command as root")
				}
				return fmt.Errorf("failed to uninstall daemon: %v", err)
			}

			fmt.Println("successfully uninstalled")

			cmd.Printf("Your config is kept in %s, in case you want to use `battmon' again.\n", configPath)

			return nil
		},
	}
}
