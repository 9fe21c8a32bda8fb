package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/battmon/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print version",
		GroupID: gBasic,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)

			daemonVersion, err := apiClient.GetVersion()
			if err != nil {
				logrus.WithError(err).Debug("failed to get daemon version")
				return
			}
			cmd.Printf("daemon: %s\n", daemonVersion)
			warnVersionMismatch(daemonVersion)
		},
	}
}

func warnVersionMismatch(daemonVersion string) {
	if daemonVersion == version.Version {
		return
	}
	logrus.WithFields(logrus.Fields{
		"clientVersion": version.Version,
		"daemonVersion": daemonVersion,
	}).Warn("Version mismatch between client and daemon. Restart the daemon after upgrading battmon.")
}
