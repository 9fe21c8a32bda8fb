package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/charlie0129/battmon/pkg/config"
	"github.com/charlie0129/battmon/pkg/monitor"
	"github.com/charlie0129/battmon/pkg/notify"
	"github.com/charlie0129/battmon/pkg/powerinfo"
)

func NewCheckCommand() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:     "check",
		GroupID: gBasic,
		Short:   "Check the battery once, without the daemon",
		Long: `Read the battery of this machine once and report the alert level
using the thresholds in the config file. Exits non-zero when there is no battery.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}

			mon, err := monitor.New(conf, powerinfo.NewSystemReader(), notify.NewLogNotifier(nil))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res := mon.Check(ctx)

			if outputJSON {
				s, err := toJSON(res.Report())
				if err != nil {
					return err
				}
				cmd.Println(s)
				return res.Err
			}

			if res.Snapshot != nil {
				cmd.Printf("Current charge: %s\n", bold("%s%%", res.Snapshot.PercentString()))
				cmd.Printf("Plugged in: %s\n", bool2Text(res.Snapshot.Plugged))
				cmd.Printf("Alert level: %s\n", levelText(res.Level))
			}
			if res.Alert != nil {
				cmd.Println(res.Alert.Message)
			}

			return res.Err
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "print the check report as JSON")

	return cmd
}
