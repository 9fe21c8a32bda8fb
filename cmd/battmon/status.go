package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/charlie0129/battmon/pkg/config"
	"github.com/charlie0129/battmon/pkg/monitor"
	"github.com/charlie0129/battmon/pkg/powerinfo"
)

type statusData struct {
	status  *monitor.Status
	battery *powerinfo.Snapshot
	config  *config.RawFileConfig
}

// fetchStatusData gathers all data required for the status command from the daemon.
func fetchStatusData() (*statusData, error) {
	status, err := apiClient.GetStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to get monitor status: %w", err)
	}

	bat, err := apiClient.GetBattery()
	if err != nil && !errors.Is(err, powerinfo.ErrNoBattery) {
		return nil, fmt.Errorf("failed to get battery: %w", err)
	}

	conf, err := apiClient.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	return &statusData{
		status:  status,
		battery: bat,
		config:  conf,
	}, nil
}

func NewStatusCommand() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current status of battmon",
		Long:    `Get battery charge, monitor status, and configuration from the daemon.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if v, err := apiClient.GetVersion(); err == nil {
				warnVersionMismatch(v)
			}

			data, err := fetchStatusData()
			if err != nil {
				return err
			}

			if outputJSON {
				s, err := toJSON(data.status)
				if err != nil {
					return err
				}
				cmd.Println(s)
				return nil
			}

			conf := config.NewFileFromConfig(data.config, "")

			// Battery.
			cmd.Println(bold("Battery status:"))
			if data.battery == nil {
				cmd.Println("  No battery found.")
			} else {
				cmd.Printf("  Current charge: %s\n", bold("%s%%", data.battery.PercentString()))
				cmd.Printf("  Plugged in: %s\n", bool2Text(data.battery.Plugged))
			}

			cmd.Println()

			// Monitor.
			s := data.status
			cmd.Println(bold("Monitor status:"))
			cmd.Printf("  Running: %s\n", bool2Text(s.Running))
			if s.LastCheck != nil {
				cmd.Printf("  Last check: %s, level %s\n", s.LastCheck.Time.Format("15:04:05"), levelText(s.LastCheck.Level))
				if s.LastCheck.Error != "" {
					cmd.Printf("    Error: %s\n", s.LastCheck.Error)
				}
			}
			cmd.Printf("  Alerts raised: %s low, %s critical\n", bold("%d", s.Alerts["low"]), bold("%d", s.Alerts["critical"]))
			cmd.Printf("  Recent on-schedule checks: %s\n", bold("%d", s.ContinuousChecks))

			cmd.Println()

			// Config.
			cmd.Println(bold("Configuration:"))
			cmd.Printf("  Low threshold: %s\n", bold("%d%%", conf.LowThreshold()))
			cmd.Printf("  Critical threshold: %s\n", bold("%d%%", conf.CriticalThreshold()))
			cmd.Printf("  Check interval: %s\n", bold("%s", conf.CheckInterval()))
			if command := conf.AlertCommand(); len(command) > 0 {
				cmd.Printf("  Alert command: %s\n", bold("%s", strings.Join(command, " ")))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "print the monitor status as JSON")

	return cmd
}
