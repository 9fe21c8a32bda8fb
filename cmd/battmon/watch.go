package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/battmon/pkg/events"
)

func NewWatchCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "watch",
		GroupID: gBasic,
		Short:   "Follow battery alerts from the daemon",
		Long:    `Print battery alerts raised by the daemon as they happen. Stops when the daemon's monitor stops.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ch, err := apiClient.SubscribeEvents(ctx)
			if err != nil {
				return err
			}

			for ev := range ch {
				line, ok, err := formatEvent(ev, all)
				if err != nil {
					logrus.WithError(err).WithField("event", ev.Name).Warn("failed to decode event")
					continue
				}
				if ok {
					cmd.Println(line)
				}
				if ev.Name == events.MonitorStopped {
					return errors.New("battery monitor stopped")
				}
			}

			if ctx.Err() != nil {
				return nil
			}
			return errors.New("daemon closed the event stream")
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "also print every check, not only alerts")

	return cmd
}
