package notify

import (
	"context"
	"os/exec"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultCommandTimeout = 10 * time.Second

var _ Notifier = &CommandNotifier{}

// CommandNotifier runs an external program for every alert, e.g.
// notify-send or osascript. The message is appended as the last argument.
type CommandNotifier struct {
	argv    []string
	timeout time.Duration
}

func NewCommandNotifier(argv []string, timeout time.Duration) (*CommandNotifier, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, pkgerrors.New("alert command is empty")
	}
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	return &CommandNotifier{
		argv:    append([]string(nil), argv...),
		timeout: timeout,
	}, nil
}

func (n *CommandNotifier) Notify(alert Alert) error {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	args := append(append([]string(nil), n.argv[1:]...), alert.Message)
	cmd := exec.CommandContext(ctx, n.argv[0], args...)
	cmd.Env = append(cmd.Environ(),
		"BATTMON_ALERT_LEVEL="+alert.Level.String(),
		"BATTMON_ALERT_ID="+alert.ID,
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return pkgerrors.Wrapf(err, "alert command %s failed: %s", n.argv[0], strings.TrimSpace(string(out)))
	}

	logrus.WithFields(logrus.Fields{
		"command": n.argv[0],
		"alertID": alert.ID,
	}).Debug("alert command finished")

	return nil
}
