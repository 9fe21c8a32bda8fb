package daemon

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Uninstall stops the service and removes its unit file.
func (i *Installer) Uninstall() error {
	logrus.Infof("stopping battmon")

	err := i.Systemctl("disable", "--now", ServiceName)
	if err != nil {
		return fmt.Errorf("failed to disable %s: %w. Are you root?", ServiceName, err)
	}

	logrus.Infof("removing systemd unit")

	// if the file doesn't exist, we don't need to remove it
	_, err = os.Stat(i.UnitPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", i.UnitPath, err)
	}

	err = os.Remove(i.UnitPath)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w. Are you root?", i.UnitPath, err)
	}

	return i.Systemctl("daemon-reload")
}
