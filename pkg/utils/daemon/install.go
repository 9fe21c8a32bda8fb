package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const (
	ServiceName     = "battmon.service"
	DefaultUnitPath = "/etc/systemd/system/" + ServiceName
)

// Installer manages the battmon systemd service.
type Installer struct {
	// UnitPath is where the service file is written.
	UnitPath string
	// Systemctl runs systemctl with args. Defaults to the system binary.
	Systemctl func(args ...string) error
}

func NewInstaller() *Installer {
	return &Installer{
		UnitPath:  DefaultUnitPath,
		Systemctl: runSystemctl,
	}
}

func runSystemctl(args ...string) error {
	out, err := exec.Command("systemctl", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %v: %w: %s", args, err, out)
	}
	return nil
}

// Install writes the service file for the current executable and starts it.
// daemonArgs are appended after "daemon" on the ExecStart line.
func (i *Installer) Install(daemonArgs ...string) error {
	// Get the path to the current executable
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get the path to the current executable: %w", err)
	}
	exePath, err = filepath.Abs(exePath)
	if err != nil {
		return fmt.Errorf("failed to get the absolute path to the current executable: %w", err)
	}

	logrus.Infof("current executable path: %s", exePath)

	return i.install(Unit(exePath, daemonArgs...))
}

func (i *Installer) install(unit string) error {
	logrus.Infof("writing systemd unit to %s", i.UnitPath)

	err := os.MkdirAll(filepath.Dir(i.UnitPath), 0755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(i.UnitPath), err)
	}

	// warn if the file already exists
	if _, err := os.Stat(i.UnitPath); err == nil {
		logrus.Warnf("%s already exists, overwriting", i.UnitPath)
	}

	err = os.WriteFile(i.UnitPath, []byte(unit), 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", i.UnitPath, err)
	}

	logrus.Infof("starting battmon")

	if err := i.Systemctl("daemon-reload"); err != nil {
		return err
	}
	if err := i.Systemctl("enable", "--now", ServiceName); err != nil {
		return fmt.Errorf("failed to enable %s: %w", ServiceName, err)
	}

	return nil
}
