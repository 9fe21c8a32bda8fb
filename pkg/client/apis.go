package client

import (
	"encoding/json"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/battmon/pkg/config"
	"github.com/charlie0129/battmon/pkg/monitor"
	"github.com/charlie0129/battmon/pkg/powerinfo"
)

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

func (c *Client) GetStatus() (*monitor.Status, error) {
	ret, err := c.Get("/status")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get status")
	}

	var status monitor.Status
	if err := json.Unmarshal([]byte(ret), &status); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal status")
	}

	return &status, nil
}

// GetBattery reads the battery through the daemon. It returns
// powerinfo.ErrNoBattery when the daemon host has none.
func (c *Client) GetBattery() (*powerinfo.Snapshot, error) {
	ret, err := c.Get("/battery")
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, powerinfo.ErrNoBattery
		}
		return nil, pkgerrors.Wrapf(err, "failed to get battery")
	}

	var s powerinfo.Snapshot
	if err := json.Unmarshal([]byte(ret), &s); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal battery")
	}

	return &s, nil
}

// Check asks the daemon to run one check now.
func (c *Client) Check() (*monitor.Report, error) {
	ret, err := c.Post("/check", "")
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, pkgerrors.Wrapf(err, "failed to run check")
	}

	// A stopped check is reported with 404 but still carries a report.
	var rep monitor.Report
	if uerr := json.Unmarshal([]byte(ret), &rep); uerr != nil {
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to run check")
		}
		return nil, pkgerrors.Wrapf(uerr, "failed to unmarshal check report")
	}

	return &rep, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}

	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}
	return v, nil
}
