package notify

import (
	"github.com/sirupsen/logrus"
)

var _ Notifier = &LogNotifier{}

// LogNotifier writes alerts as warnings. It is the default sink.
type LogNotifier struct {
	logger logrus.FieldLogger
}

// NewLogNotifier returns a LogNotifier writing to logger, or to the standard
// logger if logger is nil.
func NewLogNotifier(logger logrus.FieldLogger) *LogNotifier {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(alert Alert) error {
	n.logger.WithFields(logrus.Fields{
		"alertLevel": alert.Level.String(),
		"percent":    alert.Percent,
		"alertID":    alert.ID,
	}).Warn(alert.Message)
	return nil
}
