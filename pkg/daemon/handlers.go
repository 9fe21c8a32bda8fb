package daemon

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battmon/pkg/config"
	"github.com/charlie0129/battmon/pkg/monitor"
	"github.com/charlie0129/battmon/pkg/powerinfo"
	"github.com/charlie0129/battmon/pkg/version"
)

func getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func getStatus(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, mon.Status())
}

func getBattery(c *gin.Context) {
	snapshot, err := reader.Read(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, powerinfo.ErrNoBattery) {
			status = http.StatusNotFound
		}
		c.IndentedJSON(status, err.Error())
		_ = c.AbortWithError(status, err)
		return
	}

	c.IndentedJSON(http.StatusOK, snapshot)
}

// postCheck runs one check immediately, without waiting for the next loop.
func postCheck(c *gin.Context) {
	res := mon.Check(c.Request.Context())

	logrus.WithFields(logrus.Fields{
		"action": res.Action.String(),
		"level":  res.Level.String(),
	}).Info("forced battery check")

	status := http.StatusOK
	if res.Action == monitor.Stop {
		status = http.StatusNotFound
	}
	c.IndentedJSON(status, res.Report())
}

// getEvents streams hub events as server-sent events until the client goes
// away or the hub is closed.
func getEvents(c *gin.Context) {
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	// Send headers now, the first event may take a while.
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
