package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battmon/pkg/config"
	"github.com/charlie0129/battmon/pkg/events"
	"github.com/charlie0129/battmon/pkg/monitor"
	"github.com/charlie0129/battmon/pkg/notify"
	"github.com/charlie0129/battmon/pkg/powerinfo"
)

var (
	conf   config.Config
	reader powerinfo.Reader
	mon    *monitor.Monitor
	hub    *events.EventHub
)

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/config", getConfig)
	router.GET("/status", getStatus)
	router.GET("/battery", getBattery)
	router.POST("/check", postCheck)
	router.GET("/events", getEvents)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/version", getVersion)

	return router
}

// Run starts the monitor loop and the API server on unixSocketPath. It
// returns when a SIGINT/SIGTERM arrives (nil) or when the loop stops because
// the host has no battery (the stop reason).
func Run(configPath string, unixSocketPath string, allowNonRoot bool) error {
	f, err := config.NewFile(configPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to parse config during startup")
	}
	conf = f
	logrus.WithFields(f.LogrusFields()).Infof("config loaded")

	hostname := logHostInfo()

	hub = events.NewEventHub()
	reader = powerinfo.NewSystemReader()

	notifier, err := newNotifier(conf, hub, logrus.WithField("host", hostname))
	if err != nil {
		return err
	}

	mon, err = monitor.New(conf, reader, notifier, monitor.WithEventHub(hub))
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to create battery monitor")
	}

	srv := &http.Server{
		Handler:           setupRoutes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if err := removeStaleSocket(unixSocketPath); err != nil {
		return err
	}

	// Create the socket to listen on:
	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to listen on %s", unixSocketPath)
	}

	if allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		err = os.Chmod(unixSocketPath, 0777)
		if err != nil {
			_ = l.Close()
			return pkgerrors.Wrapf(err, "failed to change permissions of %s", unixSocketPath)
		}
	}

	// Serve HTTP on unix socket
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("http server failed: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loopErr := make(chan error, 1)
	go func() {
		logrus.Debugln("main loop starts")
		loopErr <- mon.Run(ctx)
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)

	var runErr error
	select {
	case sig := <-sigc:
		logrus.Infof("caught signal \"%s\": shutting down.", sig)
		cancel()
		<-loopErr
	case err := <-loopErr:
		// The monitor already logged why it stopped.
		runErr = err
		logrus.Info("main loop exited, shutting down")
	}

	// Close subscriber channels first, so that streaming handlers return
	// and Shutdown does not wait for them.
	hub.Close()

	logrus.Info("shutting down http server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	shutdownCancel()

	logrus.Info("exiting")
	return runErr
}

// newNotifier returns the alert sinks of the daemon: the log, the event hub,
// and the alert command when one is configured.
func newNotifier(c config.Config, h *events.EventHub, logger logrus.FieldLogger) (notify.Notifier, error) {
	notifiers := []notify.Notifier{
		notify.NewLogNotifier(logger),
		notify.NewEventNotifier(h),
	}

	if argv := c.AlertCommand(); len(argv) > 0 {
		cmd, err := notify.NewCommandNotifier(argv, 0)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "invalid alert command")
		}
		notifiers = append(notifiers, cmd)
	}

	return notify.Multi(notifiers...), nil
}

// logHostInfo logs what we are running on and returns the hostname.
func logHostInfo() string {
	info, err := host.Info()
	if err != nil {
		logrus.Warnf("failed to get host info: %v", err)
		hostname, _ := os.Hostname()
		return hostname
	}

	logrus.WithFields(logrus.Fields{
		"hostname":        info.Hostname,
		"os":              info.OS,
		"platform":        info.Platform,
		"platformVersion": info.PlatformVersion,
		"kernelVersion":   info.KernelVersion,
		"arch":            info.KernelArch,
	}).Info("host info")

	return info.Hostname
}

func removeStaleSocket(path string) error {
	fi, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to stat %s", path)
	}

	if fi.Mode()&os.ModeSocket == 0 {
		return pkgerrors.Errorf("%s exists and is not a socket", path)
	}

	logrus.Debugf("removing stale socket %s", path)
	return pkgerrors.Wrapf(os.Remove(path), "failed to remove stale socket %s", path)
}
