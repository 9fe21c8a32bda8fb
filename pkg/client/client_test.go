package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charlie0129/battmon/pkg/events"
	"github.com/charlie0129/battmon/pkg/notify"
	"github.com/charlie0129/battmon/pkg/powerinfo"
)

// serveUnix serves handler on a unix socket in a temp dir and returns its path.
func serveUnix(t *testing.T, handler http.Handler) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "battmon")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	socketPath := filepath.Join(dir, "d.sock")
	l, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	srv := &http.Server{Handler: handler}
	go func() { _ = srv.Serve(l) }()
	t.Cleanup(func() { _ = srv.Close() })

	return socketPath
}

func TestClientDaemonNotRunning(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "missing.sock"))

	_, err := c.GetVersion()
	if !errors.Is(err, ErrDaemonNotRunning) {
		t.Fatalf("GetVersion() error = %v, want ErrDaemonNotRunning", err)
	}
}

func TestClientAPIs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `"v1.2.3"`)
	})
	mux.HandleFunc("/battery", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"percent": 15, "plugged": false}`)
	})
	mux.HandleFunc("/config", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"lowThreshold": 25, "criticalThreshold": 5, "checkInterval": 30}`)
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"running": true, "lowThreshold": 25, "alerts": {"low": 2}, "lastCheck": {"action": "continue", "level": "low"}}`)
	})
	mux.HandleFunc("/check", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		fmt.Fprint(w, `{"action": "continue", "level": "critical", "alert": {"message": "Critical battery level: 5%! Plug in immediately."}}`)
	})

	c := NewClient(serveUnix(t, mux))

	v, err := c.GetVersion()
	if err != nil || v != "v1.2.3" {
		t.Fatalf("GetVersion() = %q, %v", v, err)
	}

	s, err := c.GetBattery()
	if err != nil || s.Percent != 15 || s.Plugged {
		t.Fatalf("GetBattery() = %+v, %v", s, err)
	}

	conf, err := c.GetConfig()
	if err != nil || *conf.LowThreshold != 25 || *conf.CheckInterval != 30 {
		t.Fatalf("GetConfig() = %+v, %v", conf, err)
	}

	status, err := c.GetStatus()
	if err != nil || !status.Running || status.Alerts["low"] != 2 || status.LastCheck.Level != notify.LevelLow {
		t.Fatalf("GetStatus() = %+v, %v", status, err)
	}

	rep, err := c.Check()
	if err != nil || rep.Level != notify.LevelCritical || rep.Alert == nil {
		t.Fatalf("Check() = %+v, %v", rep, err)
	}
}

func TestClientNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/battery", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `"no battery sensor available"`)
	})
	mux.HandleFunc("/check", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"action": "stop", "level": "none", "error": "no battery sensor available"}`)
	})

	c := NewClient(serveUnix(t, mux))

	if _, err := c.GetBattery(); !errors.Is(err, powerinfo.ErrNoBattery) {
		t.Fatalf("GetBattery() error = %v, want ErrNoBattery", err)
	}

	rep, err := c.Check()
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if rep.Error == "" || rep.Action.String() != "stop" {
		t.Fatalf("Check() = %+v", rep)
	}

	if _, err := c.GetVersion(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetVersion() error = %v, want ErrNotFound", err)
	}
}

func TestSubscribeEvents(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event:battery.alert\ndata:{\"level\":\"low\",\"message\":\"Low battery: 15%. Consider plugging in.\"}\n\n")
		fmt.Fprint(w, "event: monitor.stopped\ndata: {\"reason\":\"no battery sensor available\"}\n\n")
	})

	c := NewClient(serveUnix(t, mux))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := c.SubscribeEvents(ctx)
	if err != nil {
		t.Fatalf("SubscribeEvents() error = %v", err)
	}

	var got []events.Event
	for ev := range ch {
		got = append(got, ev)
	}

	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	alert, err := events.DecodeAs[events.AlertEvent](got[0])
	if err != nil || got[0].Name != events.BatteryAlert || alert.Level != "low" {
		t.Fatalf("first event = %s %+v, %v", got[0].Name, alert, err)
	}
	stopped, err := events.DecodeAs[events.StoppedEvent](got[1])
	if err != nil || got[1].Name != events.MonitorStopped || !strings.Contains(stopped.Reason, "no battery") {
		t.Fatalf("second event = %s %+v, %v", got[1].Name, stopped, err)
	}
}

func TestReadEventsMultilineData(t *testing.T) {
	ch := make(chan events.Event, 4)
	input := "event:x\ndata:a\ndata:b\n\n: comment\n\n"

	if err := readEvents(context.Background(), strings.NewReader(input), ch); err != nil {
		t.Fatalf("readEvents() error = %v", err)
	}
	close(ch)

	var got []events.Event
	for ev := range ch {
		got = append(got, ev)
	}
	if len(got) != 1 || got[0].Name != "x" || string(got[0].Data) != "a\nb" {
		t.Fatalf("readEvents() = %+v", got)
	}
}
