package daemon

import (
	"fmt"
	"strings"
)

// UnitTemplate is the systemd service installed for the battmon daemon.
const UnitTemplate = `[Unit]
Description=battmon battery monitor
After=multi-user.target

[Service]
Type=simple
ExecStart=%s
Restart=on-failure
RestartSec=30

[Install]
WantedBy=multi-user.target
`

// Unit renders the service file that runs exePath with args.
func Unit(exePath string, args ...string) string {
	argv := append([]string{exePath, "daemon"}, args...)
	for i, a := range argv {
		argv[i] = quoteArg(a)
	}
	return fmt.Sprintf(UnitTemplate, strings.Join(argv, " "))
}

func quoteArg(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"\\'") {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
