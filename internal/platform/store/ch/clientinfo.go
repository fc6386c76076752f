package ch

import (
	"os"
	"runtime"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"

	"oilwatch/internal/core/version"
)

// ClientInfo names this process in system.query_log: app/role first, then
// the go version, the vcs revision and the host
func ClientInfo(app, role string) clickhouse.ClientInfo {
	app = strings.TrimSpace(app)
	if app == "" {
		app = "oilwatch"
	}
	host, _ := os.Hostname()

	type product = struct{ Name, Version string }
	return clickhouse.ClientInfo{Products: []product{
		{Name: app, Version: strings.TrimSpace(role)},
		{Name: "go", Version: runtime.Version()},
		{Name: "commit", Version: version.Revision()},
		{Name: "host", Version: host},
	}}
}
