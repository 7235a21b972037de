package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/thermostatd/internal/control"
	"github.com/sweeney/thermostatd/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"runtime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	},
	"temp": func(tempC float64, useFahrenheit bool) string {
		if useFahrenheit {
			return fmt.Sprintf("%.1f°F", control.CelsiusToFahrenheit(tempC))
		}
		return fmt.Sprintf("%.1f°C", tempC)
	},
	"relay": func(on bool) string {
		if on {
			return "ON"
		}
		return "OFF"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="5">
<title>Thermostat</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
.statusline { font-size: 1.2em; }
</style>
</head>
<body>
<h1>Thermostat</h1>

<p class="statusline">{{.StatusLine}}</p>

<h2>Control</h2>
<table>
<tr><th>Current</th><td>{{temp .Control.TempC .Control.UseFahrenheit}}</td></tr>
<tr><th>Target</th><td>{{temp .Control.TargetC .Control.UseFahrenheit}}</td></tr>
<tr><th>Mode</th><td>{{.Control.Mode}}</td></tr>
<tr><th>State</th><td>{{.Control.State}}</td></tr>
<tr><th>Differential</th><td>{{.Control.Diff}}</td></tr>
<tr><th>Rest tier</th><td>{{.Control.Rest}}</td></tr>
<tr><th>Fan mode</th><td>{{.Control.Fan}}</td></tr>
<tr><th>Sensor</th><td>{{if .SensorOK}}ok{{else}}stale (using last reading){{end}}</td></tr>
</table>

<h2>Relays</h2>
<table>
<tr><th>Heat</th><td class="{{if .Relays.Heat}}on{{else}}off{{end}}">{{relay .Relays.Heat}}</td></tr>
<tr><th>Cool</th><td class="{{if .Relays.Cool}}on{{else}}off{{end}}">{{relay .Relays.Cool}}</td></tr>
<tr><th>Fan</th><td class="{{if .Relays.Fan}}on{{else}}off{{end}}">{{relay .Relays.Fan}}</td></tr>
</table>

<h2>Runtime</h2>
<table>
<tr><th>Cooling since defrost</th><td>{{runtime .Control.TotalCooling}}</td></tr>
<tr><th>Heating total</th><td>{{runtime .Control.TotalHeating}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Tick</th><td>{{.Config.TickMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>Sensor type</th><td>{{.Config.SensorType}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but the template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
