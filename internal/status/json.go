package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	State         string     `json:"state"`
	StatusLine    string     `json:"status_line"`
	TempC         float64    `json:"temp_c"`
	TargetC       float64    `json:"target_c"`
	Mode          string     `json:"mode"`
	Diff          string     `json:"diff"`
	Rest          string     `json:"rest"`
	Fan           string     `json:"fan"`
	DisplayUnit   string     `json:"display_unit"`
	Relays        RelaysJSON `json:"relays"`
	SensorOK      bool       `json:"sensor_ok"`
	CoolingSecs   int64      `json:"cooling_runtime_seconds"`
	HeatingSecs   int64      `json:"heating_runtime_seconds"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Config        ConfigJSON `json:"config"`
}

// RelaysJSON is the JSON representation of relay states.
type RelaysJSON struct {
	Heat bool `json:"heat"`
	Cool bool `json:"cool"`
	Fan  bool `json:"fan"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	TickMs      int64  `json:"tick_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker"`
	HTTPAddr    string `json:"http_addr"`
	SensorType  string `json:"sensor_type"`
}

func buildInner(snap Snapshot) StatusInner {
	unit := "celsius"
	if snap.Control.UseFahrenheit {
		unit = "fahrenheit"
	}

	return StatusInner{
		State:       snap.Control.State.String(),
		StatusLine:  snap.StatusLine,
		TempC:       snap.Control.TempC,
		TargetC:     snap.Control.TargetC,
		Mode:        snap.Control.Mode.String(),
		Diff:        snap.Control.Diff.String(),
		Rest:        snap.Control.Rest.String(),
		Fan:         snap.Control.Fan.String(),
		DisplayUnit: unit,
		Relays: RelaysJSON{
			Heat: snap.Relays.Heat,
			Cool: snap.Relays.Cool,
			Fan:  snap.Relays.Fan,
		},
		SensorOK:      snap.SensorOK,
		CoolingSecs:   int64(snap.Control.TotalCooling.Truncate(time.Second).Seconds()),
		HeatingSecs:   int64(snap.Control.TotalHeating.Truncate(time.Second).Seconds()),
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Config: ConfigJSON{
			TickMs:      snap.Config.TickMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
			SensorType:  snap.Config.SensorType,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
