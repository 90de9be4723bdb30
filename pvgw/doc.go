// SPDX-License-Identifier: EPL-2.0

// Package pvgw is a client for a ZeroMQ gateway in front of the control
// system's process variables (PVs).
//
// The gateway exposes two endpoints. The command endpoint is a REP socket that
// takes multipart requests
//
//	["put", <pv>, <json value>]
//	["get", <pv>]
//
// and answers ["ok"] to a put, ["ok", <update body>] to a get, or
// ["error", <message>]. The monitor endpoint is a PUB socket that publishes
// every PV change as
//
//	[<pv>, <update body>]
//	<update body> = {"value": <json value>, "timestamp": <unix seconds>}
//
// A monitor only receives changes published after its subscription reached the
// publisher. Get returns the value a new subscriber starts from.
//
// DAC and ADC adapt a Client to the dac.Device and adc.Source interfaces.
package pvgw
