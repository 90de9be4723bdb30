// SPDX-License-Identifier: EPL-2.0

// Package adc logs analog input channels.
//
// A Source delivers per-channel events. The Aggregator collects one value per
// channel and hands a Record to its RecordWriter as soon as every channel has
// reported, then starts over. The record time is the timestamp of the last
// event, relative to the start of logging.
package adc
