// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/BurntSushi/toml"
)

// tomlConfig describes the TOML-configuration.
type tomlConfig struct {
	Core      coreConf
	Logging   logConf
	Api       apiConf
	Watch     watchConf
	Discovery discoveryConf
}

// coreConf describes the Core-configuration block.
type coreConf struct {
	Store        string
	Compress     bool
	StrictDigest bool `toml:"strict-digest"`
}

// logConf describes the Logging-configuration block.
type logConf struct {
	Level        string
	ReportCaller bool `toml:"report-caller"`
	Format       string
}

// apiConf describes the REST and WebSocket API. An empty Listen disables both.
type apiConf struct {
	Listen string
}

// watchConf describes a directory to import Blocks from. An empty Directory disables watching.
type watchConf struct {
	Directory string
}

// discoveryConf describes the peer discovery. It requires the API and an unique NodeId.
type discoveryConf struct {
	Enabled  bool
	NodeId   string `toml:"node-id"`
	Interval uint
	IPv4     bool `toml:"ipv4"`
	IPv6     bool `toml:"ipv6"`
}

// parseLogging configures logrus based on the Logging-configuration block.
func parseLogging(conf logConf) {
	if conf.Level != "" {
		if lvl, err := log.ParseLevel(conf.Level); err != nil {
			log.WithFields(log.Fields{
				"level":    conf.Level,
				"error":    err,
				"provided": "panic,fatal,error,warn,info,debug,trace",
			}).Warn("Failed to set log level. Please select one of the provided ones")
		} else {
			log.SetLevel(lvl)
		}
	}

	log.SetReportCaller(conf.ReportCaller)

	switch conf.Format {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
		})

	case "json":
		log.SetFormatter(&log.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})

	default:
		log.Warn("Unknown logging format")
	}
}

// parseConfig reads the TOML configuration and configures logging.
func parseConfig(filename string) (conf tomlConfig, err error) {
	if _, err = toml.DecodeFile(filename, &conf); err != nil {
		return
	}

	parseLogging(conf.Logging)

	if conf.Core.Store == "" {
		err = fmt.Errorf("core.store is empty")
	} else if conf.Discovery.Enabled && conf.Api.Listen == "" {
		err = fmt.Errorf("discovery requires api.listen")
	} else if conf.Discovery.Enabled && conf.Discovery.NodeId == "" {
		err = fmt.Errorf("discovery.node-id is empty")
	}
	return
}

// parseDaemon creates and starts the daemon based on the given TOML configuration.
func parseDaemon(filename string) (d *daemon, err error) {
	conf, err := parseConfig(filename)
	if err != nil {
		return
	}

	log.WithFields(log.Fields{
		"store":         conf.Core.Store,
		"compress":      conf.Core.Compress,
		"strict-digest": conf.Core.StrictDigest,
		"api":           conf.Api.Listen,
		"watch":         conf.Watch.Directory,
		"discovery":     conf.Discovery.Enabled,
	}).Debug("Parsed configuration")

	return startDaemon(conf)
}
