// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
)

// writeConfig writes a TOML configuration into a temporary directory and returns its path.
func writeConfig(t *testing.T, content string) string {
	filename := filepath.Join(t.TempDir(), "chainprimd.toml")
	if err := ioutil.WriteFile(filename, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestParseConfig(t *testing.T) {
	defer log.SetLevel(log.GetLevel())

	filename := writeConfig(t, `
[core]
store = "store"
compress = true
strict-digest = true

[logging]
level = "debug"
report-caller = false
format = "json"

[api]
listen = "127.0.0.1:8080"

[watch]
directory = "incoming"
`)

	conf, err := parseConfig(filename)
	if err != nil {
		t.Fatal(err)
	}

	expected := tomlConfig{
		Core:    coreConf{Store: "store", Compress: true, StrictDigest: true},
		Logging: logConf{Level: "debug", Format: "json"},
		Api:     apiConf{Listen: "127.0.0.1:8080"},
		Watch:   watchConf{Directory: "incoming"},
	}
	if conf != expected {
		t.Fatalf("expected %v, got %v", expected, conf)
	}

	if lvl := log.GetLevel(); lvl != log.DebugLevel {
		t.Fatalf("log level was not set to debug, got %v", lvl)
	}

	log.SetFormatter(&log.TextFormatter{})
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty store", "[core]\ncompress = true\n"},
		{"invalid toml", "[core\nstore = \"store\"\n"},
		{"wrong type", "[core]\nstore = 23\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := parseConfig(writeConfig(t, test.content)); err == nil {
				t.Fatal("parsing an invalid configuration did not error")
			}
		})
	}

	if _, err := parseConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("parsing a missing file did not error")
	}
}

func TestParseConfigDiscovery(t *testing.T) {
	tests := []struct {
		name    string
		content string
		valid   bool
	}{
		{"valid", "[core]\nstore = \"s\"\n[api]\nlisten = \":0\"\n[discovery]\nenabled = true\nnode-id = \"n\"\n", true},
		{"disabled", "[core]\nstore = \"s\"\n[discovery]\nenabled = false\n", true},
		{"missing api", "[core]\nstore = \"s\"\n[discovery]\nenabled = true\nnode-id = \"n\"\n", false},
		{"missing node id", "[core]\nstore = \"s\"\n[api]\nlisten = \":0\"\n[discovery]\nenabled = true\n", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := parseConfig(writeConfig(t, test.content)); (err == nil) != test.valid {
				t.Fatalf("expected validity %t, got error %v", test.valid, err)
			}
		})
	}
}
