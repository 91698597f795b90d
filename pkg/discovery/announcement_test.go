// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package discovery

import (
	"reflect"
	"testing"
)

func TestAnnouncementCbor(t *testing.T) {
	var tests = [][]Announcement{
		{{NodeId: "alpha", Port: 8080}},
		{{NodeId: "beta", Port: 1}, {NodeId: "gamma", Port: 65535}},
		{},
	}

	for _, dmsIn := range tests {
		buff, err := MarshalAnnouncements(dmsIn)
		if err != nil {
			t.Fatalf("Encoding failed: %v", err)
		}

		dmsOut, err := UnmarshalAnnouncements(buff)
		if err != nil {
			t.Fatalf("Decoding failed: %v", err)
		}

		if len(dmsIn) == 0 && len(dmsOut) == 0 {
			continue
		}
		if !reflect.DeepEqual(dmsIn, dmsOut) {
			t.Fatalf("Decoded Announcements differ: %v became %v", dmsIn, dmsOut)
		}
	}
}

func TestAnnouncementCborInvalid(t *testing.T) {
	var tests = []struct {
		name string
		data []Announcement
	}{
		{"empty node id", []Announcement{{NodeId: "", Port: 8080}}},
		{"zero port", []Announcement{{NodeId: "alpha", Port: 0}}},
		{"port overflow", []Announcement{{NodeId: "alpha", Port: 65536}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buff, err := MarshalAnnouncements(test.data)
			if err != nil {
				t.Fatalf("Encoding failed: %v", err)
			}

			if _, err := UnmarshalAnnouncements(buff); err == nil {
				t.Fatal("Decoding an invalid Announcement did not error")
			}
		})
	}

	if _, err := UnmarshalAnnouncements([]byte{0x9b, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}); err == nil {
		t.Fatal("Decoding an oversized array length did not error")
	}
}
