// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package block

import "testing"

func TestChangesTrieConfigurationDigestBuild(t *testing.T) {
	tests := []struct {
		conf    ChangesTrieConfiguration
		enabled bool
		max     uint32
	}{
		{ChangesTrieConfiguration{0, 0}, false, 1},
		{ChangesTrieConfiguration{1, 5}, false, 1},
		{ChangesTrieConfiguration{4, 0}, false, 1},
		{ChangesTrieConfiguration{4, 1}, true, 4},
		{ChangesTrieConfiguration{4, 2}, true, 16},
		{ChangesTrieConfiguration{1 << 16, 3}, true, 1 << 16},
		{ChangesTrieConfiguration{2, 40}, true, 1 << 31},
	}

	for _, test := range tests {
		if enabled := test.conf.IsDigestBuildEnabled(); enabled != test.enabled {
			t.Fatalf("%v: enabled is %t", test.conf, enabled)
		}
		if max := test.conf.MaxDigestInterval(); max != test.max {
			t.Fatalf("%v: max interval is %d, expected %d", test.conf, max, test.max)
		}
	}
}

func TestChangesTrieConfigurationDigestLevelAt(t *testing.T) {
	conf := ChangesTrieConfiguration{DigestInterval: 4, DigestLevels: 2}

	tests := []struct {
		zero, block           uint32
		level, interval, step uint32
		ok                    bool
	}{
		{0, 0, 0, 0, 0, false},
		{0, 3, 0, 0, 0, false},
		{0, 4, 1, 4, 1, true},
		{0, 8, 1, 4, 1, true},
		{0, 16, 2, 16, 4, true},
		{0, 32, 2, 16, 4, true},
		{10, 14, 1, 4, 1, true},
		{10, 16, 0, 0, 0, false},
		{10, 26, 2, 16, 4, true},
	}

	for _, test := range tests {
		level, interval, step, ok := conf.DigestLevelAt(test.zero, test.block)
		if ok != test.ok || level != test.level || interval != test.interval || step != test.step {
			t.Fatalf("zero %d, block %d: got (%d, %d, %d, %t)",
				test.zero, test.block, level, interval, step, ok)
		}
		if required := conf.IsDigestBuildRequiredAt(test.zero, test.block); required != test.ok {
			t.Fatalf("zero %d, block %d: required is %t", test.zero, test.block, required)
		}
	}
}

func TestChangesTrieConfigurationMaxLevelDigest(t *testing.T) {
	conf := ChangesTrieConfiguration{DigestInterval: 4, DigestLevels: 2}

	tests := []struct {
		block      uint32
		begin, end uint32
		prev       uint32
		prevOk     bool
	}{
		{1, 1, 16, 0, false},
		{5, 1, 16, 0, false},
		{16, 1, 16, 16, true},
		{17, 17, 32, 16, true},
		{40, 33, 48, 32, true},
	}

	for _, test := range tests {
		begin, end, ok := conf.NextMaxLevelDigestRange(0, test.block)
		if !ok || begin != test.begin || end != test.end {
			t.Fatalf("block %d: range (%d, %d, %t)", test.block, begin, end, ok)
		}

		prev, ok := conf.PrevMaxLevelDigestBlock(0, test.block)
		if ok != test.prevOk || prev != test.prev {
			t.Fatalf("block %d: previous (%d, %t)", test.block, prev, ok)
		}
	}

	if _, _, ok := (ChangesTrieConfiguration{}).NextMaxLevelDigestRange(0, 10); ok {
		t.Fatal("disabled configuration has a digest range")
	}
}
