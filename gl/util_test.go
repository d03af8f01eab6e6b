// SPDX-License-Identifier: Unlicense OR MIT

package gl

import "testing"

func TestParseVersion(t *testing.T) {
	tests := []struct {
		str string
		ver [2]int
		es  bool
		err bool
	}{
		{str: "OpenGL ES 3.0 V@415.0", ver: [2]int{3, 0}, es: true},
		{str: "OpenGL ES 2.0", ver: [2]int{2, 0}, es: true},
		{str: "OpenGL ES 3.2 Mesa 23.1", ver: [2]int{3, 2}, es: true},
		{str: "WebGL 1.0 (OpenGL ES 2.0 Chromium)", ver: [2]int{2, 0}, es: true},
		{str: "WebGL 2.0", ver: [2]int{3, 0}, es: true},
		{str: "4.3.0 NVIDIA 535.54", ver: [2]int{4, 3}, es: false},
		{str: "3.3 (Core Profile) Mesa", ver: [2]int{3, 3}, es: false},
		{str: "Mesa nonsense", err: true},
		{str: "", err: true},
	}
	for _, tc := range tests {
		ver, es, err := ParseVersion(tc.str)
		if tc.err {
			if err == nil {
				t.Errorf("ParseVersion(%q): no error", tc.str)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseVersion(%q): %v", tc.str, err)
			continue
		}
		if ver != tc.ver || es != tc.es {
			t.Errorf("ParseVersion(%q) = %v es=%v, want %v es=%v", tc.str, ver, es, tc.ver, tc.es)
		}
	}
}

func TestErrorName(t *testing.T) {
	if got := ErrorName(INVALID_OPERATION); got != "INVALID_OPERATION" {
		t.Errorf("ErrorName(INVALID_OPERATION) = %q", got)
	}
	if got := ErrorName(Enum(0x1234)); got != "0x1234" {
		t.Errorf("ErrorName(0x1234) = %q", got)
	}
}
