package shader

import (
	"strings"
	"testing"
)

func TestTerminate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"uTexture", "uTexture\x00"},
		{"uTexture\x00", "uTexture\x00"},
		{"", "\x00"},
	}
	for _, tt := range tests {
		if got := terminate(tt.in); got != tt.want {
			t.Errorf("terminate(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestTrimLog(t *testing.T) {
	if got := trimLog("ERROR: 0:3: syntax error\n\x00\x00"); got != "ERROR: 0:3: syntax error" {
		t.Errorf("unexpected trimmed log %q", got)
	}
}

func TestEmbeddedBlitSources(t *testing.T) {
	for name, src := range map[string]string{
		"vertex":   BlitVertexShader,
		"fragment": BlitFragmentShader,
	} {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("%s shader should target GLSL 410 core", name)
		}
	}
	if !strings.Contains(BlitVertexShader, "uProjection") {
		t.Error("vertex shader should declare uProjection")
	}
	if !strings.Contains(BlitFragmentShader, "uTexture") {
		t.Error("fragment shader should declare uTexture")
	}
}
