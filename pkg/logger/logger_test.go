package logger

import (
	"strings"
	"testing"
)

func TestDetectEnv(t *testing.T) {
	cases := map[string]Env{
		"prod":           EnvProd,
		"PRODUCTION":     EnvProd,
		" staging ":      EnvStage,
		"preprod":        EnvStage,
		"pre-production": EnvStage,
		"dev":            EnvDev,
		"":               EnvDev,
		"garbage":        EnvDev,
	}
	for raw, want := range cases {
		t.Setenv("APP_ENV", raw)
		if got := DetectEnv(); got != want {
			t.Errorf("DetectEnv(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestEnsureInstanceID(t *testing.T) {
	if got := ensureInstanceID("node-1"); got != "node-1" {
		t.Errorf("ensureInstanceID(node-1) = %q, want passthrough", got)
	}

	a := ensureInstanceID("")
	b := ensureInstanceID("")
	if a == "" || a == b {
		t.Errorf("generated ids %q, %q: want non-empty and distinct", a, b)
	}
	if !strings.Contains(a, "-") {
		t.Errorf("generated id %q missing host-suffix separator", a)
	}
}

func TestLInitializesOnce(t *testing.T) {
	Init(Config{Env: EnvDev, Service: "test", Backend: BackendStd})
	first := L()
	if first == nil {
		t.Fatal("L() returned nil after Init")
	}
	if second := L(); second != first {
		t.Error("L() reinitialized an already configured logger")
	}
}
