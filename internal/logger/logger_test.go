package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_Environments(t *testing.T) {
	for _, env := range []string{"", EnvDev, EnvProd, "local"} {
		l, err := New(env, "")
		if err != nil {
			t.Fatalf("New(%q): %v", env, err)
		}
		if l == nil {
			t.Fatalf("New(%q) returned nil logger", env)
		}
	}
}

func TestNew_DevDefaultsToInfo(t *testing.T) {
	l, err := New(EnvDev, "")
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("dev logger should not emit debug by default")
	}
	if !l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("dev logger should emit info")
	}
}

func TestNew_LevelOverride(t *testing.T) {
	l, err := New(EnvProd, "debug")
	if err != nil {
		t.Fatal(err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level to be enabled")
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New("staging", ""); err == nil {
		t.Error("expected error for unknown environment")
	}
	if _, err := New(EnvDev, "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext should never return nil")
	}
	l := zap.NewExample()
	if got := FromContext(WithContext(context.Background(), l)); got != l {
		t.Error("FromContext did not return the stored logger")
	}
}
