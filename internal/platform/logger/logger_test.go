package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVsRedactsCredentials(t *testing.T) {
	out := sanitizeKVs([]interface{}{"credential", "abc", "route", "/api/enrollment"})
	if len(out) != 4 {
		t.Fatalf("len: want=4 got=%d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("credential not redacted: %v", out[1])
	}
	if out[3] != "/api/enrollment" {
		t.Fatalf("route changed: %v", out[3])
	}
}

func TestSanitizeKVsHashesUID(t *testing.T) {
	out := sanitizeKVs([]interface{}{"uid", "learner-1"})
	got, ok := out[1].(string)
	if !ok || !strings.HasPrefix(got, "hash:") {
		t.Fatalf("uid not hashed: %v", out[1])
	}
	again := sanitizeKVs([]interface{}{"learner_uid", "learner-1"})
	if again[1] != got {
		t.Fatalf("hash not stable: %v vs %v", again[1], got)
	}
}

func TestSanitizeKVsRedactsJWTLookingValues(t *testing.T) {
	jwtish := "eyJhbGciOiJIUzI1NiJ9.eyJ1aWQiOiJsZWFybmVyLTEifQ.signature"
	out := sanitizeKVs([]interface{}{"detail", jwtish})
	if out[1] != "[REDACTED]" {
		t.Fatalf("jwt-like value not redacted: %v", out[1])
	}
}

func TestSanitizeKVsOddLength(t *testing.T) {
	out := sanitizeKVs([]interface{}{"route", "/x", "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestNewTestModeIsNop(t *testing.T) {
	l, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.With("component", "x").Info("dropped", "uid", "u1")
	l.Sync()
}
