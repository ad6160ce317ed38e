package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
)

func TestGetDefault(t *testing.T) {
	if Get(context.Background()) != slog.Default() {
		t.Fatal("Get without a stored logger must return slog.Default")
	}
}

func TestWith(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := Store(context.Background(), slog.New(slog.NewJSONHandler(buf, nil)))
	ctx = With(ctx, "request_id", "abc")

	Get(ctx).Info("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatal(err)
	}
	if line["request_id"] != "abc" || line["msg"] != "hello" {
		t.Fatalf("unexpected log line %v", line)
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestClose(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := Store(context.Background(), slog.New(slog.NewJSONHandler(buf, nil)))

	if err := Close(ctx, "ok", closerFunc(func() error { return nil })); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected log output %q", buf.String())
	}

	want := errors.New("boom")
	if err := Close(ctx, "bad", closerFunc(func() error { return want })); !errors.Is(err, want) {
		t.Fatalf("Close returned %v, want %v", err, want)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"closer":"bad"`)) {
		t.Fatalf("close failure not logged: %q", buf.String())
	}
}

func TestNewLoggerFile(t *testing.T) {
	dir := t.TempDir()

	l := newLogger("test", Config{Dir: dir, Level: "debug"})
	l.Debug("written")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one log file, got %d", len(entries))
	}
}

func TestNewLoggerBadLevel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on invalid level")
		}
	}()
	newLogger("test", Config{Level: "loud"})
}
