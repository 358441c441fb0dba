package logs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTailReturnsLastLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shuttle.log")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\nfour\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	lines, offset, err := Tail(path, 2)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(lines) != 2 || lines[0] != "three" || lines[1] != "four" {
		t.Fatalf("unexpected lines: %v", lines)
	}
	if offset == 0 {
		t.Fatal("expected non-zero offset after reading existing file")
	}
}

func TestTailMissingFile(t *testing.T) {
	lines, offset, err := Tail(filepath.Join(t.TempDir(), "absent.log"), 5)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(lines) != 0 || offset != 0 {
		t.Fatalf("expected empty result for missing file, got %v at %d", lines, offset)
	}
}

func TestTailLimitLargerThanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shuttle.log")
	if err := os.WriteFile(path, []byte("only\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	lines, _, err := Tail(path, 10)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(lines) != 1 || lines[0] != "only" {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestFollowEmitsAppendedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shuttle.log")
	if err := os.WriteFile(path, []byte("old\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	_, offset, err := Tail(path, 0)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, path, offset, 5*time.Millisecond, func(line string) {
			got <- line
		})
	}()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open log for append: %v", err)
	}
	if _, err := f.WriteString("fresh\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	f.Close()

	select {
	case line := <-got:
		if line != "fresh" {
			t.Fatalf("unexpected line %q", line)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Follow did not emit appended line")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Follow returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Follow did not stop after cancel")
	}
}
