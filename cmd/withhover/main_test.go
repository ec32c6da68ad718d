package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/withhover/internal/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	out, err := execute(t, "render", "--text", "hello")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<div data-hover="false"><p style="background-color: white;">hello</p></div>` + "\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}

	out, err = execute(t, "render", "--text", "hello", "--hovered")
	if err != nil {
		t.Fatalf("render --hovered: %v", err)
	}
	if !strings.Contains(out, `data-hover="true"`) || !strings.Contains(out, "background-color: blue;") {
		t.Errorf("hovered output: %s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if out != "dev\n" {
		t.Errorf("got %q", out)
	}
}

func TestExportRequiresCredentials(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	chdir(t, t.TempDir())

	_, err := execute(t, "export", "--bucket", "snaps")
	if errors.Code(err) != errors.ExportNoCreds {
		t.Errorf("err = %v, want %s", err, errors.ExportNoCreds)
	}
}

func TestConfigErrorsSurface(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "serve", "--config", path)
	if errors.Code(err) != errors.ConfigLogLevel {
		t.Fatalf("err = %v", err)
	}

	var buf bytes.Buffer
	printError(&buf, err)
	if !strings.Contains(buf.String(), errors.ConfigLogLevel) {
		t.Errorf("printError output: %s", buf.String())
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
