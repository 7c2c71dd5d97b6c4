package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/transcripter/internal/app"
	"github.com/patrickprogramme/transcripter/pkg/model"
)

func TestRequestFlagsApplyOnlyChanged(t *testing.T) {
	var rf requestFlags
	cmd := &cobra.Command{Use: "x"}
	rf.register(cmd)
	if err := cmd.Flags().Parse([]string{"--lang", "fr", "--format", "both"}); err != nil {
		t.Fatal(err)
	}

	req := app.Request{Language: "en", PreferManual: false, OutputFormat: model.OutputStructured}
	if err := rf.apply(cmd, &req); err != nil {
		t.Fatal(err)
	}
	if req.Language != "fr" || req.OutputFormat != model.OutputBoth {
		t.Errorf("req = %+v", req)
	}
	// --prefer-manual non passé : la valeur de la config reste
	if req.PreferManual {
		t.Error("prefer-manual default must not override config")
	}
}

func TestRequestFlagsInvalidFormat(t *testing.T) {
	var rf requestFlags
	cmd := &cobra.Command{Use: "x"}
	rf.register(cmd)
	_ = cmd.Flags().Parse([]string{"--format", "xml"})

	req := app.Request{}
	if err := rf.apply(cmd, &req); err == nil {
		t.Error("invalid format should fail")
	}
}

func TestRenderReport(t *testing.T) {
	out := renderReport(app.BatchReport{Items: []app.BatchItem{
		{VideoID: "abc", Status: app.StatusOK, SubtitleType: "manual", Cues: 12, Path: "out/abc.json"},
		{VideoID: "def", Status: app.StatusNotFound, Cues: app.NoCues, Err: errors.New(`no transcript found for this video with language "de"`)},
	}})
	for _, want := range []string{"abc", "manual", "12", "out/abc.json", "not_found", `"de"`, " - "} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestConfigInitSkipsConfigLoading(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.yaml")

	root := newRootCommand()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetArgs([]string{"config", "init", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if strings.TrimSpace(stdout.String()) != path {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestConfigInitKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.yaml")
	if err := os.WriteFile(path, []byte("language: fr\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newRootCommand()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetArgs([]string{"config", "init", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout.String(), "existe déjà") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if b, _ := os.ReadFile(path); string(b) != "language: fr\n" {
		t.Errorf("existing config overwritten: %q", b)
	}
}

func TestConfigShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.yaml")
	if err := os.WriteFile(path, []byte("language: fr\nconfig_version: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newRootCommand()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetArgs([]string{"--config", path, "config", "show"})
	if err := root.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(stdout.String(), "language: fr") {
		t.Errorf("stdout = %s", stdout.String())
	}
}
