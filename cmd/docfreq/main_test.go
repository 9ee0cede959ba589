package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/docfreq/internal/parser"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DOCFREQ_CONFIG", "")
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const sample = "The cat sat.\n\nThe dog and the cat ran. A bird, a dog, a cat!"

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()
	if cmd.Use != "docfreq" {
		t.Errorf("expected use 'docfreq', got %q", cmd.Use)
	}
	if cmd.Version == "" {
		t.Error("expected non-empty version")
	}
	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	if !names["analyze"] || !names["stopwords"] {
		t.Errorf("expected analyze and stopwords subcommands, got %v", names)
	}
}

func TestAnalyze_Markdown(t *testing.T) {
	path := writeFile(t, "pets.txt", sample)
	out, err := runCmd(t, "analyze", path, "--top", "5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"# Word frequency: pets", "## Top 5 words", "| 1 | cat | 3 |", "| 2 | dog | 2 |"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestAnalyze_JSON(t *testing.T) {
	path := writeFile(t, "pets.txt", sample)
	out, err := runCmd(t, "analyze", path, "-f", "json", "--full=false")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var res struct {
		Top []struct {
			Word  string `json:"word"`
			Count int    `json:"count"`
		} `json:"top"`
		Table  []any `json:"table"`
		Tokens int   `json:"tokens"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("expected JSON output: %v\n%s", err, out)
	}
	if res.Tokens != 8 || res.Top[0].Word != "cat" || res.Top[0].Count != 3 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Table != nil {
		t.Fatal("expected the full table to be omitted")
	}
}

func TestAnalyze_WritesImages(t *testing.T) {
	t.Setenv("CLOUD_WIDTH", "240")
	t.Setenv("CLOUD_HEIGHT", "120")
	path := writeFile(t, "pets.txt", sample)
	dir := t.TempDir()
	cloud := filepath.Join(dir, "cloud.png")
	chart := filepath.Join(dir, "chart.png")

	out, err := runCmd(t, "analyze", path, "--cloud", cloud, "--chart", chart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range []string{cloud, chart} {
		f, err := os.Open(p)
		if err != nil {
			t.Fatalf("expected %s to be written: %v", p, err)
		}
		_, err = png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("expected %s to be a PNG: %v", p, err)
		}
		if !strings.Contains(out, "]("+p+")") {
			t.Errorf("expected report to link %s", p)
		}
	}
}

func TestAnalyze_Errors(t *testing.T) {
	if _, err := runCmd(t, "analyze"); err == nil {
		t.Fatal("expected error without FILE")
	}

	if _, err := runCmd(t, "analyze", filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}

	_, err := runCmd(t, "analyze", writeFile(t, "deck.pptx", "x"))
	if !errors.Is(err, parser.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}

	_, err = runCmd(t, "analyze", writeFile(t, "paper.pdf", "not a pdf"))
	if !errors.Is(err, parser.ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}

	if _, err := runCmd(t, "analyze", writeFile(t, "a.txt", "words"), "--format", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestStopwords(t *testing.T) {
	out, err := runCmd(t, "stopwords")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 150 {
		t.Fatalf("expected the full stopword list, got %d lines", len(lines))
	}
	found := false
	for _, l := range lines {
		if l == "the" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected 'the' in stopwords")
	}
}
