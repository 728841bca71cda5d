package main

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func serveDiscogs(t *testing.T) *httptest.Server {
	t.Helper()
	var jpg bytes.Buffer
	if err := jpeg.Encode(&jpg, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil); err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/releases/1234567", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Discogs token=secret" {
			http.Error(w, "bad token "+got, http.StatusUnauthorized)
			return
		}
		fmt.Fprintf(w, `{"id":1234567,"images":[{"type":"primary","uri":%q}]}`, srv.URL+"/cover.jpg")
	})
	mux.HandleFunc("/cover.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(jpg.Bytes())
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, apiBase string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "collection.csv")
	csv := "Catalog#,Artist,Title,Label,Format,Rating,Released,release_id\n" +
		"UAS 29 211/12,Can,Tago Mago,United Artists,LP,,1971,1234567\n"
	if err := os.WriteFile(csvPath, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(dir, "config.ini")
	cfg := strings.Join([]string{
		"csv_file = " + csvPath,
		"token = secret",
		"api_base_url = " + apiBase,
		"watch_catalog = false",
		"cover_dir = " + filepath.Join(dir, "covers"),
		"log_file = " + filepath.Join(dir, "record-roll.log"),
	}, "\n")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	return cfgPath, dir
}

func TestPickCommand(t *testing.T) {
	t.Setenv("DISCOGS_TOKEN", "")
	t.Setenv("RECORD_ROLL_CSV_FILE", "")
	srv := serveDiscogs(t)
	cfgPath, dir := writeConfig(t, srv.URL+"/releases")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--config", cfgPath, "--seed", "1", "pick", "--save"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v\nstderr: %s", err, stderr.String())
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("stdout = %q, want caption and uri", stdout.String())
	}
	if lines[0] != "Can - Tago Mago" {
		t.Errorf("caption = %q", lines[0])
	}
	if lines[1] != srv.URL+"/cover.jpg" {
		t.Errorf("uri = %q", lines[1])
	}

	if _, err := os.Stat(filepath.Join(dir, "covers", "Can - Tago Mago.jpg")); err != nil {
		t.Errorf("cover not saved: %v", err)
	}
}

func TestViewerNotices_SkippedRows(t *testing.T) {
	t.Setenv("DISCOGS_TOKEN", "")
	t.Setenv("RECORD_ROLL_CSV_FILE", "")
	cfgPath, dir := writeConfig(t, "http://127.0.0.1:0/releases")

	csv := "Catalog#,Artist,Title,Label,Format,Rating,Released,release_id\n" +
		"UAS 29 211/12,Can,Tago Mago,United Artists,LP,,1971,1234567\n" +
		"X,Bad \"quote,Title,Label,LP,,1971,9\n" +
		"X,Short,Row\n"
	if err := os.WriteFile(filepath.Join(dir, "collection.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	notices, notify := newNotices(16)
	a, err := newApp(newRootCmd(), &rootOptions{configPath: cfgPath}, nil, notify)
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	defer a.log.Sync()

	var got []string
	for len(notices) > 0 {
		got = append(got, (<-notices).Message)
	}
	want := []string{"Skipping invalid line! (line 3)", "Skipping invalid line! (line 4)"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("notices = %q, want %q", got, want)
	}

	// reloads report through the same callback
	if _, err := a.store.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if len(notices) != 2 {
		t.Errorf("got %d notices after reload, want 2", len(notices))
	}
}

func TestPickCommand_MissingConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.ini"), "pick"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("Execute() error = %v, want config file not found", err)
	}
}

func TestValidateCSVPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "c.csv")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"existing file", file, false},
		{"blank", "  ", true},
		{"missing", filepath.Join(dir, "missing.csv"), true},
		{"directory", dir, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCSVPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateCSVPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
