package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dtnitsch/url-metadata-extractor/models"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

type stubLookup struct {
	inFlight, maxInFlight atomic.Int32
}

func (s *stubLookup) Lookup(ctx context.Context, rawURL string) (*models.BusinessMetadata, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		m := s.maxInFlight.Load()
		if n <= m || s.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	if strings.Contains(rawURL, "fail") {
		return nil, errors.New("HTTP error: 404")
	}
	return &models.BusinessMetadata{Website: models.StringPtr(rawURL)}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_OrderAndLimit(t *testing.T) {
	urls := []string{
		"https://a.example", "https://fail.example", "https://c.example",
		"https://d.example", "https://e.example", "https://f.example",
	}
	svc := &stubLookup{}
	results := run(context.Background(), quietLogger(), svc, &models.FetchConfig{URLs: urls, WorkerCount: 2})

	if len(results) != len(urls) {
		t.Fatalf("len = %d, want %d", len(results), len(urls))
	}
	for i, r := range results {
		if r.URL != urls[i] {
			t.Errorf("[%d] url = %q, want %q", i, r.URL, urls[i])
		}
	}
	if results[1].Error == "" || results[1].Record != nil {
		t.Errorf("failed URL result = %+v", results[1])
	}
	if results[2].Record == nil || models.Deref(results[2].Record.Website) != urls[2] {
		t.Errorf("later URLs must still succeed: %+v", results[2])
	}
	if got := svc.maxInFlight.Load(); got > 2 {
		t.Errorf("max in flight = %d, want <= 2", got)
	}
}

func TestEncode(t *testing.T) {
	results := []Result{
		{URL: "https://a.example", Record: &models.BusinessMetadata{
			BusinessName: models.StringPtr("Acme"),
			Industry:     models.StringPtr("Salon"),
		}},
		{URL: "https://b.example", Error: "Request timed out"},
	}

	data, err := encode(results, "json", "")
	if err != nil {
		t.Fatalf("encode(json) failed: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	record := decoded[0]["record"].(map[string]any)
	if record["businessName"] != "Acme" {
		t.Errorf("record = %v", record)
	}
	if _, ok := record["description"]; !ok {
		t.Error("null fields should be kept without --fields")
	}
	if decoded[1]["error"] != "Request timed out" {
		t.Errorf("error entry = %v", decoded[1])
	}

	data, err = encode(results, "yaml", "businessName")
	if err != nil {
		t.Fatalf("encode(yaml) failed: %v", err)
	}
	var fromYAML []map[string]any
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	projected := fromYAML[0]["record"].(map[string]any)
	if len(projected) != 1 || projected["businessName"] != "Acme" {
		t.Errorf("projected record = %v", projected)
	}

	if _, err := encode(results, "xml", ""); err == nil {
		t.Error("encode(xml) should fail")
	}
}

func newTestApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:           "url-metadata",
		Writer:         out,
		ErrWriter:      errOut,
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{{
			Name:   "extract",
			Action: ExtractAction,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "config"},
				&cli.StringFlag{Name: "urls"},
				&cli.StringFlag{Name: "urls-file"},
				&cli.IntFlag{Name: "workers", Value: 4},
				&cli.StringFlag{Name: "format", Value: "json"},
				&cli.StringFlag{Name: "fields"},
				&cli.StringFlag{Name: "output"},
				&cli.StringFlag{Name: "cache-dir"},
				&cli.StringFlag{Name: "max-age", Value: "1h"},
				&cli.BoolFlag{Name: "save"},
				&cli.StringFlag{Name: "db"},
				&cli.BoolFlag{Name: "quiet"},
			},
		}},
	}
}

func TestExtractAction(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HISTORY_DB", "")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head><title>Acme Salon</title></head></html>`))
	}))
	defer srv.Close()

	var out, errOut bytes.Buffer
	outPath := filepath.Join(t.TempDir(), "results.json")
	dbPath := filepath.Join(t.TempDir(), "history.db")
	err := newTestApp(&out, &errOut).Run([]string{
		"url-metadata", "extract",
		"--urls", srv.URL + "/," + srv.URL + "/other",
		"--output", outPath,
		"--save", "--db", dbPath,
		"--quiet",
	})
	if err != nil {
		t.Fatalf("extract failed: %v (stderr %s)", err, errOut.String())
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("len = %d, want 2", len(decoded))
	}
	record := decoded[0]["record"].(map[string]any)
	if record["businessName"] != "Acme Salon" {
		t.Errorf("record = %v", record)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("history database not created: %v", err)
	}
}

func TestExtractAction_InvalidURLs(t *testing.T) {
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	err := newTestApp(&out, &errOut).Run([]string{"url-metadata", "extract", "--urls", "not a url"})
	var exitErr cli.ExitCoder
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("err = %v, want exit code 1", err)
	}
	if !strings.Contains(err.Error(), "malformed") {
		t.Errorf("message = %q", err.Error())
	}

	err = newTestApp(&out, &errOut).Run([]string{"url-metadata", "extract"})
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Errorf("no URLs: err = %v, want exit code 1", err)
	}
}
