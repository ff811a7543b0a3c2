package comma

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchDecodesByExtension(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/extra.yaml", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("commas:\n  - ratio: 4000/3969\n    name: octagar\n"))
	})
	mux.HandleFunc("/extra.txt", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("81/80 syntonic comma\n"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	records, err := Fetch(context.Background(), srv.URL+"/extra.yaml")
	if err != nil {
		t.Fatalf("fetch yaml: %v", err)
	}
	if len(records) != 1 || records[0].Ratio != "4000/3969" || records[0].Name != "octagar" {
		t.Fatalf("unexpected yaml records: %+v", records)
	}

	records, err = Fetch(context.Background(), srv.URL+"/extra.txt?rev=2")
	if err != nil {
		t.Fatalf("fetch txt: %v", err)
	}
	if len(records) != 1 || records[0].Name != "syntonic comma" {
		t.Fatalf("unexpected txt records: %+v", records)
	}
}

func TestFetchRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	if _, err := Fetch(context.Background(), srv.URL+"/missing.toml"); err == nil {
		t.Fatalf("expected error for 404")
	}
}

func TestIsURL(t *testing.T) {
	if !IsURL("https://example.org/c.toml") || IsURL("commas.toml") {
		t.Fatalf("IsURL misclassified input")
	}
}
