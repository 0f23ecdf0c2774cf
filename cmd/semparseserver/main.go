package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/textgraph/semparse"
)

var allowedOrigins = []string{
	"http://localhost:5173",
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// buildRequest is the request body for POST /build: a sentence or
// paragraph of text plus an optional subset of the option surface (spec
// §6). Options not set take DefaultBuildOptions's values.
type buildRequest struct {
	Text    string `json:"text"`
	Debug   bool   `json:"debug"`
	Verbose bool   `json:"verbose"`
}

type buildResponse struct {
	Graph           json.RawMessage           `json:"graph"`
	Metadata        semparse.Metadata         `json:"metadata"`
	Debug           *semparse.DebugTrace      `json:"debug,omitempty"`
	AmbiguityReport *semparse.AmbiguityReport `json:"ambiguityReport,omitempty"`
}

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	posPath := flag.String("pos", "", "path to the POS weight table")
	depPath := flag.String("dep", "", "path to the dependency weight table")
	calibPath := flag.String("calib", "", "path to the confidence calibration table")
	flag.Parse()

	b := semparse.NewBuilder()
	if err := loadModels(b, *posPath, *depPath, *calibPath); err != nil {
		fmt.Fprintf(flag.CommandLine.Output(), "startup error: %v\n", err)
		return
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/build", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var body buildRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if body.Text == "" {
			writeError(w, http.StatusBadRequest, "missing field: text")
			return
		}

		opts := semparse.DefaultBuildOptions()
		opts.Debug = body.Debug
		opts.Verbose = body.Verbose
		b.SetVerbose(body.Verbose)

		result, err := b.Build(body.Text, opts)
		if err != nil {
			status := http.StatusUnprocessableEntity
			if be, ok := err.(semparse.BuildError); ok && be.Kind == semparse.KindModelMissing {
				status = http.StatusServiceUnavailable
			}
			writeError(w, status, err.Error())
			return
		}

		graphJSON, err := json.Marshal(result.Graph)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, buildResponse{
			Graph:           graphJSON,
			Metadata:        result.Metadata,
			Debug:           result.Debug,
			AmbiguityReport: result.AmbiguityReport,
		})
	})

	addr := fmt.Sprintf(":%d", *port)
	fmt.Printf("semparse server listening on %s\n", addr)
	if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
		fmt.Fprintf(flag.CommandLine.Output(), "server error: %v\n", err)
	}
}

func loadModels(b *semparse.Builder, posPath, depPath, calibPath string) error {
	loaders := []struct {
		path string
		load func(io.Reader) error
	}{
		{posPath, b.LoadPOSModel},
		{depPath, b.LoadDepModel},
		{calibPath, b.LoadCalibration},
	}
	for _, l := range loaders {
		if l.path == "" {
			continue
		}
		f, err := os.Open(l.path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", l.path, err)
		}
		err = l.load(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("loading %s: %w", l.path, err)
		}
	}
	return nil
}
