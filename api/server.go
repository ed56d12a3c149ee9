package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/matt-g-everett/ledscrub/stream"
)

// A Source is what the api controls.
type Source interface {
	Status() stream.Status
	Scrub(t float64) bool
}

type Api struct {
	source Source
	mux    *http.ServeMux
}

func NewApi(source Source) *Api {
	a := new(Api)
	a.source = source
	a.mux = http.NewServeMux()
	a.mux.HandleFunc("/status", a.handleStatus)
	a.mux.HandleFunc("/scrub", a.handleScrub)
	return a
}

// Handler returns the api routes.
func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.source.Status()); err != nil {
		log.Printf("Failed to write status: %v", err)
	}
}

func (a *Api) handleScrub(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	t, err := stream.ParseScrub([]byte(r.URL.Query().Get("t")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !a.source.Scrub(t) {
		http.Error(w, "scrub queue full", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// Serve listens on addr until ctx is done.
func (a *Api) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: a.mux}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Printf("Failed to shut down api: %v", err)
		}
	}()

	log.Printf("Listening on %s...", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
