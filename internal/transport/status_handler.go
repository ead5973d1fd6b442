// Package transport exposes the coordinator's health and status over HTTP and gRPC.
package transport

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/goodnatureofminers/tcc-settler/internal/tcc/coordinator"
	"go.uber.org/zap"
)

type StatusSource interface {
	Snapshot() coordinator.Status
}

// Info is the static part of the status documents.
type Info struct {
	Service  string
	Contract string
	RPCURL   string
}

type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Contract  string `json:"contract"`
	Timestamp string `json:"timestamp"`
}

type statusResponse struct {
	Listening bool         `json:"listening"`
	Contract  string       `json:"contract"`
	RPC       string       `json:"rpc"`
	Provider  string       `json:"provider"`
	Cursor    *uint64      `json:"cursor"`
	Processed int          `json:"processed"`
	InFlight  int64        `json:"inFlight"`
	States    []stateCount `json:"states"`
	Timestamp string       `json:"timestamp"`
}

type stateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

// StatusHandler serves GET /healthz and GET /status.
type StatusHandler struct {
	logger *zap.Logger
	source StatusSource
	info   Info
	now    func() time.Time
}

func NewStatusHandler(source StatusSource, info Info, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{
		logger: logger.Named("status_handler"),
		source: source,
		info:   info,
		now:    time.Now,
	}
}

// Routes returns the handler's HTTP routes.
func (h *StatusHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("GET /status", h.status)
	return mux
}

func (h *StatusHandler) health(w http.ResponseWriter, _ *http.Request) {
	h.write(w, healthResponse{
		Status:    "ok",
		Service:   h.info.Service,
		Contract:  h.info.Contract,
		Timestamp: h.timestamp(),
	})
}

func (h *StatusHandler) status(w http.ResponseWriter, _ *http.Request) {
	snap := h.source.Snapshot()
	resp := statusResponse{
		Listening: snap.Listening,
		Contract:  h.info.Contract,
		RPC:       h.info.RPCURL,
		Provider:  snap.Provider,
		Processed: snap.Processed,
		InFlight:  snap.InFlight,
		States:    []stateCount{},
		Timestamp: h.timestamp(),
	}
	if snap.CursorSeeded {
		cursor := snap.Cursor
		resp.Cursor = &cursor
	}
	for state, n := range snap.States {
		resp.States = append(resp.States, stateCount{State: string(state), Count: n})
	}
	sort.Slice(resp.States, func(i, j int) bool { return resp.States[i].State < resp.States[j].State })
	h.write(w, resp)
}

func (h *StatusHandler) timestamp() string {
	return h.now().UTC().Format(time.RFC3339)
}

func (h *StatusHandler) write(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("write response failed", zap.Error(err))
	}
}
