// Package handler serves the read-only JSON API over stored clients,
// products, orders and reports.
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/shopdesk/internal/domain/client"
	"github.com/xenking/shopdesk/internal/domain/order"
	"github.com/xenking/shopdesk/internal/domain/product"
	"github.com/xenking/shopdesk/internal/report"
	"github.com/xenking/shopdesk/pkg/httpmiddleware"
)

// ClientLister lists stored clients.
type ClientLister interface {
	List(ctx context.Context) ([]*client.Client, error)
}

// ProductLister lists stored products.
type ProductLister interface {
	List(ctx context.Context) ([]*product.Product, error)
}

// OrderLister lists stored orders.
type OrderLister interface {
	List(ctx context.Context) ([]order.Order, error)
}

// Config holds handler settings.
type Config struct {
	// Top is the default size of the top clients ranking.
	Top int
}

// Handler serves the API endpoints.
type Handler struct {
	clients  ClientLister
	products ProductLister
	orders   OrderLister
	top      int
}

// New creates a Handler.
func New(cfg Config, clients ClientLister, products ProductLister, orders OrderLister) *Handler {
	top := cfg.Top
	if top <= 0 {
		top = report.DefaultTop
	}
	return &Handler{clients: clients, products: products, orders: orders, top: top}
}

// Register adds the API routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/clients", h.listClients)
	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/orders", h.listOrders)
	mux.HandleFunc("GET /api/reports/top-clients", h.topClients)
	mux.HandleFunc("GET /api/reports/timeline", h.timeline)
	mux.HandleFunc("GET /api/reports/graph", h.graph)
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	cs, err := h.clients.List(r.Context())
	if err != nil {
		internalError(w, r, "list clients", err)
		return
	}
	writeJSON(w, func(e *jx.Encoder) { encodeClients(e, cs) })
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.products.List(r.Context())
	if err != nil {
		internalError(w, r, "list products", err)
		return
	}
	writeJSON(w, func(e *jx.Encoder) { encodeProducts(e, ps) })
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		internalError(w, r, "list orders", err)
		return
	}
	writeJSON(w, func(e *jx.Encoder) { encodeOrders(e, orders) })
}

func (h *Handler) topClients(w http.ResponseWriter, r *http.Request) {
	n := h.top
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			httpmiddleware.WriteError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = parsed
	}
	ps, ok := h.projections(w, r)
	if !ok {
		return
	}
	writeJSON(w, func(e *jx.Encoder) { encodeTopClients(e, report.TopClients(ps, n)) })
}

func (h *Handler) timeline(w http.ResponseWriter, r *http.Request) {
	ps, ok := h.projections(w, r)
	if !ok {
		return
	}
	days, err := report.OrdersPerDay(ps)
	if err != nil {
		internalError(w, r, "orders per day", err)
		return
	}
	writeJSON(w, func(e *jx.Encoder) { encodeTimeline(e, days) })
}

func (h *Handler) graph(w http.ResponseWriter, r *http.Request) {
	ps, ok := h.projections(w, r)
	if !ok {
		return
	}
	writeJSON(w, func(e *jx.Encoder) { encodeGraph(e, report.ClientGraph(ps)) })
}

func (h *Handler) projections(w http.ResponseWriter, r *http.Request) ([]report.Projection, bool) {
	ps, err := report.Load(r.Context(), h.orders)
	if err != nil {
		internalError(w, r, "load orders", err)
		return nil, false
	}
	return ps, true
}

func internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	zctx.From(r.Context()).Error("Request failed", zap.String("op", op), zap.Error(err))
	httpmiddleware.WriteError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, fn func(e *jx.Encoder)) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	fn(e)

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(e.Bytes())
}
