package handler

import (
	"github.com/go-faster/jx"

	"github.com/xenking/shopdesk/internal/domain/client"
	"github.com/xenking/shopdesk/internal/domain/order"
	"github.com/xenking/shopdesk/internal/domain/product"
	"github.com/xenking/shopdesk/internal/report"
)

type identified interface {
	ID() (int64, bool)
}

func encodeID(e *jx.Encoder, v identified) {
	id, ok := v.ID()
	if !ok {
		e.Null()
		return
	}
	e.Int64(id)
}

func encodeClients(e *jx.Encoder, cs []*client.Client) {
	e.ArrStart()
	for _, c := range cs {
		e.Obj(func(e *jx.Encoder) {
			e.Field("id", func(e *jx.Encoder) { encodeID(e, c) })
			e.Field("name", func(e *jx.Encoder) { e.Str(c.Name) })
			e.Field("phone", func(e *jx.Encoder) { e.Str(c.Phone) })
			e.Field("email", func(e *jx.Encoder) { e.Str(c.Email) })
		})
	}
	e.ArrEnd()
}

func encodeProducts(e *jx.Encoder, ps []*product.Product) {
	e.ArrStart()
	for _, p := range ps {
		e.Obj(func(e *jx.Encoder) {
			e.Field("id", func(e *jx.Encoder) { encodeID(e, p) })
			e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
			e.Field("description", func(e *jx.Encoder) { e.Str(p.Description) })
			e.Field("price", func(e *jx.Encoder) { e.Str(p.Price.StringFixed(2)) })
		})
	}
	e.ArrEnd()
}

func encodeOrders(e *jx.Encoder, orders []order.Order) {
	e.ArrStart()
	for _, o := range orders {
		s := order.Summarize(o)
		e.Obj(func(e *jx.Encoder) {
			e.Field("id", func(e *jx.Encoder) { encodeID(e, o) })
			e.Field("kind", func(e *jx.Encoder) { e.Str(string(s.Kind)) })
			e.Field("date", func(e *jx.Encoder) { e.Str(s.Date) })
			e.Field("client", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					e.Field("id", func(e *jx.Encoder) { e.Int64(s.ClientID) })
					e.Field("name", func(e *jx.Encoder) { e.Str(s.ClientName) })
				})
			})
			e.Field("items", func(e *jx.Encoder) {
				e.ArrStart()
				for _, l := range o.Lines() {
					e.Obj(func(e *jx.Encoder) {
						e.Field("product_id", func(e *jx.Encoder) { encodeID(e, l.Product) })
						e.Field("name", func(e *jx.Encoder) { e.Str(l.Product.Name) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(l.Quantity) })
						e.Field("cost", func(e *jx.Encoder) { e.Str(l.Cost().StringFixed(2)) })
					})
				}
				e.ArrEnd()
			})
			e.Field("discount", func(e *jx.Encoder) { e.Str(s.Discount.String()) })
			e.Field("total", func(e *jx.Encoder) { e.Str(s.Total.StringFixed(2)) })
		})
	}
	e.ArrEnd()
}

func encodeTopClients(e *jx.Encoder, counts []report.ClientCount) {
	e.ArrStart()
	for _, c := range counts {
		e.Obj(func(e *jx.Encoder) {
			e.Field("name", func(e *jx.Encoder) { e.Str(c.Name) })
			e.Field("orders", func(e *jx.Encoder) { e.Int(c.Orders) })
		})
	}
	e.ArrEnd()
}

func encodeTimeline(e *jx.Encoder, days []report.DayCount) {
	e.ArrStart()
	for _, d := range days {
		e.Obj(func(e *jx.Encoder) {
			e.Field("day", func(e *jx.Encoder) { e.Str(d.Day.Format("2006-01-02")) })
			e.Field("orders", func(e *jx.Encoder) { e.Int(d.Orders) })
		})
	}
	e.ArrEnd()
}

func encodeGraph(e *jx.Encoder, g report.Graph) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("nodes", func(e *jx.Encoder) {
			e.ArrStart()
			for _, n := range g.Nodes {
				e.Str(n)
			}
			e.ArrEnd()
		})
		e.Field("edges", func(e *jx.Encoder) {
			e.ArrStart()
			for _, edge := range g.Edges {
				e.ArrStart()
				e.Str(edge.From)
				e.Str(edge.To)
				e.ArrEnd()
			}
			e.ArrEnd()
		})
	})
}
