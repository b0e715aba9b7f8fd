package exchange

import (
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/shopdesk/internal/domain/client"
)

func writeJSON(w io.Writer, clients []*client.Client) error {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	e.SetIdent(4)

	e.Arr(func(e *jx.Encoder) {
		for _, c := range clients {
			e.Obj(func(e *jx.Encoder) {
				e.Field("id", func(e *jx.Encoder) {
					if id, ok := c.ID(); ok {
						e.Int64(id)
					} else {
						e.Null()
					}
				})
				e.Field("name", func(e *jx.Encoder) { e.Str(c.Name) })
				e.Field("phone", func(e *jx.Encoder) { e.Str(c.Phone) })
				e.Field("email", func(e *jx.Encoder) { e.Str(c.Email) })
			})
		}
	})

	if _, err := w.Write(e.Bytes()); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// readJSON expects a top-level array. Elements that are not objects or lack
// a string name, phone or email become record errors; syntax errors abort.
func readJSON(r io.Reader) ([]record, error) {
	d := jx.Decode(r, 4096)
	if d.Next() != jx.Array {
		return nil, errors.New("json: top-level value must be an array")
	}

	var out []record
	n := 0
	err := d.Arr(func(d *jx.Decoder) error {
		n++
		rec := record{Index: n}
		if d.Next() != jx.Object {
			rec.Reason = "not an object"
			out = append(out, rec)
			return d.Skip()
		}

		seen := make(map[string]bool, 3)
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			var dst *string
			switch key {
			case "name":
				dst = &rec.Name
			case "phone":
				dst = &rec.Phone
			case "email":
				dst = &rec.Email
			default:
				return d.Skip()
			}
			if d.Next() != jx.String {
				if rec.Reason == "" {
					rec.Reason = key + " is not a string"
				}
				return d.Skip()
			}
			v, err := d.Str()
			if err != nil {
				return err
			}
			*dst = v
			seen[key] = true
			return nil
		}); err != nil {
			return err
		}

		for _, key := range []string{"name", "phone", "email"} {
			if rec.Reason == "" && !seen[key] {
				rec.Reason = key + " missing"
			}
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "json")
	}
	return out, nil
}
