package exchange

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/xenking/shopdesk/internal/domain/client"
)

var csvHeader = []string{"id", "name", "phone", "email"}

func writeCSV(w io.Writer, clients []*client.Client) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, "write header")
	}
	for _, c := range clients {
		id := ""
		if v, ok := c.ID(); ok {
			id = strconv.FormatInt(v, 10)
		}
		if err := cw.Write([]string{id, c.Name, c.Phone, c.Email}); err != nil {
			return errors.Wrapf(err, "write client %s", c.Name)
		}
	}
	cw.Flush()
	return cw.Error()
}

// readCSV maps columns by header name; column order is free and the id
// column is optional. Rows with a wrong field count become record errors.
func readCSV(r io.Reader) ([]record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("csv: missing header")
	}
	if err != nil {
		return nil, errors.Wrap(err, "csv header")
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[h] = i
	}
	for _, required := range csvHeader[1:] {
		if _, ok := cols[required]; !ok {
			return nil, errors.Errorf("csv: missing %q column", required)
		}
	}

	var out []record
	for n := 1; ; n++ {
		row, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "csv record %d", n)
		}
		rec := record{Index: n}
		if len(row) != len(header) {
			rec.Reason = "expected " + strconv.Itoa(len(header)) + " fields, got " + strconv.Itoa(len(row))
		} else {
			rec.Name = row[cols["name"]]
			rec.Phone = row[cols["phone"]]
			rec.Email = row[cols["email"]]
		}
		out = append(out, rec)
	}
}
