package exchange

import (
	"context"
	"io"

	"github.com/go-faster/errors"

	"github.com/xenking/shopdesk/internal/domain/client"
)

// Export writes every stored client to w and returns how many were written.
func Export(ctx context.Context, repo client.Repository, w io.Writer, format Format) (int, error) {
	clients, err := repo.List(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "list clients")
	}
	switch format {
	case CSV:
		err = writeCSV(w, clients)
	case JSON:
		err = writeJSON(w, clients)
	default:
		return 0, errors.Wrap(ErrUnknownFormat, string(format))
	}
	if err != nil {
		return 0, errors.Wrapf(err, "write %s", format)
	}
	return len(clients), nil
}

// ExportFile writes every stored client to path, choosing the format from
// the file name.
func ExportFile(ctx context.Context, repo client.Repository, path string) (_ int, rerr error) {
	format, gz, err := Detect(path)
	if err != nil {
		return 0, err
	}
	wc, err := createFile(path, gz)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := wc.Close(); err != nil && rerr == nil {
			rerr = errors.Wrap(err, "close file")
		}
	}()

	return Export(ctx, repo, wc, format)
}
