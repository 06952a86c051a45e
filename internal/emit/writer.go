package emit

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/mattbarlow-sg/bpmn2dcr/internal/dcr"
	"github.com/viant/afs"
)

// WriteFile marshals g to DCR-JS XML and uploads it to url (a local
// path or any scheme afs supports).
func WriteFile(ctx context.Context, url string, g *dcr.Graph) error {
	data, err := Marshal(g)
	if err != nil {
		return fmt.Errorf("dcr: marshaling graph: %w", err)
	}
	fs := afs.New()
	if err := fs.Upload(ctx, url, os.FileMode(0o644), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("dcr: writing %s: %w", url, err)
	}
	return nil
}
