package ingest

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mattbarlow-sg/bpmn2dcr/internal/bpmn"
	"github.com/viant/afs"
)

// ReadFile downloads the BPMN document at url (a local path or any
// scheme afs supports: file://, s3://, gs://, ...) and parses it into
// a raw process graph.
func ReadFile(ctx context.Context, url string) (*bpmn.Process, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("bpmn: reading %s: %w", url, err)
	}
	proc, err := ParseProcess(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("bpmn: parsing %s: %w", url, err)
	}
	return proc, nil
}
