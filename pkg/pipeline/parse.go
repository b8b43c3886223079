package pipeline

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/Hanzzh/mindmap/pkg/errors"
	"github.com/Hanzzh/mindmap/pkg/observability"
	"github.com/Hanzzh/mindmap/pkg/tree"
)

// Parse reads the outline from opts into a tree.
func Parse(ctx context.Context, opts Options) (*tree.Tree, error) {
	source := "outline"
	if opts.Path != "" {
		source = opts.Path
	}

	start := time.Now()
	observability.Pipeline().OnParseStart(ctx, source)

	t, err := parseOutline(opts)

	nodes := 0
	if t != nil {
		nodes = t.Len()
	}
	observability.Pipeline().OnParseComplete(ctx, source, nodes, time.Since(start), err)
	return t, err
}

func parseOutline(opts Options) (*tree.Tree, error) {
	text := opts.Outline
	if opts.Path != "" {
		data, err := os.ReadFile(opts.Path)
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "outline file %s", opts.Path)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", opts.Path)
		}
		text = string(data)
	}

	t, err := tree.ParseOutline(strings.NewReader(text))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOutline, err, "parse outline")
	}
	return t, nil
}
