package pipeline

import (
	"context"
	"time"

	"github.com/Hanzzh/mindmap/pkg/errors"
	"github.com/Hanzzh/mindmap/pkg/measure"
	"github.com/Hanzzh/mindmap/pkg/observability"
	"github.com/Hanzzh/mindmap/pkg/render"
	"github.com/Hanzzh/mindmap/pkg/render/dot"
	"github.com/Hanzzh/mindmap/pkg/render/png"
	"github.com/Hanzzh/mindmap/pkg/render/svg"
)

// RenderFromLayout generates artifacts in the requested formats.
func RenderFromLayout(ctx context.Context, l render.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	artifacts, err := renderFormats(l, opts)

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(l render.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			var svgOpts []svg.Option
			if opts.Background != "" {
				svgOpts = append(svgOpts, svg.WithBackground(opts.Background))
			}
			data = svg.Render(l, svgOpts...)
		case FormatPNG:
			pngOpts := []png.Option{png.WithScale(opts.Scale)}
			// Draw with real glyphs when a system font is available.
			if fm, ferr := measure.NewFontMeasurer(); ferr == nil {
				pngOpts = append(pngOpts, png.WithFonts(fm))
			}
			data, err = png.Render(l, pngOpts...)
		case FormatDOT:
			data = []byte(dot.ToDOT(l))
		case FormatJSON:
			data, err = render.Marshal(l)
		default:
			err = errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
