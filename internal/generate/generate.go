// Package generate renders a loaded document as a TypeScript module of type
// aliases.
package generate

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tsgonest/oasts/internal/jsdoc"
	"github.com/tsgonest/oasts/internal/loader"
	"github.com/tsgonest/oasts/internal/transform"
)

// Banner is the first line of every generated file.
const Banner = "// Code generated by oasts. DO NOT EDIT."

// Options controls generation.
type Options struct {
	Transform transform.Options
	// Source is shown in the banner; the document title is used when empty.
	Source string
	// Concurrency bounds the number of schemas transformed at once.
	// 0 means GOMAXPROCS.
	Concurrency int
}

// Generate emits one `export type` declaration per named schema, in document
// order.
func Generate(ctx context.Context, doc *loader.Document, opts Options) (string, error) {
	topts := opts.Transform
	if topts.Version == 0 {
		topts.Version = doc.Version
	}
	if topts.Comment == nil {
		topts.Comment = jsdoc.Format
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	decls := make([]string, len(doc.Schemas))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, s := range doc.Schemas {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			decls[i] = Declaration(s, topts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("generating types: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(Banner)
	sb.WriteString("\n")
	source := opts.Source
	if source == "" {
		source = doc.Title
	}
	if source != "" {
		fmt.Fprintf(&sb, "// Source: %s\n", source)
	}
	for _, d := range decls {
		sb.WriteString("\n")
		sb.WriteString(d)
	}
	return sb.String(), nil
}

// Declaration renders a single named schema, preceded by its comment.
func Declaration(s loader.NamedSchema, opts transform.Options) string {
	var sb strings.Builder
	if opts.Comment != nil {
		sb.WriteString(opts.Comment(s.Schema))
	}
	fmt.Fprintf(&sb, "export type %s = %s;\n", s.Name, transform.Schema(s.Schema, opts))
	return sb.String()
}
