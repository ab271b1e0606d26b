// Package provision rewrites the automatic blocks of a Caddyfile while
// leaving manual blocks and unmanaged lines alone.
package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sahilm/fuzzy"

	"github.com/jorge-barreto/contty/internal/caddyfile"
	"github.com/jorge-barreto/contty/internal/logging"
	"github.com/jorge-barreto/contty/internal/store"
)

// ErrUnknownHostname is returned when removing a hostname that has no
// automatic block.
var ErrUnknownHostname = errors.New("no automatic block for hostname")

type Options struct {
	DryRun bool
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return logging.Discard()
	}
	return o.Logger
}

// Result describes what a provisioning step changed.
type Result struct {
	Added     []string
	Updated   []string
	Removed   []string
	Unchanged []string

	Output  []byte // the rendered Caddyfile
	Written bool
}

// Changed reports whether any automatic block differs from the file.
func (r *Result) Changed() bool {
	return len(r.Added)+len(r.Updated)+len(r.Removed) > 0
}

// Sync makes the automatic blocks of the Caddyfile at path exactly blocks,
// in that order.
func Sync(ctx context.Context, path string, blocks []caddyfile.AutomaticBlockConfig, opts Options) (*Result, error) {
	return apply(ctx, path, opts, func(doc *caddyfile.Document, res *Result) error {
		desired := make(map[string]bool, len(blocks))
		for _, b := range blocks {
			if err := b.Validate(); err != nil {
				return fmt.Errorf("site %q: %w", b.Hostname, err)
			}
			if desired[b.Hostname] {
				return fmt.Errorf("duplicate hostname %q", b.Hostname)
			}
			desired[b.Hostname] = true

			switch cur, ok := doc.AutomaticBlock(b.Hostname); {
			case !ok:
				res.Added = append(res.Added, b.Hostname)
			case cur != b:
				res.Updated = append(res.Updated, b.Hostname)
			default:
				res.Unchanged = append(res.Unchanged, b.Hostname)
			}
		}
		for _, h := range doc.Hostnames() {
			if !desired[h] {
				res.Removed = append(res.Removed, h)
			}
		}
		doc.Automatic = append([]caddyfile.AutomaticBlockConfig(nil), blocks...)
		return nil
	})
}

// Upsert adds or replaces the automatic block for block.Hostname.
func Upsert(ctx context.Context, path string, block caddyfile.AutomaticBlockConfig, opts Options) (*Result, error) {
	return apply(ctx, path, opts, func(doc *caddyfile.Document, res *Result) error {
		if err := block.Validate(); err != nil {
			return err
		}
		cur, ok := doc.AutomaticBlock(block.Hostname)
		switch {
		case !ok:
			res.Added = append(res.Added, block.Hostname)
		case cur != block:
			res.Updated = append(res.Updated, block.Hostname)
		default:
			res.Unchanged = append(res.Unchanged, block.Hostname)
		}
		doc.SetAutomaticBlock(block)
		return nil
	})
}

// Remove deletes the automatic block for hostname.
func Remove(ctx context.Context, path, hostname string, opts Options) (*Result, error) {
	return apply(ctx, path, opts, func(doc *caddyfile.Document, res *Result) error {
		if !doc.RemoveAutomaticBlock(hostname) {
			return unknownHostname(hostname, doc.Hostnames())
		}
		res.Removed = append(res.Removed, hostname)
		return nil
	})
}

// Inspect parses the Caddyfile at path without changing it.
func Inspect(path string) (*caddyfile.Document, error) {
	return store.Load(path)
}

func apply(ctx context.Context, path string, opts Options, edit func(*caddyfile.Document, *Result) error) (*Result, error) {
	log := opts.logger().With("path", path)

	snap, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	log.Debug("caddyfile.loaded",
		"unmanaged", len(snap.Doc.Unmanaged),
		"manual", len(snap.Doc.Manual),
		"automatic", len(snap.Doc.Automatic))

	res := &Result{}
	if err := edit(snap.Doc, res); err != nil {
		return nil, err
	}
	if res.Output, err = snap.Render(); err != nil {
		return nil, err
	}
	if opts.DryRun {
		log.Info("caddyfile.dry_run", "added", res.Added, "updated", res.Updated, "removed", res.Removed)
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if res.Written, err = snap.Commit(); err != nil {
		return nil, err
	}
	log.Info("caddyfile.provisioned",
		"written", res.Written,
		"added", res.Added,
		"updated", res.Updated,
		"removed", res.Removed)
	return res, nil
}

func unknownHostname(hostname string, known []string) error {
	matches := fuzzy.Find(hostname, known)
	if len(matches) > 0 {
		return fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownHostname, hostname, matches[0].Str)
	}
	return fmt.Errorf("%w %q", ErrUnknownHostname, hostname)
}
