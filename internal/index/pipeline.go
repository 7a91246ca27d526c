// Package index builds the "# Scripts" README table from script docstrings.
package index

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one Run. Each value has its own exit code.
type Result int

const (
	NoModification Result = iota
	ModifiedDocument
	NoSourceFiles
	FailedParsingFile
	FailedToWriteDocument
	InvalidLinkFields
)

var resultNames = [...]string{
	NoModification:        "NoModification",
	ModifiedDocument:      "ModifiedDocument",
	NoSourceFiles:         "NoSourceFiles",
	FailedParsingFile:     "FailedParsingFile",
	FailedToWriteDocument: "FailedToWriteDocument",
	InvalidLinkFields:     "InvalidLinkFields",
}

func (r Result) String() string {
	if r < 0 || int(r) >= len(resultNames) {
		return fmt.Sprintf("Result(%d)", int(r))
	}
	return resultNames[r]
}

// ExitCode is the process status reported for r.
func (r Result) ExitCode() int { return int(r) }

// ErrNoSourceFiles is returned with NoSourceFiles.
var ErrNoSourceFiles = errors.New("no source files found")

// Options configures Run.
type Options struct {
	// Root is the directory searched for source files.
	Root string
	// Document is the README the table is merged into.
	Document string
	Fields   FieldSpec
	// Workers bounds parallel extraction; zero means GOMAXPROCS.
	Workers int
	Logger  *slog.Logger
}

// Run regenerates the managed section of opts.Document from the docstrings
// under opts.Root. The error is nil for NoModification and ModifiedDocument
// and describes the failure otherwise. The document is written at most once,
// and only when its contents change.
func Run(fsys FileSystem, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := opts.Fields.Validate(); err != nil {
		return InvalidLinkFields, err
	}

	if err := CheckDocumentPath(opts.Document); err != nil {
		return FailedParsingFile, err
	}
	document, err := fsys.ReadFile(opts.Document)
	if err != nil {
		return FailedParsingFile, fmt.Errorf("read %s: %w", opts.Document, err)
	}

	paths, err := fsys.ListCandidateFiles(opts.Root)
	if err != nil {
		return NoSourceFiles, fmt.Errorf("%w under %s: %w", ErrNoSourceFiles, opts.Root, err)
	}
	if len(paths) == 0 {
		return NoSourceFiles, fmt.Errorf("%w under %s", ErrNoSourceFiles, opts.Root)
	}
	logger.Debug("discovered source files", "root", opts.Root, "count", len(paths))

	docs := extractDocInfos(fsys, paths, opts.Fields, opts.Workers, logger)
	SortDocInfos(docs)

	updated := Merge(document, RenderTable(opts.Fields, docs))
	if updated == document {
		logger.Debug("document up to date", "path", opts.Document, "rows", len(docs))
		return NoModification, nil
	}
	if err := fsys.WriteFile(opts.Document, updated); err != nil {
		return FailedToWriteDocument, fmt.Errorf("write %s: %w", opts.Document, err)
	}
	logger.Debug("document updated", "path", opts.Document, "rows", len(docs))
	return ModifiedDocument, nil
}

// extractDocInfos reads and parses every path in parallel. Each worker owns
// one slot of the result slice; files that cannot be read leave theirs empty
// and are dropped after the join.
func extractDocInfos(fsys FileSystem, paths []string, spec FieldSpec, workers int, logger *slog.Logger) []DocInfo {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	slots := make([]*DocInfo, len(paths))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			src, err := fsys.ReadFile(path)
			if err != nil {
				logger.Debug("skipping unreadable file", "path", path, "err", err)
				return nil
			}
			slots[i] = &DocInfo{
				Path:   path,
				Fields: ParseFields(ExtractDocstring(src), spec),
			}
			return nil
		})
	}
	_ = g.Wait()

	docs := make([]DocInfo, 0, len(slots))
	for _, doc := range slots {
		if doc != nil {
			docs = append(docs, *doc)
		}
	}
	return docs
}
