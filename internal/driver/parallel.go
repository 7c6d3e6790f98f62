package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"dndml/internal/diag"
	"dndml/internal/observ"
	"dndml/internal/sheet"
	"dndml/internal/source"
)

// SheetExt is the extension ParseDir collects.
const SheetExt = ".dnd"

// ParseDirResult is the outcome for one file of ParseDir.
type ParseDirResult struct {
	Path   string
	FileID source.FileID
	Doc    *sheet.Document
	Err    error
	Bag    *diag.Bag
	Cached bool
	Timing observ.Report
}

// ListSheetFiles returns every *.dnd file under dir, sorted.
func ListSheetFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SheetExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every sheet under dir on a bounded worker pool. Results
// follow ListSheetFiles order regardless of completion order. Files that fail
// to load get an IO4001 diagnostic instead of aborting the run; only context
// cancellation returns an error.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	files, err := ListSheetFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet is not safe for concurrent writes; load up front, read in workers.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			// an empty stand-in gives the load diagnostic a path to point at
			loadErrors[path] = err
			fileID = fileSet.AddVirtual(path, nil)
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	log := dLogger.WithField("dir", dir)
	log.WithField("files", len(files)).WithField("jobs", jobs).Debug("parsing directory")

	// each worker owns results[i]
	results := make([]ParseDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			started := time.Now()
			bag := opts.newBag()

			fileID := fileIDs[path]
			if loadErr, failed := loadErrors[path]; failed {
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileID}, "failed to load file: "+loadErr.Error()))
				results[i] = ParseDirResult{Path: path, FileID: fileID, Err: loadErr, Bag: bag}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr, Elapsed: time.Since(started)})
				return nil
			}

			emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
			res := parseFile(fileSet, fileSet.Get(fileID), opts, bag, observ.NewTimer())
			results[i] = ParseDirResult{
				Path:   path,
				FileID: fileID,
				Doc:    res.Doc,
				Err:    res.Err,
				Bag:    res.Bag,
				Cached: res.Cached,
				Timing: res.Timing,
			}

			status := StatusDone
			if res.Err != nil {
				status = StatusError
			}
			emit(opts.Progress, Event{File: path, Stage: StageParse, Status: status, Err: res.Err, Elapsed: time.Since(started)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
