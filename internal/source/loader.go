// Package source discovers scenario files on disk and projects them in bulk.
package source

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/buyrent/internal/config"
	"github.com/theirongolddev/buyrent/internal/model"
	"github.com/theirongolddev/buyrent/internal/projection"
)

// LoadResult holds the output of loading a scenario directory.
// Entries and FileErrors keep the scan order.
type LoadResult struct {
	Entries    []Entry
	FileErrors []FileError
	TotalFiles int
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// LoadAll discovers every scenario file under dir, decodes each on top of
// base and projects it. A broken file is recorded in FileErrors rather than
// aborting the batch.
func LoadAll(dir string, base model.Parameters, progressFn ProgressFunc) (*LoadResult, error) {
	files, err := ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	result := &LoadResult{TotalFiles: len(files)}
	if len(files) == 0 {
		return result, nil
	}

	// Parallel projection with bounded worker pool
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	type outcome struct {
		res model.Result
		err error
	}

	work := make(chan int, len(files))
	results := make([]outcome, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				res, err := loadOne(files[idx], base)
				results[idx] = outcome{res: res, err: err}
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(files))
				}
			}
		}()
	}

	wg.Wait()

	for i, o := range results {
		if o.err != nil {
			result.FileErrors = append(result.FileErrors, FileError{File: files[i], Err: o.err})
			continue
		}
		result.Entries = append(result.Entries, Entry{File: files[i], Result: o.res})
	}

	return result, nil
}

func loadOne(f ScenarioFile, base model.Parameters) (model.Result, error) {
	p, err := config.LoadScenarioFile(f.Path, base)
	if err != nil {
		return model.Result{}, err
	}
	return projection.Project(p)
}
