package repostatus

import (
	"context"
	"runtime"
	"sync"
	"time"
)

const (
	workerCountMultiplierConstant = 4
	maximumWorkerCountConstant    = 32
	minimumWorkerCountConstant    = 1
	defaultProbeTimeoutConstant   = 60 * time.Second
)

// ConcurrentScanner fans repository probes out across a bounded worker pool.
// Probes are subprocess-bound, so the pool is sized generously relative to
// core count rather than to the number of repositories.
type ConcurrentScanner struct {
	prober       RepositoryProber
	workerCount  int
	probeTimeout time.Duration
}

// NewConcurrentScanner constructs a scanner around the provided prober.
// Non-positive workerCount selects DefaultWorkerCount; non-positive
// probeTimeout selects a 60 second default.
func NewConcurrentScanner(prober RepositoryProber, workerCount int, probeTimeout time.Duration) *ConcurrentScanner {
	if workerCount <= 0 {
		workerCount = DefaultWorkerCount()
	}
	if workerCount > maximumWorkerCountConstant {
		workerCount = maximumWorkerCountConstant
	}
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeoutConstant
	}
	return &ConcurrentScanner{prober: prober, workerCount: workerCount, probeTimeout: probeTimeout}
}

// DefaultWorkerCount derives the pool size from available parallelism.
func DefaultWorkerCount() int {
	workerCount := runtime.GOMAXPROCS(0) * workerCountMultiplierConstant
	if workerCount < minimumWorkerCountConstant {
		return minimumWorkerCountConstant
	}
	if workerCount > maximumWorkerCountConstant {
		return maximumWorkerCountConstant
	}
	return workerCount
}

// Scan probes every path and returns statuses aligned index-for-index with
// repositoryPaths regardless of completion order. Each worker writes only its
// own reserved result index, so no lock guards the result slice. A probe that
// outlives its timeout degrades to an unscannable status via the probe's own
// soft-failure handling.
func (scanner *ConcurrentScanner) Scan(executionContext context.Context, repositoryPaths []string) []RepositoryStatus {
	collectedStatuses := make([]RepositoryStatus, len(repositoryPaths))
	if len(repositoryPaths) == 0 {
		return collectedStatuses
	}

	workerCount := scanner.workerCount
	if workerCount > len(repositoryPaths) {
		workerCount = len(repositoryPaths)
	}

	pendingIndexes := make(chan int)
	var workerWaitGroup sync.WaitGroup

	for workerNumber := 0; workerNumber < workerCount; workerNumber++ {
		workerWaitGroup.Add(1)
		go func() {
			defer workerWaitGroup.Done()
			for repositoryIndex := range pendingIndexes {
				probeContext, cancelProbe := context.WithTimeout(executionContext, scanner.probeTimeout)
				collectedStatuses[repositoryIndex] = scanner.prober.ProbeRepository(probeContext, repositoryPaths[repositoryIndex])
				cancelProbe()
			}
		}()
	}

	for repositoryIndex := range repositoryPaths {
		pendingIndexes <- repositoryIndex
	}
	close(pendingIndexes)
	workerWaitGroup.Wait()

	return collectedStatuses
}
