package renderer

import (
	"runtime"
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RowTask represents a row rendering task for the worker pool
type RowTask struct {
	Row int
}

// RowResult contains the averaged colors of one rendered row
type RowResult struct {
	Row    int
	Colors []core.Vec3
}

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   <-chan RowTask
	resultQueue chan<- RowResult
	stopChan    <-chan struct{}
}

// NewWorkerPool creates a worker pool for an image of maxRows rows.
// numWorkers <= 0 uses one worker per CPU.
func NewWorkerPool(raytracer *Raytracer, numWorkers, maxRows int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	// Queues hold every row so neither submitting nor reporting ever blocks
	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, maxRows),
		resultQueue: make(chan RowResult, maxRows),
		numWorkers:  numWorkers,
		stopChan:    make(chan struct{}),
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   raytracer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
			stopChan:    wp.stopChan,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult blocks until a rendered row is available
func (wp *WorkerPool) GetResult() RowResult {
	return <-wp.resultQueue
}

// Stop waits for the workers to drain the task queue and exit
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		close(wp.taskQueue)
	})
	wp.wg.Wait()
}

// Abort makes workers exit after their current row, dropping queued tasks
func (wp *WorkerPool) Abort() {
	close(wp.stopChan)
	wp.Stop()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case task, ok := <-w.taskQueue:
			if !ok {
				return
			}
			w.resultQueue <- RowResult{
				Row:    task.Row,
				Colors: w.raytracer.renderRow(task.Row),
			}
		}
	}
}
