package trials

import (
	"fmt"
	"sync"

	"github.com/dd0wney/episim/pkg/logging"
)

// workerPool runs trial closures on a fixed set of goroutines. Trials are
// independent, so the pool carries no shared state beyond the queue; a
// panicking trial is logged and the worker keeps serving.
type workerPool struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
	log     logging.Logger
}

func newWorkerPool(workers int, log logging.Logger) *workerPool {
	if workers <= 0 {
		workers = 1
	}
	p := &workerPool{
		workers: workers,
		tasks:   make(chan func(), workers*2),
		log:     log,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *workerPool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.log.Error("trial panicked", logging.String("panic", fmt.Sprintf("%v", r)))
				}
			}()
			task()
		}()
	}
}

// submit enqueues a task; it blocks when the queue is full.
func (p *workerPool) submit(task func()) {
	p.tasks <- task
}

// close stops accepting tasks and waits for the queue to drain.
func (p *workerPool) close() {
	p.once.Do(func() {
		close(p.tasks)
	})
	p.wg.Wait()
}
