// Package page holds the per-visit state of one admin page: the parallel
// reference-data load at mount, the in-memory collections, and the
// optimistic patches applied after successful mutations.
package page

import (
	"context"
	"sync"
	"time"

	"github.com/fajrulhm/perpus-admin/log"
	"go.uber.org/zap"
)

// Task is one collection fetch of a page load.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Load fans the tasks out on goroutines and waits for all of them. The
// first error wins and is returned after every task settles, so no task is
// still writing when Load returns. A cancelled context surfaces as its
// ctx.Err. Partial failure is total failure: the page renders one generic
// error, never a subset of collections.
func Load(ctx context.Context, tasks ...Task) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	start := time.Now()
	for _, task := range tasks {
		wg.Add(1)
		go func(task Task) {
			defer wg.Done()
			if err := task.Run(ctx); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				log.Warn("Page load task failed",
					zap.String("task", task.Name),
					zap.Error(err))
			}
		}(task)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if firstErr != nil {
		return firstErr
	}

	log.Debug("Page load settled",
		zap.Int("tasks", len(tasks)),
		zap.Duration("duration", time.Since(start)))
	return nil
}
