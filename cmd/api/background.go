package main

import (
	"fmt"
	"time"
)

// background runs fn in its own goroutine. A panic is recovered and logged.
// run waits for pending jobs before the process exits.
func (app *application) background(fn func()) {
	app.wg.Add(1)

	go func() {
		defer app.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				app.logger.Errorw("background job panicked", "error", fmt.Sprint(err))
			}
		}()

		fn()
	}()
}

// waitBackground blocks until pending background jobs finish or the timeout
// elapses.
func (app *application) waitBackground(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		app.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
