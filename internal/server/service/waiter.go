package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// WaitTimeout is the maximum time a client can wait for notifications
const WaitTimeout = 25 * time.Second

// WaitRegistry manages long-polling clients waiting for game events
type WaitRegistry struct {
	mu       sync.Mutex
	waiters  map[string][]*WaitRequest // gameID → waiting clients
	shutdown chan struct{}
	closed   bool
	wg       sync.WaitGroup
	timeout  time.Duration
}

// WaitRequest is a single client waiting for a game to move past Version.
// Done is closed exactly once: on change, timeout, game removal, client
// disconnect or shutdown.
type WaitRequest struct {
	Version int
	Done    chan struct{}
	once    sync.Once
}

func (r *WaitRequest) wake() {
	r.once.Do(func() { close(r.Done) })
}

// NewWaitRegistry creates a new wait registry
func NewWaitRegistry() *WaitRegistry {
	return &WaitRegistry{
		waiters:  make(map[string][]*WaitRequest),
		shutdown: make(chan struct{}),
		timeout:  WaitTimeout,
	}
}

// RegisterWait returns a channel that is closed once the game's version
// differs from version, or the wait ends for any other reason
func (w *WaitRegistry) RegisterWait(ctx context.Context, gameID string, version int) <-chan struct{} {
	req := &WaitRequest{
		Version: version,
		Done:    make(chan struct{}),
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		req.wake()
		return req.Done
	}
	w.waiters[gameID] = append(w.waiters[gameID], req)
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		timer := time.NewTimer(w.timeout)
		defer timer.Stop()

		select {
		case <-ctx.Done():
		case <-timer.C:
		case <-req.Done:
		case <-w.shutdown:
		}
		req.wake()
		w.removeWaiter(gameID, req)
	}()

	return req.Done
}

// NotifyGame wakes every waiter whose known version differs from version
func (w *WaitRegistry) NotifyGame(gameID string, version int) {
	w.mu.Lock()
	waitList := append([]*WaitRequest(nil), w.waiters[gameID]...)
	w.mu.Unlock()

	for _, req := range waitList {
		if req.Version != version {
			req.wake()
		}
	}
}

// RemoveGame wakes and forgets all waiters for a game
func (w *WaitRegistry) RemoveGame(gameID string) {
	w.mu.Lock()
	waitList := w.waiters[gameID]
	delete(w.waiters, gameID)
	w.mu.Unlock()

	for _, req := range waitList {
		req.wake()
	}
}

// Waiting returns the number of clients waiting on a game
func (w *WaitRegistry) Waiting(gameID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.waiters[gameID])
}

// Shutdown wakes every waiter and waits for their goroutines to finish
func (w *WaitRegistry) Shutdown(timeout time.Duration) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.shutdown)
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("wait registry shutdown timed out after %s", timeout)
	}
}

// removeWaiter removes a specific waiter from the registry
func (w *WaitRegistry) removeWaiter(gameID string, req *WaitRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()

	waitList := w.waiters[gameID]
	for i, waiter := range waitList {
		if waiter == req {
			w.waiters[gameID] = append(waitList[:i], waitList[i+1:]...)
			break
		}
	}

	if len(w.waiters[gameID]) == 0 {
		delete(w.waiters, gameID)
	}
}
