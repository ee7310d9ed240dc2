package app

import (
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/session"
)

// forward delivers controller changes to send, in publish order, from a
// goroutine of its own. Publishes can happen on the event loop itself and
// send blocks until the loop reads, so the subscriber only queues.
// The returned func unsubscribes and stops delivery.
func forward(ctrl *session.Controller, send func(tea.Msg)) func() {
	var (
		mu      sync.Mutex
		pending []session.Change
		wake    = make(chan struct{}, 1)
		done    = make(chan struct{})
	)

	unsubscribe := ctrl.Subscribe(func(ch session.Change) {
		mu.Lock()
		pending = append(pending, ch)
		mu.Unlock()
		select {
		case wake <- struct{}{}:
		default:
		}
	})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-wake:
			}
			mu.Lock()
			batch := pending
			pending = nil
			mu.Unlock()
			for _, ch := range batch {
				select {
				case <-done:
					return
				default:
				}
				send(screen.ChangeMsg{Change: ch})
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			close(done)
		})
	}
}
