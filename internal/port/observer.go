package port

import "faq/internal/domain"

// StatusObserver receives engine status changes synchronously.
type StatusObserver interface {
	OnStatus(event domain.StatusEvent)
}

// StatusObserverFunc adapts a function to StatusObserver.
type StatusObserverFunc func(event domain.StatusEvent)

func (f StatusObserverFunc) OnStatus(event domain.StatusEvent) {
	f(event)
}
