package quiz

import "sync"

// FeedbackEvent — обратная связь по одному принятому ответу.
// RevealedCorrectOptionID заполняется только при неправильном ответе.
type FeedbackEvent struct {
	QuestionID              string
	Correct                 bool
	RevealedCorrectOptionID string
}

// FeedbackListener получает события обратной связи.
type FeedbackListener func(FeedbackEvent)

// Emitter доставляет FeedbackEvent подписчикам синхронно, в порядке подписки.
type Emitter struct {
	mu        sync.RWMutex
	listeners []FeedbackListener
}

// NewEmitter создаёт новый Emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Subscribe добавляет подписчика.
func (e *Emitter) Subscribe(l FeedbackListener) {
	if l == nil {
		return
	}

	e.mu.Lock()
	e.listeners = append(e.listeners, l)
	e.mu.Unlock()
}

// Emit вызывает всех подписчиков и возвращается после последнего из них.
func (e *Emitter) Emit(event FeedbackEvent) {
	if e == nil {
		return
	}

	e.mu.RLock()
	listeners := append([]FeedbackListener(nil), e.listeners...)
	e.mu.RUnlock()

	for _, l := range listeners {
		l(event)
	}
}
