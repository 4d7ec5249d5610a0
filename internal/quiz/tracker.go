package quiz

// IsComplete сообщает, отвечены ли все вопросы сессии.
func IsComplete(s *Session) bool {
	_, _, complete := s.snapshot()
	return complete
}

// Score считает правильные ответы по текущему состоянию сессии.
// Можно вызывать до завершения: Total всегда равен числу вопросов.
func Score(s *Session) Tally {
	score, _, _ := s.snapshot()
	return score
}

// snapshot возвращает счёт, номер попытки и завершённость за одну блокировку.
func (s *Session) snapshot() (score Tally, attempt uint64, complete bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	score = Tally{Total: len(s.questions)}
	for _, rec := range s.answers {
		if rec.Correct {
			score.Correct++
		}
	}

	return score, s.attempt, len(s.answers) == len(s.questions)
}
