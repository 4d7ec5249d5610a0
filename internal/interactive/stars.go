// Package interactive содержит состояние виджетов страницы без отрисовки.
package interactive

import (
	"fmt"
	"sort"
	"sync"
)

// Level — уровень сна со скрытым описанием продолжительности.
type Level struct {
	ID       string
	Duration string
}

// StarPanel хранит, какие описания уровней раскрыты.
type StarPanel struct {
	levels   map[string]Level
	revealed map[string]bool
	mu       sync.Mutex
}

// NewStarPanel создаёт панель, все уровни скрыты.
func NewStarPanel(levels ...Level) *StarPanel {
	p := &StarPanel{
		levels:   make(map[string]Level, len(levels)),
		revealed: make(map[string]bool, len(levels)),
	}
	for _, l := range levels {
		p.levels[l.ID] = l
	}

	return p
}

// DefaultStarPanel возвращает уровни сна с сайта.
func DefaultStarPanel() *StarPanel {
	return NewStarPanel(
		Level{ID: "1", Duration: "NREM 1: de 1 a 7 minutos"},
		Level{ID: "2", Duration: "NREM 2: de 10 a 25 minutos"},
		Level{ID: "3", Duration: "NREM 3: de 20 a 40 minutos"},
		Level{ID: "4", Duration: "REM: de 10 a 60 minutos"},
	)
}

// Toggle раскрывает или скрывает описание уровня.
// При раскрытии возвращает текст для объявления.
func (p *StarPanel) Toggle(levelID string) (revealed bool, announcement string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	level, ok := p.levels[levelID]
	if !ok {
		return false, "", fmt.Errorf("unknown sleep level %q", levelID)
	}

	revealed = !p.revealed[levelID]
	p.revealed[levelID] = revealed
	if revealed {
		announcement = level.Duration
	}

	return revealed, announcement, nil
}

// Revealed сообщает, раскрыт ли уровень.
func (p *StarPanel) Revealed(levelID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.revealed[levelID]
}

// Levels возвращает ID уровней по возрастанию.
func (p *StarPanel) Levels() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	ids := make([]string, 0, len(p.levels))
	for id := range p.levels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}
