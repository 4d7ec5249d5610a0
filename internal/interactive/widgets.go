package interactive

import "strings"

// EyeState — состояние иллюстрации глаза.
type EyeState string

const (
	EyeAwake  EyeState = "awake"
	EyeAsleep EyeState = "asleep"
)

// Illustration — иллюстрация с двумя состояниями, по умолчанию бодрствование.
type Illustration struct {
	state EyeState
}

// NewIllustration создаёт иллюстрацию в состоянии EyeAwake.
func NewIllustration() *Illustration {
	return &Illustration{state: EyeAwake}
}

// Sleep переводит в состояние сна, возвращает true, если состояние изменилось.
func (i *Illustration) Sleep() bool {
	return i.set(EyeAsleep)
}

// Wake возвращает в состояние бодрствования.
func (i *Illustration) Wake() bool {
	return i.set(EyeAwake)
}

// Toggle переключает состояние и возвращает новое.
func (i *Illustration) Toggle() EyeState {
	if i.state == EyeAsleep {
		i.set(EyeAwake)
	} else {
		i.set(EyeAsleep)
	}

	return i.state
}

// State возвращает текущее состояние.
func (i *Illustration) State() EyeState {
	return i.state
}

func (i *Illustration) set(s EyeState) bool {
	changed := i.state != s
	i.state = s

	return changed
}

// MobileBreakpoint — ширина, до которой меню считается мобильным.
const MobileBreakpoint = 768

// Sections — разделы страницы в порядке меню.
var Sections = []string{"inicio", "fases", "ciclos", "quiz", "diario"}

// IsSection сообщает, есть ли раздел в меню.
func IsSection(section string) bool {
	for _, s := range Sections {
		if s == section {
			return true
		}
	}

	return false
}

// NavMenu — мобильное меню и активный раздел.
type NavMenu struct {
	open   bool
	active string
}

// Toggle открывает или закрывает меню и возвращает новое состояние.
func (m *NavMenu) Toggle() bool {
	m.open = !m.open
	return m.open
}

// Open сообщает, открыто ли меню.
func (m *NavMenu) Open() bool {
	return m.open
}

// Follow обрабатывает переход по ссылке меню в раздел section.
func (m *NavMenu) Follow(section string, width int) {
	m.active = section
	m.closeOnMobile(width)
}

// Scroll закрывает меню при прокрутке на мобильной ширине.
func (m *NavMenu) Scroll(width int) {
	m.closeOnMobile(width)
}

// SetActive отмечает раздел, видимый на экране.
func (m *NavMenu) SetActive(section string) {
	m.active = section
}

// Active возвращает активный раздел.
func (m *NavMenu) Active() string {
	return m.active
}

func (m *NavMenu) closeOnMobile(width int) {
	if width <= MobileBreakpoint {
		m.open = false
	}
}

// CycleAnimation — анимация диаграммы циклов сна, по умолчанию запущена.
type CycleAnimation struct {
	paused bool
}

// Toggle ставит анимацию на паузу или запускает её, возвращает true, если она идёт.
func (a *CycleAnimation) Toggle() bool {
	a.paused = !a.paused
	return !a.paused
}

// Playing сообщает, идёт ли анимация.
func (a *CycleAnimation) Playing() bool {
	return !a.paused
}

// KonamiSequence — последовательность клавиш пасхалки.
var KonamiSequence = []string{
	"ArrowUp", "ArrowUp", "ArrowDown", "ArrowDown",
	"ArrowLeft", "ArrowRight", "ArrowLeft", "ArrowRight",
	"b", "a",
}

// Konami отслеживает последние нажатия и узнаёт KonamiSequence.
type Konami struct {
	keys []string
}

// Push добавляет клавишу и возвращает true, если последовательность набрана.
// После срабатывания история очищается.
func (k *Konami) Push(key string) bool {
	k.keys = append(k.keys, key)
	if len(k.keys) > len(KonamiSequence) {
		k.keys = k.keys[len(k.keys)-len(KonamiSequence):]
	}

	if strings.Join(k.keys, ",") != strings.Join(KonamiSequence, ",") {
		return false
	}

	k.keys = nil

	return true
}
