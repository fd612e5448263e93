// internal/client/animation/manager.go
package animation

import (
	"math"
	"sync"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/obrien-tchaleu/crossludo/internal/shared/models"
)

// Manager interpole le déplacement du pion actif entre deux cases
type Manager struct {
	layout   Layout
	speed    float32
	tweenX   *gween.Tween
	tweenY   *gween.Tween
	x, y     float32
	active   bool
	onFinish []func()
	mu       sync.RWMutex
}

// NewManager crée un gestionnaire d'animation ; speed est en pixels par seconde,
// 0 rend les transitions instantanées
func NewManager(layout Layout, speed float32) *Manager {
	return &Manager{
		layout: layout,
		speed:  speed,
	}
}

// OnFinish enregistre une fonction appelée à la fin de chaque transition
func (m *Manager) OnFinish(f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onFinish = append(m.onFinish, f)
}

// Start lance une transition de from vers to
func (m *Manager) Start(from, to models.Position) {
	m.mu.Lock()
	defer m.mu.Unlock()

	x0, y0 := m.layout.CenterOf(from)
	x1, y1 := m.layout.CenterOf(to)
	m.x, m.y = x0, y0
	m.active = true

	dist := float32(math.Hypot(float64(x1-x0), float64(y1-y0)))
	if m.speed <= 0 || dist == 0 {
		// pas de transition visible : terminée au prochain Update
		m.tweenX, m.tweenY = nil, nil
		m.x, m.y = x1, y1
		return
	}

	duration := dist / m.speed
	m.tweenX = gween.New(x0, x1, duration, ease.Linear)
	m.tweenY = gween.New(y0, y1, duration, ease.Linear)
}

// Update avance la transition de dt secondes ; retourne true quand elle se termine
func (m *Manager) Update(dt float32) bool {
	m.mu.Lock()
	if !m.active {
		m.mu.Unlock()
		return false
	}

	finished := true
	if m.tweenX != nil {
		var doneX, doneY bool
		m.x, doneX = m.tweenX.Update(dt)
		m.y, doneY = m.tweenY.Update(dt)
		finished = doneX && doneY
	}
	if !finished {
		m.mu.Unlock()
		return false
	}

	m.active = false
	m.tweenX, m.tweenY = nil, nil
	callbacks := append([]func(){}, m.onFinish...)
	m.mu.Unlock()

	for _, f := range callbacks {
		f()
	}
	return true
}

// Position retourne les coordonnées écran actuelles du pion animé
func (m *Manager) Position() (x, y float32) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.x, m.y
}

// IsActive indique si une transition est en cours
func (m *Manager) IsActive() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}
