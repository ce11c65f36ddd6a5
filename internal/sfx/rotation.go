package sfx

import (
	"context"
	"log"
	"time"
)

const rotationPollInterval = time.Second

// RunRotation is the ambience rotation worker. It polls once per second and
// swaps each active loop channel to a different pool member when its
// rotation period elapses. Errors are contained per iteration; the worker
// runs until ctx is cancelled.
func (m *Manager) RunRotation(ctx context.Context) {
	ticker := time.NewTicker(rotationPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.rotateOnce()
		}
	}
}

// rotateOnce performs one rotation poll across all loop channels.
func (m *Manager) rotateOnce() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("sfx: rotation worker panic: %v", r)
		}
	}()

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for channel, loop := range m.loops {
		if loop.active == "" || len(loop.pool) == 0 || now.Before(loop.nextSwap) {
			continue
		}

		next := m.pickSwapLocked(loop)
		if err := m.backend.PlaySFXLoop(next, channel); err != nil {
			// Keep the worker alive; retry on the next period.
			log.Printf("sfx: rotate %s loop: %v", channel, err)
			loop.nextSwap = now.Add(m.cfg.RotationPeriod)
			continue
		}
		loop.active = next
		loop.lastChange = now
		loop.nextSwap = now.Add(m.cfg.RotationPeriod)
		m.notifyLocked("loop", next, channel)
	}
}

// pickSwapLocked draws a random pool member excluding the active file,
// falling back to the full pool when it is the only member.
func (m *Manager) pickSwapLocked(loop *loopChannel) string {
	candidates := make([]string, 0, len(loop.pool))
	for _, path := range loop.pool {
		if path != loop.active {
			candidates = append(candidates, path)
		}
	}
	if len(candidates) == 0 {
		candidates = loop.pool
	}
	return candidates[m.rng.Intn(len(candidates))]
}
