package pixelsmash

// Intent is an edge-triggered request from the player. Intents are queued
// by Send and applied at the start of the next Tick.
type Intent int

const (
	IntentLaunch      Intent = iota + 1 // Start a match from the title screen
	IntentTogglePause                   // Pause or resume a running match
	IntentRestart                       // Return to the title screen after game over

	// intentStartBalls is posted by the level-clear timer.
	intentStartBalls
)

// String returns the intent name.
func (i Intent) String() string {
	switch i {
	case IntentLaunch:
		return "launch"
	case IntentTogglePause:
		return "toggle_pause"
	case IntentRestart:
		return "restart"
	case intentStartBalls:
		return "start_balls"
	default:
		return "unknown"
	}
}

// queuedIntent is an intent tagged with the epoch it was issued in.
// Only deferred intents check the tag.
type queuedIntent struct {
	intent Intent
	epoch  uint64
}

// Send queues an intent for the next tick. Safe for concurrent use.
// Intents sent after Close are dropped.
func (m *Manager) Send(i Intent) {
	if i == intentStartBalls {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.queue = append(m.queue, queuedIntent{intent: i, epoch: m.epoch})
}

// post queues a deferred intent issued in the given epoch.
func (m *Manager) post(i Intent, epoch uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.queue = append(m.queue, queuedIntent{intent: i, epoch: epoch})
}

// drain takes every queued intent.
func (m *Manager) drain() (intents []queuedIntent, closed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	intents, m.queue = m.queue, nil
	return intents, m.closed
}

// currentEpoch returns the epoch deferred intents must match.
func (m *Manager) currentEpoch() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch
}

// cancelDeferred invalidates pending deferred intents and stops the timer.
// It returns the new epoch.
func (m *Manager) cancelDeferred() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	return m.epoch
}
