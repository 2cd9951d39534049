package encounter

import "fmt"

// enqueueTrigger appends a trigger record to the FIFO queue.
func (w *World) enqueueTrigger(kind string, payload map[string]any) {
	w.triggers = append(w.triggers, Trigger{Kind: kind, Payload: payload})
}

// PendingTriggers returns a copy of the queued reaction triggers in FIFO
// order without consuming them.
func (w *World) PendingTriggers() []Trigger {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Trigger, len(w.triggers))
	copy(out, w.triggers)
	return out
}

// PopTrigger dequeues the oldest pending trigger. Resolving the trigger is
// the caller's responsibility; the engine only records the opportunity.
func (w *World) PopTrigger() Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.triggers) == 0 {
		return failure(ErrNotFound, nil, "no pending triggers")
	}
	tr := w.triggers[0]
	w.triggers = w.triggers[1:]
	return success(map[string]any{
		"kind":    tr.Kind,
		"payload": tr.Payload,
	}, fmt.Sprintf("trigger: %s", tr.Kind))
}
