package app

// Shutdown releases the components built by Initialize. The transports stop
// with the context passed to Run; backend clients hold no connections that
// outlive a request. Calling Shutdown twice is a no-op.
func (a *App) Shutdown() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.started {
		return nil
	}

	a.server = nil
	a.executor = nil
	a.gateway = nil
	a.verifier = nil
	a.started = false

	a.logger.Info("Application shutdown complete")
	return nil
}
