package milkrun

// TimedEffect is a countdown-backed status flag.
// It is active exactly while Remaining is positive.
type TimedEffect struct {
	Remaining float64 // ms
	Duration  float64 // ms, as last started
}

// Start (re)starts the effect for ms milliseconds.
func (e *TimedEffect) Start(ms float64) {
	if ms <= 0 {
		e.Clear()
		return
	}
	e.Remaining = ms
	e.Duration = ms
}

// Active reports whether the effect is running.
func (e TimedEffect) Active() bool {
	return e.Remaining > 0
}

// Tick advances the countdown by dt and reports whether the effect
// expired during this call.
func (e *TimedEffect) Tick(dt float64) bool {
	if e.Remaining <= 0 {
		return false
	}
	e.Remaining -= dt
	if e.Remaining <= 0 {
		e.Remaining = 0
		return true
	}
	return false
}

// Clear stops the effect immediately.
func (e *TimedEffect) Clear() {
	e.Remaining = 0
}

// Fraction returns the remaining share of the duration in [0,1].
func (e TimedEffect) Fraction() float64 {
	if e.Duration <= 0 || e.Remaining <= 0 {
		return 0
	}
	return e.Remaining / e.Duration
}
