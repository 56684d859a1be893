package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wildreach/sim/internal/component"
)

func TestTimeSystemAdvancesClock(t *testing.T) {
	st := newTestState()
	ts := NewTimeSystem(st)

	// Default day length 600s: one real second is 0.04 game hours.
	ts.Update(time.Second)
	assert.Equal(t, uint64(1), st.Tick)
	assert.InDelta(t, 8.04, st.Time().Hour, 1e-9)
	assert.InDelta(t, 1.0, st.Clock, 1e-9)
}

func TestTimeSystemWrapsDay(t *testing.T) {
	st := newTestState()
	st.Time().Hour = 23.9
	st.Time().AdvanceHours(0)

	ts := NewTimeSystem(st)
	// 5 real seconds = 0.2 game hours, crossing midnight.
	ts.Update(5 * time.Second)
	assert.InDelta(t, 0.1, st.Time().Hour, 1e-9)
	assert.Equal(t, component.PhaseNight, st.Time().Phase)
}
