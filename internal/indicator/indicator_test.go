package indicator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/murmurapp/murmur/internal/config"
	"github.com/murmurapp/murmur/internal/fsm"
)

type notifyCall struct {
	appName   string
	replaceID uint32
	summary   string
	timeoutMS int
}

type fakeBus struct {
	notifies  []notifyCall
	dismissed []uint32
	nextID    uint32
	notifyErr error
}

func newFakeDesktop(cfg config.IndicatorConfig) (*Desktop, *fakeBus) {
	bus := &fakeBus{nextID: 41}
	d := NewDesktop(cfg, nil)
	d.notify = func(_ context.Context, appName string, replaceID uint32, summary string, timeoutMS int) (uint32, error) {
		if bus.notifyErr != nil {
			return 0, bus.notifyErr
		}
		bus.nextID++
		bus.notifies = append(bus.notifies, notifyCall{appName, replaceID, summary, timeoutMS})
		return bus.nextID, nil
	}
	d.dismiss = func(_ context.Context, id uint32) error {
		bus.dismissed = append(bus.dismissed, id)
		return nil
	}
	return d, bus
}

func TestStateChangedPostsAndDismisses(t *testing.T) {
	d, bus := newFakeDesktop(config.IndicatorConfig{Enable: true, AppName: "murmur"})

	d.StateChanged(fsm.StateRecording)
	require.Len(t, bus.notifies, 1)
	require.Equal(t, "Recording…", bus.notifies[0].summary)
	require.Equal(t, "murmur", bus.notifies[0].appName)
	require.Equal(t, uint32(0), bus.notifies[0].replaceID)

	// Processing replaces the recording notification in place.
	d.StateChanged(fsm.StateProcessing)
	require.Len(t, bus.notifies, 2)
	require.Equal(t, uint32(42), bus.notifies[1].replaceID)

	d.StateChanged(fsm.StateIdle)
	require.Equal(t, []uint32{43}, bus.dismissed)

	// Idle again with nothing up is a no-op.
	d.StateChanged(fsm.StateIdle)
	require.Len(t, bus.dismissed, 1)
}

func TestDisabledIndicatorDoesNothing(t *testing.T) {
	d, bus := newFakeDesktop(config.IndicatorConfig{Enable: false})

	d.StateChanged(fsm.StateRecording)
	d.StateChanged(fsm.StateIdle)
	d.FormatModeChanged("ai_prompt")
	require.Empty(t, bus.notifies)
	require.Empty(t, bus.dismissed)
}

func TestFormatModeChangedFlashesMode(t *testing.T) {
	d, bus := newFakeDesktop(config.IndicatorConfig{Enable: true})

	d.FormatModeChanged("professional_email")
	require.Len(t, bus.notifies, 1)
	require.Equal(t, "Format: professional email", bus.notifies[0].summary)
	require.Equal(t, 1200, bus.notifies[0].timeoutMS)
	require.Equal(t, "murmur", bus.notifies[0].appName)
}

func TestNotifyFailureIsSwallowed(t *testing.T) {
	d, bus := newFakeDesktop(config.IndicatorConfig{Enable: true})
	bus.notifyErr = errors.New("bus unavailable")

	d.StateChanged(fsm.StateRecording)
	require.Empty(t, bus.notifies)

	// Failure left no ID behind; idle needs no dismiss.
	d.StateChanged(fsm.StateIdle)
	require.Empty(t, bus.dismissed)
}
