package realtime_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmanMishra107/sweet-artisan-bakery/realtime"
)

type capture struct {
	mu      sync.Mutex
	batches [][]realtime.Event
}

func (c *capture) flush(events []realtime.Event) {
	c.mu.Lock()
	c.batches = append(c.batches, events)
	c.mu.Unlock()
}

func (c *capture) all() [][]realtime.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]realtime.Event(nil), c.batches...)
}

func TestDebouncerCoalescesBurst(t *testing.T) {
	var got capture
	d := realtime.NewDebouncer(time.Hour, got.flush)

	d.Notify("products", "insert")
	d.Notify("products", "insert")
	d.Notify("products", "insert")
	d.Flush()

	batches := got.all()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 1)
	assert.Equal(t, realtime.Event{Table: "products", Action: "insert"}, batches[0][0])
}

func TestDebouncerMixedActionsBecomeChanged(t *testing.T) {
	var got capture
	d := realtime.NewDebouncer(time.Hour, got.flush)

	d.Notify("products", "insert")
	d.Notify("products", "delete")
	d.Flush()

	batches := got.all()
	require.Len(t, batches, 1)
	assert.Equal(t, "changed", batches[0][0].Action)
}

func TestDebouncerSeparatesTables(t *testing.T) {
	var got capture
	d := realtime.NewDebouncer(time.Hour, got.flush)

	d.Notify("products", "update")
	d.Notify("orders", "insert")
	d.Flush()

	batches := got.all()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 2)

	byTable := map[string]string{}
	for _, ev := range batches[0] {
		byTable[ev.Table] = ev.Action
	}
	assert.Equal(t, "update", byTable["products"])
	assert.Equal(t, "insert", byTable["orders"])
}

func TestDebouncerFiresAfterDelay(t *testing.T) {
	var got capture
	d := realtime.NewDebouncer(10*time.Millisecond, got.flush)

	d.Notify("orders", "insert")

	assert.Eventually(t, func() bool {
		return len(got.all()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestFlushWithNothingPendingIsQuiet(t *testing.T) {
	var got capture
	d := realtime.NewDebouncer(time.Hour, got.flush)
	d.Flush()
	assert.Empty(t, got.all())
}
