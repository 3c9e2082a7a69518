package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/essience-store/storefront-api/models"
)

func TestDuplicateMessageWithinWindowIsSuppressed(t *testing.T) {
	n := New()

	first := n.ShowFor("Added to cart", models.ToastSuccess, DefaultDuration)
	second := n.ShowFor("Added to cart", models.ToastSuccess, DefaultDuration)

	assert.NotZero(t, first)
	assert.Zero(t, second, "duplicate within 500ms must be dropped")
	assert.Len(t, n.Active(), 1)
}

func TestSameMessageAfterWindowShowsAgain(t *testing.T) {
	n := New()

	n.ShowFor("Order placed", models.ToastSuccess, DefaultDuration)
	time.Sleep(600 * time.Millisecond)
	id := n.ShowFor("Order placed", models.ToastSuccess, DefaultDuration)

	assert.NotZero(t, id)
	assert.Len(t, n.Active(), 2)
}

func TestDifferentMessagesAreNotDeduplicated(t *testing.T) {
	n := New()

	n.Show("Added to cart", models.ToastSuccess)
	n.Show("Removed from wishlist", models.ToastInfo)

	assert.Len(t, n.Active(), 2)
}

func TestAutoDismissAfterDuration(t *testing.T) {
	n := New()

	n.ShowFor("short lived", models.ToastInfo, 50*time.Millisecond)
	require.Len(t, n.Active(), 1)

	time.Sleep(150 * time.Millisecond)
	assert.Empty(t, n.Active())
}

func TestExplicitDismissBeatsTheTimer(t *testing.T) {
	n := New()

	id := n.ShowFor("dismiss me", models.ToastError, DefaultDuration)
	n.Dismiss(id)
	assert.Empty(t, n.Active())

	// The pending expiration firing on the removed id must be harmless.
	n.Dismiss(id)
	assert.Empty(t, n.Active())
}

func TestExpirationsShareOneScheduler(t *testing.T) {
	n := New()

	// Mixed durations out of order; all must expire on their own deadline.
	n.ShowFor("a", models.ToastInfo, 120*time.Millisecond)
	n.ShowFor("b", models.ToastInfo, 40*time.Millisecond)
	n.ShowFor("c", models.ToastInfo, 80*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	active := n.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "a", active[0].Message)
	assert.Equal(t, "c", active[1].Message)

	time.Sleep(120 * time.Millisecond)
	assert.Empty(t, n.Active())
}

func TestSubscribeReceivesShownToasts(t *testing.T) {
	n := New()
	ch, cancel := n.Subscribe()
	defer cancel()

	n.Show("hello", models.ToastSuccess)

	select {
	case toast := <-ch:
		assert.Equal(t, "hello", toast.Message)
		assert.Equal(t, models.ToastSuccess, toast.Kind)
	case <-time.After(time.Second):
		t.Fatal("expected a toast on the subscription channel")
	}
}
