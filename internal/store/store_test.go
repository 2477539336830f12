package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetNotifiesWithPrevious(t *testing.T) {
	s := New(1)
	var got [][2]int
	s.Subscribe(func(cur, prev int) { got = append(got, [2]int{cur, prev}) })

	s.Set(2)
	s.Update(func(v int) int { return v * 10 })

	assert.Equal(t, 20, s.Get())
	assert.Equal(t, [][2]int{{2, 1}, {20, 2}}, got)
}

func TestUnsubscribe(t *testing.T) {
	s := New("a")
	calls := 0
	unsub := s.Subscribe(func(string, string) { calls++ })

	s.Set("b")
	unsub()
	unsub()
	s.Set("c")

	assert.Equal(t, 1, calls)
}

func TestListenersRunInSubscriptionOrder(t *testing.T) {
	s := New(0)
	var order []string
	s.Subscribe(func(int, int) { order = append(order, "first") })
	unsub := s.Subscribe(func(int, int) { order = append(order, "second") })
	s.Subscribe(func(int, int) { order = append(order, "third") })
	unsub()

	s.Set(1)
	assert.Equal(t, []string{"first", "third"}, order)
}

func TestUnsubscribeDuringNotify(t *testing.T) {
	s := New(0)
	calls := 0
	var unsub func()
	unsub = s.Subscribe(func(int, int) {
		calls++
		unsub()
	})

	s.Set(1)
	s.Set(2)
	assert.Equal(t, 1, calls)
}
