package basetest

import (
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerGetSetRemove(t *testing.T) {
	l := NewExceptionLedger()

	_, found := l.Get("a")
	assert.False(t, found)

	input := []string{"x", "y"}
	l.Set("a", input)
	input[0] = "changed"

	messages, found := l.Get("a")
	require.True(t, found)
	assert.Equal(t, []string{"x", "y"}, messages)
	messages[1] = "changed"
	again, _ := l.Get("a")
	assert.Equal(t, []string{"x", "y"}, again)

	l.Set("b", nil)
	messages, found = l.Get("b")
	assert.True(t, found)
	assert.Len(t, messages, 0)
	assert.Equal(t, 2, l.Len())

	l.Remove("a")
	l.Remove("not-there")
	_, found = l.Get("a")
	assert.False(t, found)
	assert.Equal(t, 1, l.Len())
}

func TestLedgerAppendIsAtomic(t *testing.T) {
	const names, perName = 4, 200
	l := NewExceptionLedger()

	var wg sync.WaitGroup
	for n := 0; n < names; n++ {
		for i := 0; i < perName; i++ {
			wg.Add(1)
			go func(n, i int) {
				defer wg.Done()
				l.Append(fmt.Sprintf("test%d", n), fmt.Sprintf("%03d", i))
			}(n, i)
		}
	}
	wg.Wait()

	assert.Equal(t, names, l.Len())
	for n := 0; n < names; n++ {
		messages, found := l.Get(fmt.Sprintf("test%d", n))
		require.True(t, found)
		require.Len(t, messages, perName)
		sort.Strings(messages)
		for i, m := range messages {
			assert.Equal(t, fmt.Sprintf("%03d", i), m)
		}
	}
}
