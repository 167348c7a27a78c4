package textmatch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	assert.True(t, Contains("", "anything"))
	assert.True(t, Contains("eng", "Alex", "Engineering"))
	assert.True(t, Contains("STRASSE", "Hauptstraße"))
	assert.False(t, Contains("sales", "Alex", "Engineering"))
	assert.False(t, Contains("x"))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(" HR ", "hr"))
	assert.False(t, Equal("hr", "h r"))
}

func TestFoldIsSafeAcrossGoroutines(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				assert.True(t, Contains("STRASSE", "Hauptstraße"))
				assert.Equal(t, "engineering", Fold(" Engineering "))
			}
		}()
	}
	wg.Wait()
}
