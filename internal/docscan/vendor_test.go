package docscan

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_FirstMatchWins(t *testing.T) {
	r := NewRegistry()
	r.Register(&Ruleset{Name: "Første AS", Signature: "BUTIKK"})
	r.Register(&Ruleset{Name: "Andre AS", Signature: "BUTIKKEN"})

	rs := r.Match("BUTIKKEN I GATA\n")
	require.NotNil(t, rs)
	assert.Equal(t, "Første AS", rs.Name)
}

func TestRegistry_NoMatch(t *testing.T) {
	assert.Nil(t, NewRegistry().Match("hva som helst"))
}

func TestRegistry_Names(t *testing.T) {
	r := DefaultRegistry()
	names := r.Names()
	assert.Contains(t, names, "KIWI HATLANE")
	assert.Contains(t, names, "Best Emballasje AS")
}

func TestRegistry_ConcurrentReadsDuringRegistration(t *testing.T) {
	r := DefaultRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				r.Match("KIWI HATLANE\nSalgskvittering\n")
			}
		}()
	}
	for i := 0; i < 100; i++ {
		r.Register(&Ruleset{Name: "Ny AS", Signature: "NY"})
	}
	wg.Wait()
}
