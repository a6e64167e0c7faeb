package memo

import (
	"math/rand"
	"runtime"
	"sync"
	"testing"
	"time"
)

// A mixed workload of concurrent GetOrCompute/Stats/Clear over a keyspace
// larger than capacity. Should pass under `-race` without detector reports,
// and the capacity invariant must hold at every observation point.
func TestRace_MixedWorkload(t *testing.T) {
	const capN = 512
	c := New[int, int](Options[int, int]{Maxsize: capN})

	workers := 4 * runtime.GOMAXPROCS(0)
	keyspace := 4_096
	deadline := time.Now().Add(2 * time.Second)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)*9973))
			for time.Now().Before(deadline) {
				switch k := r.Intn(keyspace); r.Intn(100) {
				case 0: // ~1% — Clear
					c.Clear()
				case 1, 2, 3, 4, 5: // ~5% — Stats
					if st := c.Stats(); st.CurrSize > capN {
						t.Errorf("size %d exceeds maxsize %d", st.CurrSize, capN)
						return
					}
				default: // ~94% — GetOrCompute
					v, err := c.GetOrCompute(k, func() (int, error) { return k * 3, nil })
					if err != nil || v != k*3 {
						t.Errorf("key %d: v=%d err=%v", k, v, err)
						return
					}
				}
			}
		}(w)
	}
	wg.Wait()
}

// The unbounded and disabled modes under the same concurrent hammering.
func TestRace_OtherModes(t *testing.T) {
	for _, maxsize := range []int{Unbounded, Disabled} {
		c := New[int, int](Options[int, int]{Maxsize: maxsize})

		workers := 2 * runtime.GOMAXPROCS(0)
		deadline := time.Now().Add(time.Second)

		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func(id int) {
				defer wg.Done()
				r := rand.New(rand.NewSource(int64(id) + 1))
				for time.Now().Before(deadline) {
					k := r.Intn(1_000)
					if v, err := c.GetOrCompute(k, func() (int, error) { return k, nil }); err != nil || v != k {
						t.Errorf("key %d: v=%d err=%v", k, v, err)
						return
					}
					if r.Intn(200) == 0 {
						c.Clear()
					}
				}
			}(w)
		}
		wg.Wait()
	}
}
