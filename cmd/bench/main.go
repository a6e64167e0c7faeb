// Command bench runs a synthetic memoization workload and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ayefimov/memofunc/memo"
	pmet "github.com/ayefimov/memofunc/metrics/prom"
)

func main() {
	// ---- Flags ----
	var (
		maxsize   = flag.Int("maxsize", 100_000, "cache maxsize (entries); -1 = unbounded, -2 = disabled")
		typed     = flag.Bool("typed", false, "type-sensitive keys")
		coalesce  = flag.Bool("coalesce", false, "coalesce concurrent misses per key")
		workCost  = flag.Duration("work", 100*time.Microsecond, "simulated computation cost per miss")
		workers   = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration  = flag.Duration("duration", 10*time.Second, "benchmark duration")
		namedPct  = flag.Int("named", 10, "percentage of calls that pass named arguments [0..100]")
		keys      = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS     = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV     = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed      = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		statEvery = flag.Duration("stats", 0, "print cache stats at this interval (0 = only at the end)")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := pmet.New(nil, "memo", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	// ---- Build the memoized function ----
	cost := *workCost
	f := memo.NewFunc(func(pos []any, named map[string]any) (string, error) {
		if cost > 0 {
			time.Sleep(cost) // simulate expensive work
		}
		k := pos[0].(string)
		if scale, ok := named["scale"]; ok {
			return "v:" + k + ":" + strconv.Itoa(scale.(int)), nil
		}
		return "v:" + k, nil
	}, memo.Options[any, string]{
		Maxsize:  *maxsize,
		Typed:    *typed,
		Coalesce: *coalesce,
		Metrics:  metrics,
	})

	// ---- Snapshot flags for goroutines ----
	keysMax := uint64(*keys - 1)
	seedBase := *seed
	zipfSVal := *zipfS
	zipfVVal := *zipfV
	namedPctVal := *namedPct
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	// ---- Periodic stats reporter ----
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()
	if *statEvery > 0 {
		go func() {
			t := time.NewTicker(*statEvery)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					st := f.Stats()
					log.Printf("stats: hits=%d misses=%d currsize=%d", st.Hits, st.Misses, st.CurrSize)
				}
			}
		}()
	}

	// ---- Load generation ----
	var total, errs uint64
	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		go func(id int) {
			defer wg.Done()

			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			localR := rand.New(rand.NewSource(seedBase + int64(id)*9973))
			localZipf := rand.NewZipf(localR, zipfSVal, zipfVVal, keysMax)

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddUint64(&total, 1)
				k := "k:" + strconv.FormatUint(localZipf.Uint64(), 10)

				var err error
				if int(localR.Int31n(100)) < namedPctVal {
					_, err = f.CallNamed([]any{k}, map[string]any{"scale": int(localR.Int31n(4))})
				} else {
					_, err = f.Call(k)
				}
				if err != nil {
					atomic.AddUint64(&errs, 1)
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	ops := atomic.LoadUint64(&total)
	st := f.Stats()
	hitRate := 0.0
	if ops > 0 {
		hitRate = float64(st.Hits) / float64(ops) * 100
	}

	fmt.Printf("maxsize=%d typed=%v coalesce=%v workers=%d keys=%d dur=%v seed=%d\n",
		*maxsize, *typed, *coalesce, workersN, *keys, elapsed, seedBase)
	fmt.Printf("ops=%d (%.0f ops/s)  errors=%d\n",
		ops, float64(ops)/elapsed.Seconds(), atomic.LoadUint64(&errs))
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%  currsize=%d\n",
		st.Hits, st.Misses, hitRate, st.CurrSize)
}
