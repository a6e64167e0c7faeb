package memo

// record is one arena slot of the recency ring. Links are arena indices
// rather than pointers, so a record can be relinked or recycled in place
// without touching the allocator.
type record[K comparable, V any] struct {
	key  K
	val  V
	prev int32
	next int32
}

// ring is a circular doubly linked list of records stored in an arena.
// Slot 0 is the sentinel: it never holds a key or value, and both the
// least-recent (sentinel.next) and most-recent (sentinel.prev) ends hang
// off it, so boundary cases need no nil checks.
//
// Invariant: walking next from the sentinel visits records from least- to
// most-recently used; the ring holds exactly as many real records as the
// owning index has entries.
//
// Not goroutine-safe; the owning store serializes access under its guard.
type ring[K comparable, V any] struct {
	recs []record[K, V]
	free []int32 // slots released by reset, reused before growing the arena
}

const sentinel int32 = 0

func newRing[K comparable, V any](hint int) *ring[K, V] {
	r := &ring[K, V]{recs: make([]record[K, V], 1, hint+1)}
	r.recs[sentinel].prev = sentinel
	r.recs[sentinel].next = sentinel
	return r
}

func (r *ring[K, V]) at(i int32) *record[K, V] { return &r.recs[i] }

// alloc reserves an unlinked slot for k/v and returns its index.
func (r *ring[K, V]) alloc(k K, v V) int32 {
	if n := len(r.free); n > 0 {
		i := r.free[n-1]
		r.free = r.free[:n-1]
		rec := &r.recs[i]
		rec.key, rec.val = k, v
		return i
	}
	r.recs = append(r.recs, record[K, V]{key: k, val: v})
	return int32(len(r.recs) - 1)
}

// pushBack links slot i at the most-recent end (immediately before the
// sentinel) in O(1).
func (r *ring[K, V]) pushBack(i int32) {
	last := r.recs[sentinel].prev
	r.recs[i].prev = last
	r.recs[i].next = sentinel
	r.recs[last].next = i
	r.recs[sentinel].prev = i
}

// unlink detaches slot i from the ring in O(1). The slot stays allocated.
func (r *ring[K, V]) unlink(i int32) {
	p, n := r.recs[i].prev, r.recs[i].next
	r.recs[p].next = n
	r.recs[n].prev = p
}

// moveToBack promotes slot i to most-recent in O(1).
func (r *ring[K, V]) moveToBack(i int32) {
	if r.recs[sentinel].prev == i {
		return
	}
	r.unlink(i)
	r.pushBack(i)
}

// front returns the least-recent slot, or the sentinel when empty.
func (r *ring[K, V]) front() int32 { return r.recs[sentinel].next }

// reset returns the ring to sentinel-only, releasing every slot to the
// free list. Record contents are zeroed so evicted keys and values do not
// outlive the entry.
func (r *ring[K, V]) reset() {
	for i := r.recs[sentinel].next; i != sentinel; {
		next := r.recs[i].next
		r.recs[i] = record[K, V]{}
		r.free = append(r.free, i)
		i = next
	}
	r.recs[sentinel].prev = sentinel
	r.recs[sentinel].next = sentinel
}
