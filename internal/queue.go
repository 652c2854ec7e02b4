package internal

// A subsegment found to be encroached, along with its endpoints at the time,
// so stale entries can be recognized once the subsegment has been split.
type badSubseg struct {
	subseg    Osub
	org, dest *Vertex
}

func (b badSubseg) isStale() bool {
	return b.subseg.seg.dead || b.subseg.Org() != b.org || b.subseg.Dest() != b.dest
}

// FIFO of encroached subsegments.
type badSubsegQueue struct {
	items []badSubseg
	head  int
}

func (q *badSubsegQueue) Enqueue(b badSubseg) {
	q.items = append(q.items, b)
}

func (q *badSubsegQueue) Dequeue() (badSubseg, bool) {
	if q.head >= len(q.items) {
		return badSubseg{}, false
	}
	b := q.items[q.head]
	q.items[q.head] = badSubseg{}
	q.head++
	if q.head == len(q.items) {
		q.Clear()
	}
	return b, true
}

func (q *badSubsegQueue) Len() int {
	return len(q.items) - q.head
}

func (q *badSubsegQueue) Clear() {
	q.items = q.items[:0]
	q.head = 0
}

// A triangle that failed a quality test. The corners are recorded so that a
// triangle record reused by later flips or splits isn't mistaken for the
// original.
type badTriangle struct {
	poortri         Otri
	key             float64
	org, dest, apex *Vertex
}

func (b badTriangle) isStale() bool {
	t := b.poortri.tri
	return t == nil || t.dead || b.poortri.Org() != b.org || b.poortri.Dest() != b.dest || b.poortri.Apex() != b.apex
}

const badTriangleBuckets = 4096

// Bucketed priority queue of bad triangles. The key is the squared cosine of
// the smallest angle, so worse triangles land in higher buckets and are served
// first. Within a bucket, order is FIFO.
type badTriangleQueue struct {
	buckets [][]badTriangle
	count   int
	// No bucket above top is occupied.
	top int
}

func bucketOf(key float64) int {
	b := int(key * (badTriangleBuckets - 1))
	if b < 0 {
		return 0
	}
	if b >= badTriangleBuckets {
		return badTriangleBuckets - 1
	}
	return b
}

func (q *badTriangleQueue) Enqueue(b badTriangle) {
	if q.buckets == nil {
		q.buckets = make([][]badTriangle, badTriangleBuckets)
	}
	i := bucketOf(b.key)
	q.buckets[i] = append(q.buckets[i], b)
	q.count++
	if i > q.top {
		q.top = i
	}
}

func (q *badTriangleQueue) Dequeue() (badTriangle, bool) {
	if q.count == 0 {
		return badTriangle{}, false
	}
	for len(q.buckets[q.top]) == 0 {
		q.top--
	}
	bucket := q.buckets[q.top]
	b := bucket[0]
	bucket[0] = badTriangle{}
	q.buckets[q.top] = bucket[1:]
	q.count--
	return b, true
}

func (q *badTriangleQueue) Len() int {
	return q.count
}

func (q *badTriangleQueue) Clear() {
	q.buckets = nil
	q.count = 0
	q.top = 0
}
