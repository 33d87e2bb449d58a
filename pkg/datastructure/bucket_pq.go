package datastructure

type Gain = int64

type bucketPos struct {
	inBucketIdx int
	gain        Gain
}

// BucketPQ is a bounded-range integer-keyed max-priority queue. Gains in
// [-gainSpan, +gainSpan] map onto 2*gainSpan+1 buckets; ties are broken LIFO
// within a bucket, which keeps replay deterministic. All operations are O(1)
// amortized except DeleteMax/DeleteNode, which may rescan maxIdx downward.
type BucketPQ struct {
	elements int
	gainSpan Gain
	maxIdx   int

	queueIndex map[Index]bucketPos
	buckets    [][]Index
}

// NewBucketPQ builds a queue for gains in [-gainSpan, +gainSpan]. gainSpan
// must bound every gain ever inserted.
func NewBucketPQ(gainSpan Gain) *BucketPQ {
	return &BucketPQ{
		gainSpan:   gainSpan,
		queueIndex: make(map[Index]bucketPos),
		buckets:    make([][]Index, 2*gainSpan+1),
	}
}

func (pq *BucketPQ) Size() int {
	return pq.elements
}

func (pq *BucketPQ) Empty() bool {
	return pq.elements == 0
}

func (pq *BucketPQ) Insert(node Index, gain Gain) {
	address := int(gain + pq.gainSpan)
	if address > pq.maxIdx {
		pq.maxIdx = address
	}

	pq.buckets[address] = append(pq.buckets[address], node)
	pq.queueIndex[node] = bucketPos{
		inBucketIdx: len(pq.buckets[address]) - 1,
		gain:        gain,
	}

	pq.elements++
}

func (pq *BucketPQ) MaxValue() Gain {
	return Gain(pq.maxIdx) - pq.gainSpan
}

func (pq *BucketPQ) MaxElement() Index {
	bucket := pq.buckets[pq.maxIdx]
	return bucket[len(bucket)-1]
}

func (pq *BucketPQ) DeleteMax() Index {
	bucket := pq.buckets[pq.maxIdx]
	node := bucket[len(bucket)-1]
	pq.buckets[pq.maxIdx] = bucket[:len(bucket)-1]
	delete(pq.queueIndex, node)

	if len(pq.buckets[pq.maxIdx]) == 0 {
		for pq.maxIdx != 0 {
			pq.maxIdx--
			if len(pq.buckets[pq.maxIdx]) > 0 {
				break
			}
		}
	}

	pq.elements--
	return node
}

func (pq *BucketPQ) DecreaseKey(node Index, newGain Gain) {
	pq.ChangeKey(node, newGain)
}

func (pq *BucketPQ) IncreaseKey(node Index, newGain Gain) {
	pq.ChangeKey(node, newGain)
}

func (pq *BucketPQ) GetKey(node Index) Gain {
	return pq.queueIndex[node].gain
}

func (pq *BucketPQ) ChangeKey(node Index, newGain Gain) {
	pq.DeleteNode(node)
	pq.Insert(node, newGain)
}

func (pq *BucketPQ) DeleteNode(node Index) {
	pos, ok := pq.queueIndex[node]
	if !ok {
		panic("bucket pq: deleting node that is not queued")
	}
	address := int(pos.gain + pq.gainSpan)
	bucket := pq.buckets[address]

	if len(bucket) > 1 {
		// swap with the last element in the bucket and pop
		last := bucket[len(bucket)-1]
		displaced := pq.queueIndex[last]
		displaced.inBucketIdx = pos.inBucketIdx
		pq.queueIndex[last] = displaced
		bucket[pos.inBucketIdx] = last
		pq.buckets[address] = bucket[:len(bucket)-1]
	} else {
		pq.buckets[address] = bucket[:0]
		if address == pq.maxIdx {
			for pq.maxIdx != 0 {
				pq.maxIdx--
				if len(pq.buckets[pq.maxIdx]) > 0 {
					break
				}
			}
		}
	}

	pq.elements--
	delete(pq.queueIndex, node)
}

func (pq *BucketPQ) Contains(node Index) bool {
	_, ok := pq.queueIndex[node]
	return ok
}

// Gain returns the queued gain of node, or 0 when node is not queued.
// Callers use the zero as a "not queued" sentinel.
func (pq *BucketPQ) Gain(node Index) Gain {
	if pos, ok := pq.queueIndex[node]; ok {
		return pos.gain
	}
	return 0
}
