package sequence

// SlotStore holds one INT32 accumulator per batch slot.
// Slots are indexed 0..Len()-1; callers must stay in range. It is not safe for concurrent use.
type SlotStore struct {
	accumulators []int32
}

// NewSlotStore creates a store sized for maxBatchSize, with at least one slot.
func NewSlotStore(maxBatchSize int) *SlotStore {
	return &SlotStore{
		accumulators: make([]int32, max(1, maxBatchSize)),
	}
}

func (s *SlotStore) Len() int {
	return len(s.accumulators)
}

func (s *SlotStore) Get(slot int) int32 {
	return s.accumulators[slot]
}

func (s *SlotStore) Set(slot int, value int32) {
	s.accumulators[slot] = value
}

// Add adds value to the slot with wrapping INT32 arithmetic and returns the new accumulator.
func (s *SlotStore) Add(slot int, value int32) int32 {
	s.accumulators[slot] += value
	return s.accumulators[slot]
}
