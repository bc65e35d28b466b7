package region

// Stats is a point-in-time view of a buffer's usage.
type Stats struct {
	Capacity    uint64  // Size of the span in bytes
	InUse       uint64  // Bytes handed out since the last reset, padding included
	Remaining   uint64  // Bytes that can still be handed out
	Utilization float64 // InUse / Capacity, 0 for an empty buffer
	Owned       bool
}

// Stats returns a snapshot of b's usage.
func (b *Buffer) Stats() Stats {
	s := Stats{
		Capacity:  b.Cap(),
		InUse:     b.offset,
		Remaining: b.Remaining(),
		Owned:     b.owned,
	}
	if s.Capacity > 0 {
		s.Utilization = float64(s.InUse) / float64(s.Capacity)
	}
	return s
}
