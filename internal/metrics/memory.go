package metrics

import "runtime"

// MemorySnapshot is the runtime memory state at the end of a run.
type MemorySnapshot struct {
	HeapAlloc   uint64
	HeapObjects uint64
	Sys         uint64
	NumGC       uint32
}

// ReadMemory reads the current runtime memory statistics. It briefly stops
// the world, so it is called once per run rather than per sample.
func ReadMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		HeapObjects: m.HeapObjects,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
	}
}

// HeapAllocMiB returns HeapAlloc in mebibytes.
func (s MemorySnapshot) HeapAllocMiB() float64 {
	return float64(s.HeapAlloc) / (1 << 20)
}
