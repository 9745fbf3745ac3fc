// Package device simulates a many-core accelerator on ordinary goroutines.
//
// The execution model mirrors real throughput hardware: a kernel is launched
// over a grid of clusters, each cluster runs a fixed number of lanes, and the
// lanes of one cluster share a small fast-memory arena and a barrier. Clusters
// run independently and concurrently with no ordering guarantee among them;
// lanes of one cluster coordinate only through Lane.Sync and the shared arena.
//
// The device package provides:
//
//   - Device with capability queries (MaxLanesPerCluster, MaxClusterCount)
//     and a synchronous, serialized Launch: one control stream per device,
//     so a second launch starts strictly after the first completed.
//   - Lane, the per-lane execution context handed to a Kernel.
//   - Allocator implementations for globally addressable scratch memory:
//     HeapAllocator (default) and MappedAllocator (anonymous mmap regions).
//
// Launch, Alloc and Free are host-side operations: call them from regular
// code, never from inside a running Kernel.
//
// See the reduce package for the canonical client of this model.
package device
