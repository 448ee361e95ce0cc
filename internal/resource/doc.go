// Package resource implements the node-memory budget enforced by the MV
// layer's allocator.
//
// # Memory Management
//
// Budget tracking uses a weighted semaphore for a hard limit (when
// configured) and an atomic counter for usage reporting. AcquireMemory is
// non-blocking and returns ErrMemoryLimitExceeded immediately if the limit
// would be exceeded, mirroring the exhaustion failure kind the allocator must
// surface to callers rather than retry:
//
//	c := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})
//	if err := c.AcquireMemory(128); err != nil {
//	    // ErrMemoryLimitExceeded: allocation is fatal, not retried.
//	}
//	defer c.ReleaseMemory(128)
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use, and a nil *Controller
// behaves as an unlimited budget so callers never need nil checks.
package resource
