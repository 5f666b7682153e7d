// Package cache provides a small generic LRU cache with a soft limit.
//
// It is used by the asset layer to decode each base color texture once per
// batch run, even when several materials share it:
//
//	c := cache.New[string, *image.FloatImage](32)
//	img, err := c.GetOrLoad(path, func() (*image.FloatImage, error) {
//	    return image.Load(path)
//	})
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
// Concurrent GetOrLoad calls for the same key run the loader once; callers
// for other keys are not blocked while a load is in progress.
package cache
