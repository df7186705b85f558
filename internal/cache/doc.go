// Package cache provides a bounded least-recently-used cache.
//
// The tessellator keeps one of these keyed by shape parameters so identical
// shapes share their triangle lists:
//
//	meshes := cache.New[meshKey, Geometry](256)
//	g := meshes.GetOrCreate(key, func() Geometry { return tessellate(key) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
