/*
 * Copyright 2026 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cache

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Cache maps a fingerprint to a compiled artifact, one per back-end
// (spec.md §4.6). Lookups are lock-free after the first insert; the first
// caller for a given fingerprint compiles while every concurrent follower
// waits on the same in-flight compilation, via singleflight -- this is the
// "compile-once latch" spec.md §5 and §4.6 require on multi-threaded
// hosts, so that at most one compilation per fingerprint ever happens.
type Cache struct {
	m   sync.Map // fingerprint -> interface{} (artifact)
	grp singleflight.Group

	hit, miss uint64
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{}
}

// Get returns the cached artifact for key, or nil on a miss. It does not
// trigger compilation.
func (c *Cache) Get(key string) interface{} {
	if v, ok := c.m.Load(key); ok {
		atomic.AddUint64(&c.hit, 1)
		return v
	}
	return nil
}

// Compute returns the cached artifact for key, compiling it with fn on a
// miss. Only one caller across all concurrent goroutines actually invokes
// fn for a given key; the rest block on that single call and share its
// result (or its error). A failed compilation is never inserted into the
// cache (spec.md §7: GenerationFailure and InstantiationFailure "are not
// cached").
func (c *Cache) Compute(key string, fn func() (interface{}, error)) (interface{}, error) {
	if v, ok := c.m.Load(key); ok {
		atomic.AddUint64(&c.hit, 1)
		return v, nil
	}

	v, err, _ := c.grp.Do(key, func() (interface{}, error) {
		if v, ok := c.m.Load(key); ok {
			return v, nil
		}
		art, err := fn()
		if err != nil {
			return nil, err
		}
		c.m.Store(key, art)
		atomic.AddUint64(&c.miss, 1)
		return art, nil
	})

	return v, err
}

// Clear evicts every cached artifact (spec.md §4.6 "clear_cache()"). There
// is no bounded eviction in the baseline spec (spec.md §9, Open Questions
// defers an LRU bound).
func (c *Cache) Clear() {
	c.m.Range(func(k, _ interface{}) bool {
		c.m.Delete(k)
		return true
	})
}

// Stats reports cumulative hit/miss counts, for the debug package
// (SPEC_FULL.md §12.1).
func (c *Cache) Stats() (hit, miss uint64) {
	return atomic.LoadUint64(&c.hit), atomic.LoadUint64(&c.miss)
}

// Keys returns every currently cached fingerprint, for introspection.
func (c *Cache) Keys() []string {
	var keys []string
	c.m.Range(func(k, _ interface{}) bool {
		keys = append(keys, k.(string))
		return true
	})
	return keys
}
