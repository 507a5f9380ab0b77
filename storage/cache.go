// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Cache - expiring overlay of recent writes
//
// a Get for a key deleted through the overlay reports not found even
// while the entry has not yet expired
type Cache interface {
	Get(string) ([]byte, bool)
	Set(int, string, []byte)
	Clear()
}

// write operation tags
const (
	dbPut = iota
	dbDelete
)

const (
	cacheSweepInterval = 1 * time.Minute
	cacheExpiration    = 2 * time.Minute
)

type writeCache struct {
	recent *cache.Cache
}

type taggedValue struct {
	op    int
	value []byte
}

func newCache() Cache {
	return &writeCache{
		recent: cache.New(cacheExpiration, cacheSweepInterval),
	}
}

func (c *writeCache) Get(key string) ([]byte, bool) {
	obj, found := c.recent.Get(key)
	if !found {
		return nil, false
	}

	tagged := obj.(taggedValue)
	if dbDelete == tagged.op {
		return nil, false
	}

	return tagged.value, true
}

func (c *writeCache) Set(op int, key string, value []byte) {
	c.recent.Set(key, taggedValue{op: op, value: value}, cacheExpiration)
}

func (c *writeCache) Clear() {
	c.recent.Flush()
}
