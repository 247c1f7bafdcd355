// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package portal is the consumer side of the branding pipeline: a cached
// fetcher for the branding document, a pure effect computer that turns a
// document into display mutations, and a form model for editing it.
package portal

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/singleflight"

	"clientportal/internal/models"
)

// Cache windows. A fresh document is served as-is; a stale one is served
// while a refresh runs in the background; a document untouched for the
// eviction window is dropped entirely.
const (
	DefaultFreshFor   = 5 * time.Minute
	DefaultEvictAfter = 30 * time.Minute
	defaultMaxRetries = 2
)

// Fetcher loads the branding document from the backend.
type Fetcher interface {
	FetchBranding(ctx context.Context) (*models.BrandingSettings, error)
}

// State is what Current returns: the best-known document plus load status.
// Document may be non-nil alongside a non-nil Err when a refresh failed
// and the last good value is still being served.
type State struct {
	Document  *models.BrandingSettings
	IsLoading bool
	Err       error
}

// Options tune the client cache. Zero values select the defaults.
type Options struct {
	FreshFor        time.Duration
	EvictAfter      time.Duration
	MaxRetries      uint64
	InitialInterval time.Duration // backoff seed between retries
	Now             func() time.Time
}

// Client is a caching branding fetcher. Concurrent callers share one
// in-flight fetch, failed refreshes keep the last good document, and a
// monotonic sequence number discards fetches that complete out of order.
type Client struct {
	fetcher Fetcher
	opts    Options
	group   singleflight.Group

	mu         sync.Mutex
	doc        *models.BrandingSettings
	docSeq     uint64 // sequence of the fetch that produced doc
	nextSeq    uint64
	fetchedAt  time.Time
	lastUsed   time.Time
	lastErr    error
	refreshing bool
}

// NewClient creates a branding client over the given fetcher.
func NewClient(fetcher Fetcher, opts Options) *Client {
	if opts.FreshFor == 0 {
		opts.FreshFor = DefaultFreshFor
	}
	if opts.EvictAfter == 0 {
		opts.EvictAfter = DefaultEvictAfter
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.InitialInterval == 0 {
		opts.InitialInterval = 100 * time.Millisecond
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Client{fetcher: fetcher, opts: opts}
}

// Current returns the best-known branding state. The first call blocks on
// a fetch; later calls inside the fresh window return the cached document
// immediately. A stale document is returned right away while a background
// refresh runs. A failed refresh keeps serving the last good document
// with Err set.
func (c *Client) Current(ctx context.Context) State {
	now := c.opts.Now()

	c.mu.Lock()
	if c.doc != nil && now.Sub(c.lastUsed) > c.opts.EvictAfter {
		c.doc = nil
		c.fetchedAt = time.Time{}
	}
	c.lastUsed = now

	if c.doc != nil {
		if now.Sub(c.fetchedAt) <= c.opts.FreshFor {
			state := State{Document: c.doc}
			c.mu.Unlock()
			return state
		}
		// Stale: serve the cached copy, refresh in the background.
		if !c.refreshing {
			c.refreshing = true
			go func() {
				c.fetch(context.WithoutCancel(ctx))
				c.mu.Lock()
				c.refreshing = false
				c.mu.Unlock()
			}()
		}
		state := State{Document: c.doc, IsLoading: true, Err: c.lastErr}
		c.mu.Unlock()
		return state
	}
	c.mu.Unlock()

	// Cold cache: block on a shared fetch.
	c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Document: c.doc, Err: c.lastErr}
}

// Invalidate marks the cached document stale so the next Current triggers
// a refetch. The document itself is retained as the last good value.
func (c *Client) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchedAt = time.Time{}
}

// fetch runs one shared, retried fetch and installs the result unless a
// newer fetch already completed.
func (c *Client) fetch(ctx context.Context) {
	c.mu.Lock()
	c.nextSeq++
	seq := c.nextSeq
	c.mu.Unlock()

	_, err, _ := c.group.Do("branding", func() (any, error) {
		var doc *models.BrandingSettings
		policy := backoff.WithContext(
			backoff.WithMaxRetries(c.retryBackoff(), c.opts.MaxRetries), ctx)
		err := backoff.Retry(func() error {
			var ferr error
			doc, ferr = c.fetcher.FetchBranding(ctx)
			return ferr
		}, policy)
		if err != nil {
			return nil, err
		}
		c.install(seq, doc)
		return doc, nil
	})

	if err != nil {
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
	}
}

// install stores a fetched document unless a later fetch got there first.
func (c *Client) install(seq uint64, doc *models.BrandingSettings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.docSeq {
		return // out-of-order completion, a newer document is in place
	}
	c.doc = doc
	c.docSeq = seq
	c.fetchedAt = c.opts.Now()
	c.lastErr = nil
}

func (c *Client) retryBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.opts.InitialInterval
	return b
}
