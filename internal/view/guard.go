// Package view holds the request-ordering helpers shared by every read path:
// in-flight de-duplication, stale-response suppression, optimistic state and
// page cursors.
package view

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Key identifies a fetchable resource
type Key struct {
	Resource string
	ID       string
}

func (k Key) String() string {
	return k.Resource + ":" + k.ID
}

// Guard collapses concurrent identical fetches into one
type Guard struct {
	group singleflight.Group
}

// NewGuard creates an in-flight request guard
func NewGuard() *Guard {
	return &Guard{}
}

// Do runs fn once for all concurrent callers sharing key. Callers whose
// context ends stop waiting; the shared call keeps running for the others.
// shared is true when the result was handed to more than one caller.
func (g *Guard) Do(ctx context.Context, key Key, fn func() (interface{}, error)) (v interface{}, shared bool, err error) {
	ch := g.group.DoChan(key.String(), fn)
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		return res.Val, res.Shared, res.Err
	}
}

// Forget drops any in-flight call for key so the next Do starts fresh
func (g *Guard) Forget(key Key) {
	g.group.Forget(key.String())
}
