package keychain

import (
	"context"
	"sync"
)

// Await dispatches a provider request and blocks until its completion
// callback fires or ctx is done. The callback is permitted to fire at most
// once; a second invocation is silently dropped so no double-resolution
// path exists.
//
// Cancelling ctx abandons the wait but does not abort the provider request:
// the provider may still resolve later and its verdict is discarded.
func Await(ctx context.Context, dispatch func(done func(Verdict))) (Verdict, error) {
	ch := make(chan Verdict, 1)

	var once sync.Once

	dispatch(func(v Verdict) {
		once.Do(func() {
			ch <- v
		})
	})

	select {
	case v := <-ch:
		return v, nil
	case <-ctx.Done():
		return Verdict{}, ctx.Err()
	}
}
