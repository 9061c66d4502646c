// Package perf measures rotation speed on arrays of growing size.
//
// Tier k rotates a random array of fib[k+3] bits over the range
// [fib[k], fib[k]+fib[k+2]) by fib[k+1] places, where fib is the Fibonacci
// progression 1, 2, 3, 5, 8, ... The driver stops at the first tier whose
// rotation takes at least the time budget and reports the last tier that
// finished within it.
//
//	res, err := perf.TimedRotation(ctx, perf.Short)
//	if err != nil {
//	    return err
//	}
//	res.WriteText(os.Stdout)
package perf
