// Package backoff provides multiplicative retry delay math and a
// cancellation-aware wait primitive.
//
// Use Delay or Next for the delay sequence and SleepWithContext to wait
// while respecting cancellation and deadlines.
package backoff
