package app

import "time"

// nopMetrics discards every observation. Used when no recorder is wired.
type nopMetrics struct{}

func (nopMetrics) ObserveFetch(string, time.Duration, error) {}
func (nopMetrics) ObserveCache(string, bool)                 {}
func (nopMetrics) ObserveGenerate(time.Duration, int)        {}
