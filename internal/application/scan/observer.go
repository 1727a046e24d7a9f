package scan

import "github.com/khanhnv2901/seca-host/internal/domain/check"

// Observer receives scan progress. OnResult is called once per check in
// registry order; OnComplete once per scan after the scanner is idle again.
// Both run on the scan goroutine.
type Observer interface {
	OnResult(index, total int, result *check.Result)
	OnComplete(report *check.Report, err error)
}

// Hooks adapts plain functions to Observer. Nil fields are skipped.
type Hooks struct {
	Result   func(index, total int, result *check.Result)
	Complete func(report *check.Report, err error)
}

func (h Hooks) OnResult(index, total int, result *check.Result) {
	if h.Result != nil {
		h.Result(index, total, result)
	}
}

func (h Hooks) OnComplete(report *check.Report, err error) {
	if h.Complete != nil {
		h.Complete(report, err)
	}
}

// Multi fans events out to several observers in order
func Multi(observers ...Observer) Observer {
	out := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

type multiObserver []Observer

func (m multiObserver) OnResult(index, total int, result *check.Result) {
	for _, o := range m {
		o.OnResult(index, total, result)
	}
}

func (m multiObserver) OnComplete(report *check.Report, err error) {
	for _, o := range m {
		o.OnComplete(report, err)
	}
}

type nopObserver struct{}

func (nopObserver) OnResult(int, int, *check.Result) {}
func (nopObserver) OnComplete(*check.Report, error)  {}
