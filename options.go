package main

import (
	"io"

	"github.com/jcorbin/gostack/internal/flushio"
)

// Option configures a Machine.
type Option interface{ apply(m *Machine) }

// Options combines any number of options into one; nil options are ignored.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

type options []Option

func (opts options) apply(m *Machine) {
	for _, opt := range opts {
		opt.apply(m)
	}
}

var defaultOptions = options{
	withOutput(io.Discard),
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(m *Machine) {
	m.logfn = logfn
}

type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }

func withOutput(w io.Writer) outputOption { return outputOption{w} }
func withTee(w io.Writer) teeOption       { return teeOption{w} }

func (o outputOption) apply(m *Machine) {
	if m.out != nil {
		m.out.Flush()
	}
	m.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(m *Machine) {
	m.out = flushio.WriteFlushers(m.out, flushio.NewWriteFlusher(o.Writer))
}
