// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type clientMetrics struct {
	requests        prometheus.Counter
	requestFailures prometheus.Counter
	txsSubmitted    prometheus.Counter
	txsConfirmed    prometheus.Counter
	txsFailed       prometheus.Counter
}

func newMetrics() *clientMetrics {
	return &clientMetrics{
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rpc",
			Name:      "requests",
			Help:      "number of requests sent to the node",
		}),
		requestFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rpc",
			Name:      "request_failures",
			Help:      "number of requests that failed or were rejected",
		}),
		txsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rpc",
			Name:      "txs_submitted",
			Help:      "number of transactions accepted by the node",
		}),
		txsConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rpc",
			Name:      "txs_confirmed",
			Help:      "number of transactions confirmed on chain",
		}),
		txsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rpc",
			Name:      "txs_failed",
			Help:      "number of transactions that landed with an error or expired",
		}),
	}
}

func (m *clientMetrics) register(r prometheus.Registerer) error {
	return errors.Join(
		r.Register(m.requests),
		r.Register(m.requestFailures),
		r.Register(m.txsSubmitted),
		r.Register(m.txsConfirmed),
		r.Register(m.txsFailed),
	)
}
