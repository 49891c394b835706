// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type Option func(*Client)

// WithLogger attaches a logger; requests are logged at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(cli *Client) {
		cli.log = log
	}
}

// WithCommitment sets the commitment queries read at and confirmation
// waits for. The default is [CommitmentConfirmed].
func WithCommitment(c Commitment) Option {
	return func(cli *Client) {
		cli.commitment = c
	}
}

// WithPollInterval sets how often confirmation polling re-checks a
// signature's status.
func WithPollInterval(d time.Duration) Option {
	return func(cli *Client) {
		cli.pollInterval = d
	}
}

// WithMetrics registers the client's counters on [r].
func WithMetrics(r prometheus.Registerer) Option {
	return func(cli *Client) {
		cli.registerer = r
	}
}

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(cli *Client) {
		cli.httpClient = client
	}
}
