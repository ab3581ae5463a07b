/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package connection drives a per-connection TLS worker through handshake,
// framed message exchange, and graceful teardown, delivering events to the
// host through a Feedback record. This is the hard core of the library: the
// worker owns all socket I/O and calls Feedback only from itself.
package connection

import (
	"crypto/tls"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sabouaram/mumlib/internal/lberr"
	"github.com/sabouaram/mumlib/pack"
	"github.com/sabouaram/mumlib/socket"
)

// Role distinguishes which side of the handshake a Connection drives.
type Role uint8

const (
	RoleServer Role = iota
	RoleClient
)

// Feedback is the bundle of callbacks a host supplies to a Connection at
// Start. Every method is invoked only from the connection's worker
// goroutine, never re-entrantly.
type Feedback interface {
	// Opened fires once after a successful handshake.
	Opened()
	// Closed fires at most once on graceful peer shutdown or clean local close.
	Closed()
	// Failed fires on fatal outcome with one of Memory, Failure, Timeout,
	// Invalid, Disconnect.
	Failed(code lberr.Kind)
	// Timeout is queried before each wait and defines that wait's deadline.
	Timeout() time.Duration
	// Timeouts defines the number of consecutive timeout strikes tolerated
	// before Timeout is raised.
	Timeouts() int
	// Message fires once per received frame.
	Message(p pack.Pack)
}

// Config tunes a Connection, decoded the way the rest of the ambient stack
// is (mapstructure/yaml/json), mirroring the teacher's per-component Config
// pattern.
type Config struct {
	TLS  socket.Config `mapstructure:"tls" yaml:"tls" json:"tls"`
	Pack pack.Config   `mapstructure:"pack" yaml:"pack" json:"pack"`
}

// Connection owns a TLS socket, a worker goroutine, a Feedback record, and
// a timeout strike counter. Exactly one goroutine performs socket I/O while
// running.
type Connection struct {
	id     uuid.UUID
	role   Role
	cfg    Config
	raw    net.Conn
	sock   *socket.SocketTLS
	log    *logrus.Entry
	maxLen uint32

	feedback Feedback

	cancelled atomic.Bool
	strikes   int

	group   *errgroup.Group
	started atomic.Bool

	openedFired atomic.Bool
	termFired   atomic.Bool

	writeMu sync.Mutex
}

// New constructs a Connection from an accepted/dialed connection and a role.
// If log is nil, a discard logger is used: the library never logs unless
// the host wires one in.
func New(conn net.Conn, role Role, cfg Config, log *logrus.Entry) *Connection {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(noopWriter{})
		log = logrus.NewEntry(discard)
	}

	tlsCfg := cfg.TLS.TLSConfig()
	var sock *socket.SocketTLS
	if role == RoleServer {
		sock = socket.NewServer(conn, tlsCfg)
	} else {
		sock = socket.NewClient(conn, tlsCfg)
	}

	id := uuid.New()
	return &Connection{
		id:     id,
		role:   role,
		cfg:    cfg,
		raw:    conn,
		sock:   sock,
		log:    log.WithField("connection_id", id.String()),
		maxLen: cfg.Pack.MaxLen(),
	}
}

// ID is the connection's identifier, used in log fields and metric labels.
func (c *Connection) ID() uuid.UUID {
	return c.id
}

// SetCert installs the local TLS identity; must be called before Start.
// The certificate/key pairing invariant (chain's leaf key must match key)
// is the caller's responsibility, enforced via cert.MatchesKey before this
// is called.
func (c *Connection) SetCert(cert tls.Certificate) {
	c.sock.SetCert(cert)
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }

var (
	metricFramesIn = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mumlib_connection_frames_in_total",
		Help: "Frames received per connection.",
	}, []string{"connection_id"})
	metricFramesOut = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mumlib_connection_frames_out_total",
		Help: "Frames sent per connection.",
	}, []string{"connection_id"})
	metricActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mumlib_connections_active",
		Help: "Currently running connections.",
	})
)

func init() {
	prometheus.MustRegister(metricFramesIn, metricFramesOut, metricActive)
}
