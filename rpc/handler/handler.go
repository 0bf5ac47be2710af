// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/supplychaind/counter"
	"github.com/bitmark-inc/supplychaind/fault"
	"github.com/bitmark-inc/supplychaind/itemrecord"
	"github.com/bitmark-inc/supplychaind/rpc/node"
	"github.com/bitmark-inc/supplychaind/rpc/ratelimit"
)

// names used in the allow configuration
const (
	DetailsAllow = "details"
)

// item reads bypass the RPC limiter so they get their own
const (
	rateLimitItem = 200
	rateBurstItem = 100
)

// Getter - read access to item records
type Getter interface {
	Get(itemrecord.Key) (*itemrecord.Item, error)
}

// Handler - HTTPS endpoints
type Handler interface {
	Router() http.Handler
	SetAllow(map[string][]*net.IPNet)
	Root(http.ResponseWriter, *http.Request)
	RPC(http.ResponseWriter, *http.Request)
	Item(http.ResponseWriter, *http.Request)
	Details(http.ResponseWriter, *http.Request)
}

type handler struct {
	log                *logger.L
	server             *rpc.Server
	items              Getter
	info               *node.Node
	count              *counter.Counter
	maximumConnections uint64
	limiter            *rate.Limiter
	allow              map[string][]*net.IPNet
}

// New - create the HTTPS handler
func New(log *logger.L, server *rpc.Server, items Getter, info *node.Node, count *counter.Counter, maximumConnections uint64) Handler {
	return &handler{
		log:                log,
		server:             server,
		items:              items,
		info:               info,
		count:              count,
		maximumConnections: maximumConnections,
		limiter:            rate.NewLimiter(rateLimitItem, rateBurstItem),
		allow:              make(map[string][]*net.IPNet),
	}
}

// Router - all routes on a chi mux
func (h *handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/supplychain/rpc", h.RPC)
	r.With(ratelimit.Middleware(h.limiter, func(w http.ResponseWriter, _ *http.Request) {
		sendTooManyRequests(w)
	})).Get("/supplychain/items/{key}", h.Item)
	r.Get("/supplychain/details", h.Details)
	r.NotFound(h.Root)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		sendMethodNotAllowed(w)
	})
	return r
}

// SetAllow - CIDR access lists keyed by endpoint name
func (h *handler) SetAllow(allow map[string][]*net.IPNet) {
	h.allow = allow
}

// Root - this matches anything not matched and returns error
func (h *handler) Root(w http.ResponseWriter, _ *http.Request) {
	sendNotFound(w)
}

// type to allow rpc system to interface to http request
type internalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *internalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *internalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *internalConnection) Close() error {
	return nil
}

// RPC - performs a call to any normal RPC
func (h *handler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.count.Acquire(h.maximumConnections) {
		sendTooManyRequests(w)
		return
	}
	defer h.count.Release()

	body, err := io.ReadAll(r.Body)
	if nil != err || 0 == len(body) {
		sendBadRequest(w)
		return
	}

	var request struct {
		Method string `json:"method"`
	}
	err = json.Unmarshal(body, &request)
	if nil != err || "" == request.Method {
		sendBadRequest(w)
		return
	}

	serverCodec := jsonrpc.NewServerCodec(&internalConnection{in: bytes.NewReader(body), out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	err = h.server.ServeRequest(serverCodec)
	if nil != err {
		h.log.Errorf("serve request error: %s", err)
	}
}

// Item - GET one decoded record
func (h *handler) Item(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.count.Acquire(h.maximumConnections) {
		sendTooManyRequests(w)
		return
	}
	defer h.count.Release()

	key, err := itemrecord.KeyFromString(chi.URLParam(r, "key"))
	if nil != err {
		sendBadRequest(w)
		return
	}

	item, err := h.items.Get(key)
	switch {
	case nil == err:
	case fault.IsErrNotFound(err):
		sendNotFound(w)
		return
	default:
		h.log.Errorf("get: %s  error: %s", key, err)
		sendInternalServerError(w)
		return
	}

	sendReply(w, struct {
		Key  itemrecord.Key   `json:"key"`
		Item *itemrecord.Item `json:"item"`
	}{
		Key:  key,
		Item: item,
	})
}

// Details - same response as Node.Info, restricted to the allow list
func (h *handler) Details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.isAllowed(DetailsAllow, r) {
		h.log.Warnf("deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	if !h.count.Acquire(h.maximumConnections) {
		sendTooManyRequests(w)
		return
	}
	defer h.count.Release()

	var reply node.InfoReply
	h.info.Fill(&reply)

	sendReply(w, reply)
}

func (h *handler) isAllowed(name string, r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if nil != err {
		return false
	}
	ip := net.ParseIP(host)
	if nil == ip {
		return false
	}
	for _, n := range h.allow[name] {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
