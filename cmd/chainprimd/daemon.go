// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/gorilla/mux"

	"github.com/chainprim/chainprim/pkg/agent"
	"github.com/chainprim/chainprim/pkg/discovery"
	"github.com/chainprim/chainprim/pkg/storage"
)

// daemon bundles the running components.
type daemon struct {
	store    *storage.Store
	importer *agent.Importer

	listener net.Listener
	server   *http.Server

	watcher *watcher

	peers     *peerSync
	discovery *discovery.Manager
}

// startDaemon opens the Store and starts the configured interfaces.
func startDaemon(conf tomlConfig) (d *daemon, err error) {
	d = &daemon{}

	if d.store, err = storage.NewStore(conf.Core.Store, conf.Core.Compress); err != nil {
		return nil, err
	}
	d.importer = agent.NewImporter(d.store, conf.Core.StrictDigest)

	if conf.Api.Listen != "" {
		if err = d.startApi(conf.Api.Listen); err != nil {
			d.Close()
			return nil, err
		}
	}

	if conf.Watch.Directory != "" {
		if d.watcher, err = newWatcher(conf.Watch.Directory, d.importer); err != nil {
			d.Close()
			return nil, err
		}
	}

	if conf.Discovery.Enabled {
		if err = d.startDiscovery(conf.Discovery); err != nil {
			d.Close()
			return nil, err
		}
	}

	return d, nil
}

// startDiscovery announces the API's port and subscribes to discovered peers.
func (d *daemon) startDiscovery(conf discoveryConf) (err error) {
	if d.listener == nil {
		return fmt.Errorf("discovery requires the API")
	}

	if !conf.IPv4 && !conf.IPv6 {
		conf.IPv4 = true
	}
	if conf.Interval == 0 {
		conf.Interval = 10
	}

	apiPort := uint(d.listener.Addr().(*net.TCPAddr).Port)
	d.peers = newPeerSync(d.importer)

	d.discovery, err = discovery.NewManager(
		conf.NodeId, d.peers.connect, apiPort,
		time.Duration(conf.Interval)*time.Second, conf.IPv4, conf.IPv6)
	return
}

// startApi serves the RestAgent at /rest and the WebSocketAgent at /ws.
func (d *daemon) startApi(listen string) (err error) {
	r := mux.NewRouter()
	agent.NewRestAgent(r.PathPrefix("/rest").Subrouter(), d.importer, d.store)

	ws := agent.NewWebSocketAgent()
	d.importer.Register(ws)
	r.Handle("/ws", ws)

	if d.listener, err = net.Listen("tcp", listen); err != nil {
		return
	}

	d.server = &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := d.server.Serve(d.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server errored")
		}
	}()

	log.WithField("listen", d.listener.Addr().String()).Info("Started REST and WebSocket API")
	return
}

// Close stops all components, the Store last.
func (d *daemon) Close() {
	if d.discovery != nil {
		d.discovery.Close()
	}
	if d.peers != nil {
		d.peers.Close()
	}

	if d.watcher != nil {
		d.watcher.Close()
	}

	if d.importer != nil {
		d.importer.Close()
	}

	if d.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := d.server.Shutdown(ctx); err != nil {
			log.WithError(err).Warn("Shutting down HTTP server errored")
		}
	}

	if err := d.store.Close(); err != nil {
		log.WithError(err).Warn("Closing Store errored")
	}
}
