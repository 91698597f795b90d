// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"sync"
)

// MuxAgent mimics an ApplicationAgent to be used as a multiplexer for different ApplicationAgents.
type MuxAgent struct {
	sync.Mutex

	receiver chan Message
	sender   chan Message
	done     chan struct{}

	children     []ApplicationAgent
	childrenDone sync.WaitGroup
}

// NewMuxAgent creates a new MuxAgent used to multiplex different ApplicationAgents.
func NewMuxAgent() (mux *MuxAgent) {
	mux = &MuxAgent{
		receiver: make(chan Message),
		sender:   make(chan Message),
		done:     make(chan struct{}),
	}

	go mux.handle()

	return
}

func (mux *MuxAgent) handle() {
	// The sender is closed after each child stopped forwarding, otherwise a child might send on a closed channel.
	defer func() {
		close(mux.done)
		mux.childrenDone.Wait()
		close(mux.sender)
	}()

	for msg := range mux.receiver {
		mux.Lock()
		for _, child := range mux.children {
			if AppAgentAccepts(child, msg) {
				child.MessageReceiver() <- msg
			}
		}
		mux.Unlock()

		if _, isShutdown := msg.(ShutdownMessage); isShutdown {
			return
		}
	}
}

// Register a new ApplicationAgent for this multiplexer.
// If this ApplicationAgent closes its channel or broadcasts a ShutdownMessage, it will be unregistered.
func (mux *MuxAgent) Register(agent ApplicationAgent) {
	mux.Lock()
	defer mux.Unlock()

	mux.children = append(mux.children, agent)
	mux.childrenDone.Add(1)
	go mux.handleChild(agent)
}

func (mux *MuxAgent) handleChild(agent ApplicationAgent) {
	defer mux.childrenDone.Done()

	for msg := range agent.MessageSender() {
		if _, isShutdown := msg.(ShutdownMessage); isShutdown {
			break
		}

		select {
		case mux.sender <- msg:
		case <-mux.done:
			// Drop messages while shutting down, but keep draining until the child closes its channel.
		}
	}

	mux.unregister(agent)
}

// unregister a previously registered ApplicationAgent.
// This will also automatically shutdown this ApplicationAgent.
func (mux *MuxAgent) unregister(agent ApplicationAgent) {
	mux.Lock()
	defer mux.Unlock()

	close(agent.MessageReceiver())

	for i, child := range mux.children {
		if child == agent {
			mux.children = append(mux.children[:i], mux.children[i+1:]...)
			break
		}
	}
}

// Subscribed is true if at least one child is subscribed.
func (mux *MuxAgent) Subscribed() bool {
	mux.Lock()
	defer mux.Unlock()

	for _, child := range mux.children {
		if child.Subscribed() {
			return true
		}
	}
	return false
}

// Len returns the number of registered ApplicationAgents.
func (mux *MuxAgent) Len() int {
	mux.Lock()
	defer mux.Unlock()

	return len(mux.children)
}

func (mux *MuxAgent) MessageReceiver() chan Message {
	return mux.receiver
}

func (mux *MuxAgent) MessageSender() chan Message {
	return mux.sender
}
