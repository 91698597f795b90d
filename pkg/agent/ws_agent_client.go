// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"errors"
	"net"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/gorilla/websocket"
)

type webAgentClient struct {
	sync.Mutex

	conn       *websocket.Conn
	subscribed bool
	closed     bool
	receiver   chan Message
	sender     chan Message

	shutdownOnce sync.Once
}

func newWebAgentClient(conn *websocket.Conn) *webAgentClient {
	return &webAgentClient{
		conn:     conn,
		receiver: make(chan Message),
		sender:   make(chan Message),
	}
}

func (client *webAgentClient) start() {
	go client.handleReceiver()
	client.handleConn()
}

// shutdown closes the connection. Afterwards, handleConn closes the sender.
func (client *webAgentClient) shutdown() {
	client.shutdownOnce.Do(func() {
		log.WithField("web agent client", client.conn.RemoteAddr().String()).Debug("Reached shutdown")

		client.Lock()
		client.closed = true
		client.Unlock()

		_ = client.conn.Close()
	})
}

// handleReceiver drains the receiver until the MuxAgent closes it.
func (client *webAgentClient) handleReceiver() {
	var logger = log.WithField("web agent client", client.conn.RemoteAddr().String())

	for msg := range client.receiver {
		switch msg := msg.(type) {
		case ShutdownMessage:
			logger.Debug("Received Shutdown")
			client.shutdown()

		case BlockMessage:
			if err := client.writeMessage(newBlockMessage(msg.Block)); errors.Is(err, net.ErrClosed) {
				continue
			} else if err != nil {
				logger.WithError(err).Warn("Sending outgoing Block errored")
				client.shutdown()
			} else {
				logger.WithField("block", msg.Block.Hash()).Info("Sent Block to client")
			}

		default:
			logger.WithField("message", msg).Info("Received unknown / unsupported message")
		}
	}
}

func (client *webAgentClient) handleConn() {
	defer func() {
		close(client.sender)
		client.shutdown()
	}()

	var logger = log.WithField("web agent client", client.conn.RemoteAddr().String())

	for {
		messageType, reader, err := client.conn.NextReader()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.WithError(err).Debug("Reader errored due to closed connection")
			} else {
				logger.WithError(err).Warn("Opening next Websocket Reader errored")
			}
			return
		} else if messageType != websocket.BinaryMessage {
			logger.WithField("message type", messageType).Warn("Websocket Reader's type is not binary")
			return
		}

		msg, err := unmarshalCbor(reader)
		if err != nil {
			// Each WebSocket message is framed, thus the next message can still be read.
			logger.WithError(err).Warn("Unmarshal CBOR errored")
			if err := client.writeMessage(newStatusMessage(err)); err != nil {
				logger.WithError(err).Warn("Reporting unmarshal error errored")
				return
			}
			continue
		}

		switch msg := msg.(type) {
		case *wamSubscribe:
			client.Lock()
			client.subscribed = true
			client.Unlock()

			logger.Info("Client subscribed to new Blocks")
			if err := client.writeMessage(newStatusMessage(nil)); err != nil {
				logger.WithError(err).Warn("Acknowledging subscription errored")
				return
			}

		case *wamBlock:
			logger.WithField("block", msg.b.Hash()).Info("Received Block")
			client.sender <- BlockMessage{msg.b}

		case *wamStatus:
			logger.WithField("status", msg.errorMsg).Debug("Received status")

		default:
			logger.WithField("message", msg).Info("Received unknown / unsupported message")
		}
	}
}

func (client *webAgentClient) writeMessage(msg webAgentMessage) error {
	client.Lock()
	defer client.Unlock()

	if client.closed {
		return net.ErrClosed
	}

	wc, wcErr := client.conn.NextWriter(websocket.BinaryMessage)
	if wcErr != nil {
		return wcErr
	}

	if cborErr := marshalCbor(msg, wc); cborErr != nil {
		return cborErr
	}

	return wc.Close()
}

func (client *webAgentClient) Subscribed() bool {
	client.Lock()
	defer client.Unlock()

	return client.subscribed
}

func (client *webAgentClient) MessageReceiver() chan Message {
	return client.receiver
}

func (client *webAgentClient) MessageSender() chan Message {
	return client.sender
}
