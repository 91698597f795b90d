// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/gorilla/websocket"

	"github.com/chainprim/chainprim/pkg/block"
)

// WebSocketAgentConnector is the client side version of the WebSocketAgent. It subscribes to all newly imported
// Blocks and can push Blocks to be imported.
type WebSocketAgentConnector struct {
	conn *websocket.Conn

	msgOutChan chan webAgentMessage
	msgOutErr  chan error

	msgInBlockChan chan block.Block

	closeSyn chan struct{}
	closeAck chan struct{}
}

// NewWebSocketAgentConnector creates a new WebSocketAgentConnector connection to a WebSocketAgent.
func NewWebSocketAgentConnector(apiUrl string) (wac *WebSocketAgentConnector, err error) {
	var conn *websocket.Conn
	if conn, _, err = websocket.DefaultDialer.Dial(apiUrl, nil); err != nil {
		return
	}

	wac = &WebSocketAgentConnector{
		conn: conn,

		msgOutChan: make(chan webAgentMessage),
		msgOutErr:  make(chan error),

		msgInBlockChan: make(chan block.Block),

		closeSyn: make(chan struct{}),
		closeAck: make(chan struct{}),
	}

	if err = wac.subscribe(); err != nil {
		_ = conn.Close()
		wac = nil
		return
	}

	go wac.handler()
	go wac.handleReader()

	return
}

func (wac *WebSocketAgentConnector) writeMessage(msg webAgentMessage) error {
	wc, wcErr := wac.conn.NextWriter(websocket.BinaryMessage)
	if wcErr != nil {
		return wcErr
	}

	if cborErr := marshalCbor(msg, wc); cborErr != nil {
		return cborErr
	}

	return wc.Close()
}

func (wac *WebSocketAgentConnector) readMessage() (msg webAgentMessage, err error) {
	if mt, r, rErr := wac.conn.NextReader(); rErr != nil {
		err = rErr
		return
	} else if mt != websocket.BinaryMessage {
		err = fmt.Errorf("expected binary message, got %d", mt)
		return
	} else {
		msg, err = unmarshalCbor(r)
		return
	}
}

func (wac *WebSocketAgentConnector) subscribe() error {
	if err := wac.writeMessage(newSubscribeMessage()); err != nil {
		return err
	}

	if msg, err := wac.readMessage(); err != nil {
		return err
	} else if status, ok := msg.(*wamStatus); !ok {
		return fmt.Errorf("expected wamStatus, got %T", msg)
	} else if status.errorMsg != "" {
		return fmt.Errorf("received non-empty error message: %s", status.errorMsg)
	} else {
		return nil
	}
}

func (wac *WebSocketAgentConnector) handleReader() {
	defer close(wac.msgInBlockChan)

	for {
		if msg, err := wac.readMessage(); err != nil {
			log.WithError(err).Debug("WebSocketAgentConnector's reader stopped")
			return
		} else {
			switch msg := msg.(type) {
			case *wamBlock:
				wac.msgInBlockChan <- msg.b

			case *wamStatus:
				if msg.errorMsg != "" {
					log.WithField("error", msg.errorMsg).Warn("Server reported an error")
				}

			default:
				log.WithField("message", msg).Debug("Received unsupported message")
			}
		}
	}
}

func (wac *WebSocketAgentConnector) handler() {
	defer func() {
		close(wac.closeAck)

		close(wac.msgOutChan)
		close(wac.msgOutErr)

		_ = wac.conn.Close()
	}()

	for {
		select {
		case <-wac.closeSyn:
			return

		case msg := <-wac.msgOutChan:
			wac.msgOutErr <- wac.writeMessage(msg)
		}
	}
}

// WriteBlock sends a Block to the server to be imported. Import errors are reported asynchronously.
func (wac *WebSocketAgentConnector) WriteBlock(b block.Block) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	wac.msgOutChan <- newBlockMessage(b)
	return <-wac.msgOutErr
}

// ReadBlock returns the next newly imported Block. This method blocks.
func (wac *WebSocketAgentConnector) ReadBlock() (b block.Block, err error) {
	b, ok := <-wac.msgInBlockChan
	if !ok {
		err = fmt.Errorf("connection to the WebSocketAgent was closed")
	}
	return
}

// Close this WebSocketAgentConnector.
func (wac *WebSocketAgentConnector) Close() {
	defer func() {
		// channel is already closed
		_ = recover()
	}()

	close(wac.closeSyn)
	<-wac.closeAck
}
