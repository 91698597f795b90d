// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"sync"
	"testing"
	"time"

	"github.com/chainprim/chainprim/pkg/block"
	"github.com/chainprim/chainprim/pkg/storage"
)

// mockAgent is a trivial implementation of an ApplicationAgent, only used for testing.
type mockAgent struct {
	sync.Mutex

	subscribed bool
	receiver   chan Message
	sender     chan Message

	queue []Message
}

// newMockAgent creates a mockAgent, which might be subscribed.
func newMockAgent(subscribed bool) (m *mockAgent) {
	m = &mockAgent{
		subscribed: subscribed,
		receiver:   make(chan Message),
		sender:     make(chan Message),
	}

	go m.handle()

	return
}

func (m *mockAgent) handle() {
	for msg := range m.receiver {
		m.Lock()
		m.queue = append(m.queue, msg)
		m.Unlock()

		if _, isShutdown := msg.(ShutdownMessage); isShutdown {
			close(m.sender)
			break
		}
	}
}

// inbox returns all received messages and cleans the internal message queue.
func (m *mockAgent) inbox() (msgs []Message) {
	m.Lock()
	defer m.Unlock()

	msgs = m.queue
	m.queue = nil
	return
}

// send an outgoing Message.
func (m *mockAgent) send(msg Message) {
	m.sender <- msg
}

func (m *mockAgent) Subscribed() bool {
	return m.subscribed
}

func (m *mockAgent) MessageReceiver() chan Message {
	return m.receiver
}

func (m *mockAgent) MessageSender() chan Message {
	return m.sender
}

// testBlock creates a distinct Block for each number.
func testBlock(number uint32) block.Block {
	return block.NewBlock(
		block.NewHeader(block.Hash{0x23}, number, block.Hash{0x01}, block.Hash{0x02},
			block.NewDigest(block.NewPreRuntimeItem(block.AuraEngineID, []byte{byte(number)}))),
		[]block.Extrinsic{{0x01, 0x02, 0x03}})
}

// testStore creates a Store in a temporary directory, closed on cleanup.
func testStore(t *testing.T) *storage.Store {
	store, err := storage.NewStore(t.TempDir(), false)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// expectBlock waits for a BlockMessage on a channel.
func expectBlock(t *testing.T, c chan Message, b block.Block) {
	select {
	case msg := <-c:
		if bm, ok := msg.(BlockMessage); !ok {
			t.Fatalf("Message is not a BlockMessage; %v", msg)
		} else if !bm.Block.Equal(b) {
			t.Fatalf("expected %v, got %v", b, bm.Block)
		}

	case <-time.After(time.Second):
		t.Fatal("Block reception timed out")
	}
}

func TestMockAgent(t *testing.T) {
	b0, b1 := testBlock(0), testBlock(1)

	mock := newMockAgent(true)

	mock.MessageReceiver() <- BlockMessage{b0}
	mock.MessageReceiver() <- BlockMessage{b1}

	// Give mock's handler time to process the Messages..
	time.Sleep(250 * time.Millisecond)

	if msgs := mock.inbox(); len(msgs) != 2 {
		t.Fatalf("mock agent did not receied two messages; msgs := %v", msgs)
	} else if !msgs[0].(BlockMessage).Block.Equal(b0) {
		t.Fatalf("first message is not b0; %v %v", msgs[0], b0)
	} else if !msgs[1].(BlockMessage).Block.Equal(b1) {
		t.Fatalf("second message is not b1; %v %v", msgs[1], b1)
	}

	mock.MessageReceiver() <- ShutdownMessage{}

	// Give mock's handler time to process the Messages..
	time.Sleep(250 * time.Millisecond)

	if msgs := mock.inbox(); len(msgs) != 1 {
		t.Fatalf("mock agent did not received one message; msgs := %v", msgs)
	} else if _, ok := msgs[0].(ShutdownMessage); !ok {
		t.Fatalf("expected %v, got %v", ShutdownMessage{}, msgs[0])
	}
}
