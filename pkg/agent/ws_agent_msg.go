// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"fmt"
	"io"
	"reflect"

	"github.com/dtn7/cboring"

	"github.com/chainprim/chainprim/pkg/block"
	"github.com/chainprim/chainprim/pkg/scale"
)

// webAgentMessage describes a message which might be sent over a WebSocketAgent.
// Implementations are available at the end of this file.
type webAgentMessage interface {
	// typeCode is an unique identifier for each message type.
	// A const list of those and a map to a specific type will follow this interface's definition.
	typeCode() uint64

	// CborMarshaler must only be implemented for the type's logic.
	// A generic wrapper for the typeCode is available in the marshalCbor and unmarshalCbor functions.
	cboring.CborMarshaler
}

const (
	wamStatusCode    uint64 = 0
	wamBlockCode     uint64 = 1
	wamSubscribeCode uint64 = 2
)

var wamMapping = map[uint64]reflect.Type{
	wamStatusCode:    reflect.TypeOf(wamStatus{}),
	wamBlockCode:     reflect.TypeOf(wamBlock{}),
	wamSubscribeCode: reflect.TypeOf(wamSubscribe{}),
}

// marshalCbor writes a webAgentMessage wrapped with its type code as CBOR.
func marshalCbor(wam webAgentMessage, w io.Writer) error {
	if err := cboring.WriteArrayLength(2, w); err != nil {
		return err
	}

	if err := cboring.WriteUInt(wam.typeCode(), w); err != nil {
		return err
	}

	if err := cboring.Marshal(wam, w); err != nil {
		return err
	}

	return nil
}

// unmarshalCbor reads a new webAgentMessage based on its type code from CBOR.
func unmarshalCbor(r io.Reader) (wam webAgentMessage, err error) {
	if n, arrErr := cboring.ReadArrayLength(r); arrErr != nil {
		err = arrErr
		return
	} else if n != 2 {
		err = fmt.Errorf("expected array of two elements, got %d", n)
		return
	}

	if n, typeErr := cboring.ReadUInt(r); typeErr != nil {
		err = typeErr
		return
	} else if t, ok := wamMapping[n]; !ok {
		err = fmt.Errorf("no known WAM type code %d", n)
		return
	} else {
		wam = reflect.New(t).Interface().(webAgentMessage)
	}

	if wamErr := cboring.Unmarshal(wam, r); wamErr != nil {
		err = wamErr
		return
	}

	return
}

// wamStatus is a webAgentMessage to acknowledge a previous message or report an error with a non-empty string.
// This message might be initiated from both a client or a server.
type wamStatus struct {
	errorMsg string
}

// newStatusMessage creates a new wamStatus webAgentMessage.
func newStatusMessage(err error) *wamStatus {
	if err == nil {
		return &wamStatus{""}
	} else {
		return &wamStatus{err.Error()}
	}
}

func (_ *wamStatus) typeCode() uint64 {
	return wamStatusCode
}

func (ws *wamStatus) MarshalCbor(w io.Writer) error {
	return cboring.WriteTextString(ws.errorMsg, w)
}

func (ws *wamStatus) UnmarshalCbor(r io.Reader) (err error) {
	ws.errorMsg, err = cboring.ReadTextString(r)
	return
}

// wamBlock is a webAgentMessage for sending a Block to a peer. The Block is
// carried in its canonical encoding as a CBOR byte string.
// This message might be initiated from both a client or a server.
type wamBlock struct {
	b block.Block
}

// newBlockMessage creates a new wamBlock webAgentMessage.
func newBlockMessage(b block.Block) *wamBlock {
	return &wamBlock{b}
}

func (_ *wamBlock) typeCode() uint64 {
	return wamBlockCode
}

func (wb *wamBlock) MarshalCbor(w io.Writer) error {
	return cboring.WriteByteString(scale.Encode(&wb.b), w)
}

func (wb *wamBlock) UnmarshalCbor(r io.Reader) error {
	data, err := cboring.ReadByteString(r)
	if err != nil {
		return err
	}
	return scale.Decode(data, &wb.b)
}

// wamSubscribe is a webAgentMessage sent from a client to the server to receive all newly imported Blocks.
// Its body is an empty CBOR array.
type wamSubscribe struct{}

// newSubscribeMessage creates a new wamSubscribe webAgentMessage.
func newSubscribeMessage() *wamSubscribe {
	return &wamSubscribe{}
}

func (_ *wamSubscribe) typeCode() uint64 {
	return wamSubscribeCode
}

func (_ *wamSubscribe) MarshalCbor(w io.Writer) error {
	return cboring.WriteArrayLength(0, w)
}

func (_ *wamSubscribe) UnmarshalCbor(r io.Reader) error {
	if n, err := cboring.ReadArrayLength(r); err != nil {
		return err
	} else if n != 0 {
		return fmt.Errorf("expected empty array, got %d elements", n)
	}
	return nil
}
