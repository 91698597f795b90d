// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package agent

// ApplicationAgent is an interface to describe application agents, which can both receive and transmit Blocks.
// Two channels must be available, one for receiving and one for sending Messages.
//
// On closing down, an ApplicationAgent MUST close its MessageSender channel and MUST leave the MessageReceiver
// open. The supervising code MUST close the MessageReceiver of its subjects.
type ApplicationAgent interface {
	// Subscribed reports if this ApplicationAgent wants to receive newly imported Blocks.
	Subscribed() bool

	// MessageReceiver is a channel on which the ApplicationAgent must listen for incoming Messages.
	MessageReceiver() chan Message

	// MessageSender is a channel to which the ApplicationAgent can send outgoing Messages.
	MessageSender() chan Message
}

// AppAgentAccepts checks if a Message should be delivered to an ApplicationAgent.
func AppAgentAccepts(app ApplicationAgent, msg Message) bool {
	return !msg.ForSubscribers() || app.Subscribed()
}
