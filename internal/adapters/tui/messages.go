package tui

import "go.trai.ch/partout/internal/core/domain"

// MsgEvent carries an operation event into the model.
type MsgEvent struct {
	Event domain.Event
}

// MsgCatalog replaces the entry list after the store changed on disk.
type MsgCatalog struct {
	Entries []domain.Entry
}

// msgRequestFailed reports an operation that could not be dispatched.
type msgRequestFailed struct {
	err error
}
