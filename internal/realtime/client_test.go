package realtime

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	groups  []string
	directs []string
}

func (d *recordingDispatcher) SendGroup(_ context.Context, propertyID, senderID uuid.UUID, content string) error {
	d.groups = append(d.groups, content)
	return nil
}

func (d *recordingDispatcher) SendDirect(_ context.Context, senderID, recipientID uuid.UUID, content string) error {
	d.directs = append(d.directs, content)
	return nil
}

func TestHandleEventJoinGroupChat(t *testing.T) {
	hub := NewHub()
	s := newTestSession(uuid.New(), 4)
	s.hub = hub

	propertyID := uuid.New()
	frame := []byte(`{"event":"joinGroupChat","data":{"propertyId":"` + propertyID.String() + `"}}`)
	s.handleEvent(&recordingDispatcher{}, frame)

	require.Equal(t, 1, hub.RoomSize(GroupRoom(propertyID)))
}

func TestHandleEventJoinDirectMessage(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	s := newTestSession(userID, 4)
	s.hub = hub

	recipientID := uuid.New()
	frame := []byte(`{"event":"joinDirectMessage","data":{"recipientId":"` + recipientID.String() + `"}}`)
	s.handleEvent(&recordingDispatcher{}, frame)

	// The session sits in the same room its counterpart would derive.
	require.Equal(t, 1, hub.RoomSize(DirectRoom(recipientID, userID)))
}

func TestHandleEventDispatchesMessages(t *testing.T) {
	hub := NewHub()
	s := newTestSession(uuid.New(), 4)
	s.hub = hub
	d := &recordingDispatcher{}

	s.handleEvent(d, []byte(`{"event":"sendGroupMessage","data":{"propertyId":"`+uuid.NewString()+`","content":"hello all"}}`))
	s.handleEvent(d, []byte(`{"event":"sendDirectMessage","data":{"recipientId":"`+uuid.NewString()+`","content":"hello you"}}`))

	require.Equal(t, []string{"hello all"}, d.groups)
	require.Equal(t, []string{"hello you"}, d.directs)
}

func TestHandleEventIgnoresJunk(t *testing.T) {
	hub := NewHub()
	s := newTestSession(uuid.New(), 4)
	s.hub = hub
	d := &recordingDispatcher{}

	s.handleEvent(d, []byte(`not json at all`))
	s.handleEvent(d, []byte(`{"event":"sendGroupMessage","data":{"propertyId":"`+uuid.NewString()+`","content":""}}`))
	s.handleEvent(d, []byte(`{"event":"unknownEvent","data":{}}`))

	require.Empty(t, d.groups)
	require.Empty(t, d.directs)
}
