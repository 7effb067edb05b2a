package core

import "strings"

// Directory owns the room id -> membership mapping. A room exists in
// the directory only while it has at least one member: it is created
// on first join and deleted the moment the last member is removed.
//
// The directory is not safe for concurrent use; the hub goroutine is
// its single owner.
type Directory struct {
	rooms map[string]*Room
}

// NewDirectory constructs an empty directory.
func NewDirectory() *Directory {
	return &Directory{rooms: make(map[string]*Room)}
}

// NormalizeRoomID trims surrounding whitespace from a user-supplied
// room id. Every directory operation applies it, so " R1 " and "R1"
// always resolve to the same room.
func NormalizeRoomID(roomID string) string {
	return strings.TrimSpace(roomID)
}

// AddMember inserts or updates a member entry, creating the room if
// absent. Returns the normalized room id and whether the connection
// was newly added (false means the display name was updated).
func (d *Directory) AddMember(roomID, connID, displayName string) (string, bool) {
	roomID = NormalizeRoomID(roomID)
	room, ok := d.rooms[roomID]
	if !ok {
		room = NewRoom(roomID)
		d.rooms[roomID] = room
	}
	return roomID, room.Add(connID, displayName)
}

// RemoveMember deletes a member entry, deleting the room itself if it
// becomes empty. Returns the removed member's display name. A missing
// room or member is a no-op.
func (d *Directory) RemoveMember(roomID, connID string) (string, bool) {
	roomID = NormalizeRoomID(roomID)
	room, ok := d.rooms[roomID]
	if !ok {
		return "", false
	}
	name, removed := room.Remove(connID)
	if room.Empty() {
		delete(d.rooms, roomID)
	}
	return name, removed
}

// IsMember reports whether the connection is currently a member of
// the room.
func (d *Directory) IsMember(roomID, connID string) bool {
	room, ok := d.rooms[NormalizeRoomID(roomID)]
	return ok && room.Has(connID)
}

// Members returns a snapshot of the room's members excluding the
// given connection id. Unknown rooms yield an empty slice, never an
// error.
func (d *Directory) Members(roomID, exclude string) []Member {
	room, ok := d.rooms[NormalizeRoomID(roomID)]
	if !ok {
		return nil
	}
	return room.Members(exclude)
}

// RoomOf is a best-effort lookup of the room currently containing the
// connection, used on disconnect.
func (d *Directory) RoomOf(connID string) (string, bool) {
	for id, room := range d.rooms {
		if room.Has(connID) {
			return id, true
		}
	}
	return "", false
}

// Len returns the number of live rooms.
func (d *Directory) Len() int {
	return len(d.rooms)
}

// RoomInfo is a read-only snapshot of one room, served by the
// diagnostic HTTP surface.
type RoomInfo struct {
	Name    string
	Members []Member
}

// Snapshot returns a copy of the whole directory.
func (d *Directory) Snapshot() []RoomInfo {
	out := make([]RoomInfo, 0, len(d.rooms))
	for id, room := range d.rooms {
		out = append(out, RoomInfo{Name: id, Members: room.Members("")})
	}
	return out
}
