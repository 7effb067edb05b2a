package core

// Member is one (connection id, display name) pair inside a room.
type Member struct {
	ID   string
	Name string
}

// Room groups connections that can signal each other.
// Member order carries no meaning.
type Room struct {
	Name    string
	members map[string]string // connection id -> display name
}

// NewRoom constructs a room with no members.
func NewRoom(name string) *Room {
	return &Room{
		Name:    name,
		members: make(map[string]string),
	}
}

// Add inserts or updates a member entry. Returns true if the
// connection was not previously a member.
func (r *Room) Add(connID, displayName string) bool {
	_, exists := r.members[connID]
	r.members[connID] = displayName
	return !exists
}

// Remove deletes a member entry and returns its display name.
func (r *Room) Remove(connID string) (string, bool) {
	name, exists := r.members[connID]
	if !exists {
		return "", false
	}
	delete(r.members, connID)
	return name, true
}

// Has reports whether the connection is a member of the room.
func (r *Room) Has(connID string) bool {
	_, ok := r.members[connID]
	return ok
}

// Members returns a snapshot of all members except the excluded
// connection id. Pass "" to include everyone.
func (r *Room) Members(exclude string) []Member {
	out := make([]Member, 0, len(r.members))
	for id, name := range r.members {
		if id == exclude {
			continue
		}
		out = append(out, Member{ID: id, Name: name})
	}
	return out
}

// Empty returns true if no members remain.
func (r *Room) Empty() bool {
	return len(r.members) == 0
}
