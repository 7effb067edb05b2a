package core

import "testing"

func TestDirectoryTrimsRoomIDsEverywhere(t *testing.T) {
	d := NewDirectory()

	roomID, added := d.AddMember(" ABC123 ", "a", "alice")
	if roomID != "ABC123" || !added {
		t.Fatalf("unexpected add result: %q %v", roomID, added)
	}

	if !d.IsMember("ABC123", "a") || !d.IsMember("  ABC123", "a") {
		t.Fatal("trimmed and untrimmed ids must resolve to the same room")
	}

	if _, added := d.AddMember("ABC123", "b", "bob"); !added {
		t.Fatal("expected second member to be new")
	}
	if d.Len() != 1 {
		t.Fatalf("expected one room, got %d", d.Len())
	}

	if _, removed := d.RemoveMember(" ABC123", "a"); !removed {
		t.Fatal("expected removal via padded id to succeed")
	}
}

func TestDirectoryReAddUpdatesDisplayName(t *testing.T) {
	d := NewDirectory()

	d.AddMember("r", "a", "alice")
	if _, added := d.AddMember("r", "a", "alice2"); added {
		t.Fatal("re-add must not report a new member")
	}

	members := d.Members("r", "")
	if len(members) != 1 || members[0].Name != "alice2" {
		t.Fatalf("expected single updated entry, got %+v", members)
	}
}

func TestDirectoryDeletesEmptyRooms(t *testing.T) {
	d := NewDirectory()

	d.AddMember("r", "a", "alice")
	name, removed := d.RemoveMember("r", "a")
	if !removed || name != "alice" {
		t.Fatalf("unexpected removal: %q %v", name, removed)
	}
	if d.Len() != 0 {
		t.Fatal("room must be deleted the instant it empties")
	}

	// Unknown room and unknown member are no-ops, never errors.
	if _, removed := d.RemoveMember("r", "a"); removed {
		t.Fatal("removing from deleted room must be a no-op")
	}
	if got := d.Members("r", ""); len(got) != 0 {
		t.Fatalf("unknown room must list no members, got %+v", got)
	}
}

func TestDirectoryMembersExcludesSelf(t *testing.T) {
	d := NewDirectory()

	d.AddMember("r", "a", "alice")
	d.AddMember("r", "b", "bob")

	members := d.Members("r", "a")
	if len(members) != 1 || members[0].ID != "b" {
		t.Fatalf("expected only bob, got %+v", members)
	}
}

func TestDirectoryRoomOf(t *testing.T) {
	d := NewDirectory()

	if _, ok := d.RoomOf("a"); ok {
		t.Fatal("unknown connection must map to no room")
	}

	d.AddMember("r", "a", "alice")
	room, ok := d.RoomOf("a")
	if !ok || room != "r" {
		t.Fatalf("unexpected RoomOf result: %q %v", room, ok)
	}
}
