package realtime

import "testing"

func TestAddAndMembers(t *testing.T) {
	reg := NewRegistry()
	a := NewSession("a", nil)
	b := NewSession("b", nil)

	reg.Add("letter-1", a)
	reg.Add("letter-1", b)

	members := reg.Members("letter-1", a)
	if len(members) != 1 || members[0] != b {
		t.Fatalf("expected only b in fan-out set, got %d members", len(members))
	}

	if room, ok := reg.Room(a); !ok || room != "letter-1" {
		t.Errorf("expected a to be in letter-1, got %q (ok=%v)", room, ok)
	}
}

func TestMembersOfUnknownRoomIsEmpty(t *testing.T) {
	reg := NewRegistry()
	if members := reg.Members("nope", nil); len(members) != 0 {
		t.Errorf("expected no members for unknown room, got %d", len(members))
	}
}

func TestRemoveDeletesEmptyRoom(t *testing.T) {
	reg := NewRegistry()
	a := NewSession("a", nil)

	reg.Add("letter-1", a)
	if reg.RoomCount() != 1 {
		t.Fatalf("expected 1 room, got %d", reg.RoomCount())
	}

	reg.Remove("letter-1", a)
	if reg.RoomCount() != 0 {
		t.Errorf("expected room to be deleted once empty, got %d rooms", reg.RoomCount())
	}
	if _, ok := reg.Room(a); ok {
		t.Error("expected a to have no current room after removal")
	}
}

func TestRemoveNonMemberIsNoOp(t *testing.T) {
	reg := NewRegistry()
	a := NewSession("a", nil)
	b := NewSession("b", nil)

	reg.Add("letter-1", a)
	reg.Remove("letter-1", b)
	reg.Remove("letter-2", a)

	if reg.RoomCount() != 1 {
		t.Errorf("expected letter-1 room to survive, got %d rooms", reg.RoomCount())
	}
	if members := reg.Members("letter-1", nil); len(members) != 1 {
		t.Errorf("expected a to remain a member, got %d members", len(members))
	}
}

func TestAddMovesSessionBetweenRooms(t *testing.T) {
	reg := NewRegistry()
	a := NewSession("a", nil)

	reg.Add("letter-1", a)
	reg.Add("letter-2", a)

	if members := reg.Members("letter-1", nil); len(members) != 0 {
		t.Errorf("expected a to have left letter-1, got %d members", len(members))
	}
	if room, _ := reg.Room(a); room != "letter-2" {
		t.Errorf("expected a to be in letter-2, got %q", room)
	}
	if reg.RoomCount() != 1 {
		t.Errorf("expected emptied letter-1 room to be deleted, got %d rooms", reg.RoomCount())
	}
}

func TestRemoveSessionReportsRoom(t *testing.T) {
	reg := NewRegistry()
	a := NewSession("a", nil)
	reg.Add("letter-1", a)

	room, ok := reg.RemoveSession(a)
	if !ok || room != "letter-1" {
		t.Fatalf("expected removal from letter-1, got %q (ok=%v)", room, ok)
	}
	if _, ok := reg.RemoveSession(a); ok {
		t.Error("expected second removal to report no room")
	}
}
