package realtime

import (
	"context"

	"github.com/KhadeerBasha1232/letter-backend/core"
	"github.com/sirupsen/logrus"
)

// Coordinator handles all session events for the realtime path: joins,
// resync requests, content updates, leaves and disconnects. Every event runs
// through the per-letter sequencer, so for one letter id the store writes and
// broadcasts happen in arrival order; events for different letters do not
// wait on each other.
//
// Conflict policy is last-writer-wins: when two sessions update the same
// letter in close succession, the store ends up holding whichever update was
// sequenced last, and the earlier content survives only in what was already
// broadcast.
type Coordinator struct {
	store    core.LetterStore
	registry *Registry
	seq      *Sequencer
}

func NewCoordinator(store core.LetterStore, registry *Registry, seq *Sequencer) *Coordinator {
	return &Coordinator{store: store, registry: registry, seq: seq}
}

// OnJoin registers the session in the room for letterID and replies with the
// persisted content to the joining session only. A join for a letter that
// does not exist is rejected outright: the session gets a letterError and is
// not registered anywhere.
func (c *Coordinator) OnJoin(ctx context.Context, s *Session, letterID string) {
	c.seq.Do(letterID, func() {
		log := logrus.WithFields(logrus.Fields{"session_id": s.ID(), "letter_id": letterID})

		letter, err := c.store.FindByID(ctx, letterID)
		if err != nil {
			log.WithError(err).Warn("join rejected")
			s.Send(EventLetterError, "letter not found")
			return
		}

		c.registry.Add(letterID, s)
		log.Debug("session joined letter")
		s.Send(EventLatestContent, letter.Content)
	})
}

// OnRequestLatest re-reads the persisted content and replies to the
// requesting session only. It bypasses the room entirely so a client can
// resynchronize after suspected message loss; membership is not required.
func (c *Coordinator) OnRequestLatest(ctx context.Context, s *Session, letterID string) {
	c.seq.Do(letterID, func() {
		letter, err := c.store.FindByID(ctx, letterID)
		if err != nil {
			logrus.WithFields(logrus.Fields{"session_id": s.ID(), "letter_id": letterID}).
				WithError(err).Warn("latest content request failed")
			s.Send(EventLetterError, "letter not found")
			return
		}
		s.Send(EventLatestContent, letter.Content)
	})
}

// OnUpdate persists the new content and broadcasts it to every other member
// of the letter's room. The two effects are independent: a failed write is
// reported back to the originating session as a non-fatal notice, but the
// broadcast to the remaining viewers still goes out. Live viewers follow the
// in-memory stream; the store catches up on the next successful write or
// when a client asks for the latest content.
func (c *Coordinator) OnUpdate(ctx context.Context, s *Session, letterID, content string) {
	c.seq.Do(letterID, func() {
		log := logrus.WithFields(logrus.Fields{"session_id": s.ID(), "letter_id": letterID})

		if err := c.store.UpdateContent(ctx, letterID, content); err != nil {
			log.WithError(err).Error("failed to persist update")
			s.Send(EventLetterError, "update could not be saved")
		}

		for _, member := range c.registry.Members(letterID, s) {
			member.Send(EventReceiveUpdate, content)
		}
	})
}

// OnLeave removes the session from the letter's room. Leaving a room the
// session is not in is a no-op.
func (c *Coordinator) OnLeave(s *Session, letterID string) {
	c.seq.Do(letterID, func() {
		c.registry.Remove(letterID, s)
	})
}

// OnDisconnect removes the session from whatever room it is in. It is the
// unconditional cleanup counterpart to an explicit leave; an in-flight write
// for the same letter finishes first because both run on the same queue.
func (c *Coordinator) OnDisconnect(s *Session) {
	letterID, ok := c.registry.Room(s)
	if !ok {
		return
	}
	c.seq.Do(letterID, func() {
		c.registry.Remove(letterID, s)
	})
	logrus.WithFields(logrus.Fields{"session_id": s.ID(), "letter_id": letterID}).
		Debug("session disconnected")
}
