package main

import (
	"context"

	"olas-server/internal/nostr"
	"olas-server/internal/types"
)

// publish signs unsigned with the session key and sends it to the configured
// relays. When no relay accepts it the event is kept in the outbox and
// published is false.
func (s *Server) publish(ctx context.Context, session *types.Session, unsigned types.UnsignedEvent) (evt *types.Event, published bool, err error) {
	signer, err := nostr.NewKeySigner(session.PrivKey)
	if err != nil {
		return nil, false, err
	}
	if tag := s.cfg.ClientTag(); tag != nil {
		unsigned.Tags = append(unsigned.Tags, tag)
	}
	evt, err = signer.Sign(unsigned)
	if err != nil {
		return nil, false, err
	}

	logger := LoggerFromContext(ctx).With("event_id", evt.ID, "kind", evt.Kind)
	results, perr := s.relays.Publish(ctx, s.cfg.Relays, evt)
	if perr == nil {
		publishSuccessTotal.Add(1)
		logger.Info("event published", "relays", len(results))
		return evt, true, nil
	}

	publishFailureTotal.Add(1)
	logger.Warn("publish failed on every relay, keeping in outbox", "error", perr)
	if err := s.outbox.Add(ctx, session.UserPubKey, evt, s.cfg.Relays, perr.Error()); err != nil {
		return evt, false, err
	}
	return evt, false, nil
}
