package game

// EffectStore is a keyed view over a room's status effects: participant
// UUID to effect records. It mutates the effects stored on the roster so
// the room stays the single owner of participant state.
type EffectStore struct {
	g *Game
}

// NewEffectStore builds a store over one game room.
func NewEffectStore(g *Game) *EffectStore {
	return &EffectStore{g: g}
}

// IsStunned reports whether the participant carries an active stun.
func (s *EffectStore) IsStunned(participantID string) bool {
	p := s.g.ParticipantByUUID(participantID)
	if p == nil {
		return false
	}
	return p.HasEffect(EffectStunned)
}

// OfType returns the active effects of one kind for a participant.
func (s *EffectStore) OfType(participantID, kind string) []StatusEffect {
	p := s.g.ParticipantByUUID(participantID)
	if p == nil {
		return nil
	}
	var out []StatusEffect
	for i := range p.StatusEffects {
		if p.StatusEffects[i].Kind == kind {
			out = append(out, p.StatusEffects[i])
		}
	}
	return out
}

// Add applies an effect to a participant. An existing effect of the same
// kind is refreshed in place rather than stacked.
func (s *EffectStore) Add(participantID string, e StatusEffect) {
	p := s.g.ParticipantByUUID(participantID)
	if p == nil {
		return
	}
	for i := range p.StatusEffects {
		if p.StatusEffects[i].Kind == e.Kind {
			p.StatusEffects[i] = e
			return
		}
	}
	p.StatusEffects = append(p.StatusEffects, e)
}

// Remove drops every effect of one kind from a participant.
func (s *EffectStore) Remove(participantID, kind string) {
	p := s.g.ParticipantByUUID(participantID)
	if p == nil {
		return
	}
	kept := p.StatusEffects[:0]
	for i := range p.StatusEffects {
		if p.StatusEffects[i].Kind != kind {
			kept = append(kept, p.StatusEffects[i])
		}
	}
	p.StatusEffects = kept
}

// DecrementDurations reduces every effect's remaining turns by one and
// removes the ones that reach zero, returning the expired records.
func (s *EffectStore) DecrementDurations(participantID string) []StatusEffect {
	p := s.g.ParticipantByUUID(participantID)
	if p == nil {
		return nil
	}
	var expired []StatusEffect
	kept := p.StatusEffects[:0]
	for i := range p.StatusEffects {
		e := p.StatusEffects[i]
		e.TurnsLeft--
		if e.TurnsLeft <= 0 {
			expired = append(expired, e)
			continue
		}
		kept = append(kept, e)
	}
	p.StatusEffects = kept
	return expired
}
