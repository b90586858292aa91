package storage

// CommandHashes returns the hashes of the command definitions last
// registered in scope, keyed by command name.
func (s *Storage) CommandHashes(scope string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getOrCreateRecord(scope)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(record.CommandHashes))
	for k, v := range record.CommandHashes {
		out[k] = v
	}
	return out, nil
}

// SetCommandHashes replaces the registered hashes for scope.
func (s *Storage) SetCommandHashes(scope string, hashes map[string]string) error {
	return s.update(scope, func(r *Record) {
		r.CommandHashes = make(map[string]string, len(hashes))
		for k, v := range hashes {
			r.CommandHashes[k] = v
		}
	})
}
