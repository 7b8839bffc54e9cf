package file

import "time"

// SetClockForTest replaces the store clock.
func (s *Store) SetClockForTest(now func() time.Time) {
	s.now = now
}

// FilenameForTest exposes the file a key is stored in.
func (s *Store) FilenameForTest(key string) string {
	return s.filename(key)
}
