package aggregation

import "errors"

// ErrInconsistent reports that the event chosen for extension vanished before
// the write landed. With per-key serialization in place this indicates a bug
// or an out-of-band writer.
var ErrInconsistent = errors.New("aggregation: latest event disappeared before update")
