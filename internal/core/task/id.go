package task

import (
	"strconv"
	"time"

	"github.com/colonyops/tasklist/pkg/randid"
)

const idSuffixLen = 5

// NewID returns a session-unique id: the base-36 millisecond clock followed
// by a short random suffix.
func NewID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 36) + randid.Generate(idSuffixLen)
}
