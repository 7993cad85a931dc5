package conversation

import (
	"time"

	"github.com/civiclink/civiclink/internal/chat"
)

// replyMsg is sent when the reply to the pending problem is in the log.
type replyMsg struct {
	Reply chat.Message
}

// spinnerTickMsg animates the waiting indicator.
type spinnerTickMsg time.Time
