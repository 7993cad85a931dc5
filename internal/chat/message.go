// Package chat holds the conversation log and the service that runs one
// conversational turn: responder, classifier and statistics.
package chat

import (
	"time"

	"github.com/civiclink/civiclink/internal/taxonomy"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Source is a web page the responder grounded its reply on.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// Message is one entry of the conversation log. Model replies to a problem
// carry the classification of that problem and the problem text itself.
type Message struct {
	ID              string               `json:"id"`
	Role            Role                 `json:"role"`
	Text            string               `json:"text"`
	URLs            []Source             `json:"urls,omitempty"`
	Category        taxonomy.Category    `json:"category,omitempty"`
	SubCategory     taxonomy.SubCategory `json:"subCategory,omitempty"`
	OriginalProblem string               `json:"originalProblem,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`

	// Pending marks a user message still waiting for its reply.
	// It is never persisted.
	Pending bool `json:"-"`
}

// Classified reports whether the message carries a classification.
func (m Message) Classified() bool {
	return m.Category != "" && m.SubCategory != ""
}
