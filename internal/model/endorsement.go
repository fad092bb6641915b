package model

import (
	"time"

	"github.com/google/uuid"
)

type Endorsement struct {
	ID         uuid.UUID `json:"id"`
	EndorserID uuid.UUID `json:"endorser_id"`
	EndorsedID uuid.UUID `json:"endorsed_id"`
	Skill      string    `json:"skill"`
	Comment    *string   `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

type FullEndorsement struct {
	Endorsement
	Endorser AgentSummary `json:"endorser"`
}
