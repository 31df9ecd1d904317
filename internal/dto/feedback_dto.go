package dto

import "time"

type RateStageRequest struct {
	SessionId string `json:"session_id" validate:"required,uuid"`
	Stage     string `json:"stage" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=2000"`
}

type FinetuneRecordResponse struct {
	Id        string      `json:"id"`
	SessionId string      `json:"session_id"`
	Stage     string      `json:"stage"`
	Payload   interface{} `json:"payload"`
	Rating    *int        `json:"rating"`
	Comment   string      `json:"comment,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
