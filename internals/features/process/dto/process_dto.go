package dto

import "encoding/json"

type TranslateRequest struct {
	Content  string `json:"content" validate:"required"`
	Language string `json:"language" validate:"required,len=2"`
}

type TranslateResponse struct {
	Translated string `json:"translated"`
}

type QuestionsRequest struct {
	Content  string `json:"content" validate:"required"`
	Language string `json:"language" validate:"required"`
}

type QuestionsResponse struct {
	Questions json.RawMessage `json:"questions"`
}
