package models

// SavedMessage is one final transcript turn of a voice call. It is kept in
// memory for the call and handed to feedback generation, never stored alone.
type SavedMessage struct {
	Role    string `json:"role"` // user, system or assistant
	Content string `json:"content"`
}
