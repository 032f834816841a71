package models

// QuizQuestion holds one multiple-choice question. Answer is the index into
// Options of the correct choice.
type QuizQuestion struct {
	ID          string   `json:"id"`
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Answer      int      `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
	TopicID     string   `json:"topic_id,omitempty"`
}
