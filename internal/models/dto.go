package models

type ParseResumeRequest struct {
	ResumeText string `json:"resume_text"`
	FileName   string `json:"file_name,omitempty"`
}

type ParseResumeResponse struct {
	ID           string         `json:"id,omitempty"`
	ResumeText   string         `json:"resumeText"`
	ParsedResume *ResumeProfile `json:"parsedResume"`
	Mode         ParseMode      `json:"mode"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message             string         `json:"message"`
	UserProfile         *ResumeProfile `json:"user_profile,omitempty"`
	ConversationHistory []ChatMessage  `json:"conversation_history,omitempty"`
}

type ChatSource struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

type ChatResponse struct {
	Response string       `json:"response"`
	Sources  []ChatSource `json:"sources,omitempty"`
	Mode     ParseMode    `json:"mode"`
}

type RetrieveRequest struct {
	Query       string         `json:"query,omitempty"`
	UserProfile *ResumeProfile `json:"user_profile,omitempty"`
	TopK        int            `json:"top_k,omitempty"`
}

type RetrievedDoc struct {
	Content string  `json:"content"`
	Score   float32 `json:"score"`
	DocType string  `json:"doc_type"`
	Source  string  `json:"source,omitempty"`
}

// RetrievalExplainability records how a retrieval was performed so the
// transparency panel can show its work.
type RetrievalExplainability struct {
	Collection      string   `json:"collection"`
	RetrievalMethod string   `json:"retrieval_method"`
	TopK            int      `json:"top_k"`
	Sources         []string `json:"sources"`
}

type RetrieveResponse struct {
	Query          string                    `json:"query"`
	TotalResults   int                       `json:"total_results"`
	Results        []RetrievedDoc            `json:"results"`
	Categorized    map[string][]RetrievedDoc `json:"categorized"`
	Explainability RetrievalExplainability   `json:"explainability"`
}

type ResumeResponse struct {
	ID           string         `json:"id"`
	FileName     string         `json:"file_name"`
	ParsedResume *ResumeProfile `json:"parsedResume"`
	Mode         ParseMode      `json:"mode"`
	CreatedAt    string         `json:"created_at"`
}
