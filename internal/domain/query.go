package domain

// DefaultTopK is the retrieval breadth used when the caller does not set one.
const DefaultTopK = 3

// QueryRequest is a scoped retrieval-augmented question.
type QueryRequest struct {
	Text           string
	TopK           int
	DocumentID     string // empty means the whole corpus
	ConversationID string // empty means the server creates one implicitly
}

// QueryResult is the server's answer to a QueryRequest.
type QueryResult struct {
	Query          string // echoed question
	Answer         string
	Sources        []Source
	ConversationID string // always set; newly minted when the request carried none
}
