package ragapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// fakeService is an in-memory stand-in for the remote RAG service, routed
// the way the real one is.
type fakeService struct {
	mu            sync.Mutex
	files         []fileInfo
	conversations map[string]conversationDTO
	messages      map[string][]messageDTO
	answer        string
	sources       []sourceDTO
	queryCalls    []queryRequest
	failQuery     int // non-zero: respond to /query_file with this status
}

func newFakeService() *fakeService {
	return &fakeService{
		conversations: make(map[string]conversationDTO),
		messages:      make(map[string][]messageDTO),
		answer:        "X is Y",
	}
}

func (f *fakeService) router() http.Handler {
	r := chi.NewRouter()

	r.Post("/upload_pdf", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseMultipartForm(32 << 20); err != nil {
			writeDetail(w, http.StatusBadRequest, "malformed multipart body")
			return
		}
		file, header, err := req.FormFile("file")
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "missing file field")
			return
		}
		defer file.Close()
		writeJSON(w, http.StatusOK, uploadResponse{
			Message:          "PDF uploaded successfully",
			UUID:             uuid.NewString(),
			OriginalFilename: header.Filename,
			FileSize:         header.Size,
			ChunksCreated:    12,
		})
	})

	r.Get("/list_files", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, listFilesResponse{TotalFiles: len(f.files), Files: f.files})
	})

	r.Post("/conversations", func(w http.ResponseWriter, req *http.Request) {
		var body createConversationRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeDetail(w, http.StatusBadRequest, "malformed body")
			return
		}
		id := f.addConversation(deref(body.FileUUID))
		writeJSON(w, http.StatusOK, createConversationResponse{ConversationID: id})
	})

	r.Get("/conversations", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		filter := req.URL.Query().Get("file_uuid")
		out := listConversationsResponse{Conversations: []conversationDTO{}}
		for _, c := range f.conversations {
			if filter == "" || deref(c.FileUUID) == filter {
				out.Conversations = append(out.Conversations, c)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})

	r.Get("/conversations/{id}", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := chi.URLParam(req, "id")
		if _, ok := f.conversations[id]; !ok {
			writeDetail(w, http.StatusNotFound, "Conversation not found")
			return
		}
		writeJSON(w, http.StatusOK, conversationDetailResponse{
			ConversationID: id,
			Messages:       f.messages[id],
		})
	})

	r.Delete("/conversations/{id}", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := chi.URLParam(req, "id")
		if _, ok := f.conversations[id]; !ok {
			writeDetail(w, http.StatusNotFound, "Conversation not found")
			return
		}
		delete(f.conversations, id)
		delete(f.messages, id)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Conversation deleted"})
	})

	r.Post("/query_file", func(w http.ResponseWriter, req *http.Request) {
		var body queryRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeDetail(w, http.StatusBadRequest, "malformed body")
			return
		}
		f.mu.Lock()
		f.queryCalls = append(f.queryCalls, body)
		failStatus := f.failQuery
		f.mu.Unlock()
		if failStatus != 0 {
			writeDetail(w, failStatus, "query failed")
			return
		}
		convID := deref(body.ConversationID)
		if convID == "" {
			convID = f.addConversation(deref(body.FileUUID))
		}
		writeJSON(w, http.StatusOK, queryResponse{
			Query:          body.Query,
			Answer:         f.answer,
			Sources:        f.sources,
			NumSources:     len(f.sources),
			ConversationID: convID,
		})
	})

	return r
}

func (f *fakeService) addConversation(fileUUID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.NewString()
	f.conversations[id] = conversationDTO{
		ID:        id,
		Title:     "New Chat",
		FileUUID:  nullable(fileUUID),
		CreatedAt: "2025-06-01T12:00:00",
		UpdatedAt: "2025-06-01T12:00:00",
	}
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// newTestClient starts the fake service and returns a client wired to it.
func newTestClient(t *testing.T) (*Client, *fakeService) {
	t.Helper()
	svc := newFakeService()
	server := httptest.NewServer(svc.router())
	t.Cleanup(server.Close)

	client, err := New(&Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, svc
}
