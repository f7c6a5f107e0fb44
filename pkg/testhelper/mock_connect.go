package testhelper

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ConnectInstance is one instance served by MockConnectServer
type ConnectInstance struct {
	ID    string
	Alias string
}

// MockConnectServer fakes the Amazon Connect ListInstances endpoint
type MockConnectServer struct {
	Server *httptest.Server

	mu        sync.Mutex
	Instances []ConnectInstance
	PageSize  int
	Requests  int
	FailWith  int
}

// NewMockConnectServer creates a new mock Connect API server
func NewMockConnectServer(t *testing.T) *MockConnectServer {
	mock := &MockConnectServer{PageSize: 10}

	mux := http.NewServeMux()
	mux.HandleFunc("/instance", func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		defer mock.mu.Unlock()

		mock.Requests++
		if mock.FailWith != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Amzn-ErrorType", "AccessDeniedException")
			w.WriteHeader(mock.FailWith)
			w.Write([]byte(`{"message":"access denied"}`))
			return
		}

		start := 0
		if token := r.URL.Query().Get("nextToken"); token != "" {
			for i, inst := range mock.Instances {
				if inst.ID == token {
					start = i
					break
				}
			}
		}
		end := start + mock.PageSize
		if end > len(mock.Instances) {
			end = len(mock.Instances)
		}

		summaries := make([]map[string]string, 0, end-start)
		for _, inst := range mock.Instances[start:end] {
			s := map[string]string{"Id": inst.ID}
			if inst.Alias != "" {
				s["InstanceAlias"] = inst.Alias
			}
			summaries = append(summaries, s)
		}

		resp := map[string]any{"InstanceSummaryList": summaries}
		if end < len(mock.Instances) {
			resp["NextToken"] = mock.Instances[end].ID
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	mock.Server = httptest.NewServer(mux)
	t.Cleanup(mock.Server.Close)

	return mock
}

// URL returns the base URL of the mock server
func (m *MockConnectServer) URL() string {
	return m.Server.URL
}

// RequestCount returns how many ListInstances calls were served
func (m *MockConnectServer) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Requests
}
