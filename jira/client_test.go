package jira

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testConfig(url string) Config {
	return Config{
		URL:     url,
		Project: "FLOW",
		Email:   "dev@example.com",
		Token:   "secret",
	}
}

func TestNewClient_Validation(t *testing.T) {
	t.Run("missing url", func(t *testing.T) {
		_, err := NewClient(Config{Project: "FLOW", Email: "a", Token: "b"})
		if !errors.Is(err, ErrNotConfigured) {
			t.Errorf("err = %v, want ErrNotConfigured", err)
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := NewClient(Config{URL: "https://x", Project: "FLOW"})
		if !errors.Is(err, ErrNoCredentials) {
			t.Errorf("err = %v, want ErrNoCredentials", err)
		}
	})
}

func TestSearchIssues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/3/search" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if _, _, ok := r.BasicAuth(); !ok {
			t.Error("missing basic auth")
		}

		var body struct {
			JQL string `json:"jql"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body.JQL != `status = "To Do" AND project = "FLOW"` {
			t.Errorf("jql = %q", body.JQL)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"issues": []map[string]any{
				{"key": "FLOW-1", "fields": map[string]any{"summary": "First issue"}},
				{"key": "FLOW-2", "fields": map[string]any{"summary": "Second issue"}},
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	issues, err := client.SearchIssues(context.Background(), "To Do")
	if err != nil {
		t.Fatalf("SearchIssues: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("got %d issues, want 2", len(issues))
	}
	if issues[0].Key != "FLOW-1" || issues[0].Summary != "First issue" {
		t.Errorf("issues[0] = %+v", issues[0])
	}
}

func TestTransitionIssue(t *testing.T) {
	var transitioned string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"transitions": []map[string]string{
					{"id": "11", "name": "To Do"},
					{"id": "31", "name": "In Progress"},
				},
			})
		case http.MethodPost:
			var body struct {
				Transition struct {
					ID string `json:"id"`
				} `json:"transition"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			transitioned = body.Transition.ID
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	t.Run("known transition", func(t *testing.T) {
		if err := client.TransitionIssue(context.Background(), "FLOW-1", "In Progress"); err != nil {
			t.Fatalf("TransitionIssue: %v", err)
		}
		if transitioned != "31" {
			t.Errorf("transition id = %q, want 31", transitioned)
		}
	})

	t.Run("unknown transition", func(t *testing.T) {
		err := client.TransitionIssue(context.Background(), "FLOW-1", "Nonexistent")
		if !errors.Is(err, ErrTransitionNotFound) {
			t.Errorf("err = %v, want ErrTransitionNotFound", err)
		}
	})
}

func TestAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorMessages":["bad jql"]}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.SearchIssues(context.Background(), "To Do")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
}
