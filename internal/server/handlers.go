package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/astralabs/astra/internal/memory"
	"github.com/astralabs/astra/internal/tools"
)

type chatRequest struct {
	Message    string `json:"message"`
	VisionMode bool   `json:"vision_mode,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "No JSON data provided")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "No message provided")
		return
	}

	s.log.Info().Str("message", truncate(req.Message, 50)).Msg("chat request")

	s.mu.Lock()
	env := s.brain.Process(r.Context(), req.Message, req.VisionMode)
	s.mu.Unlock()

	s.log.Info().Str("reply", truncate(env.Reply, 50)).Str("agent", env.Agent).Msg("chat reply")
	writeJSON(w, http.StatusOK, env)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	models := s.brain.Selector().Available()
	doc := s.brain.Store().Load()
	caps := s.brain.Capabilities().Status()
	current := s.brain.Selector().Current()
	s.mu.Unlock()

	status := "ok"
	if len(models) == 0 {
		status = "degraded"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusMultiStatus
	}
	writeJSON(w, code, map[string]any{
		"status":       status,
		"model":        current,
		"models":       models,
		"facts_stored": len(doc.UserFacts),
		"capabilities": caps,
	})
}

func (s *Server) handleGetCapabilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.brain.Capabilities().Status())
}

func (s *Server) handleSetCapability(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "No JSON data provided")
		return
	}

	if !s.brain.Capabilities().Set(name, body.Enabled) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Unknown capability: %s", name))
		return
	}

	s.log.Info().Str("capability", name).Bool("enabled", body.Enabled).Msg("capability updated")
	writeJSON(w, http.StatusOK, map[string]any{
		"capability": name,
		"enabled":    body.Enabled,
		"status":     "updated",
	})
}

type executeRequest struct {
	Tool     string         `json:"tool"`
	Params   map[string]any `json:"params"`
	Approved bool           `json:"approved"`
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "No JSON data provided")
		return
	}
	if req.Tool == "" {
		writeError(w, http.StatusBadRequest, "No tool specified")
		return
	}

	if tools.RequiresApproval(req.Tool) && !req.Approved {
		writeJSON(w, http.StatusAccepted, map[string]any{
			"status":  "approval_required",
			"tool":    req.Tool,
			"params":  req.Params,
			"message": fmt.Sprintf("Tool '%s' requires explicit approval. Send again with approved: true", req.Tool),
		})
		return
	}

	result, err := s.executeTool(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.log.Info().Str("tool", req.Tool).Msg("tool executed")
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"tool":   req.Tool,
		"result": result,
	})
}

func (s *Server) executeTool(r *http.Request, req *executeRequest) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch req.Tool {
	case tools.ToolPythonSandbox:
		code, _ := req.Params["code"].(string)
		if code == "" {
			return nil, fmt.Errorf("no code provided")
		}
		return s.brain.Sandbox().Execute(r.Context(), code), nil

	case tools.ToolGit:
		message, _ := req.Params["message"].(string)
		if message == "" {
			message = "Update files"
		}
		var files []string
		if raw, ok := req.Params["files"].([]any); ok {
			for _, f := range raw {
				if name, ok := f.(string); ok {
					files = append(files, name)
				}
			}
		}
		out, err := s.brain.Git().ExecuteCommit(r.Context(), message, files)
		if err != nil {
			return nil, err
		}
		return map[string]string{"output": out}, nil
	}

	return nil, fmt.Errorf("tool '%s' cannot be executed directly", req.Tool)
}

func (s *Server) handleGetMemory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := s.brain.Store().Load()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, doc)
}

type memoryUpdate struct {
	UserFacts   []memory.Fact     `json:"user_facts"`
	Preferences map[string]string `json:"preferences"`
}

func (s *Server) handleUpdateMemory(w http.ResponseWriter, r *http.Request) {
	var update memoryUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "No JSON data provided")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.brain.Store().Load()
	if update.UserFacts != nil {
		doc.UserFacts = update.UserFacts
	}
	for key, value := range update.Preferences {
		switch key {
		case "name":
			doc.Preferences.Name = value
		case "location":
			doc.Preferences.Location = value
		case "color":
			doc.Preferences.FavoriteColor = value
		case "food":
			doc.Preferences.FavoriteFood = value
		default:
			if doc.Preferences.Extra == nil {
				doc.Preferences.Extra = map[string]string{}
			}
			doc.Preferences.Extra[key] = value
		}
	}

	if err := s.brain.Store().Save(doc); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) handleClearMemory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := memory.NewDocument(s.brain.OwnerName())
	if err := s.brain.Store().Save(doc); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.brain.ClearHistory()

	s.log.Info().Msg("memory cleared")
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleGetFacts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := s.brain.Store().Load()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"facts": doc.UserFacts})
}

func (s *Server) handleGetSummaries(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := s.brain.Store().Load()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"summary": doc.ConversationSummary})
}

func (s *Server) handleGetTasks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := s.brain.Store().Load()
	tasks := memory.NewTaskManager(doc).List("")
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks, "count": len(tasks)})
}

func (s *Server) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.brain.Selector().Info())
}

func (s *Server) handleModelSwitch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Model string `json:"model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Model == "" {
		writeError(w, http.StatusBadRequest, "No model specified")
		return
	}

	if !s.brain.Selector().Force(body.Model) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Model '%s' not available", body.Model))
		return
	}

	s.log.Info().Str("model", body.Model).Msg("model switched")
	writeJSON(w, http.StatusOK, map[string]string{"status": "switched", "model": body.Model})
}

func (s *Server) handleModelAvailable(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"models": s.brain.Selector().Available()})
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
