package brain

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/astralabs/astra/internal/llm"
	"github.com/astralabs/astra/internal/memory"
	"github.com/astralabs/astra/internal/tools"
)

var (
	taskPhrasePattern  = regexp.MustCompile(`(?i)(?:add task|new task|remind me to|todo|task:)\s+(.+)`)
	commitMsgPattern   = regexp.MustCompile(`(?i)commit\s+["']?(.+?)["']?$`)
	listFilesKeywords  = []string{"list", "show files", "what files"}
	taskAddKeywords    = []string{"add task", "new task", "remind me", "todo"}
	taskListKeywords   = []string{"my tasks", "show tasks", "list tasks"}
	taskDoneKeywords   = []string{"complete", "done", "finish"}
	priorityIndicators = map[string]string{"high": "🔴", "medium": "🟡", "low": "🟢"}
)

// handleTool dispatches a detected tool request. A nil return means the tool
// had nothing to say and the pipeline continues.
func (b *Brain) handleTool(ctx context.Context, userInput, tool string, doc *memory.Document, userName, emotionLabel string) *Envelope {
	b.log.Info().Str("tool", tool).Msg("tool request")

	switch tool {
	case tools.ToolFileReader:
		return b.handleFileReader(ctx, userInput, emotionLabel)
	case tools.ToolSystemMonitor:
		return b.handleSystemMonitor(userInput, emotionLabel)
	case tools.ToolTaskManager:
		return b.handleTasks(userInput, doc, emotionLabel)
	case tools.ToolGit:
		return b.handleGit(ctx, userInput, emotionLabel)
	case tools.ToolPythonSandbox:
		return b.handlePython(userInput, emotionLabel)
	}
	return nil
}

func (b *Brain) handleFileReader(ctx context.Context, userInput, emotionLabel string) *Envelope {
	filepath := tools.ExtractFilePath(userInput)

	if filepath == "" {
		lower := strings.ToLower(userInput)
		wantsListing := false
		for _, kw := range listFilesKeywords {
			if strings.Contains(lower, kw) {
				wantsListing = true
				break
			}
		}

		var reply string
		if wantsListing {
			dir, entries, err := b.fileReader.List(".")
			if err != nil {
				reply = fmt.Sprintf("Error: %v", err)
			} else {
				var lines []string
				for i, e := range entries {
					if i >= 20 {
						break
					}
					icon := "📄"
					if e.IsDir {
						icon = "📁"
					}
					lines = append(lines, icon+" "+e.Name)
				}
				reply = fmt.Sprintf("Files in %s:\n%s", dir, strings.Join(lines, "\n"))
				if len(entries) > 20 {
					reply += fmt.Sprintf("\n... and %d more", len(entries)-20)
				}
			}
		} else {
			reply = "Which file should I read? Try: 'read main.go'"
		}
		return buildReply(reply, emotionLabel, "file_operation", "file_reader",
			0.95, replyOpts{toolUsed: true})
	}

	fc, err := b.fileReader.Read(filepath)
	if err != nil {
		return buildReply(fmt.Sprintf("❌ %v", err), emotionLabel, "file_analysis", "file_reader",
			0.90, replyOpts{toolUsed: true})
	}

	analysis := b.analyzeFile(ctx, userInput, fc)
	reply := fmt.Sprintf("📄 %s (%d lines)\n\n%s", fc.Path, fc.Lines, analysis)
	if fc.Truncated {
		reply += fmt.Sprintf("\n\n(First %d lines shown)", fc.TruncatedAt)
	}
	return buildReply(reply, emotionLabel, "file_analysis", "file_reader",
		0.90, replyOpts{toolUsed: true})
}

// analyzeFile asks a technical model for a short file summary, falling back
// to a line count when the model is down.
func (b *Brain) analyzeFile(ctx context.Context, userInput string, fc *tools.FileContent) string {
	content := fc.Content
	if len(content) > 3000 {
		content = content[:3000]
	}
	prompt := fmt.Sprintf(
		"Analyze this file and give: 1 sentence description, 3-5 key components, any obvious issues. Under 100 words.\n\nFile: %s (%d lines)\n\n%s",
		fc.Path, fc.Lines, content)

	resp, err := b.provider.Chat(ctx, &llm.ChatRequest{
		Model:       b.selector.Select("technical"),
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Temperature: 0.3,
		MaxTokens:   200,
	})
	if err != nil {
		return fmt.Sprintf("Read %d lines from %s", fc.Lines, fc.Path)
	}
	return resp.Content
}

func (b *Brain) handleSystemMonitor(userInput, emotionLabel string) *Envelope {
	info, err := b.sysmon.Snapshot()
	var reply string
	switch {
	case err != nil:
		reply = fmt.Sprintf("Error: %v", err)
	case strings.Contains(strings.ToLower(userInput), "why") && strings.Contains(strings.ToLower(userInput), "slow"):
		reply = "System Status:\n" + info.Analyze() + "\n\nTop Processes:\n"
		for i, p := range info.TopProcesses {
			if i >= 3 {
				break
			}
			reply += fmt.Sprintf("• %s: %.1f%% CPU, %.1f%% RAM\n", p.Name, p.CPU, p.Memory)
		}
	default:
		reply = info.Summary()
	}

	return buildReply(reply, emotionLabel, "system_info", "system_monitor",
		0.95, replyOpts{toolUsed: true})
}

func (b *Brain) handleTasks(userInput string, doc *memory.Document, emotionLabel string) *Envelope {
	tm := memory.NewTaskManager(doc)
	lower := strings.ToLower(userInput)
	var reply string

	switch {
	case containsAny(lower, taskAddKeywords):
		if m := taskPhrasePattern.FindStringSubmatch(userInput); m != nil {
			task := tm.Add(strings.TrimSpace(m[1]), "", "")
			reply = fmt.Sprintf("✓ Added task: %s", task.Title)
		} else {
			reply = "What task? Try: 'add task: finish the report'"
		}

	case containsAny(lower, taskListKeywords):
		all := tm.List("")
		if len(all) == 0 {
			reply = "No tasks! Want to add one?"
		} else {
			reply = fmt.Sprintf("Tasks (%d):\n", len(all))
			for _, t := range all {
				marker := "⏳"
				if t.Status == "done" {
					marker = "✅"
				}
				reply += marker + priorityIndicators[t.Priority] + " " + t.Title
				if t.Deadline != "" {
					reply += fmt.Sprintf(" (due: %s)", t.Deadline)
				}
				reply += "\n"
			}
		}

	case containsAny(lower, taskDoneKeywords):
		todo := tm.List("todo")
		if len(todo) > 0 {
			done, err := tm.Complete(todo[0].ID)
			if err != nil {
				reply = fmt.Sprintf("Error: %v", err)
			} else {
				reply = fmt.Sprintf("✅ Completed: %s", done.Title)
			}
		} else {
			reply = "No pending tasks!"
		}

	default:
		reply = "Task commands: 'add task', 'my tasks', 'complete task'"
	}

	return buildReply(reply, emotionLabel, "task_management", "task_manager",
		0.95, replyOpts{toolUsed: true, memoryUpdated: true})
}

func (b *Brain) handleGit(ctx context.Context, userInput, emotionLabel string) *Envelope {
	if !b.git.IsRepo(ctx) {
		return buildReply("Not in a git repo.", emotionLabel, "git_error", "git",
			1.0, replyOpts{})
	}

	lower := strings.ToLower(userInput)
	var reply string

	switch {
	case strings.Contains(lower, "status") || strings.Contains(lower, "what changed"):
		status, err := b.git.Status(ctx)
		if err != nil {
			reply = fmt.Sprintf("Error: %v", err)
		} else if status.Clean {
			reply = "Clean repo ✓"
		} else {
			reply = "Changes:\n"
			if len(status.Modified) > 0 {
				reply += "Modified: " + strings.Join(status.Modified, ", ") + "\n"
			}
			if len(status.Added) > 0 {
				reply += "Added: " + strings.Join(status.Added, ", ") + "\n"
			}
			if len(status.Untracked) > 0 {
				reply += "Untracked: " + strings.Join(status.Untracked, ", ") + "\n"
			}
		}

	case strings.Contains(lower, "log") || strings.Contains(lower, "commits"):
		commits, err := b.git.Log(ctx, 5)
		if err != nil {
			reply = fmt.Sprintf("Error: %v", err)
		} else {
			reply = "Recent commits:\n"
			for _, c := range commits {
				reply += fmt.Sprintf("• %s %s (%s)\n", c.Hash, c.Message, c.Time)
			}
		}

	case strings.Contains(lower, "branch"):
		branches, current, err := b.git.Branches(ctx)
		if err != nil {
			reply = fmt.Sprintf("Error: %v", err)
		} else {
			reply = fmt.Sprintf("Branch: %s\n", current)
			for i, br := range branches {
				if i >= 10 {
					break
				}
				marker := " "
				if br.Current {
					marker = "*"
				}
				reply += fmt.Sprintf("%s %s\n", marker, br.Name)
			}
		}

	case strings.Contains(lower, "commit"):
		message := "Update files"
		if m := commitMsgPattern.FindStringSubmatch(userInput); m != nil {
			message = m[1]
		}
		proposal, err := b.git.ProposeCommit(ctx, message, nil)
		if err != nil {
			reply = err.Error()
		} else {
			env := buildReply("Git commit proposed", emotionLabel, "git_commit_proposal", "git",
				1.0, replyOpts{toolUsed: true})
			env.ApprovalRequired = true
			env.Proposal = proposal
			return env
		}

	case strings.Contains(lower, "diff"):
		diff, err := b.git.Diff(ctx, "")
		if err != nil {
			reply = fmt.Sprintf("Error: %v", err)
		} else {
			snippet := diff
			if len(snippet) > 1000 {
				snippet = snippet[:1000]
			}
			reply = "```\n" + snippet + "\n```"
			if len(diff) > 1000 {
				reply += "\n(truncated)"
			}
		}

	default:
		reply = "Git: status | log | branch | commit | diff"
	}

	return buildReply(reply, emotionLabel, "git_operation", "git",
		0.90, replyOpts{toolUsed: true})
}

func (b *Brain) handlePython(userInput, emotionLabel string) *Envelope {
	code := tools.ExtractPythonCode(userInput)
	if code == "" {
		return buildReply("No Python code found. Wrap it in ```python``` blocks.",
			emotionLabel, "python_error", "python_sandbox", 0.80, replyOpts{})
	}

	env := buildReply("Python execution proposed", emotionLabel, "python_execution_proposal",
		"python_sandbox", 1.0, replyOpts{toolUsed: true})
	env.ApprovalRequired = true
	env.Proposal = b.sandbox.Propose(code)
	return env
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
