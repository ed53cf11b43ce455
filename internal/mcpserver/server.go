// Package mcpserver exposes the credential registry as Model Context
// Protocol tools over stdio. Each tool maps 1:1 to one registry
// operation and wraps its outcome in a uniform envelope; schema
// discovery is the protocol's own tools/list, with input schemas
// inferred from the argument structs.
package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/keywarden/cli/internal/credential"
	"github.com/keywarden/cli/internal/registry"
	"github.com/keywarden/cli/internal/report"
	"github.com/keywarden/cli/internal/store"
)

// Server wires registry operations into an MCP server.
type Server struct {
	version   string
	storePath string
	log       *slog.Logger
	mcp       *mcp.Server
}

// New builds the server. An empty storePath resolves the store the
// usual way (local file over global) on every tool call, so the server
// always sees the latest persisted state.
func New(version, storePath string, log *slog.Logger) *Server {
	s := &Server{version: version, storePath: storePath, log: log}

	srv := mcp.NewServer(&mcp.Implementation{Name: "keywarden", Version: version}, nil)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "init",
		Description: "Create a new credential store",
	}, s.handleInit)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "add",
		Description: "Track a new credential's metadata (never the secret value)",
	}, s.handleAdd)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list",
		Description: "List tracked credentials with freshly computed health statuses",
	}, s.handleList)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "check",
		Description: "Audit the registry: status counts and every non-healthy credential",
	}, s.handleCheck)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "remove",
		Description: "Stop tracking a credential",
	}, s.handleRemove)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "rotate",
		Description: "Mark a credential as rotated today",
	}, s.handleRotate)

	s.mcp = srv
	return s
}

// Run serves MCP over stdio until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("keywarden MCP server listening on stdio", "version", s.version)
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// Result is the uniform tool-response envelope.
type Result struct {
	OK      bool                    `json:"ok"`
	Error   string                  `json:"error,omitempty"`
	Code    string                  `json:"code,omitempty"`
	Tier    string                  `json:"tier,omitempty"`
	Path    string                  `json:"path,omitempty"`
	Summary *report.Summary         `json:"summary,omitempty"`
	Worst   string                  `json:"worstStatus,omitempty"`
	Record  *credential.Classified  `json:"record,omitempty"`
	Records []credential.Classified `json:"records,omitempty"`
}

func failure(err error) Result {
	return Result{OK: false, Error: err.Error(), Code: string(registry.ErrorCode(err))}
}

// InitArgs configures store creation.
type InitArgs struct {
	Tier  string `json:"tier,omitempty"`
	Local bool   `json:"local,omitempty"`
	Force bool   `json:"force,omitempty"`
}

// AddArgs is the creation payload for one tracked credential. Dates
// are YYYY-MM-DD.
type AddArgs struct {
	Name         string `json:"name"`
	Provider     string `json:"provider,omitempty"`
	Kind         string `json:"kind,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	ExpiresAt    string `json:"expiresAt,omitempty"`
	LastRotated  string `json:"lastRotated,omitempty"`
	RotationDays *int   `json:"rotationPolicyDays,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// ListArgs optionally filters the listing by status.
type ListArgs struct {
	Status string `json:"status,omitempty"`
}

// NameArgs identifies a credential by name.
type NameArgs struct {
	Name string `json:"name"`
}

// CheckArgs has no parameters.
type CheckArgs struct{}

func (s *Server) handleInit(ctx context.Context, req *mcp.CallToolRequest, args InitArgs) (*mcp.CallToolResult, Result, error) {
	tier := args.Tier
	if tier == "" {
		tier = string(registry.TierFree)
	}

	path := s.storePath
	if path == "" {
		if args.Local {
			path = store.LocalPath()
		} else {
			var err error
			path, err = store.GlobalPath()
			if err != nil {
				return nil, failure(err), nil
			}
		}
	}

	f, err := store.Create(path, tier, args.Force)
	if err != nil {
		return nil, failure(err), nil
	}
	s.log.Info("store initialized", "path", f.Path(), "tier", tier)
	return nil, Result{OK: true, Tier: tier, Path: f.Path()}, nil
}

func (s *Server) handleAdd(ctx context.Context, req *mcp.CallToolRequest, args AddArgs) (*mcp.CallToolResult, Result, error) {
	reg, err := s.openRegistry()
	if err != nil {
		return nil, failure(err), nil
	}
	rec, err := reg.Add(registry.AddInput{
		Name:               args.Name,
		Provider:           args.Provider,
		Kind:               args.Kind,
		CreatedAt:          args.CreatedAt,
		ExpiresAt:          args.ExpiresAt,
		LastRotated:        args.LastRotated,
		RotationPolicyDays: args.RotationDays,
		Notes:              args.Notes,
	})
	if err != nil {
		return nil, failure(err), nil
	}
	return nil, Result{OK: true, Record: &rec}, nil
}

func (s *Server) handleList(ctx context.Context, req *mcp.CallToolRequest, args ListArgs) (*mcp.CallToolResult, Result, error) {
	reg, err := s.openRegistry()
	if err != nil {
		return nil, failure(err), nil
	}
	records := reg.List()
	if args.Status != "" {
		filtered := records[:0:0]
		for _, r := range records {
			if string(r.Evaluation.Status) == args.Status {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}
	summary := report.Summarize(records)
	return nil, Result{OK: true, Records: records, Summary: &summary, Tier: string(reg.Tier())}, nil
}

func (s *Server) handleCheck(ctx context.Context, req *mcp.CallToolRequest, args CheckArgs) (*mcp.CallToolResult, Result, error) {
	reg, err := s.openRegistry()
	if err != nil {
		return nil, failure(err), nil
	}
	records := reg.List()
	summary := report.Summarize(records)

	attention := make([]credential.Classified, 0)
	for _, r := range records {
		if r.Evaluation.Status != credential.StatusHealthy {
			attention = append(attention, r)
		}
	}
	return nil, Result{
		OK:      true,
		Summary: &summary,
		Worst:   string(report.WorstStatus(records)),
		Records: attention,
	}, nil
}

func (s *Server) handleRemove(ctx context.Context, req *mcp.CallToolRequest, args NameArgs) (*mcp.CallToolResult, Result, error) {
	reg, err := s.openRegistry()
	if err != nil {
		return nil, failure(err), nil
	}
	removed, err := reg.Remove(args.Name)
	if err != nil {
		return nil, failure(err), nil
	}
	return nil, Result{OK: true, Record: &credential.Classified{Credential: removed}}, nil
}

func (s *Server) handleRotate(ctx context.Context, req *mcp.CallToolRequest, args NameArgs) (*mcp.CallToolResult, Result, error) {
	reg, err := s.openRegistry()
	if err != nil {
		return nil, failure(err), nil
	}
	rec, err := reg.Rotate(args.Name)
	if err != nil {
		return nil, failure(err), nil
	}
	return nil, Result{OK: true, Record: &rec}, nil
}

func (s *Server) openRegistry() (*registry.Registry, error) {
	var f *store.File
	if s.storePath != "" {
		f = store.Open(s.storePath)
	} else {
		var err error
		f, err = store.Resolve()
		if err != nil {
			return nil, err
		}
	}
	doc, err := f.Load()
	if err != nil {
		return nil, err
	}
	return registry.New(registry.Tier(doc.Tier), doc.Secrets, f), nil
}
