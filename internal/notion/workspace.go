package notion

import (
	"context"
	"strings"

	"github.com/growth4u/contentflow/internal/models"
)

// Property names of the content calendar database.
const (
	PropTitle  = "Title"
	PropType   = "Type"
	PropStatus = "Status"
)

// Workspace adapts the raw client to the content calendar: it knows which
// database holds candidates and which properties carry title, type and status.
type Workspace struct {
	client     *Client
	databaseID string
	pageSize   int
}

func NewWorkspace(client *Client, databaseID string) *Workspace {
	return &Workspace{
		client:     client,
		databaseID: databaseID,
		pageSize:   MaxPageSize,
	}
}

// ReadyCandidates returns pages of the configured database whose Status is
// Ready, in search order (most recently edited first). Ready pages older
// than the single search window are never seen.
func (w *Workspace) ReadyCandidates(ctx context.Context) ([]models.Candidate, error) {
	pages, err := w.client.SearchPages(ctx, w.pageSize)
	if err != nil {
		return nil, err
	}
	return FilterReady(pages, w.databaseID), nil
}

// PageBlocks returns the first page of child blocks of a candidate.
func (w *Workspace) PageBlocks(ctx context.Context, pageID string) ([]models.Block, error) {
	blocks, err := w.client.BlockChildren(ctx, pageID, w.pageSize)
	if err != nil {
		return nil, err
	}
	out := make([]models.Block, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, models.Block{Type: b.Type, Text: b.PlainText()})
	}
	return out, nil
}

// MarkPublished flips the candidate's Status to Published.
func (w *Workspace) MarkPublished(ctx context.Context, c models.Candidate) error {
	return w.client.UpdateSelect(ctx, c.PageID, PropStatus, c.StatusKind, models.StatusPublished)
}

// FilterReady keeps pages whose parent database matches databaseID and whose
// Status is Ready. Database IDs are compared without hyphens since the API
// returns the dashed UUID form.
func FilterReady(pages []Page, databaseID string) []models.Candidate {
	want := NormalizeID(databaseID)
	if want == "" {
		return nil
	}
	var out []models.Candidate
	for _, p := range pages {
		if NormalizeID(p.Parent.DatabaseID) != want {
			continue
		}
		status, kind := p.Select(PropStatus)
		if status != models.StatusReady {
			continue
		}
		ltype, _ := p.Select(PropType)
		out = append(out, models.Candidate{
			PageID:     p.ID,
			Title:      p.Text(PropTitle),
			Type:       ltype,
			Status:     status,
			StatusKind: kind,
		})
	}
	return out
}

// NormalizeID strips hyphens and lowercases an identifier.
func NormalizeID(id string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(id), "-", ""))
}
