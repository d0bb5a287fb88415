package api

import (
	"context"
	"fmt"
)

// Admin endpoints require a superuser token; the backend answers 403
// otherwise. Every mutation is followed by a list re-fetch on the caller's
// side rather than patching local state.

func (c *Client) AdminStats(ctx context.Context) (AdminStats, error) {
	var out AdminStats
	err := c.get(ctx, "/admin/stats", &out)
	return out, err
}

func (c *Client) AdminRecentLogs(ctx context.Context, limit int) ([]HistoryEntry, error) {
	var out []HistoryEntry
	err := c.get(ctx, fmt.Sprintf("/admin/recent-logs?limit=%d", limit), &out)
	return out, err
}

// Diseases

func (c *Client) ListDiseases(ctx context.Context) ([]Disease, error) {
	var out []Disease
	err := c.get(ctx, "/admin/diseases", &out)
	return out, err
}

func (c *Client) GetDisease(ctx context.Context, id int) (Disease, error) {
	var out Disease
	err := c.get(ctx, fmt.Sprintf("/admin/diseases/%d", id), &out)
	return out, err
}

func (c *Client) CreateDisease(ctx context.Context, disease Disease) (Disease, error) {
	var out Disease
	err := c.postJSON(ctx, "/admin/diseases", disease, &out)
	return out, err
}

func (c *Client) UpdateDisease(ctx context.Context, id int, disease Disease) (Disease, error) {
	var out Disease
	err := c.putJSON(ctx, fmt.Sprintf("/admin/diseases/%d", id), disease, &out)
	return out, err
}

func (c *Client) DeleteDisease(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/admin/diseases/%d", id))
}

// General knowledge

func (c *Client) ListAdminKnowledge(ctx context.Context) ([]KnowledgeEntry, error) {
	var out []KnowledgeEntry
	err := c.get(ctx, "/admin/knowledge", &out)
	return out, err
}

func (c *Client) CreateKnowledge(ctx context.Context, entry KnowledgeEntry) (KnowledgeEntry, error) {
	var out KnowledgeEntry
	err := c.postJSON(ctx, "/admin/knowledge", entry, &out)
	return out, err
}

func (c *Client) UpdateKnowledge(ctx context.Context, id int, entry KnowledgeEntry) (KnowledgeEntry, error) {
	var out KnowledgeEntry
	err := c.putJSON(ctx, fmt.Sprintf("/admin/knowledge/%d", id), entry, &out)
	return out, err
}

func (c *Client) DeleteKnowledge(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/admin/knowledge/%d", id))
}

// Users

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	err := c.get(ctx, "/admin/users", &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, user UserUpsert) (User, error) {
	var out User
	err := c.postJSON(ctx, "/admin/users", user, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, id int, user UserUpsert) (User, error) {
	var out User
	err := c.putJSON(ctx, fmt.Sprintf("/admin/users/%d", id), user, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/admin/users/%d", id))
}

// AI provider settings

func (c *Client) GetSettings(ctx context.Context) (map[string]string, error) {
	var out map[string]string
	err := c.get(ctx, "/admin/settings", &out)
	return out, err
}

// UpdateSetting writes one key/value pair. The settings page calls this once
// per changed key, mirroring the backend's single-pair endpoint.
func (c *Client) UpdateSetting(ctx context.Context, key, value string) error {
	return c.postJSON(ctx, "/admin/settings", Setting{Key: key, Value: value}, nil)
}

func (c *Client) TestAI(ctx context.Context, req TestAIRequest) (TestAIResult, error) {
	var out TestAIResult
	err := c.postJSON(ctx, "/admin/test-ai", req, &out)
	return out, err
}

func (c *Client) UsageStats(ctx context.Context) (UsageStats, error) {
	var out UsageStats
	err := c.get(ctx, "/admin/usage-stats", &out)
	return out, err
}
