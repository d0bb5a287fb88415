package api

import (
	"context"
	"fmt"
)

// Me fetches the current user's profile.
func (c *Client) Me(ctx context.Context) (UserProfile, error) {
	var out UserProfile
	err := c.get(ctx, "/users/me", &out)
	return out, err
}

// MyStats fetches the current user's scan summary.
func (c *Client) MyStats(ctx context.Context) (UserStats, error) {
	var out UserStats
	err := c.get(ctx, "/users/me/stats", &out)
	return out, err
}

// MyHistory lists the current user's diagnosis log, newest first. Entries
// with a confidence outside [0,1] are rejected at the boundary.
func (c *Client) MyHistory(ctx context.Context) ([]HistoryEntry, error) {
	var out []HistoryEntry
	if err := c.get(ctx, "/users/me/history", &out); err != nil {
		return nil, err
	}
	for _, entry := range out {
		if entry.Confidence < 0 || entry.Confidence > 1 {
			return nil, fmt.Errorf("history entry %d: confidence %v out of range", entry.ID, entry.Confidence)
		}
	}
	return out, nil
}

// Knowledge lists the general farming-knowledge entries.
func (c *Client) Knowledge(ctx context.Context) ([]KnowledgeEntry, error) {
	var out []KnowledgeEntry
	err := c.get(ctx, "/users/knowledge", &out)
	return out, err
}
