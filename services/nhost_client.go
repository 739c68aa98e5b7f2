package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"fitness-mission-system/models"

	"github.com/machinebox/graphql"
)

const queryUsersWithStats = `
query GetUsersAndStats {
  users {
    id
    stat {
      level
      fitness_rank
    }
  }
}`

const queryActiveMissions = `
query GetActiveMissionsForUser($userId: uuid!, $periodType: mission_period_enum!, $notDueBefore: timestamptz!) {
  missions(where: {
    user_id: {_eq: $userId},
    period_type: {_eq: $periodType},
    is_completed: {_eq: false},
    due_at: {_gte: $notDueBefore}
  }) {
    template_id
    title
  }
}`

const queryEligibleTemplates = `
query GetEligibleTemplates($rank: fitness_rank_enum!, $level: Int!, $excludedIds: [uuid!] = []) {
  mission_templates(where: {
    target_rank: {_eq: $rank},
    min_level: {_lte: $level},
    max_level: {_gte: $level},
    id: {_nin: $excludedIds}
  }) {
    id
    name
    description
    xp_reward
  }
}`

const mutationInsertMissions = `
mutation InsertMissions($objects: [missions_insert_input!]!) {
  insert_missions(objects: $objects) {
    affected_rows
  }
}`

// NhostClient implements MissionStore against the Nhost/Hasura GraphQL API
// using the admin secret. Construct it explicitly and inject it — there is no
// package-level instance.
type NhostClient struct {
	gql         *graphql.Client
	adminSecret string
}

// NewNhostClient points the client at backendURL's /v1/graphql endpoint.
// Every call is bounded by timeout.
func NewNhostClient(backendURL, adminSecret string, timeout time.Duration) *NhostClient {
	endpoint := strings.TrimRight(backendURL, "/") + "/v1/graphql"
	httpClient := &http.Client{Timeout: timeout}
	return &NhostClient{
		gql:         graphql.NewClient(endpoint, graphql.WithHTTPClient(httpClient)),
		adminSecret: adminSecret,
	}
}

func (c *NhostClient) newRequest(query string) *graphql.Request {
	req := graphql.NewRequest(query)
	req.Header.Set("x-hasura-admin-secret", c.adminSecret)
	return req
}

// ListUsersWithStats implements MissionStore.
func (c *NhostClient) ListUsersWithStats(ctx context.Context) ([]models.UserWithStats, error) {
	req := c.newRequest(queryUsersWithStats)
	var resp struct {
		Users []models.UserWithStats `json:"users"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// ListActiveMissions implements MissionStore.
func (c *NhostClient) ListActiveMissions(ctx context.Context, userID string, pt models.PeriodType, notDueBefore time.Time) ([]models.ActiveMission, error) {
	req := c.newRequest(queryActiveMissions)
	req.Var("userId", userID)
	req.Var("periodType", string(pt))
	req.Var("notDueBefore", notDueBefore.UTC().Format(time.RFC3339))
	var resp struct {
		Missions []models.ActiveMission `json:"missions"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Missions, nil
}

// ListEligibleTemplates implements MissionStore.
func (c *NhostClient) ListEligibleTemplates(ctx context.Context, rank string, level int, excludedTemplateIDs []string) ([]models.MissionTemplate, error) {
	if excludedTemplateIDs == nil {
		excludedTemplateIDs = []string{} // Hasura _nin rejects null
	}
	req := c.newRequest(queryEligibleTemplates)
	req.Var("rank", rank)
	req.Var("level", level)
	req.Var("excludedIds", excludedTemplateIDs)
	var resp struct {
		MissionTemplates []models.MissionTemplate `json:"mission_templates"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.MissionTemplates, nil
}

// BulkInsertMissions implements MissionStore. One mutation, all records.
func (c *NhostClient) BulkInsertMissions(ctx context.Context, records []models.MissionRecord) (int, error) {
	req := c.newRequest(mutationInsertMissions)
	req.Var("objects", records)
	var resp struct {
		InsertMissions struct {
			AffectedRows int `json:"affected_rows"`
		} `json:"insert_missions"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return 0, err
	}
	return resp.InsertMissions.AffectedRows, nil
}
