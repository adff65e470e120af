//go:build e2e

package e2e

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	pb "github.com/godilite/overlay-server/api/v1"
	handler "github.com/godilite/overlay-server/internal/grpc"
	"github.com/godilite/overlay-server/internal/repository"
	"github.com/godilite/overlay-server/internal/repository/models"
	"github.com/godilite/overlay-server/internal/service"
	"github.com/godilite/overlay-server/pkg/database"
	grpcsrv "github.com/godilite/overlay-server/pkg/grpc/server"
	"github.com/godilite/overlay-server/tests/e2e/mocks"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

const costYear = 2021

type testEnv struct {
	db     *sqlx.DB
	cache  *mocks.TrackingCache
	client pb.OverlayWidgetsClient
}

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.New(database.WithDriver("sqlite3"), database.WithDataSource(":memory:"))
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(context.Background(), db))

	_, err = db.Exec(`
	INSERT INTO application (id, name, organisational_unit_id, is_removed, actual_retirement_date, planned_retirement_date) VALUES
		(1, 'Billing', 10, 0, '2020-12-31', NULL),
		(2, 'Ledger', 10, 0, NULL, NULL),
		(3, 'Payroll', 11, 0, NULL, NULL),
		(4, 'Trading', 20, 0, NULL, '2030-01-01');

	INSERT INTO entity_hierarchy (id, ancestor_id, kind, level) VALUES
		(10, 10, 'ORG_UNIT', 1),
		(11, 11, 'ORG_UNIT', 2),
		(11, 10, 'ORG_UNIT', 1),
		(20, 20, 'ORG_UNIT', 1);

	INSERT INTO aggregate_overlay_diagram (id, name) VALUES (1, 'Capabilities');

	INSERT INTO aggregate_overlay_diagram_cell_data (diagram_id, cell_external_id, related_entity_kind, related_entity_id) VALUES
		(1, 'C1', 'APPLICATION', 1),
		(1, 'C1', 'APPLICATION', 2),
		(1, 'C1', 'APPLICATION', 3),
		(1, 'C2', 'APPLICATION', 4);

	INSERT INTO assessment_definition (id, name, rating_scheme_id, entity_kind) VALUES (50, 'Strategic Fit', 1, 'APPLICATION');

	INSERT INTO rating_scheme_item (id, scheme_id, name, code, color, position) VALUES
		(11, 1, 'Invest', 'I', '#0f0', 1),
		(12, 1, 'Disinvest', 'D', '#f00', 2);

	INSERT INTO assessment_rating (entity_id, entity_kind, assessment_definition_id, rating_id) VALUES
		(1, 'APPLICATION', 50, 11),
		(2, 'APPLICATION', 50, 11),
		(3, 'APPLICATION', 50, 12),
		(4, 'APPLICATION', 50, 12);

	INSERT INTO cost_kind (id, name, is_default) VALUES (1, 'Infrastructure', 1);
	`)
	require.NoError(t, err)

	n, err := repository.NewCostRepository(db).UpsertCosts(context.Background(), []models.Cost{
		{EntityID: 1, EntityKind: models.EntityKindApplication, CostKindID: 1, Year: costYear, Amount: decimal.NewFromInt(100)},
		{EntityID: 2, EntityKind: models.EntityKindApplication, CostKindID: 1, Year: costYear, Amount: decimal.NewFromInt(50)},
		{EntityID: 4, EntityKind: models.EntityKindApplication, CostKindID: 1, Year: costYear, Amount: decimal.NewFromInt(100)},
	})
	require.NoError(t, err)
	require.Equal(t, 3, n)

	return db
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	cache := mocks.NewTrackingCache()
	logger := zap.NewNop()

	widgets := service.NewOverlayWidgetService(
		service.NewCellMappingResolver(repository.NewOverlayRepository(db)),
		service.NewScopeIntersector(repository.NewApplicationRepository(db)),
		service.NewAssessmentRatingFetcher(repository.NewRatingRepository(db)),
		service.NewCostIndicatorFetcher(repository.NewCostRepository(db), costYear),
		logger,
		time.Second,
	)
	diagrams := service.NewFlowDiagramService(repository.NewFlowDiagramRepository(db), logger, time.Second)
	handlers := handler.NewGRPCHandlers(widgets, diagrams, repository.ApplicationSelector, cache, logger, time.Minute)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server, err := grpcsrv.New(
		grpcsrv.WithListener(lis),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithLogging(true),
		grpcsrv.WithRecovery(true),
	)
	require.NoError(t, err)
	server.RegisterServiceWithHealth(pb.OverlayWidgetsServiceName, func(s *grpc.Server) {
		pb.RegisterOverlayWidgetsServer(s, handlers)
	})
	server.Start()

	conn, err := grpc.NewClient(server.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		_ = server.Shutdown(context.Background())
		db.Close()
	})

	return &testEnv{db: db, cache: cache, client: pb.NewOverlayWidgetsClient(conn)}
}

func countsByCode(d *pb.AssessmentRatingsWidgetDatum) map[string]int32 {
	out := map[string]int32{}
	for _, c := range d.Counts {
		out[c.Rating.Code] = c.Count
	}
	return out
}

func TestE2E_AssessmentWidget(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	t.Run("explicit application scope", func(t *testing.T) {
		resp, err := env.client.GetAppAssessmentWidgetData(ctx, &pb.AssessmentWidgetRequest{
			DiagramID:              1,
			AssessmentDefinitionID: 50,
			Scope:                  &pb.IdSelectionOptions{ApplicationIDs: []int64{4, 1, 2}},
		})
		require.NoError(t, err)
		require.Len(t, resp.CellData, 2)

		assert.Equal(t, "C1", resp.CellData[0].CellExternalID)
		assert.Equal(t, map[string]int32{"I": 2}, countsByCode(resp.CellData[0]))
		assert.Equal(t, "C2", resp.CellData[1].CellExternalID)
		assert.Equal(t, map[string]int32{"D": 1}, countsByCode(resp.CellData[1]))
	})

	t.Run("org unit with children", func(t *testing.T) {
		resp, err := env.client.GetAppAssessmentWidgetData(ctx, &pb.AssessmentWidgetRequest{
			DiagramID:              1,
			AssessmentDefinitionID: 50,
			Scope: &pb.IdSelectionOptions{
				Entity: &pb.EntityReference{Kind: "ORG_UNIT", ID: 10},
				Scope:  "CHILDREN",
			},
		})
		require.NoError(t, err)
		require.Len(t, resp.CellData, 2)

		assert.Equal(t, map[string]int32{"I": 2, "D": 1}, countsByCode(resp.CellData[0]))
		assert.Empty(t, resp.CellData[1].Counts)
	})

	t.Run("unknown diagram is empty", func(t *testing.T) {
		resp, err := env.client.GetAppAssessmentWidgetData(ctx, &pb.AssessmentWidgetRequest{
			DiagramID:              99,
			AssessmentDefinitionID: 50,
			Scope:                  &pb.IdSelectionOptions{Entity: &pb.EntityReference{Kind: "ALL"}},
		})
		require.NoError(t, err)
		assert.Empty(t, resp.CellData)
	})

	t.Run("invalid arguments", func(t *testing.T) {
		_, err := env.client.GetAppAssessmentWidgetData(ctx, &pb.AssessmentWidgetRequest{DiagramID: 0, AssessmentDefinitionID: 50})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))

		_, err = env.client.GetAppAssessmentWidgetData(ctx, &pb.AssessmentWidgetRequest{
			DiagramID:              1,
			AssessmentDefinitionID: 50,
			Scope:                  &pb.IdSelectionOptions{Entity: &pb.EntityReference{Kind: "FLOW_DIAGRAM", ID: 1}},
		})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}

func TestE2E_TargetCostWidget(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	resp, err := env.client.GetTargetAppCostWidgetData(ctx, &pb.TargetCostWidgetRequest{
		DiagramID:       1,
		TargetStateDate: "2021-06-01",
		Scope:           &pb.IdSelectionOptions{ApplicationIDs: []int64{1, 2, 4}},
	})
	require.NoError(t, err)
	require.Len(t, resp.CellData, 2)

	c1, c2 := resp.CellData[0], resp.CellData[1]
	assert.Equal(t, "C1", c1.CellExternalID)
	assert.True(t, c1.CurrentStateCost.Equal(decimal.NewFromInt(150)), c1.CurrentStateCost.String())
	assert.True(t, c1.TargetStateCost.Equal(decimal.NewFromInt(50)), c1.TargetStateCost.String())

	assert.Equal(t, "C2", c2.CellExternalID)
	assert.True(t, c2.CurrentStateCost.Equal(decimal.NewFromInt(100)))
	assert.True(t, c2.TargetStateCost.Equal(decimal.NewFromInt(100)))

	_, err = env.client.GetTargetAppCostWidgetData(ctx, &pb.TargetCostWidgetRequest{
		DiagramID:       1,
		TargetStateDate: "June 2021",
		Scope:           &pb.IdSelectionOptions{Entity: &pb.EntityReference{Kind: "ALL"}},
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestE2E_WidgetCaching(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	req := &pb.TargetCostWidgetRequest{
		DiagramID:       1,
		TargetStateDate: "2021-06-01",
		Scope:           &pb.IdSelectionOptions{Entity: &pb.EntityReference{Kind: "ALL"}},
	}

	first, err := env.client.GetTargetAppCostWidgetData(ctx, req)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, sets := env.cache.Stats()
		return sets >= 1
	}, time.Second, 10*time.Millisecond, "first call should populate the cache")

	second, err := env.client.GetTargetAppCostWidgetData(ctx, req)
	require.NoError(t, err)

	require.Len(t, second.CellData, len(first.CellData))
	for i := range first.CellData {
		assert.Equal(t, first.CellData[i].CellExternalID, second.CellData[i].CellExternalID)
		assert.True(t, first.CellData[i].CurrentStateCost.Equal(second.CellData[i].CurrentStateCost))
		assert.True(t, first.CellData[i].TargetStateCost.Equal(second.CellData[i].TargetStateCost))
	}

	gets, sets := env.cache.Stats()
	t.Logf("Cache stats - Gets: %d, Sets: %d", gets, sets)
	assert.GreaterOrEqual(t, gets, 2)
}

func TestE2E_FlowDiagramLifecycle(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	created, err := env.client.CreateFlowDiagram(ctx, &pb.CreateFlowDiagramRequest{Diagram: &pb.FlowDiagram{
		Name:          "Payments",
		Description:   "payment flows",
		LayoutData:    `{"nodes":[]}`,
		LastUpdatedBy: "admin",
	}})
	require.NoError(t, err)
	require.Positive(t, created.ID)

	require.NoError(t, repository.NewFlowDiagramRepository(env.db).AddEntity(ctx, created.ID,
		models.EntityReference{Kind: models.EntityKindApplication, ID: 1}))

	got, err := env.client.GetFlowDiagram(ctx, &pb.GetFlowDiagramRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "Payments", got.Diagram.Name)
	assert.Equal(t, "admin", got.Diagram.LastUpdatedBy)

	key := "grpc:flow_diagram:" + strconv.FormatInt(created.ID, 10)
	require.Eventually(t, func() bool { return env.cache.Has(key) }, time.Second, 10*time.Millisecond)

	found, err := env.client.FindFlowDiagramsByEntity(ctx, &pb.FindFlowDiagramsByEntityRequest{
		Entity: &pb.EntityReference{Kind: "APPLICATION", ID: 1},
	})
	require.NoError(t, err)
	require.Len(t, found.Diagrams, 1)
	assert.Equal(t, created.ID, found.Diagrams[0].ID)

	updated, err := env.client.UpdateFlowDiagram(ctx, &pb.UpdateFlowDiagramRequest{Diagram: &pb.FlowDiagram{
		ID:            created.ID,
		Name:          "Payments v2",
		LastUpdatedBy: "editor",
	}})
	require.NoError(t, err)
	assert.True(t, updated.Updated)
	assert.Contains(t, env.cache.DeletedKeys(), key)

	got, err = env.client.GetFlowDiagram(ctx, &pb.GetFlowDiagramRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "Payments v2", got.Diagram.Name)
	assert.Equal(t, "editor", got.Diagram.LastUpdatedBy)

	t.Run("update of a missing diagram", func(t *testing.T) {
		resp, err := env.client.UpdateFlowDiagram(ctx, &pb.UpdateFlowDiagramRequest{Diagram: &pb.FlowDiagram{
			ID:            999,
			Name:          "Ghost",
			LastUpdatedBy: "editor",
		}})
		require.NoError(t, err)
		assert.False(t, resp.Updated)
	})

	t.Run("missing diagram", func(t *testing.T) {
		_, err := env.client.GetFlowDiagram(ctx, &pb.GetFlowDiagramRequest{ID: 999})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		_, err := env.client.CreateFlowDiagram(ctx, &pb.CreateFlowDiagramRequest{Diagram: &pb.FlowDiagram{LastUpdatedBy: "admin"}})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}
