package sgroup

import (
	"context"
	"database/sql"

	"github.com/Bezneima/Kucher-retro-back/pkg/db/gen"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mcolor"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mgroup"
)

var ErrNoGroupFound = sql.ErrNoRows

type GroupService struct {
	queries *gen.Queries
}

func New(queries *gen.Queries) GroupService {
	return GroupService{queries: queries}
}

func (gs GroupService) TX(tx *sql.Tx) GroupService {
	return GroupService{queries: gs.queries.WithTx(tx)}
}

func ConvertToDBGroup(group mgroup.Group) gen.ItemGroup {
	return gen.ItemGroup{
		ID:          group.ID,
		ColumnID:    group.ColumnID,
		Name:        group.Name,
		Description: group.Description,
		Color:       group.Color.Encode(),
		OrderIndex:  group.OrderIndex,
	}
}

func ConvertToModelGroup(group gen.ItemGroup) mgroup.Group {
	return mgroup.Group{
		ID:          group.ID,
		ColumnID:    group.ColumnID,
		Name:        group.Name,
		Description: group.Description,
		Color:       mcolor.Parse(group.Color),
		OrderIndex:  group.OrderIndex,
	}
}

func (gs GroupService) CreateGroup(ctx context.Context, group *mgroup.Group) error {
	g := ConvertToDBGroup(*group)
	return gs.queries.CreateGroup(ctx, gen.CreateGroupParams{
		ID:          g.ID,
		ColumnID:    g.ColumnID,
		Name:        g.Name,
		Description: g.Description,
		Color:       g.Color,
		OrderIndex:  g.OrderIndex,
	})
}

func (gs GroupService) GetGroup(ctx context.Context, id idwrap.IDWrap) (*mgroup.Group, error) {
	group, err := gs.queries.GetGroup(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoGroupFound
		}
		return nil, err
	}
	g := ConvertToModelGroup(group)
	return &g, nil
}

func (gs GroupService) GetGroupsByColumnID(ctx context.Context, columnID idwrap.IDWrap) ([]mgroup.Group, error) {
	rows, err := gs.queries.GetGroupsByColumnID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	groups := make([]mgroup.Group, len(rows))
	for i, row := range rows {
		groups[i] = ConvertToModelGroup(row)
	}
	return groups, nil
}

// UpdatePosition re-parents the group and sets its root-level order key
// in one statement, the way a batch sync applies each change.
func (gs GroupService) UpdatePosition(ctx context.Context, id, columnID idwrap.IDWrap, orderIndex int64) error {
	return gs.queries.UpdateGroupPosition(ctx, gen.UpdateGroupPositionParams{
		ColumnID:   columnID,
		OrderIndex: orderIndex,
		ID:         id,
	})
}

func (gs GroupService) UpdateOrderIndex(ctx context.Context, id idwrap.IDWrap, orderIndex int64) error {
	return gs.queries.UpdateGroupOrderIndex(ctx, gen.UpdateGroupOrderIndexParams{
		OrderIndex: orderIndex,
		ID:         id,
	})
}

// IncrementOrderIndexes shifts every group of a column one slot down,
// making room for a prepended root-level entry.
func (gs GroupService) IncrementOrderIndexes(ctx context.Context, columnID idwrap.IDWrap) error {
	return gs.queries.IncrementGroupOrderIndexes(ctx, columnID)
}

func (gs GroupService) DeleteGroup(ctx context.Context, id idwrap.IDWrap) error {
	return gs.queries.DeleteGroup(ctx, id)
}
