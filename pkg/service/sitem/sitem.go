package sitem

import (
	"context"
	"database/sql"
	"time"

	"github.com/Bezneima/Kucher-retro-back/pkg/db/gen"
	"github.com/Bezneima/Kucher-retro-back/pkg/dbtime"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mitem"
)

var ErrNoItemFound = sql.ErrNoRows

type ItemService struct {
	queries *gen.Queries
}

func New(queries *gen.Queries) ItemService {
	return ItemService{queries: queries}
}

func (is ItemService) TX(tx *sql.Tx) ItemService {
	return ItemService{queries: is.queries.WithTx(tx)}
}

func ConvertToDBItem(item mitem.Item) gen.Item {
	return gen.Item{
		ID:          item.ID,
		ColumnID:    item.ColumnID,
		GroupID:     item.GroupID,
		Description: item.Description,
		RowIndex:    item.RowIndex,
		Updated:     item.Updated.UnixMilli(),
	}
}

func ConvertToModelItem(item gen.Item) mitem.Item {
	return mitem.Item{
		ID:          item.ID,
		ColumnID:    item.ColumnID,
		GroupID:     item.GroupID,
		Description: item.Description,
		RowIndex:    item.RowIndex,
		Updated:     dbtime.DBTime(time.UnixMilli(item.Updated)),
	}
}

func massConvert(rows []gen.Item) []mitem.Item {
	items := make([]mitem.Item, len(rows))
	for i, row := range rows {
		items[i] = ConvertToModelItem(row)
	}
	return items
}

func (is ItemService) CreateItem(ctx context.Context, item *mitem.Item) error {
	it := ConvertToDBItem(*item)
	return is.queries.CreateItem(ctx, gen.CreateItemParams{
		ID:          it.ID,
		ColumnID:    it.ColumnID,
		GroupID:     it.GroupID,
		Description: it.Description,
		RowIndex:    it.RowIndex,
		Updated:     it.Updated,
	})
}

func (is ItemService) GetItem(ctx context.Context, id idwrap.IDWrap) (*mitem.Item, error) {
	item, err := is.queries.GetItem(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoItemFound
		}
		return nil, err
	}
	it := ConvertToModelItem(item)
	return &it, nil
}

// GetRootItems returns the column's ungrouped items, ordered by row index.
func (is ItemService) GetRootItems(ctx context.Context, columnID idwrap.IDWrap) ([]mitem.Item, error) {
	rows, err := is.queries.GetRootItemsByColumnID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	return massConvert(rows), nil
}

func (is ItemService) GetItemsByGroupID(ctx context.Context, groupID idwrap.IDWrap) ([]mitem.Item, error) {
	rows, err := is.queries.GetItemsByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return massConvert(rows), nil
}

func (is ItemService) GetItemsByColumnID(ctx context.Context, columnID idwrap.IDWrap) ([]mitem.Item, error) {
	rows, err := is.queries.GetItemsByColumnID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	return massConvert(rows), nil
}

// UpdatePosition rewrites the item's column, group and row index together
// so a batch change is a single statement.
func (is ItemService) UpdatePosition(ctx context.Context, id, columnID idwrap.IDWrap, groupID *idwrap.IDWrap, rowIndex int64) error {
	return is.queries.UpdateItemPosition(ctx, gen.UpdateItemPositionParams{
		ColumnID: columnID,
		GroupID:  groupID,
		RowIndex: rowIndex,
		ID:       id,
	})
}

func (is ItemService) UpdateDescription(ctx context.Context, id idwrap.IDWrap, description string) error {
	return is.queries.UpdateItemDescription(ctx, gen.UpdateItemDescriptionParams{
		Description: description,
		Updated:     dbtime.DBNow().UnixMilli(),
		ID:          id,
	})
}

func (is ItemService) UpdateRowIndex(ctx context.Context, id idwrap.IDWrap, rowIndex int64) error {
	return is.queries.UpdateItemRowIndex(ctx, gen.UpdateItemRowIndexParams{
		RowIndex: rowIndex,
		ID:       id,
	})
}

// MoveGroupItemsToColumn re-parents all of a group's items when the group
// moves across columns. Group membership and row order stay untouched.
func (is ItemService) MoveGroupItemsToColumn(ctx context.Context, groupID, columnID idwrap.IDWrap) error {
	return is.queries.UpdateItemsColumnByGroupID(ctx, gen.UpdateItemsColumnByGroupIDParams{
		ColumnID: columnID,
		GroupID:  groupID,
	})
}

// IncrementRootRowIndexes shifts a column's ungrouped items one slot down
// for prepend-style inserts.
func (is ItemService) IncrementRootRowIndexes(ctx context.Context, columnID idwrap.IDWrap) error {
	return is.queries.IncrementRootItemRowIndexes(ctx, columnID)
}

func (is ItemService) IncrementGroupRowIndexes(ctx context.Context, groupID idwrap.IDWrap) error {
	return is.queries.IncrementGroupItemRowIndexes(ctx, groupID)
}

func (is ItemService) DeleteItem(ctx context.Context, id idwrap.IDWrap) error {
	return is.queries.DeleteItem(ctx, id)
}
